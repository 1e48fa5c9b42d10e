package templates

import (
	"time"
)

// Template metadata record.
type Template struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	FilePath     string    `json:"file_path"`
	FileSize     int64     `json:"file_size"`
	Placeholders []string  `json:"placeholders"`
	FileType     string    `json:"file_type"`
	UploadDate   time.Time `json:"upload_date"`
	UseCount     int64     `json:"use_count"`
}

// UploadRequest carries an uploaded template.
type UploadRequest struct {
	UserID   string
	Name     string
	Filename string
	Content  []byte
}

// Document is a binary returned to the caller: a stored template or a
// generated one.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

const (
	docxContentType    = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultContentType = "application/octet-stream"
)

var contentTypes = map[string]string{
	"docx": docxContentType,
	"xlsx": xlsxContentType,
}

// ContentType by file type.
func ContentType(fileType string) string {
	if contentType, isExist := contentTypes[fileType]; isExist {
		return contentType
	}
	return defaultContentType
}
