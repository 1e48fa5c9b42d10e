package templates

import (
	"errors"
)

var (
	// ErrNotFound no template with the requested id.
	ErrNotFound = errors.New("template not found")
	// ErrForbidden the template belongs to another user.
	ErrForbidden = errors.New("no access to this template")
	// ErrUnsupportedType only docx and xlsx templates are handled.
	ErrUnsupportedType = errors.New("unsupported file type, only docx and xlsx are allowed")
	// ErrFileTooLarge the uploaded file exceeds the size limit.
	ErrFileTooLarge = errors.New("file size exceeds limit")
	// ErrEmptyFile no file content was provided.
	ErrEmptyFile = errors.New("no file provided")
	// ErrEmptyPayload generation needs a placeholder value mapping.
	ErrEmptyPayload = errors.New("placeholder data is required")
	// ErrExtraction the uploaded bytes are not a parseable template.
	ErrExtraction = errors.New("failed to extract placeholders from the template")
	// ErrTemplateParse the stored bytes are not a parseable template.
	ErrTemplateParse = errors.New("failed to parse the template")
	// ErrDocumentFill the document render delegate failed.
	ErrDocumentFill = errors.New("failed to generate the document")
	// ErrStorage a storage collaborator operation failed.
	ErrStorage = errors.New("storage operation failed")
	// ErrMetadata a metadata store operation failed.
	ErrMetadata = errors.New("metadata operation failed")
)
