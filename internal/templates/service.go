package templates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
)

type extractFunc func(content []byte) ([]string, error)

type fillInFunc func(ctx context.Context, content []byte, payload map[string]interface{}) ([]byte, error)

type publishFunc func(message []byte) error

// Storage of template binaries.
type Storage interface {
	Upload(ctx context.Context, path string, content []byte, contentType string) (string, error)
	Download(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, paths []string) error
}

type repository interface {
	Create(ctx context.Context, template *Template) error
	GetByID(ctx context.Context, id string) (*Template, error)
	List(ctx context.Context, userID string) ([]*Template, error)
	Delete(ctx context.Context, id string) error
	IncrementUseCount(ctx context.Context, id string) error
}

type pathBuilder interface {
	Template(userID, filename string) string
}

type parser interface {
	Type(filename string) (string, error)
}

type service struct {
	extract map[string]extractFunc
	fillIn  map[string]fillInFunc

	parser     parser
	path       pathBuilder
	storage    Storage
	repository repository
	publish    publishFunc

	maxFileSize int64
	uuidFunc    func() string
	nowFunc     func() time.Time

	logger log.Logger
}

func NewService(
	parser parser,
	path pathBuilder,
	storage Storage,
	repository repository,

	xlsxExtract extractFunc,
	xlsxFillIn fillInFunc,
	docxExtract extractFunc,
	docxFillIn fillInFunc,

	publish publishFunc,
	maxFileSize int64,

	logger log.Logger,
) Service {
	s := &service{
		parser:      parser,
		path:        path,
		storage:     storage,
		repository:  repository,
		publish:     publish,
		maxFileSize: maxFileSize,
		uuidFunc:    uuid.NewString,
		nowFunc:     time.Now,
		logger:      logger,
	}

	s.extract = map[string]extractFunc{
		"xlsx": xlsxExtract,
		"docx": docxExtract,
	}
	s.fillIn = map[string]fillInFunc{
		"xlsx": xlsxFillIn,
		"docx": docxFillIn,
	}
	return s
}

// Upload validates the file, extracts its placeholders, stores the
// binary and persists the metadata. A metadata failure after a
// successful store triggers best-effort cleanup of the orphaned object.
func (s *service) Upload(ctx context.Context, req UploadRequest) (template *Template, err error) {
	logger := log.WithPrefix(s.logger, "method", "Upload", "user", req.UserID)

	if len(req.Content) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(req.Content)) > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	fileType, err := s.parser.Type(req.Filename)
	if err != nil {
		return nil, ErrUnsupportedType
	}
	extract, isExist := s.extract[fileType]
	if !isExist {
		return nil, ErrUnsupportedType
	}

	placeholders, err := extract(req.Content)
	if err != nil {
		level.Error(logger).Log("msg", "extract placeholders", "file", req.Filename, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if placeholders == nil {
		placeholders = []string{}
	}

	name := req.Name
	if name == "" {
		name = req.Filename
	}

	storedPath, err := s.storage.Upload(ctx, s.path.Template(req.UserID, req.Filename), req.Content, ContentType(fileType))
	if err != nil {
		level.Error(logger).Log("msg", "upload to storage", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	template = &Template{
		ID:           s.uuidFunc(),
		UserID:       req.UserID,
		Name:         name,
		FilePath:     storedPath,
		FileSize:     int64(len(req.Content)),
		Placeholders: placeholders,
		FileType:     fileType,
		UploadDate:   s.nowFunc(),
	}
	if err = s.repository.Create(ctx, template); err != nil {
		level.Error(logger).Log("msg", "create metadata", "err", err)
		if removeErr := s.storage.Remove(ctx, []string{storedPath}); removeErr != nil {
			level.Warn(logger).Log("msg", "cleanup orphaned object", "path", storedPath, "err", removeErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	s.publishEvent(logger, eventTemplateUploaded, template.ID, req.UserID)
	return template, nil
}

// List returns the user's templates, newest first.
func (s *service) List(ctx context.Context, userID string) ([]*Template, error) {
	list, err := s.repository.List(ctx, userID)
	if err != nil {
		level.Error(log.WithPrefix(s.logger, "method", "List", "user", userID)).Log("msg", "list metadata", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}
	return list, nil
}

// Download returns the stored template binary.
func (s *service) Download(ctx context.Context, userID, templateID string) (*Document, error) {
	logger := log.WithPrefix(s.logger, "method", "Download", "template", templateID)

	template, err := s.owned(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	content, err := s.storage.Download(ctx, template.FilePath)
	if err != nil {
		level.Error(logger).Log("msg", "download from storage", "path", template.FilePath, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return &Document{
		Filename:    template.Name,
		ContentType: ContentType(template.FileType),
		Content:     content,
	}, nil
}

// Generate fills the template with payload and returns the produced
// document. The use counter increment is best-effort.
func (s *service) Generate(ctx context.Context, userID, templateID string, payload map[string]interface{}) (*Document, error) {
	logger := log.WithPrefix(s.logger, "method", "Generate", "template", templateID)

	if payload == nil {
		return nil, ErrEmptyPayload
	}

	template, err := s.owned(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	fillIn, isExist := s.fillIn[template.FileType]
	if !isExist {
		return nil, ErrUnsupportedType
	}

	content, err := s.storage.Download(ctx, template.FilePath)
	if err != nil {
		level.Error(logger).Log("msg", "download from storage", "path", template.FilePath, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	result, err := fillIn(ctx, content, payload)
	if err != nil {
		level.Error(logger).Log("msg", "fill in template", "type", template.FileType, "err", err)
		if template.FileType == "docx" {
			return nil, fmt.Errorf("%w: %v", ErrDocumentFill, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	if err := s.repository.IncrementUseCount(ctx, templateID); err != nil {
		level.Warn(logger).Log("msg", "increment use count", "err", err)
	}
	s.publishEvent(logger, eventDocumentGenerated, templateID, userID)

	return &Document{
		Filename:    generatedFilename(template.Name, template.FileType),
		ContentType: ContentType(template.FileType),
		Content:     result,
	}, nil
}

// Delete removes the stored binary best-effort and the metadata.
func (s *service) Delete(ctx context.Context, userID, templateID string) error {
	logger := log.WithPrefix(s.logger, "method", "Delete", "template", templateID)

	template, err := s.owned(ctx, userID, templateID)
	if err != nil {
		return err
	}

	if template.FilePath != "" {
		if err := s.storage.Remove(ctx, []string{template.FilePath}); err != nil {
			level.Warn(logger).Log("msg", "remove from storage", "path", template.FilePath, "err", err)
		}
	}

	if err := s.repository.Delete(ctx, templateID); err != nil {
		level.Error(logger).Log("msg", "delete metadata", "err", err)
		return fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	s.publishEvent(logger, eventTemplateDeleted, templateID, userID)
	return nil
}

// owned returns the template when it exists and belongs to userID.
func (s *service) owned(ctx context.Context, userID, templateID string) (*Template, error) {
	template, err := s.repository.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template.UserID != userID {
		return nil, ErrForbidden
	}
	return template, nil
}

func generatedFilename(name, fileType string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return "Generated-" + name + "." + fileType
}
