package templates

import (
	"context"
)

// Service of template management.
type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*Template, error)
	List(ctx context.Context, userID string) ([]*Template, error)
	Download(ctx context.Context, userID, templateID string) (*Document, error)
	Generate(ctx context.Context, userID, templateID string, payload map[string]interface{}) (*Document, error)
	Delete(ctx context.Context, userID, templateID string) error
}
