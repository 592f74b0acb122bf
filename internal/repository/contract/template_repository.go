package contract

import (
	"context"

	"github.com/google/uuid"

	"ai-docgen-be/internal/model"
)

// TemplateRepository is the persistent template library.
type TemplateRepository interface {
	Create(ctx context.Context, record *model.TemplateRecord) error
	FindById(ctx context.Context, id uuid.UUID) (*model.TemplateRecord, error)
	FindAll(ctx context.Context) ([]model.TemplateRecord, error)
	Update(ctx context.Context, record *model.TemplateRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}
