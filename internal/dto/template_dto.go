package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-docgen-be/pkg/template"
)

type TemplateResponse struct {
	Template template.Template `json:"template"`
}

type SaveTemplateLibraryRequest struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Template    template.Template `json:"template" validate:"required"`
}

type TemplateLibraryItem struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type TemplateLibraryDetail struct {
	Id          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Template    template.Template `json:"template"`
	CreatedAt   time.Time         `json:"created_at"`
}
