package dto

import (
	"time"

	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/template"
)

type SessionResponse struct {
	SessionId    string             `json:"session_id"`
	Files        []UploadedFileInfo `json:"files"`
	Template     *template.Template `json:"template"`
	HasTemplate  bool               `json:"has_template"`
	HasContent   bool               `json:"has_generated_content"`
	TemplateName string             `json:"template_name,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type ClearSessionResponse struct {
	Message string `json:"message"`
}

type StatsResponse struct {
	Stats   content.Stats         `json:"stats"`
	Quality content.QualityReport `json:"quality"`
}

type ExportRequest struct {
	SessionId string `json:"session_id"`
}
