package store

import (
	"time"

	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/extract"
	"ai-docgen-be/pkg/template"
)

// DefaultSessionID keys the single anonymous working session; clients that
// never pick an identifier share this one.
const DefaultSessionID = "default"

// Session is the server-side state for one working document. The template,
// file list and content maps are replaced wholesale on mutation; partial
// patches never come from the wire.
type Session struct {
	ID               string                     `json:"id"`
	Files            []UploadedFile             `json:"files"`
	Template         *template.Template         `json:"template"`
	ExtractedContent map[string]extract.Content `json:"extracted_content"`
	Generated        *content.Generated         `json:"generated_content,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// UploadedFile records one stored upload.
type UploadedFile struct {
	Filename       string `json:"filename"`
	Path           string `json:"path,omitempty"`
	Type           string `json:"type"`
	ContentPreview string `json:"content_preview,omitempty"`
}

// NewSession seeds a session with the default template and empty resources.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:               id,
		Files:            []UploadedFile{},
		Template:         template.Default(),
		ExtractedContent: map[string]extract.Content{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Touch bumps the modification timestamp.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now()
}
