package export

import (
	"context"
	"fmt"

	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/template"
)

// Office-file serialization lives in an external rendering service; this
// package defines the contract and the HTTP delegation.

var contentTypes = map[string]string{
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"pdf":  "application/pdf",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// Renderer turns generated content plus its template into a downloadable
// office document.
type Renderer interface {
	Render(ctx context.Context, generated *content.Generated, tpl *template.Template, format string) ([]byte, error)
}

// SupportedFormat reports whether the export format is one of docx/pdf/pptx.
func SupportedFormat(format string) bool {
	_, ok := contentTypes[format]
	return ok
}

// ContentTypeFor returns the MIME type for a supported format.
func ContentTypeFor(format string) (string, error) {
	ct, ok := contentTypes[format]
	if !ok {
		return "", fmt.Errorf("unsupported format: %s", format)
	}
	return ct, nil
}

// Filename is the fixed download name for exported documents.
func Filename(format string) string {
	return "generated_content." + format
}
