package extract

import (
	"context"
	"path/filepath"
	"strings"
)

// Content is the normalized extraction result for one uploaded file.
// Heavy format parsing (PDF, PPTX, audio transcription, ...) is delegated to
// an external processor service; this package only defines the contract and
// the type tagging.
type Content struct {
	Type     string         `json:"type"`
	Filename string         `json:"filename"`
	Segments []Segment      `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Segment is one addressable unit of extracted text: a page, a slide, a
// paragraph or a transcript chunk.
type Segment struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Processor turns a stored upload into extracted content.
type Processor interface {
	Process(ctx context.Context, path, filename string) (Content, error)
}

var supportedTypes = map[string]string{
	".pdf":  "pdf",
	".pptx": "pptx",
	".docx": "docx",
	".xlsx": "xlsx",
	".xls":  "xlsx",
	".png":  "image",
	".jpg":  "image",
	".jpeg": "image",
	".mp3":  "audio",
	".wav":  "audio",
	".mp4":  "video",
	".avi":  "video",
	".txt":  "text",
	".md":   "text",
}

// TypeOf maps a filename extension to its content type tag, or "unknown".
func TypeOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := supportedTypes[ext]; ok {
		return t
	}
	return "unknown"
}

// Supported reports whether the file type has an extraction path.
func Supported(filename string) bool {
	return TypeOf(filename) != "unknown"
}

const previewLimit = 500

// Preview truncates extracted text for the upload response. Presence of a
// preview is how the client tells that processing completed.
func Preview(c Content) string {
	var b strings.Builder
	for _, seg := range c.Segments {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(seg.Text)
		if b.Len() >= previewLimit {
			break
		}
	}
	text := b.String()
	if len(text) > previewLimit {
		return text[:previewLimit] + "..."
	}
	return text
}
