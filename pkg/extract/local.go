package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LocalProcessor is the fallback used when no processor service is
// configured. Plain-text files are read as-is; every other type is recorded
// without content so the upload still registers in the session.
type LocalProcessor struct{}

var _ Processor = LocalProcessor{}

func (LocalProcessor) Process(_ context.Context, path, filename string) (Content, error) {
	fileType := TypeOf(filename)
	if fileType != "text" {
		return Content{
			Type:     fileType,
			Filename: filename,
			Metadata: map[string]any{
				"note": "extraction requires a configured processor service",
			},
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("failed to read upload: %w", err)
	}

	return Content{
		Type:     fileType,
		Filename: filename,
		Segments: []Segment{{Label: "Text", Text: string(data)}},
	}, nil
}

func decodeContent(r io.Reader) (Content, error) {
	var content Content
	if err := json.NewDecoder(r).Decode(&content); err != nil {
		return Content{}, fmt.Errorf("failed to decode extracted content: %w", err)
	}
	return content, nil
}
