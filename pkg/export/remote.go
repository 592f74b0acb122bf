package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/template"
)

// ErrNotConfigured is returned when no rendering service URL is set.
var ErrNotConfigured = errors.New("rendering service not configured")

// RemoteRenderer posts the document to an external rendering service and
// streams the produced file back.
type RemoteRenderer struct {
	BaseURL string
	Client  *http.Client
}

var _ Renderer = &RemoteRenderer{}

func NewRemoteRenderer(baseURL string) *RemoteRenderer {
	return &RemoteRenderer{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type renderRequest struct {
	Format   string             `json:"format"`
	Template *template.Template `json:"template"`
	Content  *content.Generated `json:"content"`
}

func (r *RemoteRenderer) Render(ctx context.Context, generated *content.Generated, tpl *template.Template, format string) ([]byte, error) {
	if r.BaseURL == "" {
		return nil, ErrNotConfigured
	}
	if !SupportedFormat(format) {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	body, err := json.Marshal(renderRequest{
		Format:   format,
		Template: tpl,
		Content:  generated,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("renderer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("renderer returned status %d: %s", resp.StatusCode, string(raw))
	}

	return io.ReadAll(resp.Body)
}
