package docclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/extract"
	"ai-docgen-be/pkg/template"
)

// Client is the stateless transport to the document service. Every call is
// fire-once: no retries, no backoff. Failures surface as errors carrying the
// server's message when one was provided.
type Client struct {
	BaseURL   string
	SessionID string
	HTTP      *http.Client
}

func NewClient(baseURL, sessionID string) *Client {
	return &Client{
		BaseURL:   baseURL,
		SessionID: sessionID,
		HTTP: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type templateEnvelope struct {
	Template *template.Template `json:"template"`
}

type contentEnvelope struct {
	Content *content.Generated `json:"content"`
}

type uploadEnvelope struct {
	Message string `json:"message"`
	Files   []struct {
		Filename string `json:"filename"`
		Type     string `json:"type"`
		Preview  string `json:"content_preview"`
	} `json:"files"`
	ExtractedContent map[string]extract.Content `json:"extracted_content"`
}

// UploadResult is the per-file outcome of an upload call.
type UploadResult struct {
	Filename string
	Type     string
	Preview  string
}

// StatsResult bundles the server-computed stats and quality report.
type StatsResult struct {
	Stats   content.Stats         `json:"stats"`
	Quality content.QualityReport `json:"quality"`
}

func (c *Client) LoadTemplate(ctx context.Context) (*template.Template, error) {
	var env templateEnvelope
	url := fmt.Sprintf("%s/api/template?session_id=%s", c.BaseURL, c.SessionID)
	if err := c.getJSON(ctx, url, &env, "Failed to load template"); err != nil {
		return nil, err
	}
	if env.Template == nil {
		return nil, fmt.Errorf("Failed to load template")
	}
	return env.Template, nil
}

func (c *Client) SaveTemplate(ctx context.Context, tpl *template.Template) (*template.Template, error) {
	body, err := json.Marshal(templateEnvelope{Template: tpl})
	if err != nil {
		return nil, err
	}

	var env templateEnvelope
	url := fmt.Sprintf("%s/api/template?session_id=%s", c.BaseURL, c.SessionID)
	if err := c.sendJSON(ctx, http.MethodPut, url, body, &env, "Failed to save template"); err != nil {
		return nil, err
	}
	if env.Template == nil {
		return tpl, nil
	}
	return env.Template, nil
}

// Upload posts named file payloads as multipart form data. The second return
// value is the session's full extracted-content map as the server now holds
// it, not just the delta for this batch.
func (c *Client) Upload(ctx context.Context, files map[string][]byte) ([]UploadResult, map[string]extract.Content, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("session_id", c.SessionID); err != nil {
		return nil, nil, err
	}
	for name, data := range files {
		part, err := w.CreateFormFile("files", name)
		if err != nil {
			return nil, nil, err
		}
		if _, err := part.Write(data); err != nil {
			return nil, nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/upload", &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to upload files")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, serverError(resp.Body, "Failed to upload files")
	}

	var env uploadEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, nil, fmt.Errorf("Failed to upload files")
	}

	results := make([]UploadResult, 0, len(env.Files))
	for _, f := range env.Files {
		results = append(results, UploadResult{Filename: f.Filename, Type: f.Type, Preview: f.Preview})
	}
	return results, env.ExtractedContent, nil
}

func (c *Client) Generate(ctx context.Context, instructions string) (*content.Generated, error) {
	body, err := json.Marshal(map[string]string{
		"session_id":   c.SessionID,
		"instructions": instructions,
	})
	if err != nil {
		return nil, err
	}

	var env contentEnvelope
	if err := c.sendJSON(ctx, http.MethodPost, c.BaseURL+"/api/generate", body, &env, "Failed to generate content"); err != nil {
		return nil, err
	}
	if env.Content == nil {
		return nil, fmt.Errorf("Failed to generate content")
	}
	return env.Content, nil
}

func (c *Client) Refine(ctx context.Context, request string) (*content.Generated, error) {
	body, err := json.Marshal(map[string]string{
		"session_id": c.SessionID,
		"request":    request,
	})
	if err != nil {
		return nil, err
	}

	var env contentEnvelope
	if err := c.sendJSON(ctx, http.MethodPost, c.BaseURL+"/api/refine", body, &env, "Failed to refine content"); err != nil {
		return nil, err
	}
	if env.Content == nil {
		return nil, fmt.Errorf("Failed to refine content")
	}
	return env.Content, nil
}

// Export downloads the rendered document for the given format.
func (c *Client) Export(ctx context.Context, format string) ([]byte, string, error) {
	body, err := json.Marshal(map[string]string{"session_id": c.SessionID})
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/export/"+format, bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("Failed to export document")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", serverError(resp.Body, "Failed to export document")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("Failed to export document")
	}
	return data, "generated_content." + format, nil
}

func (c *Client) Stats(ctx context.Context) (*StatsResult, error) {
	var res StatsResult
	url := fmt.Sprintf("%s/api/stats?session_id=%s", c.BaseURL, c.SessionID)
	if err := c.getJSON(ctx, url, &res, "Failed to load stats"); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ClearSession(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/api/session/"+c.SessionID, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("Failed to clear session")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp.Body, "Failed to clear session")
	}
	return nil
}

// Health reports whether the service answers its health endpoint.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}, fallback string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s", fallback)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp.Body, fallback)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s", fallback)
	}
	return nil
}

func (c *Client) sendJSON(ctx context.Context, method, url string, body []byte, out interface{}, fallback string) error {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s", fallback)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp.Body, fallback)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s", fallback)
		}
	}
	return nil
}

// serverError extracts the server's human-readable message when present,
// falling back to a fixed string otherwise.
func serverError(r io.Reader, fallback string) error {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			return fmt.Errorf("%s", payload.Error)
		}
		if payload.Message != "" {
			return fmt.Errorf("%s", payload.Message)
		}
	}
	return fmt.Errorf("%s", fallback)
}
