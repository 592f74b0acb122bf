package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

// RemoteProcessor delegates extraction to an external multimodal processor
// service over HTTP. The service receives the raw file and answers with
// normalized Content.
type RemoteProcessor struct {
	BaseURL string
	Client  *http.Client
}

var _ Processor = &RemoteProcessor{}

func NewRemoteProcessor(baseURL string) *RemoteProcessor {
	return &RemoteProcessor{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (p *RemoteProcessor) Process(ctx context.Context, path, filename string) (Content, error) {
	file, err := os.Open(path)
	if err != nil {
		return Content{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return Content{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return Content{}, err
	}
	if err := writer.Close(); err != nil {
		return Content{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/process", &body)
	if err != nil {
		return Content{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.Client.Do(req)
	if err != nil {
		return Content{}, fmt.Errorf("processor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return Content{}, fmt.Errorf("processor returned status %d: %s", resp.StatusCode, string(raw))
	}

	content, err := decodeContent(resp.Body)
	if err != nil {
		return Content{}, err
	}
	if content.Type == "" {
		content.Type = TypeOf(filename)
	}
	if content.Filename == "" {
		content.Filename = filename
	}
	return content, nil
}
