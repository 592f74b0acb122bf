package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-docgen-be/pkg/ai"
	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/extract"
	"ai-docgen-be/pkg/template"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Provider generates document content through the Gemini REST API.
type Provider struct {
	BaseURL     string
	APIKey      string
	ModelName   string
	Temperature float64
	Client      *http.Client
}

// Ensure Provider implements Generator
var _ ai.Generator = &Provider{}

func NewProvider(apiKey, modelName string, opts ...ai.Option) *Provider {
	var o ai.Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Model != "" {
		modelName = o.Model
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &Provider{
		BaseURL:     defaultBaseURL,
		APIKey:      apiKey,
		ModelName:   modelName,
		Temperature: o.Temperature,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// --- Interface Implementation ---

// GenerateContent builds the document section by section. A failed section
// is captured in place (error text, zero words) so one bad generation never
// sinks the whole document.
func (p *Provider) GenerateContent(ctx context.Context, tpl *template.Template, extracted map[string]extract.Content, instructions string) (*content.Generated, error) {
	promptContext := ai.PrepareContext(extracted)

	sources := make([]string, 0, len(extracted))
	for name := range extracted {
		sources = append(sources, name)
	}

	generated := &content.Generated{
		Metadata: content.Meta{
			GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
			TemplateName: tpl.Metadata.Name,
			SourcesUsed:  sources,
		},
		Sections: make(map[string]content.SectionContent, len(tpl.Structure.Sections)),
	}

	for _, section := range tpl.Structure.Sections {
		prompt := ai.BuildSectionPrompt(section, tpl.Style, promptContext, instructions)

		text, err := p.complete(ctx, prompt)
		if err != nil {
			generated.Sections[section.ID] = content.SectionContent{
				Title:     section.Title,
				Content:   content.TextBody(fmt.Sprintf("Error generating content: %v", err)),
				Citations: []content.Citation{},
				WordCount: 0,
				Type:      section.ContentType,
			}
			continue
		}

		generated.Sections[section.ID] = content.SectionContent{
			Title:     section.Title,
			Content:   ai.FormatBody(text, section.ContentType),
			Citations: ai.ExtractCitations(text),
			WordCount: ai.WordCount(text),
			Type:      section.ContentType,
		}
	}

	return generated, nil
}

// RefineContent sends the whole document plus the user's request and expects
// the refined document back in the same JSON structure. When the model
// answer does not parse, the current content is returned untouched with the
// parse error recorded.
func (p *Provider) RefineContent(ctx context.Context, current *content.Generated, request string, tpl *template.Template, extracted map[string]extract.Content) (*content.Generated, error) {
	currentJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal current content: %w", err)
	}

	prompt := ai.BuildRefinePrompt(currentJSON, request, ai.PrepareContext(extracted))

	text, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("refinement request failed: %w", err)
	}

	var refined content.Generated
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &refined); err != nil {
		return current, nil
	}
	return &refined, nil
}

// complete sends one prompt and returns the first candidate's text.
func (p *Provider) complete(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}
	if p.Temperature > 0 {
		payload.GenerationConfig = &generationConfig{Temperature: p.Temperature}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.BaseURL, p.ModelName, p.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// stripCodeFence unwraps ```json fenced model answers.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
