package content

import "encoding/json"

// Generated is the server-produced result of running a template against
// extracted source material. The client only ever reads it; it is replaced
// wholesale whenever the generator or refiner returns.
type Generated struct {
	Metadata Meta                      `json:"metadata"`
	Sections map[string]SectionContent `json:"sections"`
}

type Meta struct {
	GeneratedAt  string   `json:"generated_at"`
	TemplateName string   `json:"template_name"`
	SourcesUsed  []string `json:"sources_used"`
}

type SectionContent struct {
	Title     string     `json:"title"`
	Content   Body       `json:"content"`
	Citations []Citation `json:"citations"`
	WordCount int        `json:"word_count"`
	Type      string     `json:"type"`
}

// Citation links generated text back to a source excerpt. Only FullCitation
// is guaranteed for display; Source and Location are best-effort parses.
type Citation struct {
	Source       string `json:"source"`
	Location     string `json:"location"`
	FullCitation string `json:"full_citation"`
}

// Body holds section content that is either prose or an ordered list,
// matching the wire format where "content" is a string or a string array.
type Body struct {
	Text  string
	Items []string
}

// IsList reports whether the body carries list items rather than prose.
func (b Body) IsList() bool { return b.Items != nil }

func (b Body) MarshalJSON() ([]byte, error) {
	if b.Items != nil {
		return json.Marshal(b.Items)
	}
	return json.Marshal(b.Text)
}

func (b *Body) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		b.Items = items
		b.Text = ""
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	b.Text = text
	b.Items = nil
	return nil
}

// TextBody wraps prose content.
func TextBody(text string) Body { return Body{Text: text} }

// ListBody wraps ordered list content.
func ListBody(items []string) Body { return Body{Items: items} }
