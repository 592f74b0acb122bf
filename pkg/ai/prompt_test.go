package ai

import (
	"strings"
	"testing"

	"ai-docgen-be/pkg/extract"
	"ai-docgen-be/pkg/template"
)

func TestPrepareContext(t *testing.T) {
	extracted := map[string]extract.Content{
		"zeta.pdf": {
			Type:     "pdf",
			Filename: "zeta.pdf",
			Segments: []extract.Segment{{Label: "Page 1", Text: "pdf text"}},
		},
		"alpha.txt": {
			Type:     "text",
			Filename: "alpha.txt",
			Segments: []extract.Segment{{Label: "Text", Text: "txt body"}},
		},
	}

	ctx := PrepareContext(extracted)

	// Stable name order: alpha before zeta regardless of map iteration
	alphaIdx := strings.Index(ctx, "alpha.txt")
	zetaIdx := strings.Index(ctx, "zeta.pdf")
	if alphaIdx < 0 || zetaIdx < 0 {
		t.Fatalf("context missing files: %q", ctx)
	}
	if alphaIdx > zetaIdx {
		t.Error("files not emitted in name order")
	}
	if !strings.Contains(ctx, "(PDF)") {
		t.Error("type tag not uppercased in header")
	}
	if !strings.Contains(ctx, "Page 1: pdf text") {
		t.Error("segment label missing")
	}
}

func TestPrepareContextTruncatesLongSegments(t *testing.T) {
	long := strings.Repeat("x", 600)
	ctx := PrepareContext(map[string]extract.Content{
		"big.txt": {Type: "text", Segments: []extract.Segment{{Text: long}}},
	})

	if strings.Contains(ctx, long) {
		t.Error("segment should be truncated")
	}
	if !strings.Contains(ctx, "...") {
		t.Error("truncation marker missing")
	}
}

func TestBuildSectionPrompt(t *testing.T) {
	maxLen := 300
	section := template.Section{
		Title:        "Executive Summary",
		Instructions: "Summarize the findings",
		ContentType:  template.ContentTypeList,
		MaxLength:    &maxLen,
	}
	style := template.Style{Tone: "professional", WritingStyle: "analytical", Formality: "formal"}

	prompt := BuildSectionPrompt(section, style, "--- a.pdf ---", "focus on revenue")

	for _, want := range []string{
		"Executive Summary",
		"Summarize the findings",
		"under 300 words",
		"focus on revenue",
		"bulleted list",
		"[Source: filename, page/slide X]",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildSectionPromptTextFooter(t *testing.T) {
	section := template.Section{Title: "Analysis", ContentType: template.ContentTypeText}
	prompt := BuildSectionPrompt(section, template.Style{}, "", "")

	if !strings.Contains(prompt, "well-structured paragraphs") {
		t.Error("text sections should ask for paragraphs")
	}
	if strings.Contains(prompt, "Tone:") {
		t.Error("empty style should not emit a tone line")
	}
}
