package ai

import (
	"regexp"
	"strings"

	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/template"
)

var citationPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// ExtractCitations pulls bracketed citations out of generated text. Only
// matches carrying a "source: location" shape are kept.
func ExtractCitations(text string) []content.Citation {
	citations := []content.Citation{}
	for _, match := range citationPattern.FindAllStringSubmatch(text, -1) {
		inner := match[1]
		if !strings.Contains(inner, ":") {
			continue
		}
		parts := strings.SplitN(inner, ":", 2)
		citations = append(citations, content.Citation{
			Source:       strings.TrimSpace(parts[0]),
			Location:     strings.TrimSpace(parts[1]),
			FullCitation: inner,
		})
	}
	return citations
}

// FormatBody shapes raw generated text according to the section content
// type. List sections have their bullet or numbered lines parsed out; when
// no list markers are found the whole text becomes a single item.
func FormatBody(text, contentType string) content.Body {
	if contentType != template.ContentTypeList {
		return content.TextBody(text)
	}

	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "•"), strings.HasPrefix(line, "*"):
			items = append(items, strings.TrimSpace(strings.TrimLeft(line, "-•*")))
		case line[0] >= '0' && line[0] <= '9' && strings.Contains(line, "."):
			parts := strings.SplitN(line, ".", 2)
			items = append(items, strings.TrimSpace(parts[1]))
		}
	}
	if len(items) == 0 {
		items = []string{text}
	}
	return content.ListBody(items)
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
