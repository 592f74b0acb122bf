package ai

import (
	"fmt"
	"sort"
	"strings"

	"ai-docgen-be/pkg/extract"
	"ai-docgen-be/pkg/template"
)

const segmentTextLimit = 500

// PrepareContext flattens the extracted content of every source file into a
// single prompt context block. Files are emitted in name order so the prompt
// is stable across runs.
func PrepareContext(extracted map[string]extract.Content) string {
	filenames := make([]string, 0, len(extracted))
	for name := range extracted {
		filenames = append(filenames, name)
	}
	sort.Strings(filenames)

	var b strings.Builder
	for _, name := range filenames {
		c := extracted[name]
		fmt.Fprintf(&b, "\n--- %s (%s) ---\n", name, strings.ToUpper(c.Type))
		for _, seg := range c.Segments {
			text := seg.Text
			if len(text) > segmentTextLimit {
				text = text[:segmentTextLimit] + "..."
			}
			if seg.Label != "" {
				fmt.Fprintf(&b, "%s: %s\n", seg.Label, text)
			} else {
				fmt.Fprintf(&b, "%s\n", text)
			}
		}
	}
	return b.String()
}

// BuildSectionPrompt assembles the generation prompt for one template
// section.
func BuildSectionPrompt(section template.Section, style template.Style, context, instructions string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a professional consultant creating a %s section for a strategic analysis document.\n\n", section.Title)
	fmt.Fprintf(&b, "Section Instructions: %s\n\n", section.Instructions)
	fmt.Fprintf(&b, "Content Type: %s\n\n", section.ContentType)
	if style.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s. Writing style: %s. Formality: %s.\n\n", style.Tone, style.WritingStyle, style.Formality)
	}
	fmt.Fprintf(&b, "Available Source Material:\n%s\n\n", context)

	b.WriteString("Requirements:\n")
	b.WriteString("1. Write in a professional, analytical tone\n")
	b.WriteString("2. Base all statements on evidence from the source material\n")
	b.WriteString("3. Include proper citations in format [Source: filename, page/slide X]\n")
	b.WriteString("4. Make content actionable and insightful\n")
	b.WriteString("5. Follow the specified content type format\n")

	if section.MaxLength != nil {
		fmt.Fprintf(&b, "6. Keep the section under %d words\n", *section.MaxLength)
	}

	if instructions != "" {
		fmt.Fprintf(&b, "\nAdditional Instructions: %s\n", instructions)
	}

	switch section.ContentType {
	case template.ContentTypeList:
		b.WriteString("\nFormat as a bulleted list with clear, actionable items.")
	case template.ContentTypeText:
		b.WriteString("\nFormat as well-structured paragraphs with clear topic sentences.")
	}

	b.WriteString("\nGenerate the content now:")
	return b.String()
}

// BuildRefinePrompt assembles the prompt for a conversational refinement
// pass over already generated content.
func BuildRefinePrompt(currentJSON []byte, request, context string) string {
	var b strings.Builder

	b.WriteString("You are refining a consulting document. Here is the current content:\n\n")
	b.Write(currentJSON)
	fmt.Fprintf(&b, "\n\nUser's refinement request: %s\n\n", request)
	fmt.Fprintf(&b, "Available source context:\n%s\n\n", context)
	b.WriteString("Please refine the content according to the user's request while maintaining:\n")
	b.WriteString("1. Professional tone and structure\n")
	b.WriteString("2. Evidence-backed statements with proper citations\n")
	b.WriteString("3. Consistency with the template structure\n")
	b.WriteString("4. Clear, actionable insights\n\n")
	b.WriteString("Return the refined content in the same JSON structure, with no surrounding prose or code fences.")
	return b.String()
}
