package template

import "time"

func intPtr(v int) *int { return &v }

// Default returns the built-in consulting report template used whenever a
// session has no saved template of its own.
func Default() *Template {
	return &Template{
		Metadata: Metadata{
			Name:        "Default Consulting Report",
			Description: "Standard consulting report template",
			Version:     "1.0",
			CreatedAt:   time.Now(),
		},
		Structure: Structure{
			Sections: []Section{
				{
					ID:           "executive_summary",
					Title:        "Executive Summary",
					Instructions: "Provide a high-level overview of key findings and recommendations",
					ContentType:  ContentTypeText,
					Required:     true,
					MaxLength:    intPtr(500),
					Order:        1,
				},
				{
					ID:           "analysis",
					Title:        "Analysis",
					Instructions: "Provide detailed analysis and insights backed by the source material",
					ContentType:  ContentTypeText,
					Required:     true,
					Order:        2,
				},
				{
					ID:           "recommendations",
					Title:        "Recommendations",
					Instructions: "Present actionable recommendations with supporting evidence",
					ContentType:  ContentTypeList,
					Required:     true,
					Order:        3,
				},
				{
					ID:           "conclusion",
					Title:        "Conclusion",
					Instructions: "Summarize key points and next steps",
					ContentType:  ContentTypeText,
					Required:     true,
					Order:        4,
				},
				{
					ID:           "appendix",
					Title:        "Appendix",
					Instructions: "Include supporting material, data tables and references",
					ContentType:  ContentTypeText,
					Required:     false,
					Order:        5,
				},
			},
		},
		Style: Style{
			Tone:         "professional",
			WritingStyle: "analytical",
			Language:     "en",
			Formality:    "formal",
		},
		Formatting: Formatting{
			FontFamily:  "Arial",
			FontSize:    12,
			LineSpacing: 1.5,
			Margins:     Margins{Top: 1, Bottom: 1, Left: 1, Right: 1},
		},
		OutputFormats: []string{"docx", "pdf", "pptx"},
		CitationStyle: "apa",
	}
}
