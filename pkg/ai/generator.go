package ai

import (
	"context"

	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/extract"
	"ai-docgen-be/pkg/template"
)

// Generator defines the contract for any content generation backend.
type Generator interface {
	// GenerateContent runs the template section by section against the
	// extracted source material and returns the assembled document.
	GenerateContent(ctx context.Context, tpl *template.Template, extracted map[string]extract.Content, instructions string) (*content.Generated, error)

	// RefineContent reworks an existing document according to a free-text
	// refinement request, keeping the same structure.
	RefineContent(ctx context.Context, current *content.Generated, request string, tpl *template.Template, extracted map[string]extract.Content) (*content.Generated, error)
}

// Option allows optional generation parameters.
type Option func(*Options)

type Options struct {
	Temperature float64
	Model       string // override the provider default
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}
