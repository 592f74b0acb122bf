package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = errors.New("section title must not be empty")
	ErrSectionNotFound = errors.New("section not found")
	ErrBadDirection    = errors.New("move direction must be 'up' or 'down'")
)

// Direction controls which neighbour a section swaps with.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Content types a section can request from the generator.
const (
	ContentTypeText = "text"
	ContentTypeList = "list"
)

// Template is the user-editable blueprint driving content generation:
// named metadata, an ordered list of sections and the writing style the
// generator should follow.
type Template struct {
	Metadata      Metadata   `json:"metadata"`
	Structure     Structure  `json:"structure"`
	Style         Style      `json:"style"`
	Formatting    Formatting `json:"formatting"`
	OutputFormats []string   `json:"output_formats"`
	CitationStyle string     `json:"citation_style"`
}

type Metadata struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Version     string    `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
}

type Structure struct {
	Sections []Section `json:"sections"`
}

type Style struct {
	Tone         string `json:"tone"`          // professional | casual | formal | technical
	WritingStyle string `json:"writing_style"` // analytical | narrative | persuasive | expository
	Language     string `json:"language"`
	Formality    string `json:"formality"` // formal | semi-formal | informal
}

type Formatting struct {
	FontFamily  string  `json:"font_family"`
	FontSize    int     `json:"font_size"`
	LineSpacing float64 `json:"line_spacing"`
	Margins     Margins `json:"margins"`
}

type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Section is one ordered unit of the template. Order is always derived from
// slice position (1-based) and recomputed after every structural mutation;
// the ID stays stable across reorders.
type Section struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
	ContentType  string `json:"content_type"`
	Required     bool   `json:"required"`
	MaxLength    *int   `json:"max_length,omitempty"` // word cap, nil = unlimited
	Order        int    `json:"order"`
}

// SectionDraft is the user-supplied input for a new section. ID and Order
// are assigned by AddSection.
type SectionDraft struct {
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
	ContentType  string `json:"content_type"`
	Required     bool   `json:"required"`
	MaxLength    *int   `json:"max_length,omitempty"`
}

// SectionPatch carries a partial section update. Nil fields are left
// untouched; Order is only changed when the patch sets it explicitly.
type SectionPatch struct {
	Title        *string `json:"title,omitempty"`
	Instructions *string `json:"instructions,omitempty"`
	ContentType  *string `json:"content_type,omitempty"`
	Required     *bool   `json:"required,omitempty"`
	MaxLength    *int    `json:"max_length,omitempty"`
	Order        *int    `json:"order,omitempty"`
}

type StylePatch struct {
	Tone         *string `json:"tone,omitempty"`
	WritingStyle *string `json:"writing_style,omitempty"`
	Language     *string `json:"language,omitempty"`
	Formality    *string `json:"formality,omitempty"`
}

type MetadataPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Version     *string `json:"version,omitempty"`
}

// AddSection validates the draft, assigns a fresh id and the next order
// number, and appends the section. A blank or whitespace-only title is
// rejected and the template is left unchanged.
func (t *Template) AddSection(draft SectionDraft) (*Section, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	contentType := draft.ContentType
	if contentType == "" {
		contentType = ContentTypeText
	}

	section := Section{
		ID:           uuid.NewString(),
		Title:        title,
		Instructions: draft.Instructions,
		ContentType:  contentType,
		Required:     draft.Required,
		MaxLength:    draft.MaxLength,
		Order:        len(t.Structure.Sections) + 1,
	}
	t.Structure.Sections = append(t.Structure.Sections, section)
	t.renumber()

	return &t.Structure.Sections[len(t.Structure.Sections)-1], nil
}

// UpdateSection merges the patch into the section matching id.
func (t *Template) UpdateSection(id string, patch SectionPatch) error {
	idx := t.indexOf(id)
	if idx < 0 {
		return ErrSectionNotFound
	}

	section := &t.Structure.Sections[idx]
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		section.Title = title
	}
	if patch.Instructions != nil {
		section.Instructions = *patch.Instructions
	}
	if patch.ContentType != nil {
		section.ContentType = *patch.ContentType
	}
	if patch.Required != nil {
		section.Required = *patch.Required
	}
	if patch.MaxLength != nil {
		section.MaxLength = patch.MaxLength
	}
	if patch.Order != nil {
		section.Order = *patch.Order
	}
	return nil
}

// RemoveSection deletes the section matching id and renumbers the rest.
func (t *Template) RemoveSection(id string) error {
	idx := t.indexOf(id)
	if idx < 0 {
		return ErrSectionNotFound
	}
	t.Structure.Sections = append(t.Structure.Sections[:idx], t.Structure.Sections[idx+1:]...)
	t.renumber()
	return nil
}

// MoveSection swaps the section with its predecessor (up) or successor
// (down). Moving the first section up or the last one down is a no-op.
// Orders are renumbered either way.
func (t *Template) MoveSection(id string, dir Direction) error {
	if dir != DirectionUp && dir != DirectionDown {
		return ErrBadDirection
	}

	idx := t.indexOf(id)
	if idx < 0 {
		return ErrSectionNotFound
	}

	sections := t.Structure.Sections
	switch {
	case dir == DirectionUp && idx > 0:
		sections[idx-1], sections[idx] = sections[idx], sections[idx-1]
	case dir == DirectionDown && idx < len(sections)-1:
		sections[idx], sections[idx+1] = sections[idx+1], sections[idx]
	}
	t.renumber()
	return nil
}

// Reorder rebuilds the section sequence to match the given id order.
// Unknown ids are skipped; sections not named keep out of the result,
// mirroring an explicit full reorder from the editor.
func (t *Template) Reorder(ids []string) {
	byID := make(map[string]Section, len(t.Structure.Sections))
	for _, s := range t.Structure.Sections {
		byID[s.ID] = s
	}

	reordered := make([]Section, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			reordered = append(reordered, s)
		}
	}
	t.Structure.Sections = reordered
	t.renumber()
}

// UpdateStyle shallow-merges the patch into the style settings.
func (t *Template) UpdateStyle(patch StylePatch) {
	if patch.Tone != nil {
		t.Style.Tone = *patch.Tone
	}
	if patch.WritingStyle != nil {
		t.Style.WritingStyle = *patch.WritingStyle
	}
	if patch.Language != nil {
		t.Style.Language = *patch.Language
	}
	if patch.Formality != nil {
		t.Style.Formality = *patch.Formality
	}
}

// UpdateMetadata shallow-merges the patch into the template metadata.
func (t *Template) UpdateMetadata(patch MetadataPatch) {
	if patch.Name != nil {
		t.Metadata.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Metadata.Description = *patch.Description
	}
	if patch.Version != nil {
		t.Metadata.Version = *patch.Version
	}
}

// SectionByID returns the section matching id, or nil.
func (t *Template) SectionByID(id string) *Section {
	idx := t.indexOf(id)
	if idx < 0 {
		return nil
	}
	return &t.Structure.Sections[idx]
}

// RequiredSections returns the sections flagged as required, in order.
func (t *Template) RequiredSections() []Section {
	var required []Section
	for _, s := range t.Structure.Sections {
		if s.Required {
			required = append(required, s)
		}
	}
	return required
}

// Clone returns a deep copy, safe to mutate independently.
func (t *Template) Clone() *Template {
	clone := *t
	clone.Structure.Sections = make([]Section, len(t.Structure.Sections))
	copy(clone.Structure.Sections, t.Structure.Sections)
	for i, s := range clone.Structure.Sections {
		if s.MaxLength != nil {
			v := *s.MaxLength
			clone.Structure.Sections[i].MaxLength = &v
		}
	}
	clone.OutputFormats = append([]string(nil), t.OutputFormats...)
	return &clone
}

// Validate checks the structural invariants: a named template with at least
// one section, unique non-empty section ids and titles, and contiguous
// 1-based orders.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Metadata.Name) == "" {
		return errors.New("template must have a name")
	}
	if len(t.Structure.Sections) == 0 {
		return errors.New("template must have at least one section")
	}

	seen := make(map[string]struct{}, len(t.Structure.Sections))
	for i, s := range t.Structure.Sections {
		if s.ID == "" {
			return fmt.Errorf("section %d is missing an id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate section id: %s", s.ID)
		}
		seen[s.ID] = struct{}{}

		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("section %s has an empty title", s.ID)
		}
		if s.Order != i+1 {
			return fmt.Errorf("section %s has order %d, expected %d", s.ID, s.Order, i+1)
		}
		if s.MaxLength != nil && *s.MaxLength <= 0 {
			return fmt.Errorf("section %s has a non-positive max_length", s.ID)
		}
	}

	if err := t.Style.validate(); err != nil {
		return err
	}
	return nil
}

func (s Style) validate() error {
	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"tone", s.Tone, []string{"professional", "casual", "formal", "technical"}},
		{"writing_style", s.WritingStyle, []string{"analytical", "narrative", "persuasive", "expository"}},
		{"formality", s.Formality, []string{"formal", "semi-formal", "informal"}},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		ok := false
		for _, a := range c.allowed {
			if c.value == a {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("invalid %s: %q", c.field, c.value)
		}
	}
	return nil
}

// ExportJSON serializes the template for download or storage.
func (t *Template) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ImportJSON parses and validates a template previously exported as JSON.
func ImportJSON(data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Template) indexOf(id string) int {
	for i, s := range t.Structure.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// renumber derives every order from slice position. Structural mutations
// always run a full pass rather than incremental arithmetic.
func (t *Template) renumber() {
	for i := range t.Structure.Sections {
		t.Structure.Sections[i].Order = i + 1
	}
}
