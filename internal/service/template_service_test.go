package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/repository/memory"
	"ai-docgen-be/pkg/events"
	"ai-docgen-be/pkg/template"
)

func newTemplateService() (ITemplateService, *capturePublisher) {
	pub := &capturePublisher{}
	sessions := NewSessionService(memory.NewSessionRepository(time.Hour), pub, nopLogger{})
	return NewTemplateService(sessions, memory.NewTemplateRepository(), pub, nopLogger{}), pub
}

func TestGetTemplateFallsBackToDefault(t *testing.T) {
	svc, _ := newTemplateService()

	tpl, err := svc.GetTemplate("demo")
	require.NoError(t, err)
	assert.Equal(t, "Default Consulting Report", tpl.Metadata.Name)
	assert.Len(t, tpl.Structure.Sections, 5)
}

func TestSaveTemplateReplacesAndPublishes(t *testing.T) {
	svc, pub := newTemplateService()

	tpl := template.Default()
	_, err := tpl.AddSection(template.SectionDraft{Title: "Risks", ContentType: template.ContentTypeList})
	require.NoError(t, err)

	saved, err := svc.SaveTemplate("demo", *tpl)
	require.NoError(t, err)
	assert.Len(t, saved.Structure.Sections, 6)
	assert.Equal(t, events.TypeTemplateUpdated, pub.lastType())

	// The stored copy comes back on the next read
	got, err := svc.GetTemplate("demo")
	require.NoError(t, err)
	assert.Len(t, got.Structure.Sections, 6)
}

func TestSaveTemplateRejectsInvalid(t *testing.T) {
	svc, pub := newTemplateService()

	tpl := template.Default()
	tpl.Structure.Sections[0].Order = 99

	_, err := svc.SaveTemplate("demo", *tpl)
	require.Error(t, err)
	assert.Empty(t, pub.lastType(), "rejected save must not publish")

	// Session keeps the previous template
	got, err := svc.GetTemplate("demo")
	require.NoError(t, err)
	assert.NoError(t, got.Validate())
}

func TestTemplateLibraryRoundTrip(t *testing.T) {
	svc, _ := newTemplateService()
	ctx := context.Background()

	item, err := svc.SaveToLibrary(ctx, dto.SaveTemplateLibraryRequest{
		Name:        "Quarterly Review",
		Description: "Board pack layout",
		Template:    *template.Default(),
	})
	require.NoError(t, err)

	items, err := svc.ListLibrary(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Quarterly Review", items[0].Name)

	detail, err := svc.GetFromLibrary(ctx, item.Id)
	require.NoError(t, err)
	assert.Len(t, detail.Template.Structure.Sections, 5)
	assert.NoError(t, detail.Template.Validate())

	// Update in place: new name, one extra section
	revised := *template.Default()
	_, err = revised.AddSection(template.SectionDraft{Title: "Risks", ContentType: template.ContentTypeList})
	require.NoError(t, err)

	updated, err := svc.UpdateInLibrary(ctx, item.Id, dto.SaveTemplateLibraryRequest{
		Name:        "Quarterly Review v2",
		Description: "Board pack layout",
		Template:    revised,
	})
	require.NoError(t, err)
	assert.Equal(t, item.Id, updated.Id)
	assert.Equal(t, "Quarterly Review v2", updated.Name)

	detail, err = svc.GetFromLibrary(ctx, item.Id)
	require.NoError(t, err)
	assert.Len(t, detail.Template.Structure.Sections, 6)

	require.NoError(t, svc.DeleteFromLibrary(ctx, item.Id))
	_, err = svc.GetFromLibrary(ctx, item.Id)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestDeleteFromLibraryMissing(t *testing.T) {
	svc, _ := newTemplateService()
	err := svc.DeleteFromLibrary(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestUpdateInLibraryMissing(t *testing.T) {
	svc, _ := newTemplateService()
	_, err := svc.UpdateInLibrary(context.Background(), uuid.New(), dto.SaveTemplateLibraryRequest{
		Name:     "Ghost",
		Template: *template.Default(),
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
