package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-docgen-be/internal/repository/memory"
	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/events"
	"ai-docgen-be/pkg/store"
)

func newSessionService() (ISessionService, *capturePublisher) {
	pub := &capturePublisher{}
	repo := memory.NewSessionRepository(time.Hour)
	return NewSessionService(repo, pub, nopLogger{}), pub
}

func TestGetOrCreateSeedsDefaultTemplate(t *testing.T) {
	svc, _ := newSessionService()

	session := svc.GetOrCreate("demo")
	require.NotNil(t, session)
	require.NotNil(t, session.Template)
	assert.Len(t, session.Template.Structure.Sections, 5)

	again := svc.GetOrCreate("demo")
	assert.Same(t, session, again, "same id should return the cached session")
}

func TestGetOrCreateEmptyIdUsesDefault(t *testing.T) {
	svc, _ := newSessionService()

	session := svc.GetOrCreate("")
	assert.Equal(t, store.DefaultSessionID, session.ID)
}

func TestDescribe(t *testing.T) {
	svc, _ := newSessionService()

	_, err := svc.Describe("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session := svc.GetOrCreate("demo")
	session.Files = append(session.Files, store.UploadedFile{Filename: "a.pdf", Type: "pdf"})
	svc.Save(session)

	res, err := svc.Describe("demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", res.SessionId)
	assert.True(t, res.HasTemplate)
	assert.False(t, res.HasContent)
	assert.Len(t, res.Files, 1)
	require.NotNil(t, res.Template)
	assert.Equal(t, "Default Consulting Report", res.TemplateName)
}

func TestClearPreservesOnlyIdentity(t *testing.T) {
	svc, pub := newSessionService()

	session := svc.GetOrCreate("demo")
	session.Generated = &content.Generated{
		Sections: map[string]content.SectionContent{"s": {WordCount: 10}},
	}
	session.Files = append(session.Files, store.UploadedFile{Filename: "a.pdf"})
	svc.Save(session)

	require.NoError(t, svc.Clear("demo"))

	fresh := svc.GetOrCreate("demo")
	assert.Equal(t, "demo", fresh.ID)
	assert.Nil(t, fresh.Generated)
	assert.Empty(t, fresh.Files)
	assert.Len(t, fresh.Template.Structure.Sections, 5)
	assert.Equal(t, events.TypeSessionCleared, pub.lastType())
}

func TestClearMissingSession(t *testing.T) {
	svc, _ := newSessionService()
	assert.ErrorIs(t, svc.Clear("missing"), ErrSessionNotFound)
}

func TestStats(t *testing.T) {
	svc, _ := newSessionService()

	_, err := svc.Stats("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session := svc.GetOrCreate("demo")
	_, err = svc.Stats("demo")
	assert.ErrorIs(t, err, ErrNoContent)

	session.Generated = &content.Generated{
		Metadata: content.Meta{SourcesUsed: []string{"a.pdf"}},
		Sections: map[string]content.SectionContent{
			"s1": {WordCount: 100, Citations: []content.Citation{{FullCitation: "a.pdf: p1"}}},
			"s2": {WordCount: 250},
		},
	}
	svc.Save(session)

	res, err := svc.Stats("demo")
	require.NoError(t, err)
	assert.Equal(t, 350, res.Stats.TotalWords)
	assert.Equal(t, 175, res.Stats.AvgWordsPerSection)
	assert.Equal(t, 1, res.Stats.TotalCitations)
	assert.NotEmpty(t, res.Quality.Grade)
}
