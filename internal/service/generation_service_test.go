package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-docgen-be/internal/repository/memory"
	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/events"
	"ai-docgen-be/pkg/extract"
	"ai-docgen-be/pkg/template"
)

type fakeGenerator struct {
	generated *content.Generated
	refined   *content.Generated
	err       error

	lastInstructions string
	lastRequest      string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, tpl *template.Template, _ map[string]extract.Content, instructions string) (*content.Generated, error) {
	f.lastInstructions = instructions
	if f.err != nil {
		return nil, f.err
	}
	return f.generated, nil
}

func (f *fakeGenerator) RefineContent(_ context.Context, _ *content.Generated, request string, _ *template.Template, _ map[string]extract.Content) (*content.Generated, error) {
	f.lastRequest = request
	if f.err != nil {
		return nil, f.err
	}
	return f.refined, nil
}

func newGenerationService(gen *fakeGenerator) (IGenerationService, ISessionService, *capturePublisher) {
	pub := &capturePublisher{}
	sessions := NewSessionService(memory.NewSessionRepository(time.Hour), pub, nopLogger{})
	return NewGenerationService(sessions, gen, pub, nopLogger{}), sessions, pub
}

func TestGenerateStoresContent(t *testing.T) {
	gen := &fakeGenerator{generated: &content.Generated{
		Sections: map[string]content.SectionContent{"s": {WordCount: 42}},
	}}
	svc, sessions, pub := newGenerationService(gen)
	sessions.GetOrCreate("demo")

	got, err := svc.Generate(context.Background(), "demo", "short and sharp")
	require.NoError(t, err)
	assert.Equal(t, "short and sharp", gen.lastInstructions)
	assert.Len(t, got.Sections, 1)
	assert.Equal(t, events.TypeContentGenerated, pub.lastType())

	session := sessions.GetOrCreate("demo")
	assert.NotNil(t, session.Generated)
}

func TestGenerateFailureLeavesSessionUntouched(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc, sessions, pub := newGenerationService(gen)
	sessions.GetOrCreate("demo")

	_, err := svc.Generate(context.Background(), "demo", "")
	require.Error(t, err)

	session := sessions.GetOrCreate("demo")
	assert.Nil(t, session.Generated)
	assert.Empty(t, pub.lastType())
}

func TestGenerateUnknownSession(t *testing.T) {
	gen := &fakeGenerator{generated: &content.Generated{}}
	svc, sessions, pub := newGenerationService(gen)

	_, err := svc.Generate(context.Background(), "never-created", "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, pub.lastType())

	// the failed call must not have created the session as a side effect
	_, err = sessions.Get("never-created")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRefineUnknownSession(t *testing.T) {
	gen := &fakeGenerator{refined: &content.Generated{}}
	svc, _, _ := newGenerationService(gen)

	_, err := svc.Refine(context.Background(), "never-created", "shorter")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRefineRequiresContent(t *testing.T) {
	gen := &fakeGenerator{refined: &content.Generated{}}
	svc, sessions, _ := newGenerationService(gen)
	sessions.GetOrCreate("demo")

	_, err := svc.Refine(context.Background(), "demo", "make it shorter")
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestRefineReplacesContent(t *testing.T) {
	gen := &fakeGenerator{
		generated: &content.Generated{Sections: map[string]content.SectionContent{"s": {WordCount: 100}}},
		refined:   &content.Generated{Sections: map[string]content.SectionContent{"s": {WordCount: 60}}},
	}
	svc, sessions, pub := newGenerationService(gen)
	sessions.GetOrCreate("demo")

	_, err := svc.Generate(context.Background(), "demo", "")
	require.NoError(t, err)

	got, err := svc.Refine(context.Background(), "demo", "trim it")
	require.NoError(t, err)
	assert.Equal(t, "trim it", gen.lastRequest)
	assert.Equal(t, 60, got.Sections["s"].WordCount)
	assert.Equal(t, events.TypeContentRefined, pub.lastType())

	session := sessions.GetOrCreate("demo")
	assert.Equal(t, 60, session.Generated.Sections["s"].WordCount)
}
