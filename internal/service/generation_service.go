package service

import (
	"context"

	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/pkg/ai"
	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/events"
)

type IGenerationService interface {
	Generate(ctx context.Context, sessionID, instructions string) (*content.Generated, error)
	Refine(ctx context.Context, sessionID, request string) (*content.Generated, error)
}

type generationService struct {
	sessions  ISessionService
	generator ai.Generator
	publisher IPublisherService
	logger    logger.ILogger
}

func NewGenerationService(sessions ISessionService, generator ai.Generator, publisher IPublisherService, log logger.ILogger) IGenerationService {
	return &generationService{
		sessions:  sessions,
		generator: generator,
		publisher: publisher,
		logger:    log,
	}
}

// Generate runs the working template against the session's extracted
// sources. The session must already exist; uploading or saving a template
// is what brings one into being.
func (s *generationService) Generate(ctx context.Context, sessionID, instructions string) (*content.Generated, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Template == nil {
		return nil, ErrNoTemplate
	}

	s.logger.Info("GenerationService", "generating content", map[string]interface{}{
		"session_id": session.ID,
		"sections":   len(session.Template.Structure.Sections),
		"sources":    len(session.ExtractedContent),
	})

	generated, err := s.generator.GenerateContent(ctx, session.Template, session.ExtractedContent, instructions)
	if err != nil {
		return nil, err
	}

	session.Generated = generated
	s.sessions.Save(session)

	if err := s.publisher.Publish(events.NewSessionEvent(events.TypeContentGenerated, session.ID, map[string]interface{}{
		"section_count": len(generated.Sections),
	})); err != nil {
		s.logger.Warn("GenerationService", "failed to publish generate event", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}

	return generated, nil
}

// Refine reworks the already generated document. Without a session or
// content there is nothing to refine.
func (s *generationService) Refine(ctx context.Context, sessionID, request string) (*content.Generated, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Generated == nil {
		return nil, ErrNoContent
	}

	refined, err := s.generator.RefineContent(ctx, session.Generated, request, session.Template, session.ExtractedContent)
	if err != nil {
		return nil, err
	}

	session.Generated = refined
	s.sessions.Save(session)

	if err := s.publisher.Publish(events.NewSessionEvent(events.TypeContentRefined, session.ID, nil)); err != nil {
		s.logger.Warn("GenerationService", "failed to publish refine event", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}

	return refined, nil
}
