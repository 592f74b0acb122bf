package service

import (
	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/internal/repository/contract"
	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/events"
	"ai-docgen-be/pkg/store"
)

type ISessionService interface {
	GetOrCreate(sessionID string) *store.Session
	Get(sessionID string) (*store.Session, error)
	Describe(sessionID string) (*dto.SessionResponse, error)
	Clear(sessionID string) error
	Stats(sessionID string) (*dto.StatsResponse, error)
	Save(session *store.Session)
}

type sessionService struct {
	repo      contract.SessionRepository
	publisher IPublisherService
	logger    logger.ILogger
}

func NewSessionService(repo contract.SessionRepository, publisher IPublisherService, log logger.ILogger) ISessionService {
	return &sessionService{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

// GetOrCreate returns the session, seeding a fresh one with the default
// template on first touch. Empty ids fall back to the shared default session.
func (s *sessionService) GetOrCreate(sessionID string) *store.Session {
	if sessionID == "" {
		sessionID = store.DefaultSessionID
	}
	if session, found := s.repo.Get(sessionID); found {
		return session
	}

	session := store.NewSession(sessionID)
	s.repo.Save(session)
	s.logger.Info("SessionService", "created session", map[string]interface{}{
		"session_id": sessionID,
	})
	return session
}

// Get looks a session up without creating it. Operations on session state
// (generate, refine, export) go through here so an unknown id is an error
// instead of a silent fresh session.
func (s *sessionService) Get(sessionID string) (*store.Session, error) {
	if sessionID == "" {
		sessionID = store.DefaultSessionID
	}
	session, found := s.repo.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionService) Describe(sessionID string) (*dto.SessionResponse, error) {
	session, found := s.repo.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}

	files := make([]dto.UploadedFileInfo, 0, len(session.Files))
	for _, f := range session.Files {
		files = append(files, dto.UploadedFileInfo{
			Filename: f.Filename,
			Type:     f.Type,
			Preview:  f.ContentPreview,
		})
	}

	resp := &dto.SessionResponse{
		SessionId:   session.ID,
		Files:       files,
		Template:    session.Template,
		HasTemplate: session.Template != nil,
		HasContent:  session.Generated != nil,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
	if session.Template != nil {
		resp.TemplateName = session.Template.Metadata.Name
	}
	return resp, nil
}

// Clear drops everything except the session identity: a cleared session is
// indistinguishable from a brand-new one.
func (s *sessionService) Clear(sessionID string) error {
	if _, found := s.repo.Get(sessionID); !found {
		return ErrSessionNotFound
	}

	s.repo.Save(store.NewSession(sessionID))

	if err := s.publisher.Publish(events.NewSessionEvent(events.TypeSessionCleared, sessionID, nil)); err != nil {
		s.logger.Warn("SessionService", "failed to publish clear event", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	return nil
}

func (s *sessionService) Stats(sessionID string) (*dto.StatsResponse, error) {
	session, found := s.repo.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	if session.Generated == nil {
		return nil, ErrNoContent
	}

	return &dto.StatsResponse{
		Stats:   content.ComputeStats(session.Generated),
		Quality: content.Score(session.Generated),
	}, nil
}

func (s *sessionService) Save(session *store.Session) {
	session.Touch()
	s.repo.Save(session)
}
