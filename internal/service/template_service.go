package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/model"
	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/internal/repository/contract"
	"ai-docgen-be/pkg/events"
	"ai-docgen-be/pkg/template"
)

type ITemplateService interface {
	GetTemplate(sessionID string) (*template.Template, error)
	SaveTemplate(sessionID string, tpl template.Template) (*template.Template, error)

	SaveToLibrary(ctx context.Context, req dto.SaveTemplateLibraryRequest) (*dto.TemplateLibraryItem, error)
	ListLibrary(ctx context.Context) ([]dto.TemplateLibraryItem, error)
	GetFromLibrary(ctx context.Context, id uuid.UUID) (*dto.TemplateLibraryDetail, error)
	UpdateInLibrary(ctx context.Context, id uuid.UUID, req dto.SaveTemplateLibraryRequest) (*dto.TemplateLibraryItem, error)
	DeleteFromLibrary(ctx context.Context, id uuid.UUID) error
}

type templateService struct {
	sessions  ISessionService
	library   contract.TemplateRepository
	publisher IPublisherService
	logger    logger.ILogger
}

func NewTemplateService(sessions ISessionService, library contract.TemplateRepository, publisher IPublisherService, log logger.ILogger) ITemplateService {
	return &templateService{
		sessions:  sessions,
		library:   library,
		publisher: publisher,
		logger:    log,
	}
}

// GetTemplate returns the session's working template. A session that has
// never been touched gets the default consulting template.
func (s *templateService) GetTemplate(sessionID string) (*template.Template, error) {
	session := s.sessions.GetOrCreate(sessionID)
	if session.Template == nil {
		session.Template = template.Default()
		s.sessions.Save(session)
	}
	return session.Template, nil
}

// SaveTemplate validates and replaces the session template wholesale, then
// publishes TEMPLATE_UPDATED so connected clients can refresh.
func (s *templateService) SaveTemplate(sessionID string, tpl template.Template) (*template.Template, error) {
	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	session := s.sessions.GetOrCreate(sessionID)
	session.Template = &tpl
	s.sessions.Save(session)

	if err := s.publisher.Publish(events.NewSessionEvent(events.TypeTemplateUpdated, session.ID, map[string]interface{}{
		"template_name": tpl.Metadata.Name,
		"section_count": len(tpl.Structure.Sections),
	})); err != nil {
		s.logger.Warn("TemplateService", "failed to publish template event", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}

	return session.Template, nil
}

func (s *templateService) SaveToLibrary(ctx context.Context, req dto.SaveTemplateLibraryRequest) (*dto.TemplateLibraryItem, error) {
	if err := req.Template.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	body, err := req.Template.ExportJSON()
	if err != nil {
		return nil, err
	}

	record := &model.TemplateRecord{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Body:        datatypes.JSON(body),
	}
	if err := s.library.Create(ctx, record); err != nil {
		return nil, err
	}

	return &dto.TemplateLibraryItem{
		Id:          record.Id,
		Name:        record.Name,
		Description: record.Description,
		CreatedAt:   record.CreatedAt,
	}, nil
}

func (s *templateService) ListLibrary(ctx context.Context) ([]dto.TemplateLibraryItem, error) {
	records, err := s.library.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TemplateLibraryItem, 0, len(records))
	for _, r := range records {
		item := dto.TemplateLibraryItem{
			Id:          r.Id,
			Name:        r.Name,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		}
		if !r.UpdatedAt.IsZero() && !r.UpdatedAt.Equal(r.CreatedAt) {
			updated := r.UpdatedAt
			item.UpdatedAt = &updated
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *templateService) GetFromLibrary(ctx context.Context, id uuid.UUID) (*dto.TemplateLibraryDetail, error) {
	record, err := s.library.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrTemplateNotFound
	}

	var tpl template.Template
	if err := json.Unmarshal(record.Body, &tpl); err != nil {
		return nil, fmt.Errorf("corrupt template record %s: %w", record.Id, err)
	}

	return &dto.TemplateLibraryDetail{
		Id:          record.Id,
		Name:        record.Name,
		Description: record.Description,
		Template:    tpl,
		CreatedAt:   record.CreatedAt,
	}, nil
}

// UpdateInLibrary replaces a saved template's name, description and body.
func (s *templateService) UpdateInLibrary(ctx context.Context, id uuid.UUID, req dto.SaveTemplateLibraryRequest) (*dto.TemplateLibraryItem, error) {
	if err := req.Template.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	record, err := s.library.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrTemplateNotFound
	}

	body, err := req.Template.ExportJSON()
	if err != nil {
		return nil, err
	}

	record.Name = req.Name
	record.Description = req.Description
	record.Body = datatypes.JSON(body)
	if err := s.library.Update(ctx, record); err != nil {
		return nil, err
	}

	item := &dto.TemplateLibraryItem{
		Id:          record.Id,
		Name:        record.Name,
		Description: record.Description,
		CreatedAt:   record.CreatedAt,
	}
	if !record.UpdatedAt.IsZero() && !record.UpdatedAt.Equal(record.CreatedAt) {
		updated := record.UpdatedAt
		item.UpdatedAt = &updated
	}
	return item, nil
}

func (s *templateService) DeleteFromLibrary(ctx context.Context, id uuid.UUID) error {
	record, err := s.library.FindById(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrTemplateNotFound
	}
	return s.library.Delete(ctx, id)
}
