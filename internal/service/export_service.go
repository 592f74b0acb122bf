package service

import (
	"context"

	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/pkg/export"
)

// ExportResult is a rendered document ready for download.
type ExportResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

type IExportService interface {
	Export(ctx context.Context, sessionID, format string) (*ExportResult, error)
}

type exportService struct {
	sessions ISessionService
	renderer export.Renderer
	logger   logger.ILogger
}

func NewExportService(sessions ISessionService, renderer export.Renderer, log logger.ILogger) IExportService {
	return &exportService{
		sessions: sessions,
		renderer: renderer,
		logger:   log,
	}
}

func (s *exportService) Export(ctx context.Context, sessionID, format string) (*ExportResult, error) {
	if !export.SupportedFormat(format) {
		return nil, ErrBadFormat
	}

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Generated == nil {
		return nil, ErrNoContent
	}

	data, err := s.renderer.Render(ctx, session.Generated, session.Template, format)
	if err != nil {
		return nil, err
	}

	contentType, err := export.ContentTypeFor(format)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ExportService", "document exported", map[string]interface{}{
		"session_id": session.ID,
		"format":     format,
		"bytes":      len(data),
	})

	return &ExportResult{
		Data:        data,
		Filename:    export.Filename(format),
		ContentType: contentType,
	}, nil
}
