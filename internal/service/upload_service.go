package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/pkg/events"
	"ai-docgen-be/pkg/extract"
	"ai-docgen-be/pkg/store"
)

type IUploadService interface {
	StoreFiles(ctx context.Context, sessionID string, files []*multipart.FileHeader) (*dto.UploadResponse, error)
}

type uploadService struct {
	sessions  ISessionService
	processor extract.Processor
	publisher IPublisherService
	uploadDir string
	logger    logger.ILogger
}

func NewUploadService(sessions ISessionService, processor extract.Processor, publisher IPublisherService, uploadDir string, log logger.ILogger) IUploadService {
	return &uploadService{
		sessions:  sessions,
		processor: processor,
		publisher: publisher,
		uploadDir: uploadDir,
		logger:    log,
	}
}

// StoreFiles persists uploads to disk, runs extraction on each, and records
// everything on the session. A file the processor cannot handle is still
// registered (without a preview) so later generation can at least cite it.
func (s *uploadService) StoreFiles(ctx context.Context, sessionID string, files []*multipart.FileHeader) (*dto.UploadResponse, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	session := s.sessions.GetOrCreate(sessionID)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	infos := make([]dto.UploadedFileInfo, 0, len(files))
	for _, header := range files {
		name := sanitizeFilename(header.Filename)
		if name == "" {
			continue
		}

		path := filepath.Join(s.uploadDir, fmt.Sprintf("%s_%s", session.ID, name))
		if err := saveMultipartFile(header, path); err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", name, err)
		}

		extracted, err := s.processor.Process(ctx, path, name)
		if err != nil {
			s.logger.Warn("UploadService", "extraction failed, registering file without content", map[string]interface{}{
				"session_id": session.ID,
				"filename":   name,
				"error":      err.Error(),
			})
			extracted = extract.Content{
				Type:     extract.TypeOf(name),
				Filename: name,
				Metadata: map[string]any{"note": "extraction failed"},
			}
		}

		preview := extract.Preview(extracted)

		session.Files = append(session.Files, store.UploadedFile{
			Filename:       name,
			Path:           path,
			Type:           extracted.Type,
			ContentPreview: preview,
		})
		session.ExtractedContent[name] = extracted

		infos = append(infos, dto.UploadedFileInfo{
			Filename: name,
			Type:     extracted.Type,
			Preview:  preview,
		})
	}

	if len(infos) == 0 {
		return nil, ErrNoFiles
	}

	s.sessions.Save(session)

	if err := s.publisher.Publish(events.NewSessionEvent(events.TypeFilesUploaded, session.ID, map[string]interface{}{
		"count": len(infos),
	})); err != nil {
		s.logger.Warn("UploadService", "failed to publish upload event", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}

	return &dto.UploadResponse{
		Message:          fmt.Sprintf("%d file(s) uploaded and processed", len(infos)),
		Files:            infos,
		SessionId:        session.ID,
		ExtractedContent: session.ExtractedContent,
	}, nil
}

// sanitizeFilename strips path components and characters that could escape
// the upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSpace(name)
	if name == "." || name == ".." {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_' || r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.TrimSpace(b.String())
}

func saveMultipartFile(header *multipart.FileHeader, dst string) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
