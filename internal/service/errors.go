package service

import "errors"

var (
	ErrSessionNotFound  = errors.New("Session not found")
	ErrNoContent        = errors.New("No content to export")
	ErrNoTemplate       = errors.New("No template found. Please create or upload a template first.")
	ErrTemplateNotFound = errors.New("Template not found")
	ErrBadFormat        = errors.New("Unsupported export format")
	ErrNoFiles          = errors.New("No files provided")
)
