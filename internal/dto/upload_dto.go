package dto

import "ai-docgen-be/pkg/extract"

type UploadedFileInfo struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Preview  string `json:"content_preview"`
}

type UploadResponse struct {
	Message          string                     `json:"message"`
	Files            []UploadedFileInfo         `json:"files"`
	SessionId        string                     `json:"session_id"`
	ExtractedContent map[string]extract.Content `json:"extracted_content"`
}
