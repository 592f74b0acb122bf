package dto

import "ai-docgen-be/pkg/content"

type GenerateRequest struct {
	SessionId    string `json:"session_id"`
	Instructions string `json:"instructions"`
}

type RefineRequest struct {
	SessionId string `json:"session_id"`
	Request   string `json:"request" validate:"required"`
}

type ContentResponse struct {
	Content content.Generated `json:"content"`
}
