package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/service"
	"ai-docgen-be/pkg/store"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	Export(ctx *fiber.Ctx) error
}

type exportController struct {
	exportService service.IExportService
}

func NewExportController(exportService service.IExportService) IExportController {
	return &exportController{
		exportService: exportService,
	}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	r.Post("/export/:format", c.Export)
}

func (c *exportController) Export(ctx *fiber.Ctx) error {
	format := ctx.Params("format")

	var req dto.ExportRequest
	_ = ctx.BodyParser(&req) // body is optional, session_id defaults
	if req.SessionId == "" {
		req.SessionId = store.DefaultSessionID
	}

	result, err := c.exportService.Export(ctx.Context(), req.SessionId, format)
	if err != nil {
		return mapServiceError(err)
	}

	ctx.Set(fiber.HeaderContentType, result.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, result.Filename))
	return ctx.Send(result.Data)
}
