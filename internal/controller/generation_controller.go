package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/pkg/serverutils"
	"ai-docgen-be/internal/service"
	"ai-docgen-be/pkg/store"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Refine(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.IGenerationService
}

func NewGenerationController(generationService service.IGenerationService) IGenerationController {
	return &generationController{
		generationService: generationService,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	r.Post("/generate", c.Generate)
	r.Post("/refine", c.Refine)
}

func (c *generationController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.SessionId == "" {
		req.SessionId = store.DefaultSessionID
	}

	generated, err := c.generationService.Generate(ctx.Context(), req.SessionId, req.Instructions)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(dto.ContentResponse{Content: *generated})
}

func (c *generationController) Refine(ctx *fiber.Ctx) error {
	var req dto.RefineRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}
	if req.SessionId == "" {
		req.SessionId = store.DefaultSessionID
	}

	refined, err := c.generationService.Refine(ctx.Context(), req.SessionId, req.Request)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(dto.ContentResponse{Content: *refined})
}
