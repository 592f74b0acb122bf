package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/service"
	"ai-docgen-be/pkg/store"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	r.Get("/stats", c.Stats)
	r.Get("/session/:id", c.Show)
	r.Delete("/session/:id", c.Clear)
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res, err := c.sessionService.Describe(ctx.Params("id"))
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(res)
}

func (c *sessionController) Clear(ctx *fiber.Ctx) error {
	if err := c.sessionService.Clear(ctx.Params("id")); err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(dto.ClearSessionResponse{Message: "Session cleared"})
}

func (c *sessionController) Stats(ctx *fiber.Ctx) error {
	sid := ctx.Query("session_id", store.DefaultSessionID)
	res, err := c.sessionService.Stats(sid)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(res)
}
