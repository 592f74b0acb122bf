package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/pkg/serverutils"
	"ai-docgen-be/internal/service"
	"ai-docgen-be/pkg/store"
	"ai-docgen-be/pkg/template"
)

type ITemplateController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	SaveToLibrary(ctx *fiber.Ctx) error
	ListLibrary(ctx *fiber.Ctx) error
	ShowLibrary(ctx *fiber.Ctx) error
	UpdateLibrary(ctx *fiber.Ctx) error
	DeleteFromLibrary(ctx *fiber.Ctx) error
}

type templateController struct {
	templateService service.ITemplateService
}

func NewTemplateController(templateService service.ITemplateService) ITemplateController {
	return &templateController{
		templateService: templateService,
	}
}

func (c *templateController) RegisterRoutes(r fiber.Router) {
	r.Get("/template", c.Get)
	r.Post("/template", c.Save)
	r.Put("/template", c.Save)

	r.Get("/templates", c.ListLibrary)
	r.Post("/templates", c.SaveToLibrary)
	r.Get("/templates/:id", c.ShowLibrary)
	r.Put("/templates/:id", c.UpdateLibrary)
	r.Delete("/templates/:id", c.DeleteFromLibrary)
}

func sessionID(ctx *fiber.Ctx) string {
	return ctx.Query("session_id", store.DefaultSessionID)
}

func (c *templateController) Get(ctx *fiber.Ctx) error {
	tpl, err := c.templateService.GetTemplate(sessionID(ctx))
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(dto.TemplateResponse{Template: *tpl})
}

// Save accepts either the bare template document or the {"template": ...}
// wrapper so both client generations keep working.
func (c *templateController) Save(ctx *fiber.Ctx) error {
	var wrapped struct {
		Template *template.Template `json:"template"`
	}
	var tpl template.Template
	if err := ctx.BodyParser(&wrapped); err == nil && wrapped.Template != nil {
		tpl = *wrapped.Template
	} else if err := ctx.BodyParser(&tpl); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	saved, err := c.templateService.SaveTemplate(sessionID(ctx), tpl)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(dto.TemplateResponse{Template: *saved})
}

func (c *templateController) SaveToLibrary(ctx *fiber.Ctx) error {
	var req dto.SaveTemplateLibraryRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	item, err := c.templateService.SaveToLibrary(ctx.Context(), req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.Status(fiber.StatusCreated).JSON(item)
}

func (c *templateController) ListLibrary(ctx *fiber.Ctx) error {
	items, err := c.templateService.ListLibrary(ctx.Context())
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(fiber.Map{"templates": items})
}

func (c *templateController) ShowLibrary(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid template id")
	}

	detail, err := c.templateService.GetFromLibrary(ctx.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(detail)
}

func (c *templateController) UpdateLibrary(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid template id")
	}

	var req dto.SaveTemplateLibraryRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	item, err := c.templateService.UpdateInLibrary(ctx.Context(), id, req)
	if errors.Is(err, service.ErrTemplateNotFound) {
		return mapServiceError(err)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(item)
}

func (c *templateController) DeleteFromLibrary(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid template id")
	}

	if err := c.templateService.DeleteFromLibrary(ctx.Context(), id); err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(fiber.Map{"message": "Template deleted"})
}
