package controller

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"ai-docgen-be/internal/service"
	"ai-docgen-be/pkg/store"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type uploadController struct {
	uploadService service.IUploadService
}

func NewUploadController(uploadService service.IUploadService) IUploadController {
	return &uploadController{
		uploadService: uploadService,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected multipart form data")
	}

	sid := ctx.FormValue("session_id", store.DefaultSessionID)

	var files []*multipart.FileHeader
	for _, headers := range form.File {
		files = append(files, headers...)
	}

	res, err := c.uploadService.StoreFiles(ctx.Context(), sid, files)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(res)
}
