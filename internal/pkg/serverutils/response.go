// FILE: internal/pkg/serverutils/response.go
package serverutils

import "github.com/gofiber/fiber/v2"

// SuccessResponse writes a JSON body with the given status. Payload keys
// are passed through as-is so handlers control the exact response shape.
func SuccessResponse(ctx *fiber.Ctx, status int, payload fiber.Map) error {
	return ctx.Status(status).JSON(payload)
}

// ErrorResponse writes the standard error envelope: {"error": message}.
func ErrorResponse(ctx *fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(fiber.Map{"error": message})
}
