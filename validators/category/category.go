package categoryValidator

import (
	"strings"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name string `json:"name" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Name is required", nil)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}
