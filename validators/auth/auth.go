package authValidator

import (
	"errors"
	"strings"

	"learnhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name" validate:"required"`
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=6"`
			Role     string `json:"role" validate:"omitempty,oneof=student instructor admin"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := validationErrors(validate.Struct(reqData)); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := validationErrors(validate.Struct(reqData)); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// validationErrors converts validator tag failures into per-field messages
func validationErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = "Invalid request body!"
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			out[field] = field + " is required!"
		case "email":
			out[field] = "Invalid email address!"
		case "min":
			out[field] = field + " must be at least " + fe.Param() + " characters long!"
		case "oneof":
			out[field] = field + " must be one of: " + fe.Param()
		default:
			out[field] = "Invalid " + field + "!"
		}
	}
	return out
}
