package courseValidator

import (
	"errors"
	"strconv"
	"strings"

	"learnhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateCourse validates the multipart course-creation form.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string  `json:"title" validate:"required,min=3"`
			Description string  `json:"description" validate:"required,min=5"`
			CategoryID  uint    `json:"categoryId" validate:"required"`
			Duration    string  `json:"duration" validate:"required"`
			Price       float64 `json:"price" validate:"gte=0"`
			MaxStudents int     `json:"maxStudents" validate:"gte=0"`
		})

		reqData.Title = strings.TrimSpace(c.FormValue("title"))
		reqData.Description = strings.TrimSpace(c.FormValue("description"))
		reqData.Duration = strings.TrimSpace(c.FormValue("duration"))

		if raw := c.FormValue("categoryId"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category ID!", nil)
			}
			reqData.CategoryID = uint(id)
		}

		if raw := c.FormValue("price"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid price!", nil)
			}
			reqData.Price = price
		}

		if raw := c.FormValue("maxStudents"); raw != "" {
			max, err := strconv.Atoi(raw)
			if err != nil || max < 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid maxStudents!", nil)
			}
			reqData.MaxStudents = max
		}

		if errs := validationErrors(validate.Struct(reqData)); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse accepts a partial JSON body; only provided fields are merged.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string  `json:"title"`
			Description *string  `json:"description"`
			CategoryID  *uint    `json:"categoryId"`
			Duration    *string  `json:"duration"`
			Price       *float64 `json:"price"`
			MaxStudents *int     `json:"maxStudents"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseList parses optional pagination query params. Without both
// page and limit the handler returns the full list.
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page == nil || reqData.Limit == nil {
			return c.Next()
		}

		errors := make(map[string]string)
		if *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3"`
			Description string `json:"description"`
			OrderIndex  int    `json:"orderIndex" validate:"gte=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := validationErrors(validate.Struct(reqData)); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// CreateLesson validates the multipart lesson-creation form.
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      string `json:"title" validate:"required,min=3"`
			Content    string `json:"content"`
			ParentID   *uint  `json:"parentId"`
			OrderIndex int    `json:"orderIndex" validate:"gte=0"`
		})

		reqData.Title = strings.TrimSpace(c.FormValue("title"))
		reqData.Content = c.FormValue("content")

		if raw := c.FormValue("parentId"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid parent lesson ID!", nil)
			}
			parentID := uint(id)
			reqData.ParentID = &parentID
		}

		if raw := c.FormValue("orderIndex"); raw != "" {
			idx, err := strconv.Atoi(raw)
			if err != nil || idx < 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid orderIndex!", nil)
			}
			reqData.OrderIndex = idx
		}

		if errs := validationErrors(validate.Struct(reqData)); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

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
		case "min":
			out[field] = field + " must be at least " + fe.Param() + " characters long!"
		case "gte":
			out[field] = field + " must be at least " + fe.Param() + "!"
		default:
			out[field] = "Invalid " + field + "!"
		}
	}
	return out
}
