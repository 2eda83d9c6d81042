package categoryRoutes

import (
	categoryControllers "learnhub/controllers/category"
	"learnhub/middleware"
	"learnhub/models"
	categoryValidators "learnhub/validators/category"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App) {
	categoryGroup := app.Group("/api/category")

	categoryGroup.Get("/", categoryControllers.GetAllCategories)
	categoryGroup.Post("/create", middleware.JWTMiddleware, middleware.CheckRole(models.RoleAdmin), categoryValidators.CreateCategory(), categoryControllers.CreateCategory)
	categoryGroup.Delete("/:id", middleware.JWTMiddleware, middleware.CheckRole(models.RoleAdmin), categoryControllers.DeleteCategory)
}
