package categoryController

import (
	"log"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
)

func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name string `json:"name" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Only names from the fixed set are accepted
	if !models.IsAllowedCategory(reqData.Name) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category name", nil)
	}

	db := database.Database.Db

	// Check if the category exists
	if err := db.Where("name = ?", reqData.Name).First(&models.Category{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category already exists", nil)
	}

	category := models.Category{Name: reqData.Name}

	if err := db.Create(&category).Error; err != nil {
		log.Printf("Error saving category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully", category)
}

func DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil || categoryID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category ID!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found", nil)
	}

	if err := db.Delete(&category).Error; err != nil {
		log.Printf("Error deleting category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully", nil)
}

func GetAllCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully", categories)
}
