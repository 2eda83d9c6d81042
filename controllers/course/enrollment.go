package courseController

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
)

func EnrollInCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	course, err := loadCourse(c)
	if course == nil {
		return err
	}

	db := database.Database.Db

	// Duplicate check runs before the capacity check
	var existing models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course", nil)
	}

	var enrolled int64
	if err := db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrolled).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check course capacity!", nil)
	}
	if enrolled >= int64(course.MaxStudents) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is already full", nil)
	}

	enrollment := models.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   models.PaymentPending,
	}

	if err := db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

func GetMyEnrollments(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("user_id = ?", user.ID).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
