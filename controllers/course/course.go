package courseController

import (
	"encoding/json"
	"log"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func GetAllCourses(c *fiber.Ctx) error {
	// Retrieve validated pagination request
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		// No pagination requested, return everything
		var courses []models.Course
		if err := database.Database.Db.Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
			"courses": courses,
		})
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	var courses []models.Course
	db := database.Database.Db.Model(&models.Course{})

	var total int64
	db.Count(&total)

	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

func CreateCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string  `json:"title" validate:"required,min=3"`
		Description string  `json:"description" validate:"required,min=5"`
		CategoryID  uint    `json:"categoryId" validate:"required"`
		Duration    string  `json:"duration" validate:"required"`
		Price       float64 `json:"price" validate:"gte=0"`
		MaxStudents int     `json:"maxStudents" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Category must exist
	if err := db.First(&models.Category{}, reqData.CategoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category does not exist", nil)
	}

	// Title is unique across the catalog
	if err := db.Where("title = ?", reqData.Title).First(&models.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course title already exists", nil)
	}

	maxStudents := reqData.MaxStudents
	if maxStudents == 0 {
		maxStudents = models.DefaultMaxStudents
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		CategoryID:   reqData.CategoryID,
		Duration:     reqData.Duration,
		Price:        reqData.Price,
		InstructorID: user.ID,
		MaxStudents:  maxStudents,
	}

	// Optional file attachments from the multipart form
	if form, err := c.MultipartForm(); err == nil && form != nil {
		var urls []string
		for _, file := range form.File["attachments"] {
			savedPath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
			}
			urls = append(urls, utils.GetFileURL(savedPath))
		}
		if len(urls) > 0 {
			raw, err := json.Marshal(urls)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store attachments!", nil)
			}
			course.Attachments = datatypes.JSON(raw)
		}
	}

	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error saving course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully", course)
}

func GetCourseDetails(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	access, err := middleware.CourseContentAccess(user, course)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check course access!", nil)
	}

	switch access {
	case middleware.AccessNotEnrolled:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must enroll in this course first", nil)
	case middleware.AccessPaymentPending:
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment required to access this course", course.Preview())
	}

	if err := database.Database.Db.Preload("Modules").First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		CategoryID  *uint    `json:"categoryId"`
		Duration    *string  `json:"duration"`
		Price       *float64 `json:"price"`
		MaxStudents *int     `json:"maxStudents"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if !middleware.CanMutateCourse(user, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins or the instructor can update courses", nil)
	}

	// Partial merge: unspecified fields keep their stored values
	if reqData.Title != nil && *reqData.Title != course.Title {
		if err := db.Where("title = ?", *reqData.Title).First(&models.Course{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course title already exists", nil)
		}
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.CategoryID != nil {
		if err := db.First(&models.Category{}, *reqData.CategoryID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category does not exist", nil)
		}
		course.CategoryID = *reqData.CategoryID
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}
	if reqData.Price != nil {
		if *reqData.Price < 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Price cannot be negative", nil)
		}
		course.Price = *reqData.Price
	}
	if reqData.MaxStudents != nil {
		if *reqData.MaxStudents < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "maxStudents must be at least 1", nil)
		}
		course.MaxStudents = *reqData.MaxStudents
	}

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully", course)
}

func DeleteCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if !middleware.CanMutateCourse(user, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins or the instructor can delete courses", nil)
	}

	// Remove the course and everything nested in it
	err = db.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&models.Module{}).Where("course_id = ?", course.ID).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}
		if len(moduleIDs) > 0 {
			if err := tx.Where("module_id IN ?", moduleIDs).Delete(&models.Lesson{}).Error; err != nil {
				return err
			}
			if err := tx.Where("module_id IN ?", moduleIDs).Delete(&models.Quiz{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", course.ID).Delete(&models.Module{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		// Unsettled purchases go too, or the reconciler would re-verify them forever
		if err := tx.Where("course_id = ? AND payment_status = ?", course.ID, models.PaymentPending).Delete(&models.Purchase{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully", nil)
}
