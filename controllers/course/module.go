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

// loadCourse pulls the course referenced by the :id route param.
// A nil return means the response has already been written.
func loadCourse(c *fiber.Ctx) (*models.Course, error) {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}
	return &course, nil
}

// gateContent applies the content gate and writes the 402/403 response
// itself when access is denied.
func gateContent(c *fiber.Ctx, user models.User, course models.Course) (bool, error) {
	access, err := middleware.CourseContentAccess(user, course)
	if err != nil {
		return false, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check course access!", nil)
	}

	switch access {
	case middleware.AccessNotEnrolled:
		return false, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must enroll in this course first", nil)
	case middleware.AccessPaymentPending:
		return false, middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment required to access this course", course.Preview())
	}
	return true, nil
}

func CreateModule(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	course, err := loadCourse(c)
	if course == nil {
		return err
	}

	if !middleware.CanMutateCourse(user, *course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins or the instructor can modify courses", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title       string `json:"title" validate:"required,min=3"`
		Description string `json:"description"`
		OrderIndex  int    `json:"orderIndex" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module := models.Module{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		log.Printf("Error saving module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully", module)
}

func GetModules(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	course, err := loadCourse(c)
	if course == nil {
		return err
	}

	if granted, err := gateContent(c, user, *course); !granted {
		return err
	}

	var modules []models.Module
	if err := database.Database.Db.Where("course_id = ?", course.ID).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modules)
}

func GetModuleByID(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	course, err := loadCourse(c)
	if course == nil {
		return err
	}

	if granted, err := gateContent(c, user, *course); !granted {
		return err
	}

	moduleID, err := c.ParamsInt("moduleId")
	if err != nil || moduleID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
	}

	db := database.Database.Db

	var module models.Module
	if err := db.Where("id = ? AND course_id = ?", moduleID, course.ID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found", nil)
	}

	var lessons []models.Lesson
	if err := db.Where("module_id = ?", module.ID).Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}
	module.Lessons = models.BuildLessonTree(lessons)

	if err := db.Where("module_id = ?", module.ID).Find(&module.Quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", module)
}

func DeleteModule(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	course, err := loadCourse(c)
	if course == nil {
		return err
	}

	if !middleware.CanMutateCourse(user, *course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins or the instructor can modify courses", nil)
	}

	moduleID, err := c.ParamsInt("moduleId")
	if err != nil || moduleID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
	}

	db := database.Database.Db

	var module models.Module
	if err := db.Where("id = ? AND course_id = ?", moduleID, course.ID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("module_id = ?", module.ID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", module.ID).Delete(&models.Quiz{}).Error; err != nil {
			return err
		}
		return tx.Delete(&module).Error
	})
	if err != nil {
		log.Printf("Error deleting module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully", nil)
}

func CreateLesson(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	course, err := loadCourse(c)
	if course == nil {
		return err
	}

	if !middleware.CanMutateCourse(user, *course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins or the instructor can modify courses", nil)
	}

	moduleID, err := c.ParamsInt("moduleId")
	if err != nil || moduleID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
	}

	db := database.Database.Db

	var module models.Module
	if err := db.Where("id = ? AND course_id = ?", moduleID, course.ID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title      string `json:"title" validate:"required,min=3"`
		Content    string `json:"content"`
		ParentID   *uint  `json:"parentId"`
		OrderIndex int    `json:"orderIndex" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Sub-lessons must hang off a lesson in the same module
	if reqData.ParentID != nil {
		var parent models.Lesson
		if err := db.Where("id = ? AND module_id = ?", *reqData.ParentID, module.ID).First(&parent).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent lesson not found", nil)
		}
	}

	lesson := models.Lesson{
		ModuleID:   module.ID,
		ParentID:   reqData.ParentID,
		Title:      reqData.Title,
		Content:    reqData.Content,
		OrderIndex: reqData.OrderIndex,
	}

	// Optional multimedia attachments
	if form, err := c.MultipartForm(); err == nil && form != nil {
		var urls []string
		for _, file := range form.File["multimedia"] {
			savedPath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
			}
			urls = append(urls, utils.GetFileURL(savedPath))
		}
		if len(urls) > 0 {
			raw, err := json.Marshal(urls)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store multimedia!", nil)
			}
			lesson.Multimedia = datatypes.JSON(raw)
		}
	}

	if err := db.Create(&lesson).Error; err != nil {
		log.Printf("Error saving lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully", lesson)
}

func GetLessonByID(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	course, err := loadCourse(c)
	if course == nil {
		return err
	}

	if granted, err := gateContent(c, user, *course); !granted {
		return err
	}

	moduleID, err := c.ParamsInt("moduleId")
	if err != nil || moduleID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
	}
	lessonID, err := c.ParamsInt("lessonId")
	if err != nil || lessonID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
	}

	db := database.Database.Db

	var module models.Module
	if err := db.Where("id = ? AND course_id = ?", moduleID, course.ID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found", nil)
	}

	var lessons []models.Lesson
	if err := db.Where("module_id = ?", module.ID).Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	// Locate the lesson in the assembled tree so its children come along
	tree := models.BuildLessonTree(lessons)
	lesson := models.FindLesson(tree, uint(lessonID))
	if lesson == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", lesson)
}

func DeleteLesson(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	course, err := loadCourse(c)
	if course == nil {
		return err
	}

	if !middleware.CanMutateCourse(user, *course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins or the instructor can modify courses", nil)
	}

	moduleID, err := c.ParamsInt("moduleId")
	if err != nil || moduleID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
	}
	lessonID, err := c.ParamsInt("lessonId")
	if err != nil || lessonID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
	}

	db := database.Database.Db

	var module models.Module
	if err := db.Where("id = ? AND course_id = ?", moduleID, course.ID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found", nil)
	}

	var lesson models.Lesson
	if err := db.Where("id = ? AND module_id = ?", lessonID, module.ID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found", nil)
	}

	// The whole subtree goes with the lesson, no orphan sub-lessons
	var lessons []models.Lesson
	if err := db.Where("module_id = ?", module.ID).Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}
	ids := models.SubtreeIDs(lessons, lesson.ID)

	if err := db.Where("id IN ?", ids).Delete(&models.Lesson{}).Error; err != nil {
		log.Printf("Error deleting lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully", nil)
}
