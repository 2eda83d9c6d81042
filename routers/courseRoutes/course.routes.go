package courseRoutes

import (
	courseControllers "learnhub/controllers/course"
	"learnhub/middleware"
	"learnhub/models"
	courseValidators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog, enrollment and nested content routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses", middleware.JWTMiddleware)

	// Catalog
	courseGroup.Get("/", courseValidators.CourseList(), courseControllers.GetAllCourses)
	courseGroup.Post("/create", middleware.CheckRole(models.RoleInstructor, models.RoleAdmin), courseValidators.CreateCourse(), courseControllers.CreateCourse)
	courseGroup.Get("/enrollments", courseControllers.GetMyEnrollments)
	courseGroup.Get("/:id", courseControllers.GetCourseDetails)
	courseGroup.Put("/:id", courseValidators.UpdateCourse(), courseControllers.UpdateCourse)
	courseGroup.Delete("/:id", courseControllers.DeleteCourse)

	// Enrollment
	courseGroup.Post("/:id/enroll", courseControllers.EnrollInCourse)

	// Modules and lessons (content is gated inside the handlers)
	courseGroup.Post("/:id/modules", courseValidators.CreateModule(), courseControllers.CreateModule)
	courseGroup.Get("/:id/modules", courseControllers.GetModules)
	courseGroup.Get("/:id/modules/:moduleId", courseControllers.GetModuleByID)
	courseGroup.Delete("/:id/modules/:moduleId", courseControllers.DeleteModule)
	courseGroup.Post("/:id/modules/:moduleId/lessons", courseValidators.CreateLesson(), courseControllers.CreateLesson)
	courseGroup.Get("/:id/modules/:moduleId/lessons/:lessonId", courseControllers.GetLessonByID)
	courseGroup.Delete("/:id/modules/:moduleId/lessons/:lessonId", courseControllers.DeleteLesson)
}
