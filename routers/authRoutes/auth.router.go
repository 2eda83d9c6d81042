package authRoutes

import (
	authControllers "learnhub/controllers/auth"
	authValidators "learnhub/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)

	// OAuth logins issue the same bearer token shape as local login
	authGroup.Get("/google", authControllers.GoogleLogin)
	authGroup.Get("/google/callback", authControllers.GoogleCallback)
	authGroup.Get("/facebook", authControllers.FacebookLogin)
	authGroup.Get("/facebook/callback", authControllers.FacebookCallback)
}
