package authController

import (
	"log"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Role     string `json:"role" validate:"omitempty,oneof=student instructor admin"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already exists", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	role := reqData.Role
	if role == "" {
		role = models.RoleStudent
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	// Clean response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"id":    newUser.ID,
		"name":  newUser.Name,
		"email": newUser.Email,
		"role":  newUser.Role,
	})
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	result := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invalid email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	// Sanitize user data
	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User logged in successfully", fiber.Map{
		"token": token,
		"user":  user,
	})
}
