package middleware

import (
	"fmt"
	"strings"
	"time"

	"learnhub/config"
	"learnhub/database"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a bearer token for the user, valid for one hour
func GenerateJWT(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(1 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware validates the bearer token and loads the account it
// references. Suspended and soft-deleted accounts are rejected even
// when their token is still valid.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Token not provided", nil)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})

	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusForbidden, false, "Invalid or expired token", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return JsonResponse(c, fiber.StatusForbidden, false, "Invalid token payload", nil)
	}

	// JWT numeric claims decode as float64
	idClaim, ok := claims["userId"].(float64)
	if !ok {
		return JsonResponse(c, fiber.StatusForbidden, false, "Invalid token payload", nil)
	}
	userID := uint(idClaim)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Account not found", nil)
	}

	if user.IsSuspended {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Account is suspended", nil)
	}

	c.Locals("userId", user.ID)
	c.Locals("user", user)

	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}
