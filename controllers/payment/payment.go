package paymentController

import (
	"log"
	"math"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/paystack"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func gatewayClient() *paystack.Client {
	return paystack.New(config.AppConfig.PaystackBaseURL, config.AppConfig.PaystackSecretKey)
}

func InitializePayment(c *fiber.Ctx) error {
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

	// Amount is in minor units (kobo)
	amount := int64(math.Round(course.Price * 100))

	txn, err := gatewayClient().InitializeTransaction(user.Email, amount, paystack.Metadata{
		UserID:   user.ID,
		CourseID: course.ID,
	})
	if err != nil {
		log.Printf("Error initializing payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error initializing payment", nil)
	}

	// Keep the reference so verification callbacks can be matched later
	purchase := models.Purchase{
		UserID:        user.ID,
		CourseID:      course.ID,
		PaymentStatus: models.PaymentPending,
		Reference:     txn.Reference,
	}
	if err := db.Create(&purchase).Error; err != nil {
		log.Printf("Error recording purchase: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record purchase!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment initialized", fiber.Map{
		"reference":         txn.Reference,
		"authorization_url": txn.AuthorizationURL,
	})
}

func VerifyPayment(c *fiber.Ctx) error {
	reqData := new(struct {
		Reference string `json:"reference"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	if reqData.Reference == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing transaction reference", nil)
	}

	txn, err := gatewayClient().VerifyTransaction(reqData.Reference)
	if err != nil {
		log.Printf("Error verifying payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}

	switch txn.Status {
	case "success":
		status, message := applySuccessfulVerification(txn)
		return middleware.JsonResponse(c, status, status == fiber.StatusOK, message, nil)
	case "abandoned":
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment was not completed", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment verification failed", nil)
	}
}

// applySuccessfulVerification reconciles a gateway-confirmed
// transaction against the user's purchase and the course enrollment.
// Both writes run in one transaction and the whole update is keyed by
// the reference, so re-applying a verification is safe.
func applySuccessfulVerification(txn *paystack.Transaction) (int, string) {
	db := database.Database.Db

	var user models.User
	var course models.Course
	if err := db.First(&user, txn.Metadata.UserID).Error; err != nil {
		return fiber.StatusNotFound, "Course or User not found"
	}
	if err := db.First(&course, txn.Metadata.CourseID).Error; err != nil {
		return fiber.StatusNotFound, "Course or User not found"
	}

	var purchase models.Purchase
	err := db.Where("user_id = ? AND course_id = ? AND reference = ?", user.ID, course.ID, txn.Reference).
		First(&purchase).Error
	if err != nil {
		log.Printf("No purchase found for reference %s", txn.Reference)
		return fiber.StatusNotFound, "User course not found"
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if purchase.PaymentStatus != models.PaymentSuccess {
			purchase.PaymentStatus = models.PaymentSuccess
			if err := tx.Save(&purchase).Error; err != nil {
				return err
			}
		}

		// Upsert the enrollment: insert if absent, mark paid if present
		var enrollment models.Enrollment
		findErr := tx.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error
		if findErr != nil {
			enrollment = models.Enrollment{
				UserID:   user.ID,
				CourseID: course.ID,
				Status:   models.PaymentPaid,
			}
			return tx.Create(&enrollment).Error
		}
		if enrollment.Status != models.PaymentPaid {
			enrollment.Status = models.PaymentPaid
			return tx.Save(&enrollment).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("Error applying payment verification: %v", err)
		return fiber.StatusInternalServerError, "Failed to update records!"
	}

	go utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)

	return fiber.StatusOK, "Payment verified and records updated"
}
