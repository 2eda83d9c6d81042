package paymentController

import (
	"log"
	"time"

	"learnhub/database"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
)

// StartReconciler runs an hourly sweep over stale pending purchases,
// re-checking them against the gateway. Verification is idempotent per
// reference, so re-applying a result a webhook already handled is
// harmless.
func StartReconciler() *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@hourly", reconcilePendingPurchases)
	if err != nil {
		log.Printf("Failed to schedule payment reconciler: %v", err)
		return c
	}

	c.Start()
	log.Println("Payment reconciler scheduled (hourly).")
	return c
}

func reconcilePendingPurchases() {
	cutoff := time.Now().Add(-1 * time.Hour)

	var pending []models.Purchase
	err := database.Database.Db.
		Where("payment_status = ? AND created_at < ?", models.PaymentPending, cutoff).
		Limit(100).
		Find(&pending).Error
	if err != nil {
		log.Printf("Reconciler: failed to list pending purchases: %v", err)
		return
	}

	client := gatewayClient()
	for _, purchase := range pending {
		txn, err := client.VerifyTransaction(purchase.Reference)
		if err != nil {
			log.Printf("Reconciler: verify %s failed: %v", purchase.Reference, err)
			continue
		}
		if txn.Status != "success" {
			continue
		}
		if status, message := applySuccessfulVerification(txn); status != fiber.StatusOK {
			log.Printf("Reconciler: apply %s: %s", purchase.Reference, message)
		}
	}
}
