package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	webhookController "kursusku_backend/internals/features/billing/webhook/controller"
)

// WebhookRoutes mounts the public, signature-verified billing callbacks.
func WebhookRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := webhookController.NewWebhookController(db)
	billing := router.Group("/billing")

	billing.Post("/stripe/webhook", ctrl.HandleStripeWebhook)
}
