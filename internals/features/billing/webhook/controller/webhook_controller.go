package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	webhookService "kursusku_backend/internals/features/billing/webhook/service"
	helper "kursusku_backend/internals/helpers"
)

type WebhookController struct {
	DB *gorm.DB
}

func NewWebhookController(db *gorm.DB) *WebhookController {
	return &WebhookController{DB: db}
}

// POST /api/public/billing/stripe/webhook
func (ctrl *WebhookController) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	sigHeader := c.Get("Stripe-Signature")

	err := webhookService.HandleStripeDelivery(ctrl.DB, payload, sigHeader, configs.StripeWebhookSecret)
	if err != nil {
		if errors.Is(err, webhookService.ErrInvalidSignature) {
			log.Println("[WARNING] stripe webhook rejected: bad signature")
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid signature")
		}
		log.Println("[ERROR] stripe webhook failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process event")
	}
	return helper.JsonOK(c, "event received", nil)
}
