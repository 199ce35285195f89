package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subscriptionDTO "kursusku_backend/internals/features/billing/subscription/dto"
	subscriptionService "kursusku_backend/internals/features/billing/subscription/service"
	helper "kursusku_backend/internals/helpers"
)

type SubscriptionController struct {
	DB *gorm.DB
}

func NewSubscriptionController(db *gorm.DB) *SubscriptionController {
	return &SubscriptionController{DB: db}
}

// GetMySubscription
// GET /api/u/billing/subscription
func (ctrl *SubscriptionController) GetMySubscription(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	sub, err := subscriptionService.GetByUserID(ctrl.DB, userID)
	if err != nil {
		log.Println("[ERROR] failed to load subscription:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load subscription")
	}

	return helper.JsonOK(c, "Subscription fetched successfully", subscriptionDTO.ToSubscriptionResponse(sub))
}
