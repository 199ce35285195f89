package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subscriptionController "kursusku_backend/internals/features/billing/subscription/controller"
)

// SubscriptionUserRoutes mounts the authenticated subscription endpoints.
func SubscriptionUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := subscriptionController.NewSubscriptionController(db)
	billing := router.Group("/billing")

	billing.Get("/subscription", ctrl.GetMySubscription)
}
