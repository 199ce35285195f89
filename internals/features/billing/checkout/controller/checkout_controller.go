package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	checkoutDTO "kursusku_backend/internals/features/billing/checkout/dto"
	checkoutService "kursusku_backend/internals/features/billing/checkout/service"
	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
	authModel "kursusku_backend/internals/features/users/auth/model"
	helper "kursusku_backend/internals/helpers"
)

type CheckoutController struct {
	DB *gorm.DB
}

func NewCheckoutController(db *gorm.DB) *CheckoutController {
	return &CheckoutController{DB: db}
}

// POST /api/u/billing/checkout
func (ctrl *CheckoutController) CreateCheckout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req checkoutDTO.CreateCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	plan, ok := subscriptionModel.ParsePlan(req.Plan)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown plan")
	}

	var user authModel.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}

	payment, err := checkoutService.CreateSubscriptionCheckout(ctrl.DB, userID, plan, user.UserName, user.Email)
	if err != nil {
		if errors.Is(err, checkoutService.ErrUnknownPlan) {
			return helper.JsonError(c, fiber.StatusBadRequest, "This plan cannot be purchased")
		}
		log.Println("[ERROR] checkout failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start checkout")
	}

	return helper.JsonCreated(c, "checkout created", checkoutDTO.ToCheckoutResponse(payment))
}

// POST /api/public/billing/midtrans/notification
func (ctrl *CheckoutController) HandleMidtransNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	if err := checkoutService.HandleMidtransNotification(ctrl.DB, body, configs.MidtransServerKey); err != nil {
		if errors.Is(err, checkoutService.ErrInvalidNotification) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification")
		}
		log.Println("[ERROR] midtrans notification failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process notification")
	}
	return helper.JsonOK(c, "notification processed", nil)
}
