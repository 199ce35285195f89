package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	checkoutModel "kursusku_backend/internals/features/billing/checkout/model"
	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
	subscriptionService "kursusku_backend/internals/features/billing/subscription/service"
)

var (
	// ErrUnknownPlan means the requested plan has no checkout price.
	ErrUnknownPlan = errors.New("plan cannot be purchased")
	// ErrInvalidNotification covers bad or forged gateway callbacks.
	ErrInvalidNotification = errors.New("invalid gateway notification")
)

const subscriptionPeriod = 30 * 24 * time.Hour

// CreateSubscriptionCheckout opens a payment for a paid plan and returns the
// row carrying the Snap token + redirect URL.
func CreateSubscriptionCheckout(db *gorm.DB, userID uuid.UUID, plan subscriptionModel.Plan, name, email string) (*checkoutModel.PaymentModel, error) {
	amount, ok := configs.PlanPriceIDR(string(plan))
	if !ok || plan == subscriptionModel.PlanFree {
		return nil, ErrUnknownPlan
	}

	payment := &checkoutModel.PaymentModel{
		PaymentUserID:    userID,
		PaymentOrderID:   newOrderID(),
		PaymentPlan:      plan,
		PaymentAmountIDR: amount,
		PaymentCurrency:  "IDR",
		PaymentStatus:    checkoutModel.PaymentStatusInitiated,
	}
	if err := db.Create(payment).Error; err != nil {
		log.Println("[ERROR] failed to create payment:", err)
		return nil, err
	}

	token, redirectURL, err := GenerateSnapToken(payment, name, email)
	if err != nil {
		return nil, err
	}
	payment.PaymentSnapToken = &token
	payment.PaymentRedirectURL = &redirectURL
	payment.PaymentStatus = checkoutModel.PaymentStatusPending
	if err := db.Save(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// HandleMidtransNotification processes a gateway status callback. The
// signature_key must match before anything is touched; settlements activate
// the purchased plan for one period. Idempotent per order: a replayed
// settlement finds the payment already paid and changes nothing.
func HandleMidtransNotification(db *gorm.DB, body map[string]interface{}, serverKey string) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	statusCode, ok3 := body["status_code"].(string)
	grossAmount, ok4 := body["gross_amount"].(string)
	signature, ok5 := body["signature_key"].(string)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		log.Println("[ERROR] incomplete midtrans notification payload")
		return ErrInvalidNotification
	}

	if !verifyMidtransSignature(orderID, statusCode, grossAmount, serverKey, signature) {
		log.Println("[WARNING] midtrans notification rejected: bad signature_key")
		return ErrInvalidNotification
	}

	var payment checkoutModel.PaymentModel
	if err := db.Where("payment_order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("payment with order_id %s not found", orderID)
		}
		return err
	}

	switch status {
	case "capture", "settlement":
		if payment.PaymentStatus == checkoutModel.PaymentStatusPaid {
			return nil // replayed settlement
		}
		now := time.Now().UTC()
		payment.PaymentStatus = checkoutModel.PaymentStatusPaid
		payment.PaymentPaidAt = &now
		if err := db.Save(&payment).Error; err != nil {
			return err
		}
		return subscriptionService.Activate(db, payment.PaymentUserID, payment.PaymentPlan, orderID, now.Add(subscriptionPeriod))

	case "expire":
		payment.PaymentStatus = checkoutModel.PaymentStatusExpired
	case "cancel", "deny":
		payment.PaymentStatus = checkoutModel.PaymentStatusCanceled
	default:
		log.Println("[INFO] midtrans status not processed:", status)
		return nil
	}

	return db.Save(&payment).Error
}

// verifyMidtransSignature checks sha512(order_id + status_code + gross_amount
// + server_key) against the notification's signature_key.
func verifyMidtransSignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

func newOrderID() string {
	return fmt.Sprintf("SUB-%s-%s", time.Now().UTC().Format("20060102"), uuid.New().String()[:8])
}
