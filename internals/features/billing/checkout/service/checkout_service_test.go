package service

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	checkoutModel "kursusku_backend/internals/features/billing/checkout/model"
	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
	subscriptionService "kursusku_backend/internals/features/billing/subscription/service"
)

const testServerKey = "SB-Mid-server-test"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&checkoutModel.PaymentModel{},
		&subscriptionModel.SubscriptionModel{},
	))
	return db
}

func seedPendingPayment(t *testing.T, db *gorm.DB, userID uuid.UUID, plan subscriptionModel.Plan) *checkoutModel.PaymentModel {
	t.Helper()
	payment := &checkoutModel.PaymentModel{
		PaymentUserID:    userID,
		PaymentOrderID:   newOrderID(),
		PaymentPlan:      plan,
		PaymentAmountIDR: 199000,
		PaymentCurrency:  "IDR",
		PaymentStatus:    checkoutModel.PaymentStatusPending,
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

func signedNotification(orderID, status, statusCode, grossAmount string) map[string]interface{} {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + testServerKey))
	return map[string]interface{}{
		"order_id":           orderID,
		"transaction_status": status,
		"status_code":        statusCode,
		"gross_amount":       grossAmount,
		"signature_key":      hex.EncodeToString(sum[:]),
	}
}

func TestVerifyMidtransSignature(t *testing.T) {
	sum := sha512.Sum512([]byte("ORDER-1" + "200" + "199000.00" + testServerKey))
	good := hex.EncodeToString(sum[:])

	require.True(t, verifyMidtransSignature("ORDER-1", "200", "199000.00", testServerKey, good))
	require.False(t, verifyMidtransSignature("ORDER-2", "200", "199000.00", testServerKey, good))
	require.False(t, verifyMidtransSignature("ORDER-1", "200", "199000.00", "other-key", good))
	require.False(t, verifyMidtransSignature("ORDER-1", "200", "199000.00", testServerKey, "deadbeef"))
}

func TestHandleMidtransNotification_RejectsBadSignature(t *testing.T) {
	db := newTestDB(t)
	payment := seedPendingPayment(t, db, uuid.New(), subscriptionModel.PlanPro)

	body := signedNotification(payment.PaymentOrderID, "settlement", "200", "199000.00")
	body["signature_key"] = "forged"

	err := HandleMidtransNotification(db, body, testServerKey)
	require.ErrorIs(t, err, ErrInvalidNotification)

	var reloaded checkoutModel.PaymentModel
	require.NoError(t, db.Where("payment_order_id = ?", payment.PaymentOrderID).First(&reloaded).Error)
	require.Equal(t, checkoutModel.PaymentStatusPending, reloaded.PaymentStatus)
}

func TestHandleMidtransNotification_RejectsIncompletePayload(t *testing.T) {
	db := newTestDB(t)

	err := HandleMidtransNotification(db, map[string]interface{}{
		"order_id": "ORDER-1",
	}, testServerKey)
	require.ErrorIs(t, err, ErrInvalidNotification)
}

func TestHandleMidtransNotification_SettlementActivatesPlan(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	payment := seedPendingPayment(t, db, userID, subscriptionModel.PlanPro)

	body := signedNotification(payment.PaymentOrderID, "settlement", "200", "199000.00")
	require.NoError(t, HandleMidtransNotification(db, body, testServerKey))

	var reloaded checkoutModel.PaymentModel
	require.NoError(t, db.Where("payment_order_id = ?", payment.PaymentOrderID).First(&reloaded).Error)
	require.Equal(t, checkoutModel.PaymentStatusPaid, reloaded.PaymentStatus)
	require.NotNil(t, reloaded.PaymentPaidAt)

	sub, err := subscriptionService.GetByUserID(db, userID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	require.Equal(t, subscriptionModel.PlanPro, sub.SubscriptionPlan)
	require.Equal(t, subscriptionModel.SubscriptionStatusActive, sub.SubscriptionStatus)
	require.NotNil(t, sub.SubscriptionCurrentPeriodEnd)

	// Replayed settlement is a no-op.
	firstPaidAt := *reloaded.PaymentPaidAt
	require.NoError(t, HandleMidtransNotification(db, body, testServerKey))
	require.NoError(t, db.Where("payment_order_id = ?", payment.PaymentOrderID).First(&reloaded).Error)
	require.Equal(t, firstPaidAt, *reloaded.PaymentPaidAt)
}

func TestHandleMidtransNotification_ExpireAndCancel(t *testing.T) {
	db := newTestDB(t)

	expired := seedPendingPayment(t, db, uuid.New(), subscriptionModel.PlanBeginner)
	body := signedNotification(expired.PaymentOrderID, "expire", "407", "99000.00")
	require.NoError(t, HandleMidtransNotification(db, body, testServerKey))

	var reloaded checkoutModel.PaymentModel
	require.NoError(t, db.Where("payment_order_id = ?", expired.PaymentOrderID).First(&reloaded).Error)
	require.Equal(t, checkoutModel.PaymentStatusExpired, reloaded.PaymentStatus)

	canceled := seedPendingPayment(t, db, uuid.New(), subscriptionModel.PlanBeginner)
	body = signedNotification(canceled.PaymentOrderID, "deny", "202", "99000.00")
	require.NoError(t, HandleMidtransNotification(db, body, testServerKey))

	var reloadedCanceled checkoutModel.PaymentModel
	require.NoError(t, db.Where("payment_order_id = ?", canceled.PaymentOrderID).First(&reloadedCanceled).Error)
	require.Equal(t, checkoutModel.PaymentStatusCanceled, reloadedCanceled.PaymentStatus)

	// No subscription was created for either.
	var cnt int64
	require.NoError(t, db.Model(&subscriptionModel.SubscriptionModel{}).Count(&cnt).Error)
	require.EqualValues(t, 0, cnt)
}

func TestHandleMidtransNotification_UnknownOrder(t *testing.T) {
	db := newTestDB(t)

	body := signedNotification("SUB-00000000-deadbeef", "settlement", "200", "199000.00")
	err := HandleMidtransNotification(db, body, testServerKey)
	require.Error(t, err)
}
