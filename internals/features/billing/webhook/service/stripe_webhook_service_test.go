package service

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kursusku_backend/internals/configs"
	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
	subscriptionService "kursusku_backend/internals/features/billing/subscription/service"
	webhookDTO "kursusku_backend/internals/features/billing/webhook/dto"
	webhookModel "kursusku_backend/internals/features/billing/webhook/model"
)

const testSecret = "whsec_test"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&subscriptionModel.SubscriptionModel{},
		&webhookModel.GatewayEventModel{},
	))
	configs.SetPricePlanMap(map[string]string{
		"price_beginner": "beginner",
		"price_pro":      "pro",
	})
	return db
}

func checkoutCompletedPayload(t *testing.T, userID uuid.UUID, priceID, subID string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":   "evt_" + uuid.NewString()[:8],
		"type": "checkout.session.completed",
		"data": map[string]any{
			"object": map[string]any{
				"id":                  "cs_test",
				"customer":            "cus_test",
				"client_reference_id": userID.String(),
				"subscription":        subID,
				"metadata":            map[string]string{"price_id": priceID},
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func subscriptionEventPayload(t *testing.T, eventType, subID, status, priceID string, periodEnd int64) []byte {
	t.Helper()
	obj := map[string]any{
		"id":     subID,
		"status": status,
	}
	if priceID != "" {
		obj["items"] = map[string]any{
			"data": []map[string]any{{"price": map[string]any{"id": priceID}}},
		}
	}
	if periodEnd > 0 {
		obj["current_period_end"] = periodEnd
	}
	payload, err := json.Marshal(map[string]any{
		"id":   "evt_" + uuid.NewString()[:8],
		"type": eventType,
		"data": map[string]any{"object": obj},
	})
	require.NoError(t, err)
	return payload
}

func TestVerifyStripeSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := SignStripePayload(payload, testSecret, time.Now())

	require.NoError(t, VerifyStripeSignature(payload, header, testSecret, DefaultSignatureTolerance))

	// Tampered payload.
	require.ErrorIs(t,
		VerifyStripeSignature([]byte(`{"id":"evt_2"}`), header, testSecret, DefaultSignatureTolerance),
		ErrInvalidSignature)

	// Wrong secret.
	require.ErrorIs(t,
		VerifyStripeSignature(payload, header, "whsec_other", DefaultSignatureTolerance),
		ErrInvalidSignature)

	// Missing or garbage header.
	require.ErrorIs(t, VerifyStripeSignature(payload, "", testSecret, DefaultSignatureTolerance), ErrInvalidSignature)
	require.ErrorIs(t, VerifyStripeSignature(payload, "v1=zz", testSecret, DefaultSignatureTolerance), ErrInvalidSignature)

	// Stale timestamp fails with a tolerance, passes without one.
	stale := SignStripePayload(payload, testSecret, time.Now().Add(-time.Hour))
	require.ErrorIs(t, VerifyStripeSignature(payload, stale, testSecret, DefaultSignatureTolerance), ErrInvalidSignature)
	require.NoError(t, VerifyStripeSignature(payload, stale, testSecret, 0))
}

func TestHandleStripeDelivery_RejectsBadSignatureWithoutAudit(t *testing.T) {
	db := newTestDB(t)
	payload := checkoutCompletedPayload(t, uuid.New(), "price_pro", "sub_x")

	err := HandleStripeDelivery(db, payload, "t=1,v1=bad", testSecret)
	require.ErrorIs(t, err, ErrInvalidSignature)

	var cnt int64
	require.NoError(t, db.Model(&webhookModel.GatewayEventModel{}).Count(&cnt).Error)
	require.EqualValues(t, 0, cnt)
}

func TestHandleStripeDelivery_CheckoutCompletedActivatesPlan(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	payload := checkoutCompletedPayload(t, userID, "price_pro", "sub_abc")
	header := SignStripePayload(payload, testSecret, time.Now())

	require.NoError(t, HandleStripeDelivery(db, payload, header, testSecret))

	sub, err := subscriptionService.GetByUserID(db, userID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	require.Equal(t, subscriptionModel.PlanPro, sub.SubscriptionPlan)
	require.Equal(t, subscriptionModel.SubscriptionStatusActive, sub.SubscriptionStatus)
	require.NotNil(t, sub.SubscriptionExternalID)
	require.Equal(t, "sub_abc", *sub.SubscriptionExternalID)

	var audit webhookModel.GatewayEventModel
	require.NoError(t, db.First(&audit).Error)
	require.Equal(t, webhookModel.GatewayEventStatusProcessed, audit.GatewayEventStatus)
	require.Equal(t, webhookModel.GatewayProviderStripe, audit.GatewayEventProvider)
	require.NotNil(t, audit.GatewayEventProcessedAt)
}

func TestApplyStripeEvent_UnknownPriceIgnored(t *testing.T) {
	db := newTestDB(t)
	payload := checkoutCompletedPayload(t, uuid.New(), "price_mystery", "sub_x")

	var evt webhookDTO.StripeEvent
	require.NoError(t, json.Unmarshal(payload, &evt))

	status, err := ApplyStripeEvent(db, &evt)
	require.NoError(t, err)
	require.Equal(t, webhookModel.GatewayEventStatusIgnored, status)

	var cnt int64
	require.NoError(t, db.Model(&subscriptionModel.SubscriptionModel{}).Count(&cnt).Error)
	require.EqualValues(t, 0, cnt)
}

func TestApplyStripeEvent_SubscriptionUpdated(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	require.NoError(t, subscriptionService.Activate(db, userID, subscriptionModel.PlanBeginner, "sub_upd", time.Now()))

	periodEnd := time.Now().Add(30 * 24 * time.Hour).Unix()
	payload := subscriptionEventPayload(t, "customer.subscription.updated", "sub_upd", "past_due", "price_pro", periodEnd)

	var evt webhookDTO.StripeEvent
	require.NoError(t, json.Unmarshal(payload, &evt))

	status, err := ApplyStripeEvent(db, &evt)
	require.NoError(t, err)
	require.Equal(t, webhookModel.GatewayEventStatusProcessed, status)

	sub, err := subscriptionService.GetByUserID(db, userID)
	require.NoError(t, err)
	require.Equal(t, subscriptionModel.SubscriptionStatusPastDue, sub.SubscriptionStatus)
	require.Equal(t, subscriptionModel.PlanPro, sub.SubscriptionPlan)
	require.NotNil(t, sub.SubscriptionCurrentPeriodEnd)
	require.Equal(t, periodEnd, sub.SubscriptionCurrentPeriodEnd.Unix())
}

func TestApplyStripeEvent_UnknownProviderStatusFallsBackToActive(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	require.NoError(t, subscriptionService.Activate(db, userID, subscriptionModel.PlanBeginner, "sub_odd", time.Now()))

	payload := subscriptionEventPayload(t, "customer.subscription.updated", "sub_odd", "incomplete_expired", "", 0)

	var evt webhookDTO.StripeEvent
	require.NoError(t, json.Unmarshal(payload, &evt))

	_, err := ApplyStripeEvent(db, &evt)
	require.NoError(t, err)

	sub, err := subscriptionService.GetByUserID(db, userID)
	require.NoError(t, err)
	require.Equal(t, subscriptionModel.SubscriptionStatusActive, sub.SubscriptionStatus)
}

func TestApplyStripeEvent_SubscriptionDeletedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	require.NoError(t, subscriptionService.Activate(db, userID, subscriptionModel.PlanPro, "sub_del", time.Now()))

	payload := subscriptionEventPayload(t, "customer.subscription.deleted", "sub_del", "canceled", "", 0)

	var evt webhookDTO.StripeEvent
	require.NoError(t, json.Unmarshal(payload, &evt))

	status, err := ApplyStripeEvent(db, &evt)
	require.NoError(t, err)
	require.Equal(t, webhookModel.GatewayEventStatusProcessed, status)

	sub, err := subscriptionService.GetByUserID(db, userID)
	require.NoError(t, err)
	require.Equal(t, subscriptionModel.SubscriptionStatusCanceled, sub.SubscriptionStatus)
	require.Equal(t, subscriptionModel.PlanFree, sub.SubscriptionPlan)

	// Redelivery after the cancel state: no error, nothing changes again.
	status, err = ApplyStripeEvent(db, &evt)
	require.NoError(t, err)
	require.Equal(t, webhookModel.GatewayEventStatusProcessed, status)
}

func TestApplyStripeEvent_PaymentFailedMarksPastDue(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	require.NoError(t, subscriptionService.Activate(db, userID, subscriptionModel.PlanBeginner, "sub_pay", time.Now()))

	payload, err := json.Marshal(map[string]any{
		"id":   "evt_fail",
		"type": "invoice.payment_failed",
		"data": map[string]any{
			"object": map[string]any{
				"id":           "in_test",
				"subscription": "sub_pay",
			},
		},
	})
	require.NoError(t, err)

	var evt webhookDTO.StripeEvent
	require.NoError(t, json.Unmarshal(payload, &evt))

	status, err := ApplyStripeEvent(db, &evt)
	require.NoError(t, err)
	require.Equal(t, webhookModel.GatewayEventStatusProcessed, status)

	sub, err := subscriptionService.GetByUserID(db, userID)
	require.NoError(t, err)
	require.Equal(t, subscriptionModel.SubscriptionStatusPastDue, sub.SubscriptionStatus)
}

func TestApplyStripeEvent_UnhandledTypeIgnored(t *testing.T) {
	db := newTestDB(t)

	evt := &webhookDTO.StripeEvent{ID: "evt_x", Type: "customer.created"}
	status, err := ApplyStripeEvent(db, evt)
	require.NoError(t, err)
	require.Equal(t, webhookModel.GatewayEventStatusIgnored, status)
}
