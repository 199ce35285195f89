package service

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
	subscriptionService "kursusku_backend/internals/features/billing/subscription/service"
	webhookDTO "kursusku_backend/internals/features/billing/webhook/dto"
	webhookModel "kursusku_backend/internals/features/billing/webhook/model"
)

// HandleStripeDelivery verifies the signature, records the delivery and
// applies the event. Signature failures reject outright: no audit row, no
// state change.
func HandleStripeDelivery(db *gorm.DB, payload []byte, sigHeader, secret string) error {
	if err := VerifyStripeSignature(payload, sigHeader, secret, DefaultSignatureTolerance); err != nil {
		return err
	}

	var evt webhookDTO.StripeEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("malformed event payload: %w", err)
	}

	audit := &webhookModel.GatewayEventModel{
		GatewayEventProvider:   webhookModel.GatewayProviderStripe,
		GatewayEventType:       &evt.Type,
		GatewayEventExternalID: &evt.ID,
		GatewayEventPayload:    payload,
	}
	if err := db.Create(audit).Error; err != nil {
		log.Println("[ERROR] failed to store gateway event:", err)
		return err
	}

	status, applyErr := ApplyStripeEvent(db, &evt)
	finishAudit(db, audit, status, applyErr)
	return applyErr
}

// ApplyStripeEvent dispatches one parsed event. Deliveries are at-least-once
// and possibly out of order, so every branch is an idempotent upsert keyed on
// the provider's stable identifiers.
func ApplyStripeEvent(db *gorm.DB, evt *webhookDTO.StripeEvent) (webhookModel.GatewayEventStatus, error) {
	switch evt.Type {
	case "checkout.session.completed":
		return applyCheckoutCompleted(db, evt.Data.Object)
	case "customer.subscription.updated":
		return applySubscriptionUpdated(db, evt.Data.Object)
	case "customer.subscription.deleted":
		return applySubscriptionDeleted(db, evt.Data.Object)
	case "invoice.payment_failed":
		return applyPaymentFailed(db, evt.Data.Object)
	default:
		log.Println("[INFO] unhandled stripe event type:", evt.Type)
		return webhookModel.GatewayEventStatusIgnored, nil
	}
}

func applyCheckoutCompleted(db *gorm.DB, obj webhookDTO.StripeEventObject) (webhookModel.GatewayEventStatus, error) {
	userID, err := uuid.Parse(obj.ClientReferenceID)
	if err != nil {
		log.Println("[WARNING] checkout session without a usable client_reference_id")
		return webhookModel.GatewayEventStatusIgnored, nil
	}

	plan, ok := planFromPrice(obj.PriceID())
	if !ok {
		log.Println("[WARNING] checkout session references unknown price:", obj.PriceID())
		return webhookModel.GatewayEventStatusIgnored, nil
	}

	sub := &subscriptionModel.SubscriptionModel{
		SubscriptionUserID: userID,
		SubscriptionPlan:   plan,
		SubscriptionStatus: subscriptionModel.SubscriptionStatusActive,
	}
	if obj.Customer != "" {
		sub.SubscriptionCustomerID = &obj.Customer
	}
	if obj.Subscription != "" {
		sub.SubscriptionExternalID = &obj.Subscription
	}
	if p := obj.PriceID(); p != "" {
		sub.SubscriptionPriceID = &p
	}
	if err := subscriptionService.UpsertForUser(db, sub); err != nil {
		return webhookModel.GatewayEventStatusFailed, err
	}
	return webhookModel.GatewayEventStatusProcessed, nil
}

func applySubscriptionUpdated(db *gorm.DB, obj webhookDTO.StripeEventObject) (webhookModel.GatewayEventStatus, error) {
	existing, err := subscriptionService.FindByExternalID(db, obj.ID)
	if err != nil {
		return webhookModel.GatewayEventStatusFailed, err
	}
	if existing == nil {
		log.Println("[WARNING] subscription.updated for unknown subscription:", obj.ID)
		return webhookModel.GatewayEventStatusIgnored, nil
	}

	existing.SubscriptionStatus = subscriptionModel.StatusFromProvider(obj.Status)
	if plan, ok := planFromPrice(obj.PriceID()); ok {
		existing.SubscriptionPlan = plan
	}
	if p := obj.PriceID(); p != "" {
		existing.SubscriptionPriceID = &p
	}
	if obj.CurrentPeriodEnd > 0 {
		end := time.Unix(obj.CurrentPeriodEnd, 0).UTC()
		existing.SubscriptionCurrentPeriodEnd = &end
	}
	if err := subscriptionService.UpsertForUser(db, existing); err != nil {
		return webhookModel.GatewayEventStatusFailed, err
	}
	return webhookModel.GatewayEventStatusProcessed, nil
}

func applySubscriptionDeleted(db *gorm.DB, obj webhookDTO.StripeEventObject) (webhookModel.GatewayEventStatus, error) {
	existing, err := subscriptionService.FindByExternalID(db, obj.ID)
	if err != nil {
		return webhookModel.GatewayEventStatusFailed, err
	}
	if existing == nil {
		// Redelivery for an already-removed or never-known subscription.
		return webhookModel.GatewayEventStatusIgnored, nil
	}

	existing.SubscriptionStatus = subscriptionModel.SubscriptionStatusCanceled
	existing.SubscriptionPlan = subscriptionModel.PlanFree
	if err := subscriptionService.UpsertForUser(db, existing); err != nil {
		return webhookModel.GatewayEventStatusFailed, err
	}
	return webhookModel.GatewayEventStatusProcessed, nil
}

func applyPaymentFailed(db *gorm.DB, obj webhookDTO.StripeEventObject) (webhookModel.GatewayEventStatus, error) {
	if obj.Subscription == "" {
		return webhookModel.GatewayEventStatusIgnored, nil
	}
	existing, err := subscriptionService.FindByExternalID(db, obj.Subscription)
	if err != nil {
		return webhookModel.GatewayEventStatusFailed, err
	}
	if existing == nil {
		return webhookModel.GatewayEventStatusIgnored, nil
	}

	existing.SubscriptionStatus = subscriptionModel.SubscriptionStatusPastDue
	if err := subscriptionService.UpsertForUser(db, existing); err != nil {
		return webhookModel.GatewayEventStatusFailed, err
	}
	return webhookModel.GatewayEventStatusProcessed, nil
}

func planFromPrice(priceID string) (subscriptionModel.Plan, bool) {
	if priceID == "" {
		return "", false
	}
	code, ok := configs.PlanCodeForPriceID(priceID)
	if !ok {
		return "", false
	}
	return subscriptionModel.ParsePlan(code)
}

func finishAudit(db *gorm.DB, audit *webhookModel.GatewayEventModel, status webhookModel.GatewayEventStatus, applyErr error) {
	now := time.Now().UTC()
	audit.GatewayEventStatus = status
	audit.GatewayEventProcessedAt = &now
	if applyErr != nil {
		msg := applyErr.Error()
		audit.GatewayEventError = &msg
	}
	if err := db.Save(audit).Error; err != nil {
		log.Println("[ERROR] failed to update gateway event:", err)
	}
}
