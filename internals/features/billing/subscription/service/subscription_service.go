package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
)

// EffectivePlan resolves the plan used for access control. A nil user
// (anonymous) and a missing subscription row are both the normal free state,
// not errors.
func EffectivePlan(db *gorm.DB, userID *uuid.UUID) (subscriptionModel.Plan, error) {
	if userID == nil || *userID == uuid.Nil {
		return subscriptionModel.PlanFree, nil
	}

	var sub subscriptionModel.SubscriptionModel
	err := db.Where("subscription_user_id = ?", *userID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return subscriptionModel.PlanFree, nil
		}
		return subscriptionModel.PlanFree, err
	}
	return sub.EffectivePlan(), nil
}

// GetByUserID returns the user's subscription row, or nil without error when
// none exists yet.
func GetByUserID(db *gorm.DB, userID uuid.UUID) (*subscriptionModel.SubscriptionModel, error) {
	var sub subscriptionModel.SubscriptionModel
	err := db.Where("subscription_user_id = ?", userID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// UpsertForUser writes the subscription keyed on the user's unique row.
// Webhook deliveries are at-least-once and possibly out of order, so this
// must be a single conflict-upsert rather than read-modify-write.
func UpsertForUser(db *gorm.DB, sub *subscriptionModel.SubscriptionModel) error {
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "subscription_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"subscription_plan",
			"subscription_status",
			"subscription_customer_id",
			"subscription_external_id",
			"subscription_price_id",
			"subscription_current_period_end",
			"subscription_updated_at",
		}),
	}).Create(sub).Error
	if err != nil {
		log.Println("[ERROR] subscription upsert failed:", err)
	}
	return err
}

// FindByExternalID looks a subscription up by the provider's subscription ID.
func FindByExternalID(db *gorm.DB, externalID string) (*subscriptionModel.SubscriptionModel, error) {
	var sub subscriptionModel.SubscriptionModel
	err := db.Where("subscription_external_id = ?", externalID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// Activate sets a user's subscription to an active paid plan. Used by the
// checkout settlement path; Stripe events go through UpsertForUser directly.
func Activate(db *gorm.DB, userID uuid.UUID, plan subscriptionModel.Plan, externalID string, periodEnd time.Time) error {
	sub := &subscriptionModel.SubscriptionModel{
		SubscriptionUserID:           userID,
		SubscriptionPlan:             plan,
		SubscriptionStatus:           subscriptionModel.SubscriptionStatusActive,
		SubscriptionExternalID:       &externalID,
		SubscriptionCurrentPeriodEnd: &periodEnd,
	}
	return UpsertForUser(db, sub)
}
