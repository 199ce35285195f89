package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
)

// StatusFromProvider maps the billing provider's status vocabulary onto the
// local enum. Unknown provider statuses fall back to active — this mirrors
// the provider integration as shipped; see DESIGN.md before changing it.
func StatusFromProvider(providerStatus string) SubscriptionStatus {
	switch providerStatus {
	case "active":
		return SubscriptionStatusActive
	case "canceled":
		return SubscriptionStatusCanceled
	case "past_due":
		return SubscriptionStatusPastDue
	case "trialing":
		return SubscriptionStatusTrialing
	default:
		return SubscriptionStatusActive
	}
}

// SubscriptionModel is one row per user. It is written exclusively by the
// billing webhook handlers; in-app logic only ever reads it.
type SubscriptionModel struct {
	SubscriptionID     uuid.UUID          `gorm:"column:subscription_id;type:uuid;primaryKey" json:"subscription_id"`
	SubscriptionUserID uuid.UUID          `gorm:"column:subscription_user_id;type:uuid;not null;uniqueIndex:uq_subscriptions_user" json:"subscription_user_id"`
	SubscriptionPlan   Plan               `gorm:"column:subscription_plan;type:varchar(20);not null;default:'free'" json:"subscription_plan"`
	SubscriptionStatus SubscriptionStatus `gorm:"column:subscription_status;type:varchar(20);not null;default:'inactive'" json:"subscription_status"`

	// Provider-side identifiers. The external subscription ID is the
	// idempotency key for webhook upserts.
	SubscriptionCustomerID *string `gorm:"column:subscription_customer_id;size:255" json:"subscription_customer_id,omitempty"`
	SubscriptionExternalID *string `gorm:"column:subscription_external_id;size:255;uniqueIndex:uq_subscriptions_external" json:"subscription_external_id,omitempty"`
	SubscriptionPriceID    *string `gorm:"column:subscription_price_id;size:255" json:"subscription_price_id,omitempty"`

	SubscriptionCurrentPeriodEnd *time.Time `gorm:"column:subscription_current_period_end" json:"subscription_current_period_end,omitempty"`

	CreatedAt time.Time `gorm:"column:subscription_created_at;autoCreateTime" json:"subscription_created_at"`
	UpdatedAt time.Time `gorm:"column:subscription_updated_at;autoUpdateTime" json:"subscription_updated_at"`
}

func (SubscriptionModel) TableName() string { return "subscriptions" }

func (m *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubscriptionID == uuid.Nil {
		m.SubscriptionID = uuid.New()
	}
	return nil
}

// EffectivePlan is the plan used for access control: the subscription's plan
// only while the subscription is active, otherwise free.
func (m *SubscriptionModel) EffectivePlan() Plan {
	if m == nil || m.SubscriptionStatus != SubscriptionStatusActive {
		return PlanFree
	}
	if _, ok := ParsePlan(string(m.SubscriptionPlan)); !ok {
		return PlanFree
	}
	return m.SubscriptionPlan
}
