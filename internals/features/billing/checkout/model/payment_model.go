package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
)

type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "initiated"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCanceled  PaymentStatus = "canceled"
	PaymentStatusExpired   PaymentStatus = "expired"
)

// PaymentModel is one checkout attempt for a subscription plan through the
// local payment gateway. The order ID is the idempotency key for gateway
// notifications.
type PaymentModel struct {
	PaymentID      uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentUserID  uuid.UUID `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`
	PaymentOrderID string    `gorm:"column:payment_order_id;size:64;not null;uniqueIndex:uq_payments_order" json:"payment_order_id"`

	PaymentPlan      subscriptionModel.Plan `gorm:"column:payment_plan;type:varchar(20);not null" json:"payment_plan"`
	PaymentAmountIDR int64                  `gorm:"column:payment_amount_idr;not null;check:payment_amount_idr >= 0" json:"payment_amount_idr"`
	PaymentCurrency  string                 `gorm:"column:payment_currency;type:varchar(8);not null;default:IDR" json:"payment_currency"`
	PaymentStatus    PaymentStatus          `gorm:"column:payment_status;type:varchar(20);not null;default:'initiated'" json:"payment_status"`

	PaymentSnapToken   *string `gorm:"column:payment_snap_token;size:255" json:"payment_snap_token,omitempty"`
	PaymentRedirectURL *string `gorm:"column:payment_redirect_url;size:2000" json:"payment_redirect_url,omitempty"`

	PaymentPaidAt *time.Time        `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`
	PaymentMeta   datatypes.JSONMap `gorm:"column:payment_meta" json:"payment_meta,omitempty"`

	CreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	UpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}

func (m *PaymentModel) IsOpen() bool {
	switch m.PaymentStatus {
	case PaymentStatusInitiated, PaymentStatusPending:
		return true
	default:
		return false
	}
}
