package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GatewayEventStatus string

const (
	GatewayEventStatusReceived  GatewayEventStatus = "received"
	GatewayEventStatusProcessed GatewayEventStatus = "processed"
	GatewayEventStatusIgnored   GatewayEventStatus = "ignored"
	GatewayEventStatusFailed    GatewayEventStatus = "failed"
)

const (
	GatewayProviderStripe   = "stripe"
	GatewayProviderMidtrans = "midtrans"
)

// GatewayEventModel is the audit row for every inbound billing webhook
// delivery, stored with the raw payload before any processing.
type GatewayEventModel struct {
	GatewayEventID       uuid.UUID          `gorm:"column:gateway_event_id;type:uuid;primaryKey" json:"gateway_event_id"`
	GatewayEventProvider string             `gorm:"column:gateway_event_provider;type:varchar(20);not null" json:"gateway_event_provider"`
	GatewayEventType     *string            `gorm:"column:gateway_event_type;size:100" json:"gateway_event_type,omitempty"`
	GatewayEventExternalID *string          `gorm:"column:gateway_event_external_id;size:255;index" json:"gateway_event_external_id,omitempty"`
	GatewayEventPayload  datatypes.JSON     `gorm:"column:gateway_event_payload" json:"gateway_event_payload,omitempty"`
	GatewayEventStatus   GatewayEventStatus `gorm:"column:gateway_event_status;type:varchar(20);not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError    *string            `gorm:"column:gateway_event_error" json:"gateway_event_error,omitempty"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;autoCreateTime" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at,omitempty"`
}

func (GatewayEventModel) TableName() string { return "gateway_events" }

func (m *GatewayEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.GatewayEventID == uuid.Nil {
		m.GatewayEventID = uuid.New()
	}
	return nil
}
