package dto

// Minimal projections of the Stripe event envelope — only the fields the
// webhook handlers actually read.

type StripeEvent struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data StripeEventData `json:"data"`
}

type StripeEventData struct {
	Object StripeEventObject `json:"object"`
}

// StripeEventObject is the union of the session / subscription / invoice
// fields used across the handled event types.
type StripeEventObject struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`

	// checkout.session.completed
	ClientReferenceID string            `json:"client_reference_id"`
	Subscription      string            `json:"subscription"`
	Metadata          map[string]string `json:"metadata"`

	// customer.subscription.*
	Status           string              `json:"status"`
	CurrentPeriodEnd int64               `json:"current_period_end"`
	Items            StripeItemList      `json:"items"`
}

type StripeItemList struct {
	Data []StripeItem `json:"data"`
}

type StripeItem struct {
	Price StripePrice `json:"price"`
}

type StripePrice struct {
	ID string `json:"id"`
}

// PriceID picks the price identifier out of whichever shape the event uses:
// subscription items first, then checkout session metadata.
func (o StripeEventObject) PriceID() string {
	if len(o.Items.Data) > 0 && o.Items.Data[0].Price.ID != "" {
		return o.Items.Data[0].Price.ID
	}
	if o.Metadata != nil {
		return o.Metadata["price_id"]
	}
	return ""
}
