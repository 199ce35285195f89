package dto

import checkoutModel "kursusku_backend/internals/features/billing/checkout/model"

type CreateCheckoutRequest struct {
	Plan string `json:"plan" validate:"required,oneof=beginner pro"`
}

type CheckoutResponse struct {
	PaymentOrderID   string `json:"payment_order_id"`
	PaymentPlan      string `json:"payment_plan"`
	PaymentAmountIDR int64  `json:"payment_amount_idr"`
	SnapToken        string `json:"snap_token"`
	RedirectURL      string `json:"redirect_url"`
}

func ToCheckoutResponse(p *checkoutModel.PaymentModel) CheckoutResponse {
	out := CheckoutResponse{
		PaymentOrderID:   p.PaymentOrderID,
		PaymentPlan:      string(p.PaymentPlan),
		PaymentAmountIDR: p.PaymentAmountIDR,
	}
	if p.PaymentSnapToken != nil {
		out.SnapToken = *p.PaymentSnapToken
	}
	if p.PaymentRedirectURL != nil {
		out.RedirectURL = *p.PaymentRedirectURL
	}
	return out
}
