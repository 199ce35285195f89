package dto

import (
	"time"

	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
)

// SubscriptionResponse is the authenticated "my subscription" view. Users
// without a subscription row still get a response with the free plan so the
// client never has to special-case 404.
type SubscriptionResponse struct {
	Plan             subscriptionModel.Plan               `json:"plan"`
	EffectivePlan    subscriptionModel.Plan               `json:"effective_plan"`
	Status           subscriptionModel.SubscriptionStatus `json:"status"`
	CurrentPeriodEnd *time.Time                           `json:"current_period_end,omitempty"`
}

func ToSubscriptionResponse(m *subscriptionModel.SubscriptionModel) SubscriptionResponse {
	if m == nil {
		return SubscriptionResponse{
			Plan:          subscriptionModel.PlanFree,
			EffectivePlan: subscriptionModel.PlanFree,
			Status:        subscriptionModel.SubscriptionStatusInactive,
		}
	}
	return SubscriptionResponse{
		Plan:             m.SubscriptionPlan,
		EffectivePlan:    m.EffectivePlan(),
		Status:           m.SubscriptionStatus,
		CurrentPeriodEnd: m.SubscriptionCurrentPeriodEnd,
	}
}
