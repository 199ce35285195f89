package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanRankOrder(t *testing.T) {
	assert.Equal(t, 0, PlanFree.Rank())
	assert.Equal(t, 1, PlanBeginner.Rank())
	assert.Equal(t, 2, PlanPro.Rank())

	// Unknown values collapse to the free rank.
	assert.Equal(t, 0, Plan("enterprise").Rank())
	assert.Equal(t, 0, Plan("").Rank())
}

func TestHasAccessMatrix(t *testing.T) {
	cases := []struct {
		user     Plan
		required Plan
		want     bool
	}{
		{PlanFree, PlanFree, true},
		{PlanFree, PlanBeginner, false},
		{PlanFree, PlanPro, false},
		{PlanBeginner, PlanFree, true},
		{PlanBeginner, PlanBeginner, true},
		{PlanBeginner, PlanPro, false},
		{PlanPro, PlanFree, true},
		{PlanPro, PlanBeginner, true},
		{PlanPro, PlanPro, true},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, HasAccess(tc.user, tc.required),
			"user=%s required=%s", tc.user, tc.required)
	}
}

func TestParsePlan(t *testing.T) {
	p, ok := ParsePlan("pro")
	assert.True(t, ok)
	assert.Equal(t, PlanPro, p)

	p, ok = ParsePlan("  Beginner ")
	assert.True(t, ok)
	assert.Equal(t, PlanBeginner, p)

	_, ok = ParsePlan("platinum")
	assert.False(t, ok)

	_, ok = ParsePlan("")
	assert.False(t, ok)
}

func TestStatusFromProvider(t *testing.T) {
	assert.Equal(t, SubscriptionStatusActive, StatusFromProvider("active"))
	assert.Equal(t, SubscriptionStatusCanceled, StatusFromProvider("canceled"))
	assert.Equal(t, SubscriptionStatusPastDue, StatusFromProvider("past_due"))
	assert.Equal(t, SubscriptionStatusTrialing, StatusFromProvider("trialing"))

	// Provider statuses we do not track fall back to active.
	assert.Equal(t, SubscriptionStatusActive, StatusFromProvider("incomplete"))
}

func TestEffectivePlan(t *testing.T) {
	var nilSub *SubscriptionModel
	assert.Equal(t, PlanFree, nilSub.EffectivePlan())

	active := &SubscriptionModel{
		SubscriptionPlan:   PlanPro,
		SubscriptionStatus: SubscriptionStatusActive,
	}
	assert.Equal(t, PlanPro, active.EffectivePlan())

	for _, st := range []SubscriptionStatus{
		SubscriptionStatusCanceled,
		SubscriptionStatusPastDue,
		SubscriptionStatusTrialing,
		SubscriptionStatusInactive,
	} {
		sub := &SubscriptionModel{SubscriptionPlan: PlanPro, SubscriptionStatus: st}
		assert.Equalf(t, PlanFree, sub.EffectivePlan(), "status=%s", st)
	}

	// A corrupt plan value never grants access.
	weird := &SubscriptionModel{
		SubscriptionPlan:   Plan("platinum"),
		SubscriptionStatus: SubscriptionStatusActive,
	}
	assert.Equal(t, PlanFree, weird.EffectivePlan())
}
