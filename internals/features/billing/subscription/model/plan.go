package model

import "strings"

// Plan is the subscription tier. The three tiers are totally ordered:
// free < beginner < pro. Courses carry a required plan and a user's
// effective plan is compared against it with HasAccess.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanBeginner Plan = "beginner"
	PlanPro      Plan = "pro"
)

// Rank gives the position of a plan in the tier order.
func (p Plan) Rank() int {
	switch p {
	case PlanBeginner:
		return 1
	case PlanPro:
		return 2
	default:
		return 0
	}
}

// HasAccess reports whether a user on userPlan may access content that
// requires requiredPlan.
func HasAccess(userPlan, requiredPlan Plan) bool {
	return userPlan.Rank() >= requiredPlan.Rank()
}

// ParsePlan maps a plan code to the closed enum. Unknown codes are rejected
// so free-form strings never leak into access control.
func ParsePlan(code string) (Plan, bool) {
	switch Plan(strings.ToLower(strings.TrimSpace(code))) {
	case PlanFree:
		return PlanFree, true
	case PlanBeginner:
		return PlanBeginner, true
	case PlanPro:
		return PlanPro, true
	default:
		return "", false
	}
}
