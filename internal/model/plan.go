package model

import "strings"

// Plan is a subscription tier.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
)

// PlanInfo describes the price and features of a plan.
type PlanInfo struct {
	Plan     Plan
	Price    float64
	Features []string
}

// Plans is the catalogue in upgrade order.
var Plans = []PlanInfo{
	{Plan: PlanFree, Price: 0, Features: []string{"Basic activity tracking", "Limited analytics"}},
	{Plan: PlanBasic, Price: 9.99, Features: []string{"Advanced activity tracking", "Basic analytics", "Personalized insights"}},
	{Plan: PlanPremium, Price: 19.99, Features: []string{"Advanced activity tracking", "Detailed analytics", "Personalized insights", "Coach access"}},
}

func ParsePlan(raw string) (Plan, bool) {
	value := Plan(strings.ToLower(strings.TrimSpace(raw)))
	for _, info := range Plans {
		if info.Plan == value {
			return value, true
		}
	}
	return "", false
}

func (p Plan) Info() PlanInfo {
	for _, info := range Plans {
		if info.Plan == p {
			return info
		}
	}
	return PlanInfo{Plan: p}
}

func (p Plan) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}
