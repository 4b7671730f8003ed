package session

import (
	"fmt"

	"fitness-planner/internal/model"
)

func subscribe(s State, requested model.Plan) (State, error) {
	plan, ok := model.ParsePlan(string(requested))
	if !ok {
		return s, fmt.Errorf("unknown plan %q: %w", requested, model.ErrValidationRejected)
	}
	if plan == s.Plan {
		return s, fmt.Errorf("already subscribed to the %s plan: %w", plan, model.ErrAlreadyInState)
	}
	next := s
	next.PendingPlan = plan
	return next, nil
}

func confirmPayment(s State) (State, error) {
	if s.PendingPlan == "" {
		return s, fmt.Errorf("no plan awaiting payment: %w", model.ErrValidationRejected)
	}
	next := s
	next.Plan = s.PendingPlan
	next.PendingPlan = ""
	return next, nil
}

func cancelSubscription(s State) (State, error) {
	if s.Plan == model.PlanFree {
		return s, fmt.Errorf("already on the free plan: %w", model.ErrAlreadyInState)
	}
	next := s
	next.Plan = model.PlanFree
	next.PendingPlan = ""
	return next, nil
}
