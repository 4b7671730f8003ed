package bot

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fitness-planner/internal/model"
	"fitness-planner/internal/session"
)

const (
	callbackSubscribePrefix = "plan:"
	callbackPay             = "pay:confirm"
)

func (b *Bot) sendPlans(chatID int64) error {
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	state := s.Snapshot()
	return b.sendWithReplyMarkup(chatID, formatPlans(state.Plan, state.PendingPlan), planKeyboard(state.Plan))
}

func (b *Bot) handleSubscribe(chatID int64, args string) error {
	if strings.TrimSpace(args) == "" {
		return b.sendPlans(chatID)
	}
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	return b.subscribe(chatID, s, model.Plan(args))
}

func (b *Bot) subscribe(chatID int64, s *session.Session, plan model.Plan) error {
	event, err := s.Dispatch(session.Subscribe{Plan: plan})
	switch {
	case errors.Is(err, model.ErrValidationRejected):
		return b.sendText(chatID, "Unknown plan. Choose one of: free, basic, premium.")
	case errors.Is(err, model.ErrAlreadyInState):
		return b.sendText(chatID, fmt.Sprintf("You're already on the %s plan.", s.Snapshot().Plan.Title()))
	case err != nil:
		return err
	}
	info := event.Plan.Info()
	text := fmt.Sprintf("💳 <b>%s plan</b> · $%.2f/month\nConfirm the payment with /pay or the button below.", info.Plan.Title(), info.Price)
	return b.sendWithReplyMarkup(chatID, text, payKeyboard())
}

func (b *Bot) handlePay(chatID int64) error {
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	event, err := s.Dispatch(session.ConfirmPayment{})
	if errors.Is(err, model.ErrValidationRejected) {
		return b.sendText(chatID, "Nothing to pay for. Pick a plan with /subscribe.")
	}
	if err != nil {
		return err
	}
	return b.sendText(chatID, fmt.Sprintf("🎉 Successfully upgraded to the %s plan!", event.Plan.Title()))
}

func (b *Bot) handleUnsubscribe(chatID int64) error {
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	_, err = s.Dispatch(session.CancelSubscription{})
	if errors.Is(err, model.ErrAlreadyInState) {
		return b.sendText(chatID, "You're on the free plan already.")
	}
	if err != nil {
		return err
	}
	return b.sendText(chatID, "Your subscription was cancelled. You've been moved to the free plan.")
}

func (b *Bot) handleSubscriptionCallback(cb *tgbotapi.CallbackQuery) error {
	chatID := cb.Message.Chat.ID
	b.ackCallback(cb, "")
	if cb.Data == callbackPay {
		return b.handlePay(chatID)
	}
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	return b.subscribe(chatID, s, model.Plan(strings.TrimPrefix(cb.Data, callbackSubscribePrefix)))
}

func formatPlans(current, pending model.Plan) string {
	var builder strings.Builder
	builder.WriteString("💼 <b>Plans</b>\n")
	for _, info := range model.Plans {
		marker := "▫️"
		switch info.Plan {
		case current:
			marker = "✅"
		case pending:
			marker = "💳"
		}
		builder.WriteString(fmt.Sprintf("\n%s <b>%s</b> · $%.2f/month\n", marker, info.Plan.Title(), info.Price))
		for _, feature := range info.Features {
			builder.WriteString("   • " + feature + "\n")
		}
	}
	if pending != "" {
		builder.WriteString(fmt.Sprintf("\nAwaiting payment for %s: /pay", pending.Title()))
	}
	return strings.TrimSpace(builder.String())
}
