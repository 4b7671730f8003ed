package bot

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fitness-planner/internal/model"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelReminders),
			tgbotapi.NewKeyboardButton(menuLabelChallenges),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelGoal),
			tgbotapi.NewKeyboardButton(menuLabelReport),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelActive),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelDialog)),
	)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true
	return keyboard
}

// dayPickerKeyboard shows every weekday with a check mark on the selected ones.
func dayPickerKeyboard(selected []model.Weekday) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, day := range model.Week {
		label := string(day)
		if slices.Contains(selected, day) {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, callbackDayPrefix+string(day)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("💾 Save", callbackReminderSave),
		tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", callbackReminderCancel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func reminderListKeyboard(reminders []model.Reminder) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reminders))
	for i, r := range reminders {
		label := fmt.Sprintf("🗑 %d. %s", i+1, truncate(r.Exercise, 24))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackReminderDelete+r.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func challengeListKeyboard(challenges []model.Challenge) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(challenges))
	for _, c := range challenges {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🤝 Join "+truncate(c.Name, 24), callbackChallengeJoin+c.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func activityListKeyboard(activities []model.Activity) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("🗑 #%d %s", a.ID, truncate(a.Type, 20)), fmt.Sprintf("%s%d", callbackActivityDelete, a.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func planKeyboard(current model.Plan) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, info := range model.Plans {
		if info.Plan == current || info.Plan == model.PlanFree {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s $%.2f", info.Plan.Title(), info.Price), callbackSubscribePrefix+string(info.Plan)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func payKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("💳 Pay", callbackPay),
	))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb.Message == nil || cb.Message.Chat == nil {
		b.ackCallback(cb, "")
		return nil
	}
	switch {
	case strings.HasPrefix(cb.Data, callbackDayPrefix),
		strings.HasPrefix(cb.Data, "remind:"),
		strings.HasPrefix(cb.Data, callbackReminderDelete):
		return b.handleReminderCallback(cb)
	case strings.HasPrefix(cb.Data, callbackChallengeJoin):
		return b.handleChallengeCallback(cb)
	case strings.HasPrefix(cb.Data, callbackActivityDelete):
		return b.handleActivityCallback(ctx, cb)
	case strings.HasPrefix(cb.Data, callbackAppToggle), strings.HasPrefix(cb.Data, callbackFitGoal):
		return b.handleProfileCallback(ctx, cb)
	case strings.HasPrefix(cb.Data, callbackSubscribePrefix), cb.Data == callbackPay:
		return b.handleSubscriptionCallback(cb)
	default:
		b.ackCallback(cb, "")
		return nil
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
