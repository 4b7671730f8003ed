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
	callbackDayPrefix      = "day:"
	callbackReminderSave   = "remind:save"
	callbackReminderCancel = "remind:cancel"
	callbackReminderDelete = "rdel:"
)

func (b *Bot) startReminderConversation(chatID int64) error {
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	if _, err := s.Dispatch(session.ResetReminderForm{}); err != nil {
		return err
	}
	b.setConversation(chatID, stageExercise)
	return b.sendWithReplyMarkup(chatID, "⏰ <b>New reminder</b>\nWhich exercise? For example: <i>Push-ups</i>", cancelKeyboard())
}

func (b *Bot) handleReminderStep(msg *tgbotapi.Message, stage conversationStage) error {
	chatID := msg.Chat.ID
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(msg.Text)

	switch stage {
	case stageExercise:
		if text == "" {
			return b.sendWithReplyMarkup(chatID, "The exercise can't be empty. Which exercise?", cancelKeyboard())
		}
		if _, err := s.Dispatch(session.SetExercise{Value: text}); err != nil {
			return err
		}
		b.setConversation(chatID, stageTime)
		return b.sendWithReplyMarkup(chatID, "🕒 At what time? Use HH:MM, for example <code>07:30</code>", cancelKeyboard())

	case stageTime:
		if _, err := model.ParseTimeOfDay(text); err != nil {
			return b.sendWithReplyMarkup(chatID, "Couldn't read the time. Use HH:MM, for example <code>18:00</code>", cancelKeyboard())
		}
		if _, err := s.Dispatch(session.SetTime{Value: text}); err != nil {
			return err
		}
		b.setConversation(chatID, stageDays)
		return b.sendDayPicker(chatID, s.Snapshot().Form)

	default:
		return b.sendText(chatID, "Pick the days with the buttons above, then press Save.")
	}
}

func (b *Bot) sendDayPicker(chatID int64, form session.Form) error {
	text := fmt.Sprintf("📅 On which days?\n<b>%s</b> at <b>%s</b>", escape(form.Exercise), escape(form.Time))
	return b.sendWithReplyMarkup(chatID, text, dayPickerKeyboard(form.Days))
}

func (b *Bot) sendReminderList(chatID int64) error {
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	reminders := s.Snapshot().Reminders
	if len(reminders) == 0 {
		return b.sendText(chatID, "No reminders yet. Add one with /remind.")
	}
	return b.sendWithReplyMarkup(chatID, formatReminders(reminders), reminderListKeyboard(reminders))
}

func (b *Bot) handleReminderCallback(cb *tgbotapi.CallbackQuery) error {
	chatID := cb.Message.Chat.ID
	s, err := b.session(chatID)
	if err != nil {
		return err
	}

	switch {
	case strings.HasPrefix(cb.Data, callbackDayPrefix):
		if b.getConversation(chatID) != stageDays {
			b.ackCallback(cb, "This form is closed. Start again with /remind.")
			return nil
		}
		day, err := model.ParseWeekday(strings.TrimPrefix(cb.Data, callbackDayPrefix))
		if err != nil {
			b.ackCallback(cb, "Unknown day")
			return nil
		}
		if _, err := s.Dispatch(session.ToggleDay{Day: day}); err != nil {
			return err
		}
		b.ackCallback(cb, "")
		edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, dayPickerKeyboard(s.Snapshot().Form.Days))
		_, err = b.api.Request(edit)
		return err

	case cb.Data == callbackReminderSave:
		if b.getConversation(chatID) != stageDays {
			b.ackCallback(cb, "This form is closed. Start again with /remind.")
			return nil
		}
		event, err := s.Dispatch(session.SubmitReminder{})
		if errors.Is(err, model.ErrValidationRejected) {
			b.ackCallback(cb, "Pick at least one day")
			return nil
		}
		if err != nil {
			return err
		}
		b.clearConversation(chatID)
		b.ackCallback(cb, "Saved")
		return b.sendText(chatID, "✅ "+escape(event.Describe()))

	case cb.Data == callbackReminderCancel:
		b.ackCallback(cb, "")
		return b.cancelDialog(chatID)

	case strings.HasPrefix(cb.Data, callbackReminderDelete):
		id := strings.TrimPrefix(cb.Data, callbackReminderDelete)
		event, err := s.Dispatch(session.DeleteReminder{ID: id})
		if err != nil {
			return err
		}
		if event.Kind != session.EventReminderDeleted {
			b.ackCallback(cb, "Already deleted")
			return nil
		}
		b.ackCallback(cb, "Deleted")
		reminders := s.Snapshot().Reminders
		if len(reminders) == 0 {
			return b.sendText(chatID, "🗑 "+escape(event.Describe())+"\nNo reminders left.")
		}
		return b.sendWithReplyMarkup(chatID, "🗑 "+escape(event.Describe())+"\n\n"+formatReminders(reminders), reminderListKeyboard(reminders))
	}

	b.ackCallback(cb, "")
	return nil
}

func formatReminders(reminders []model.Reminder) string {
	var builder strings.Builder
	builder.WriteString("⏰ <b>Your reminders</b>\n")
	for i, r := range reminders {
		builder.WriteString(fmt.Sprintf("%d. %s — %s (%s)\n", i+1, escape(r.Exercise), r.Time, model.JoinDays(r.Days)))
	}
	return builder.String()
}
