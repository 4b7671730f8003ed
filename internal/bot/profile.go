package bot

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fitness-planner/internal/model"
	"fitness-planner/internal/service"
)

const (
	callbackAppToggle = "app:"
	callbackFitGoal   = "fgoal:"
)

func (b *Bot) handleProfile(ctx context.Context, chatID int64, user *model.User, args string) error {
	if args == "" {
		return b.sendProfile(ctx, chatID, user)
	}
	field, value, _ := strings.Cut(args, " ")
	if _, err := b.profiles.SetField(ctx, user, field, value); err != nil {
		if errors.Is(err, model.ErrValidationRejected) {
			return b.sendText(chatID, "Couldn't update the profile: "+escape(err.Error())+"\n"+profileUsage)
		}
		return err
	}
	return b.sendProfile(ctx, chatID, user)
}

func (b *Bot) sendProfile(ctx context.Context, chatID int64, user *model.User) error {
	apps, err := b.profiles.Connections(ctx, user)
	if err != nil {
		return err
	}
	return b.sendWithReplyMarkup(chatID, formatProfile(user, apps), profileKeyboard(apps))
}

func (b *Bot) handleProfileCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	user, err := b.callbackUser(ctx, cb)
	if err != nil {
		return err
	}
	chatID := cb.Message.Chat.ID

	if raw, ok := strings.CutPrefix(cb.Data, callbackFitGoal); ok {
		profile, err := b.profiles.SetField(ctx, user, "goal", raw)
		if errors.Is(err, model.ErrValidationRejected) {
			b.ackCallback(cb, "Unknown goal")
			return nil
		}
		if err != nil {
			return err
		}
		b.ackCallback(cb, "Goal: "+profile.Goal.Title())
		return b.sendProfile(ctx, chatID, user)
	}

	app, connected, err := b.profiles.ToggleApp(ctx, user, strings.TrimPrefix(cb.Data, callbackAppToggle))
	if errors.Is(err, model.ErrValidationRejected) {
		b.ackCallback(cb, "Unknown app")
		return nil
	}
	if err != nil {
		return err
	}
	if connected {
		b.ackCallback(cb, string(app)+" connected")
	} else {
		b.ackCallback(cb, string(app)+" disconnected")
	}
	apps, err := b.profiles.Connections(ctx, user)
	if err != nil {
		return err
	}
	_, err = b.api.Request(tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, profileKeyboard(apps)))
	return err
}

// callbackUser refreshes the user who pressed an inline button.
func (b *Bot) callbackUser(ctx context.Context, cb *tgbotapi.CallbackQuery) (*model.User, error) {
	return b.users.UpsertFromTelegram(ctx, cb.From.ID, cb.Message.Chat.ID, cb.From.FirstName, cb.From.UserName, time.Now())
}

var profileUsage = "Edit with <code>/profile &lt;field&gt; &lt;value&gt;</code>, fields: " +
	strings.Join(service.ProfileFields, ", ") + "."

func formatProfile(user *model.User, apps []model.App) string {
	p := user.Profile
	name := p.Name
	if name == "" {
		name = user.FirstName
	}
	notSet := func(ok bool, value string) string {
		if !ok {
			return "<i>not set</i>"
		}
		return escape(value)
	}
	connected := "none"
	if len(apps) > 0 {
		names := make([]string, 0, len(apps))
		for _, app := range apps {
			names = append(names, string(app))
		}
		connected = strings.Join(names, ", ")
	}

	var builder strings.Builder
	builder.WriteString("👤 <b>Profile</b>\n")
	builder.WriteString(fmt.Sprintf("Name: %s\n", notSet(name != "", name)))
	builder.WriteString(fmt.Sprintf("Email: %s\n", notSet(p.Email != "", p.Email)))
	builder.WriteString(fmt.Sprintf("Age: %s\n", notSet(p.Age > 0, fmt.Sprint(p.Age))))
	builder.WriteString(fmt.Sprintf("Weight: %s\n", notSet(p.WeightKg > 0, fmt.Sprintf("%.1f kg", p.WeightKg))))
	builder.WriteString(fmt.Sprintf("Height: %s\n", notSet(p.HeightCm > 0, fmt.Sprintf("%d cm", p.HeightCm))))
	builder.WriteString(fmt.Sprintf("Goal: %s\n", notSet(p.Goal != "", p.Goal.Title())))
	builder.WriteString(fmt.Sprintf("Connected apps: %s\n\n", escape(connected)))
	builder.WriteString(profileUsage)
	return builder.String()
}

// profileKeyboard has one toggle per app and the goal choices below.
func profileKeyboard(connected []model.App) tgbotapi.InlineKeyboardMarkup {
	var apps []tgbotapi.InlineKeyboardButton
	for _, app := range model.Apps {
		mark := "▫️ "
		if slices.Contains(connected, app) {
			mark = "✅ "
		}
		apps = append(apps, tgbotapi.NewInlineKeyboardButtonData(mark+string(app), callbackAppToggle+string(app)))
	}
	rows := [][]tgbotapi.InlineKeyboardButton{apps}
	var row []tgbotapi.InlineKeyboardButton
	for _, g := range model.FitnessGoals {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🎯 "+g.Title(), callbackFitGoal+string(g)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
