package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"fitness-planner/internal/goal"
	"fitness-planner/internal/model"
	"fitness-planner/internal/service"
)

const (
	callbackActivityDelete = "adel:"
	recentActivitiesLimit  = 10
)

var errLogUsage = errors.New("usage: /log <type> <minutes> [calories] [steps=N] [km=X] [notes]")

func (b *Bot) handleGoal(chatID int64, args string) error {
	steps, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || steps < 1 {
		return b.sendText(chatID, "Send the goal as a positive number of steps, for example <code>/goal 10000</code>")
	}
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	if err := s.SetGoal(steps); err != nil {
		if errors.Is(err, model.ErrValidationRejected) {
			return b.sendText(chatID, "The goal must be at least one step.")
		}
		return err
	}
	return b.sendText(chatID, "🎯 "+goal.NotifyGoalSet.Message(goal.State{Goal: steps}))
}

func (b *Bot) handleProgress(chatID int64) error {
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	state, active := s.Goal()
	if state.Goal == 0 {
		return b.sendText(chatID, "No goal yet. Set one with <code>/goal 10000</code>.")
	}
	return b.sendText(chatID, formatProgress(state, active))
}

func (b *Bot) handleActive(chatID int64) error {
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	state := s.RecordActivity()
	text := fmt.Sprintf("✅ Activity recorded at %s. Next nudge after %s without activity.",
		state.LastActivity.Format("15:04"), formatDuration(s.InactivityThreshold()))
	return b.sendText(chatID, text)
}

func (b *Bot) handleLogActivity(ctx context.Context, chatID int64, user *model.User, args string) error {
	input, err := parseLogArgs(args)
	if err != nil {
		return b.sendText(chatID, escape(err.Error()))
	}
	input.Date = time.Now()
	activity, err := b.activities.Log(ctx, user, input)
	if errors.Is(err, model.ErrValidationRejected) {
		return b.sendText(chatID, "Couldn't log that: "+escape(err.Error()))
	}
	if err != nil {
		return err
	}
	if s, err := b.session(chatID); err == nil {
		s.RecordActivity()
	}
	return b.sendText(chatID, "✅ Logged\n"+service.FormatActivity(*activity))
}

func (b *Bot) handleActivities(ctx context.Context, chatID int64, user *model.User) error {
	activities, err := b.activities.Recent(ctx, user, recentActivitiesLimit)
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		return b.sendText(chatID, "No workouts logged yet. Try <code>/log run 30 300</code>.")
	}

	var builder strings.Builder
	builder.WriteString("🗂 <b>Recent workouts</b>\n\n")
	for _, a := range activities {
		builder.WriteString(service.FormatActivity(a))
	}
	return b.sendWithReplyMarkup(chatID, builder.String(), activityListKeyboard(activities))
}

func (b *Bot) handleActivityCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	chatID := cb.Message.Chat.ID
	id, err := strconv.ParseUint(strings.TrimPrefix(cb.Data, callbackActivityDelete), 10, 64)
	if err != nil {
		b.ackCallback(cb, "Unknown workout")
		return nil
	}
	user, err := b.callbackUser(ctx, cb)
	if err != nil {
		return err
	}
	if err := b.activities.Delete(ctx, user, uint(id)); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			b.ackCallback(cb, "Already deleted")
			return nil
		}
		return err
	}
	b.log.Info("activity deleted", zap.Int64("chat_id", chatID), zap.Uint64("activity_id", id))
	b.ackCallback(cb, "Deleted")
	return b.sendText(chatID, fmt.Sprintf("🗑 Workout #%d deleted.", id))
}

func (b *Bot) handleReport(ctx context.Context, chatID int64, user *model.User, args string) error {
	weeksAgo := 0
	if value := strings.TrimSpace(args); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return b.sendText(chatID, fmt.Sprintf("Send how many weeks back, from 0 to %d, for example <code>/report 1</code>", service.MaxWeeksBack))
		}
		weeksAgo = n
	}
	report, err := b.reports.Weekly(ctx, *user, time.Now(), weeksAgo)
	if errors.Is(err, model.ErrValidationRejected) {
		return b.sendText(chatID, fmt.Sprintf("Reports go back at most %d weeks.", service.MaxWeeksBack))
	}
	if err != nil {
		return err
	}
	return b.sendText(chatID, report.Summary())
}

// parseLogArgs reads "<type> <minutes> [calories] [steps=N] [km=X] [notes...]".
func parseLogArgs(args string) (service.ActivityInput, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return service.ActivityInput{}, errLogUsage
	}
	minutes, err := strconv.Atoi(fields[1])
	if err != nil || minutes <= 0 {
		return service.ActivityInput{}, fmt.Errorf("minutes must be a positive number: %w", errLogUsage)
	}
	input := service.ActivityInput{Type: fields[0], DurationMin: minutes}

	rest := fields[2:]
	if len(rest) > 0 {
		if calories, err := strconv.Atoi(rest[0]); err == nil {
			if calories < 0 {
				return service.ActivityInput{}, fmt.Errorf("calories cannot be negative: %w", errLogUsage)
			}
			input.Calories = calories
			rest = rest[1:]
		}
	}

	var notes []string
	for _, field := range rest {
		key, value, ok := strings.Cut(field, "=")
		switch {
		case ok && strings.EqualFold(key, "steps"):
			steps, err := strconv.Atoi(value)
			if err != nil || steps < 0 {
				return service.ActivityInput{}, fmt.Errorf("steps must be a whole number: %w", errLogUsage)
			}
			input.Steps = steps
		case ok && strings.EqualFold(key, "km"):
			km, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
			if err != nil || km < 0 {
				return service.ActivityInput{}, fmt.Errorf("km must be a number: %w", errLogUsage)
			}
			input.DistanceKm = km
		default:
			notes = append(notes, field)
		}
	}
	input.Notes = strings.Join(notes, " ")
	return input, nil
}

func formatProgress(s goal.State, active bool) string {
	var builder strings.Builder
	builder.WriteString("🎯 <b>Goal progress</b>\n")
	builder.WriteString(fmt.Sprintf("%s %d%%\n", progressBar(s.Percent()), s.Percent()))
	builder.WriteString(fmt.Sprintf("%d / %d steps\n", s.Progress, s.Goal))
	switch {
	case s.Reached:
		builder.WriteString("🏁 Goal reached!")
	case active:
		builder.WriteString("⏳ Counting…")
	default:
		builder.WriteString("⏸ Stopped")
	}
	return builder.String()
}

func progressBar(percent int) string {
	const width = 10
	filled := percent * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("▓", filled) + strings.Repeat("░", width-filled)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%dh", int(d/time.Hour))
	case d >= time.Minute && d%time.Minute == 0:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	default:
		return d.String()
	}
}
