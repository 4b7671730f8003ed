package bot

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"fitness-planner/internal/model"
	"fitness-planner/internal/repository"
	"fitness-planner/internal/service"
	"fitness-planner/internal/session"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageExercise
	stageTime
	stageDays
	stageChallengeName
	stageChallengeDescription
	stageJoinName
)

const (
	menuLabelReminders  = "⏰ Reminders"
	menuLabelChallenges = "🏆 Challenges"
	menuLabelGoal       = "🎯 Progress"
	menuLabelReport     = "📊 Report"
	menuLabelActive     = "✅ I'm active"
	menuLabelHelp       = "ℹ️ Help"
	btnCancelDialog     = "⏪ Cancel input"
)

// telegramAPI is the part of the Bot API used to talk to chats.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Deps are the collaborators of the bot.
type Deps struct {
	Users      *repository.UserRepository
	Activities *service.ActivityService
	Reports    *service.ReportService
	Profiles   *service.ProfileService
	// Session is the template for per-chat sessions; Notify is set by the bot.
	Session session.Options
	Logger  *zap.Logger
}

// Bot renders session state in Telegram and forwards user input to it.
type Bot struct {
	api        telegramAPI
	poller     *tgbotapi.BotAPI
	users      *repository.UserRepository
	activities *service.ActivityService
	reports    *service.ReportService
	profiles   *service.ProfileService
	sessions   *session.Registry
	log        *zap.Logger

	conversations map[int64]conversationStage
	mu            sync.Mutex
}

func New(token string, deps Deps) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	b := newBot(api, deps)
	b.poller = api
	b.log.Info("bot authorized", zap.String("account", api.Self.UserName))
	return b, nil
}

func newBot(api telegramAPI, deps Deps) *Bot {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bot{
		api:           api,
		users:         deps.Users,
		activities:    deps.Activities,
		reports:       deps.Reports,
		profiles:      deps.Profiles,
		log:           log.Named("bot"),
		conversations: make(map[int64]conversationStage),
	}
	template := deps.Session
	b.sessions = session.NewRegistry(log.Named("sessions"), func(chatID int64) (*session.Session, error) {
		opts := template
		opts.Logger = log.Named("session").With(zap.Int64("chat_id", chatID))
		opts.Notify = func(text string) { b.notify(chatID, text) }
		return session.New(opts)
	})
	return b
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.poller.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.poller.StopReceivingUpdates()
	}()

	for update := range updates {
		b.handleUpdate(ctx, update)
	}

	return ctx.Err()
}

// Close ends every session and stops their timers.
func (b *Bot) Close() {
	b.sessions.CloseAll()
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
			b.log.Error("handle callback", zap.Error(err))
		}
	case update.Message != nil:
		if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			return
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			b.log.Error("handle message", zap.Error(err))
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}
	chatID := msg.Chat.ID
	user, err := b.ensureUser(ctx, msg)
	if err != nil {
		return fmt.Errorf("refresh user: %w", err)
	}

	if !msg.IsCommand() && isCancelDialogInput(msg.Text) {
		return b.cancelDialog(chatID)
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg, user); handled {
			return err
		}
	}

	if msg.IsCommand() {
		b.log.Info("command", zap.Int64("chat_id", chatID), zap.String("command", msg.Command()), zap.String("args", msg.CommandArguments()))
		return b.handleCommand(ctx, msg, user)
	}

	if stage := b.getConversation(chatID); stage != stageNone {
		return b.handleConversation(ctx, msg, stage)
	}

	return b.sendText(chatID, "I didn't get that. Try /remind to add a reminder or /help for the list of commands.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *model.User) error {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())
	switch msg.Command() {
	case "start":
		return b.handleStart(msg)
	case "help":
		return b.handleHelp(chatID)
	case "remind":
		return b.startReminderConversation(chatID)
	case "reminders":
		return b.sendReminderList(chatID)
	case "challenge":
		return b.startChallengeConversation(chatID)
	case "join":
		return b.handleJoin(chatID, args)
	case "challenges":
		return b.sendChallengeList(chatID)
	case "goal":
		return b.handleGoal(chatID, args)
	case "progress":
		return b.handleProgress(chatID)
	case "active":
		return b.handleActive(chatID)
	case "log":
		return b.handleLogActivity(ctx, chatID, user, args)
	case "activities":
		return b.handleActivities(ctx, chatID, user)
	case "report":
		return b.handleReport(ctx, chatID, user, args)
	case "profile":
		return b.handleProfile(ctx, chatID, user, args)
	case "plans":
		return b.sendPlans(chatID)
	case "subscribe":
		return b.handleSubscribe(chatID, args)
	case "pay":
		return b.handlePay(chatID)
	case "unsubscribe":
		return b.handleUnsubscribe(chatID)
	case "cancel":
		return b.cancelDialog(chatID)
	case "stop":
		return b.handleStop(chatID)
	default:
		return b.sendText(chatID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	if _, err := b.session(msg.Chat.ID); err != nil {
		return err
	}

	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("👋 Hi, %s!\n<b>I'll keep your workouts on track.</b>\n\n", escape(name)) + commandList
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(chatID int64) error {
	return b.sendText(chatID, "ℹ️ <b>Commands</b>\n"+commandList)
}

const commandList = "• /remind — set a workout reminder\n" +
	"• /reminders — list and delete reminders\n" +
	"• /challenge — create a challenge\n" +
	"• /join &lt;name&gt; — join a challenge by name\n" +
	"• /challenges — list challenges\n" +
	"• /goal &lt;steps&gt; — set a daily step goal\n" +
	"• /progress — goal progress\n" +
	"• /active — record activity\n" +
	"• /log &lt;type&gt; &lt;minutes&gt; [kcal] [steps=N] [km=X] [notes] — log a workout\n" +
	"• /activities — recent workouts\n" +
	"• /report [weeks ago] — weekly report\n" +
	"• /profile [field value] — view or edit your profile and connected apps\n" +
	"• /plans, /subscribe &lt;plan&gt;, /pay, /unsubscribe — subscription\n" +
	"• /cancel — cancel current input\n" +
	"• /stop — end the session and its timers"

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message, stage conversationStage) error {
	switch stage {
	case stageExercise, stageTime, stageDays:
		return b.handleReminderStep(msg, stage)
	case stageChallengeName, stageChallengeDescription:
		return b.handleChallengeStep(msg, stage)
	case stageJoinName:
		b.clearConversation(msg.Chat.ID)
		return b.handleJoin(msg.Chat.ID, msg.Text)
	default:
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, "Input was reset. Start again from /help.")
	}
}

func (b *Bot) cancelDialog(chatID int64) error {
	b.clearConversation(chatID)
	if s, err := b.session(chatID); err == nil {
		_, _ = s.Dispatch(session.ResetReminderForm{})
		_, _ = s.Dispatch(session.SetChallengeName{})
		_, _ = s.Dispatch(session.SetChallengeDescription{})
		_, _ = s.Dispatch(session.SetJoinName{})
	}
	return b.sendText(chatID, "⏪ Input cancelled.")
}

func (b *Bot) handleStop(chatID int64) error {
	b.clearConversation(chatID)
	if !b.sessions.End(chatID) {
		return b.sendText(chatID, "No active session.")
	}
	return b.sendText(chatID, "👋 Session ended. Reminders, challenges and goals were cleared.")
}

// SendWeeklyReports sends this week's report to every user seen during the last month.
func (b *Bot) SendWeeklyReports(ctx context.Context) error {
	now := time.Now()
	users, err := b.users.ListActiveSince(ctx, now.AddDate(0, -1, 0))
	if err != nil {
		return err
	}
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		report, err := b.reports.Weekly(ctx, user, now, 0)
		if err != nil {
			b.log.Error("build weekly report", zap.Int64("telegram_id", user.TelegramID), zap.Error(err))
			continue
		}
		if err := b.sendText(user.ChatID, report.Summary()); err != nil {
			b.log.Error("send weekly report", zap.Int64("chat_id", user.ChatID), zap.Error(err))
		}
	}
	return nil
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message, user *model.User) (bool, error) {
	chatID := msg.Chat.ID
	switch strings.TrimSpace(msg.Text) {
	case menuLabelReminders:
		return true, b.sendReminderList(chatID)
	case menuLabelChallenges:
		return true, b.sendChallengeList(chatID)
	case menuLabelGoal:
		return true, b.handleProgress(chatID)
	case menuLabelReport:
		return true, b.handleReport(ctx, chatID, user, "")
	case menuLabelActive:
		return true, b.handleActive(chatID)
	case menuLabelHelp:
		return true, b.handleHelp(chatID)
	default:
		return false, nil
	}
}

func (b *Bot) session(chatID int64) (*session.Session, error) {
	return b.sessions.Get(chatID)
}

func (b *Bot) ensureUser(ctx context.Context, msg *tgbotapi.Message) (*model.User, error) {
	return b.users.UpsertFromTelegram(ctx, msg.From.ID, msg.Chat.ID, msg.From.FirstName, msg.From.UserName, time.Now())
}

// notify delivers a timer message; it runs outside the update loop.
func (b *Bot) notify(chatID int64, text string) {
	if err := b.sendText(chatID, "🔔 "+escape(text)); err != nil {
		b.log.Error("send notification", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) ackCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		b.log.Warn("callback ack", zap.Error(err))
	}
}

func (b *Bot) setConversation(chatID int64, stage conversationStage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[chatID] = stage
}

func (b *Bot) getConversation(chatID int64) conversationStage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[chatID]
}

func (b *Bot) clearConversation(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, chatID)
}

func isCancelDialogInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancelDialog) || value == "cancel"
}

func escape(s string) string {
	return html.EscapeString(s)
}
