package bot

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fitness-planner/internal/model"
	"fitness-planner/internal/session"
)

const callbackChallengeJoin = "cjoin:"

func (b *Bot) startChallengeConversation(chatID int64) error {
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	if _, err := s.Dispatch(session.SetChallengeName{}); err != nil {
		return err
	}
	if _, err := s.Dispatch(session.SetChallengeDescription{}); err != nil {
		return err
	}
	b.setConversation(chatID, stageChallengeName)
	return b.sendWithReplyMarkup(chatID, "🏆 <b>New challenge</b>\nWhat's it called?", cancelKeyboard())
}

func (b *Bot) handleChallengeStep(msg *tgbotapi.Message, stage conversationStage) error {
	chatID := msg.Chat.ID
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return b.sendWithReplyMarkup(chatID, "This field can't be empty.", cancelKeyboard())
	}

	if stage == stageChallengeName {
		if _, err := s.Dispatch(session.SetChallengeName{Value: text}); err != nil {
			return err
		}
		b.setConversation(chatID, stageChallengeDescription)
		return b.sendWithReplyMarkup(chatID, "📝 Describe the challenge in one line.", cancelKeyboard())
	}

	if _, err := s.Dispatch(session.SetChallengeDescription{Value: text}); err != nil {
		return err
	}
	event, err := s.Dispatch(session.SubmitChallenge{})
	if errors.Is(err, model.ErrValidationRejected) {
		b.setConversation(chatID, stageChallengeName)
		return b.sendWithReplyMarkup(chatID, "Both the name and the description are required. What's the challenge called?", cancelKeyboard())
	}
	if err != nil {
		return err
	}
	b.clearConversation(chatID)
	return b.sendText(chatID, "🏆 "+escape(event.Describe()))
}

func (b *Bot) handleJoin(chatID int64, name string) error {
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		b.setConversation(chatID, stageJoinName)
		return b.sendWithReplyMarkup(chatID, "Which challenge do you want to join? Send its name.", cancelKeyboard())
	}
	if _, err := s.Dispatch(session.SetJoinName{Value: name}); err != nil {
		return err
	}
	event, err := s.Dispatch(session.SubmitJoin{})
	if errors.Is(err, model.ErrNotFound) {
		return b.sendText(chatID, fmt.Sprintf("Challenge not found: <b>%s</b>. Check /challenges and try again.", escape(name)))
	}
	if err != nil {
		return err
	}
	return b.sendText(chatID, "🤝 "+escape(event.Describe()))
}

func (b *Bot) sendChallengeList(chatID int64) error {
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	challenges := s.Snapshot().Challenges
	if len(challenges) == 0 {
		return b.sendText(chatID, "No challenges yet. Create one with /challenge.")
	}
	return b.sendWithReplyMarkup(chatID, formatChallenges(challenges), challengeListKeyboard(challenges))
}

func (b *Bot) handleChallengeCallback(cb *tgbotapi.CallbackQuery) error {
	chatID := cb.Message.Chat.ID
	s, err := b.session(chatID)
	if err != nil {
		return err
	}
	id := strings.TrimPrefix(cb.Data, callbackChallengeJoin)
	event, err := s.Dispatch(session.JoinChallengeByID{ID: id})
	if errors.Is(err, model.ErrNotFound) {
		b.ackCallback(cb, "Challenge not found")
		return nil
	}
	if err != nil {
		return err
	}
	b.ackCallback(cb, "Joined")
	return b.sendText(chatID, "🤝 "+escape(event.Describe()))
}

func formatChallenges(challenges []model.Challenge) string {
	var builder strings.Builder
	builder.WriteString("🏆 <b>Challenges</b>\n")
	for _, c := range challenges {
		builder.WriteString(fmt.Sprintf("\n<b>%s</b> · 👥 %d\n%s\n", escape(c.Name), c.Participants, escape(c.Description)))
	}
	return builder.String()
}
