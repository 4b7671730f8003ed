package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitness-planner/internal/model"
)

// Store owns one session state and applies commands to it one at a time.
type Store struct {
	mu    sync.Mutex
	state State
	ids   func() string
	log   *zap.Logger
}

// NewStore returns an empty store. ids defaults to random UUIDs.
func NewStore(log *zap.Logger, ids func() string) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if ids == nil {
		ids = uuid.NewString
	}
	return &Store{state: NewState(), ids: ids, log: log}
}

// Dispatch applies cmd. Failed commands leave the state untouched.
func (s *Store) Dispatch(cmd Command) (Event, error) {
	s.mu.Lock()
	next, ev, err := Apply(s.state, cmd, s.ids)
	if err == nil {
		s.state = next
	}
	s.mu.Unlock()

	switch {
	case err == nil:
		if ev.Kind != EventNone && ev.Kind != EventFormChanged {
			s.log.Info(ev.Describe(), zap.Int("event", int(ev.Kind)))
		}
	case errors.Is(err, model.ErrValidationRejected):
		s.log.Debug("command rejected", zap.String("command", commandName(cmd)), zap.Error(err))
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrAlreadyInState):
		s.log.Info("command had no effect", zap.String("command", commandName(cmd)), zap.Error(err))
	default:
		s.log.Warn("command failed", zap.String("command", commandName(cmd)), zap.Error(err))
	}
	return ev, err
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func commandName(cmd Command) string {
	switch cmd.(type) {
	case SubmitReminder, AddReminder:
		return "add_reminder"
	case DeleteReminder:
		return "delete_reminder"
	case ToggleDay:
		return "toggle_day"
	case SubmitChallenge, CreateChallenge:
		return "create_challenge"
	case SubmitJoin, JoinChallenge, JoinChallengeByID:
		return "join_challenge"
	case Subscribe:
		return "subscribe"
	case ConfirmPayment:
		return "confirm_payment"
	case CancelSubscription:
		return "cancel_subscription"
	default:
		return "edit_form"
	}
}
