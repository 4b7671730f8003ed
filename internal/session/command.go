package session

import (
	"fmt"

	"fitness-planner/internal/model"
)

// Command is one user action forwarded by the presentation layer.
type Command interface {
	command()
}

// Pending reminder form.
type (
	SetExercise       struct{ Value string }
	SetTime           struct{ Value string }
	ToggleDay         struct{ Day model.Weekday }
	ResetReminderForm struct{}
	// SubmitReminder adds a reminder from the pending form.
	SubmitReminder struct{}
	// AddReminder adds a reminder from explicit values and clears the pending form.
	AddReminder struct {
		Exercise string
		Time     string
		Days     []model.Weekday
	}
	DeleteReminder struct{ ID string }
)

// Pending challenge forms.
type (
	SetChallengeName        struct{ Value string }
	SetChallengeDescription struct{ Value string }
	SubmitChallenge         struct{}
	CreateChallenge         struct{ Name, Description string }
	SetJoinName             struct{ Value string }
	SubmitJoin              struct{}
	JoinChallenge           struct{ Name string }
	// JoinChallengeByID joins one specific challenge regardless of duplicate names.
	JoinChallengeByID struct{ ID string }
)

// Subscription.
type (
	Subscribe          struct{ Plan model.Plan }
	ConfirmPayment     struct{}
	CancelSubscription struct{}
)

func (SetExercise) command()             {}
func (SetTime) command()                 {}
func (ToggleDay) command()               {}
func (ResetReminderForm) command()       {}
func (SubmitReminder) command()          {}
func (AddReminder) command()             {}
func (DeleteReminder) command()          {}
func (SetChallengeName) command()        {}
func (SetChallengeDescription) command() {}
func (SubmitChallenge) command()         {}
func (CreateChallenge) command()         {}
func (SetJoinName) command()             {}
func (SubmitJoin) command()              {}
func (JoinChallenge) command()           {}
func (JoinChallengeByID) command()       {}
func (Subscribe) command()               {}
func (ConfirmPayment) command()          {}
func (CancelSubscription) command()      {}

// EventKind says what a command changed.
type EventKind int

const (
	EventNone EventKind = iota
	EventFormChanged
	EventReminderAdded
	EventReminderDeleted
	EventChallengeCreated
	EventChallengeJoined
	EventPaymentRequested
	EventPlanChanged
)

// Event describes the outcome of a successful command.
type Event struct {
	Kind      EventKind
	Reminder  model.Reminder
	Challenge model.Challenge
	Plan      model.Plan
}

// Describe renders the event as a human-readable log line.
func (e Event) Describe() string {
	switch e.Kind {
	case EventReminderAdded:
		return "Reminder set for " + e.Reminder.Describe()
	case EventReminderDeleted:
		return "Reminder deleted: " + e.Reminder.Describe()
	case EventChallengeCreated:
		return "New challenge created: " + e.Challenge.Name
	case EventChallengeJoined:
		return fmt.Sprintf("Joined challenge: %s (%d participants)", e.Challenge.Name, e.Challenge.Participants)
	case EventPaymentRequested:
		return fmt.Sprintf("Payment requested for the %s plan", e.Plan)
	case EventPlanChanged:
		return fmt.Sprintf("Plan changed to %s", e.Plan)
	case EventFormChanged:
		return "Form updated"
	default:
		return ""
	}
}

// Apply is the single transition function: it returns the next state and the
// resulting event. On error the returned state equals s.
func Apply(s State, cmd Command, newID func() string) (State, Event, error) {
	switch c := cmd.(type) {
	case SetExercise:
		s.Form.Exercise = c.Value
		return s, Event{Kind: EventFormChanged}, nil
	case SetTime:
		s.Form.Time = c.Value
		return s, Event{Kind: EventFormChanged}, nil
	case ToggleDay:
		next, err := toggleDay(s, c.Day)
		if err != nil {
			return s, Event{}, err
		}
		return next, Event{Kind: EventFormChanged}, nil
	case ResetReminderForm:
		s.Form.Exercise, s.Form.Time, s.Form.Days = "", "", nil
		return s, Event{Kind: EventFormChanged}, nil
	case SubmitReminder:
		return reminderEvent(addReminder(s, newID(), s.Form.Exercise, s.Form.Time, s.Form.Days))
	case AddReminder:
		return reminderEvent(addReminder(s, newID(), c.Exercise, c.Time, c.Days))
	case DeleteReminder:
		next, removed, ok := deleteReminder(s, c.ID)
		if !ok {
			return s, Event{Kind: EventNone}, nil
		}
		return next, Event{Kind: EventReminderDeleted, Reminder: removed}, nil

	case SetChallengeName:
		s.Form.ChallengeName = c.Value
		return s, Event{Kind: EventFormChanged}, nil
	case SetChallengeDescription:
		s.Form.ChallengeDescription = c.Value
		return s, Event{Kind: EventFormChanged}, nil
	case SubmitChallenge:
		return challengeEvent(EventChallengeCreated)(createChallenge(s, newID(), s.Form.ChallengeName, s.Form.ChallengeDescription))
	case CreateChallenge:
		return challengeEvent(EventChallengeCreated)(createChallenge(s, newID(), c.Name, c.Description))
	case SetJoinName:
		s.Form.JoinName = c.Value
		return s, Event{Kind: EventFormChanged}, nil
	case SubmitJoin:
		return challengeEvent(EventChallengeJoined)(joinChallenge(s, s.Form.JoinName))
	case JoinChallenge:
		return challengeEvent(EventChallengeJoined)(joinChallenge(s, c.Name))
	case JoinChallengeByID:
		return challengeEvent(EventChallengeJoined)(joinChallengeByID(s, c.ID))

	case Subscribe:
		next, err := subscribe(s, c.Plan)
		if err != nil {
			return s, Event{}, err
		}
		return next, Event{Kind: EventPaymentRequested, Plan: next.PendingPlan}, nil
	case ConfirmPayment:
		next, err := confirmPayment(s)
		if err != nil {
			return s, Event{}, err
		}
		return next, Event{Kind: EventPlanChanged, Plan: next.Plan}, nil
	case CancelSubscription:
		next, err := cancelSubscription(s)
		if err != nil {
			return s, Event{}, err
		}
		return next, Event{Kind: EventPlanChanged, Plan: next.Plan}, nil
	}
	return s, Event{}, fmt.Errorf("unsupported command %T", cmd)
}

func reminderEvent(next State, r model.Reminder, err error) (State, Event, error) {
	if err != nil {
		return next, Event{}, err
	}
	return next, Event{Kind: EventReminderAdded, Reminder: r}, nil
}

func challengeEvent(kind EventKind) func(State, model.Challenge, error) (State, Event, error) {
	return func(next State, c model.Challenge, err error) (State, Event, error) {
		if err != nil {
			return next, Event{}, err
		}
		return next, Event{Kind: kind, Challenge: c}, nil
	}
}
