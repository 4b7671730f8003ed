package model

import (
	"fmt"
	"strings"
	"time"
)

// FitnessGoal is the long-term aim a user picks on the profile.
type FitnessGoal string

const (
	GoalLoseWeight       FitnessGoal = "lose_weight"
	GoalGainMuscle       FitnessGoal = "gain_muscle"
	GoalImproveEndurance FitnessGoal = "improve_endurance"
	GoalMaintainHealth   FitnessGoal = "maintain_health"
)

var FitnessGoals = []FitnessGoal{GoalLoseWeight, GoalGainMuscle, GoalImproveEndurance, GoalMaintainHealth}

// ParseFitnessGoal accepts "lose_weight", "lose weight" or "Lose-Weight".
func ParseFitnessGoal(raw string) (FitnessGoal, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.NewReplacer(" ", "_", "-", "_").Replace(value)
	for _, g := range FitnessGoals {
		if string(g) == value {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown fitness goal %q: %w", raw, ErrValidationRejected)
}

func (g FitnessGoal) Title() string {
	words := strings.Split(string(g), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Profile holds the personal details edited with /profile. Zero values mean unset.
type Profile struct {
	Name     string      `validate:"omitempty,max=64"`
	Email    string      `validate:"omitempty,email"`
	Age      int         `validate:"omitempty,min=13,max=120"`
	WeightKg float64     `validate:"omitempty,gt=0,lte=500"`
	HeightCm int         `validate:"omitempty,min=50,max=272"`
	Goal     FitnessGoal `validate:"omitempty,oneof=lose_weight gain_muscle improve_endurance maintain_health"`
}

// App is a third-party fitness service a user can link.
type App string

const (
	AppFitbit      App = "Fitbit"
	AppStrava      App = "Strava"
	AppAppleHealth App = "Apple Health"
)

var Apps = []App{AppFitbit, AppStrava, AppAppleHealth}

// ParseApp matches app names ignoring case, spaces and underscores.
func ParseApp(raw string) (App, error) {
	key := func(s string) string {
		return strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s))
	}
	value := key(raw)
	for _, app := range Apps {
		if key(string(app)) == value {
			return app, nil
		}
	}
	return "", fmt.Errorf("unknown app %q: %w", raw, ErrValidationRejected)
}

// AppConnection records that a user linked an app.
type AppConnection struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex:idx_user_app"`
	App       App  `gorm:"uniqueIndex:idx_user_app"`
	CreatedAt time.Time
}
