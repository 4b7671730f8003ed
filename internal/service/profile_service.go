package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"fitness-planner/internal/model"
	"fitness-planner/internal/repository"
)

// ProfileFields are the keys accepted by SetField, in display order.
var ProfileFields = []string{"name", "email", "age", "weight", "height", "goal"}

var profileFieldKeys = map[string]string{
	"Name":     "name",
	"Email":    "email",
	"Age":      "age",
	"WeightKg": "weight",
	"HeightCm": "height",
	"Goal":     "goal",
}

// ProfileService edits user profiles and linked apps.
type ProfileService struct {
	users       *repository.UserRepository
	connections *repository.ConnectionRepository
	validate    *validator.Validate
	log         *zap.Logger
}

func NewProfileService(users *repository.UserRepository, connections *repository.ConnectionRepository, log *zap.Logger) *ProfileService {
	return &ProfileService{
		users:       users,
		connections: connections,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		log:         log,
	}
}

// SetField parses value for one profile field, validates the result and stores it.
func (s *ProfileService) SetField(ctx context.Context, user *model.User, field, value string) (model.Profile, error) {
	profile := user.Profile
	value = strings.TrimSpace(value)
	key := strings.ToLower(strings.TrimSpace(field))

	switch key {
	case "name":
		profile.Name = value
	case "email":
		profile.Email = value
	case "age":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return user.Profile, fmt.Errorf("age must be a whole number: %w", model.ErrValidationRejected)
		}
		profile.Age = n
	case "weight":
		kg, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
		if err != nil || kg <= 0 {
			return user.Profile, fmt.Errorf("weight must be a number of kilograms: %w", model.ErrValidationRejected)
		}
		profile.WeightKg = kg
	case "height":
		cm, err := strconv.Atoi(value)
		if err != nil || cm <= 0 {
			return user.Profile, fmt.Errorf("height must be a whole number of centimetres: %w", model.ErrValidationRejected)
		}
		profile.HeightCm = cm
	case "goal":
		goal, err := model.ParseFitnessGoal(value)
		if err != nil {
			return user.Profile, err
		}
		profile.Goal = goal
	default:
		return user.Profile, fmt.Errorf("unknown profile field %q: %w", field, model.ErrValidationRejected)
	}

	if err := s.Validate(profile); err != nil {
		return user.Profile, err
	}
	if err := s.users.UpdateProfile(ctx, user.ID, profile); err != nil {
		return user.Profile, err
	}
	user.Profile = profile
	s.log.Info("profile updated", zap.Uint("user_id", user.ID), zap.String("field", key))
	return profile, nil
}

// Validate checks the profile against its field rules.
func (s *ProfileService) Validate(profile model.Profile) error {
	err := s.validate.Struct(profile)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		name := profileFieldKeys[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		return fmt.Errorf("invalid %s (%s): %w", name, fe.Tag(), model.ErrValidationRejected)
	}
	return fmt.Errorf("validate profile: %w", err)
}

// Connections returns the linked apps.
func (s *ProfileService) Connections(ctx context.Context, user *model.User) ([]model.App, error) {
	return s.connections.List(ctx, user.ID)
}

// ToggleApp links or unlinks the named app and reports whether it is linked afterwards.
func (s *ProfileService) ToggleApp(ctx context.Context, user *model.User, name string) (model.App, bool, error) {
	app, err := model.ParseApp(name)
	if err != nil {
		return "", false, err
	}
	connected, err := s.connections.Toggle(ctx, user.ID, app)
	if err != nil {
		return app, false, err
	}
	s.log.Info("app connection toggled", zap.Uint("user_id", user.ID), zap.String("app", string(app)), zap.Bool("connected", connected))
	return app, connected, nil
}
