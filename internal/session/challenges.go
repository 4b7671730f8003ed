package session

import (
	"fmt"
	"slices"
	"strings"

	"fitness-planner/internal/model"
)

func createChallenge(s State, id, name, description string) (State, model.Challenge, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return s, model.Challenge{}, fmt.Errorf("challenge needs name and description: %w", model.ErrValidationRejected)
	}

	// The creator is the first participant.
	c := model.Challenge{ID: id, Name: name, Description: description, Participants: 1}
	next := s
	next.Challenges = append(slices.Clip(s.Challenges), c)
	next.Form.ChallengeName = ""
	next.Form.ChallengeDescription = ""
	return next, c, nil
}

// joinChallenge matches names ignoring case. Names are not unique, so the first
// match in collection order wins.
func joinChallenge(s State, name string) (State, model.Challenge, error) {
	i := slices.IndexFunc(s.Challenges, func(c model.Challenge) bool { return c.Matches(name) })
	if i < 0 {
		return s, model.Challenge{}, fmt.Errorf("challenge %q: %w", strings.TrimSpace(name), model.ErrNotFound)
	}
	return joinAt(s, i)
}

// joinChallengeByID joins exactly the challenge with id.
func joinChallengeByID(s State, id string) (State, model.Challenge, error) {
	i := slices.IndexFunc(s.Challenges, func(c model.Challenge) bool { return c.ID == id })
	if i < 0 {
		return s, model.Challenge{}, fmt.Errorf("challenge id %q: %w", id, model.ErrNotFound)
	}
	return joinAt(s, i)
}

func joinAt(s State, i int) (State, model.Challenge, error) {
	next := s
	next.Challenges = slices.Clone(s.Challenges)
	next.Challenges[i].Participants++
	next.Form.JoinName = ""
	return next, next.Challenges[i], nil
}
