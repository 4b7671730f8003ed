package model

import "strings"

// Challenge is a named, joinable fitness goal.
type Challenge struct {
	ID           string
	Name         string
	Description  string
	Participants int
}

// Matches reports whether name equals the challenge name ignoring case.
func (c Challenge) Matches(name string) bool {
	return strings.EqualFold(c.Name, strings.TrimSpace(name))
}
