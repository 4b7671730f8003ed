package model

import "errors"

var (
	// ErrValidationRejected means a required field was empty or malformed; state is unchanged.
	ErrValidationRejected = errors.New("validation rejected")
	// ErrNotFound means a lookup missed; state is unchanged.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyInState means the requested state already holds; state is unchanged.
	ErrAlreadyInState = errors.New("already in state")
)
