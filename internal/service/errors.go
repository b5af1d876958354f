package service

import (
	"errors"

	"github.com/iliyamo/cinema-ticketing/internal/model"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
)

var (
	// ErrSeatTaken means another ticket already holds the (session, row, seat).
	ErrSeatTaken = errors.New("seat already taken")
	// ErrUserExists means the (email, phone) pair is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound is returned when a movie session id does not resolve.
	ErrSessionNotFound = errors.New("movie session not found")
	// ErrInvalidInput wraps missing or malformed form fields.
	ErrInvalidInput = errors.New("invalid input")
)

// Outcome classifies the result of a write so callers can tell a
// constraint conflict from an unreachable store.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeConflict
	OutcomeInvalid
	OutcomeTransientFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeConflict:
		return "conflict"
	case OutcomeInvalid:
		return "invalid"
	}
	return "transient_failure"
}

// OutcomeOf maps an error returned by this package onto an Outcome.
// Anything unrecognised is a transient failure.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrSeatTaken), errors.Is(err, ErrUserExists), errors.Is(err, repository.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, repository.ErrInvalidReference),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, model.ErrIncompleteReservation),
		errors.Is(err, model.ErrInvalidPosition),
		errors.Is(err, model.ErrNoSessionChosen),
		errors.Is(err, model.ErrNoRowChosen):
		return OutcomeInvalid
	}
	return OutcomeTransientFailure
}
