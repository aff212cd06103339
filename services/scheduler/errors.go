package scheduler

import (
	"errors"
	"fmt"

	sessionRepo "vetcare/database/repository/session"
)

// Every error returned by Scheduler wraps exactly one of these.
var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidDoctor      = errors.New("invalid doctor")
	ErrInvalidSessionType = errors.New("invalid session type")
	ErrDoctorSlotMismatch = errors.New("doctor slot mismatch")
	ErrPastDate           = errors.New("session date is in the past")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidNotice      = errors.New("invalid special notice")
	ErrDuplicateSession   = errors.New("duplicate session")
	ErrInvalidID          = errors.New("invalid session id")
	ErrNotFound           = errors.New("session not found")
	ErrImmutableSession   = errors.New("session is immutable")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrStorage            = errors.New("storage failure")
)

func duplicateError(doctor, sessionType string, day string) error {
	return fmt.Errorf("%w: %s already has a %s session on %s", ErrDuplicateSession, doctor, sessionType, day)
}

// fromRepo maps repository errors onto the scheduler's error kinds.
func fromRepo(err error, id string) error {
	switch {
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		return fmt.Errorf("%w: no session with id %s", ErrNotFound, id)
	case errors.Is(err, sessionRepo.ErrInvalidSessionID):
		return fmt.Errorf("%w: %q is not a valid session id", ErrInvalidID, id)
	case errors.Is(err, sessionRepo.ErrDuplicateSession):
		return fmt.Errorf("%w: the doctor already has a session of this type on that day", ErrDuplicateSession)
	case errors.Is(err, sessionRepo.ErrSessionLocked):
		return fmt.Errorf("%w: session %s was completed or cancelled", ErrImmutableSession, id)
	default:
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
}
