package scheduler

import (
	"fmt"

	"vetcare/models"
)

// IsValidStatus reports whether s is one of the four session statuses.
func IsValidStatus(s string) bool {
	switch s {
	case models.SessionStatusUpcoming, models.SessionStatusOngoing,
		models.SessionStatusCompleted, models.SessionStatusCancelled:
		return true
	}
	return false
}

// checkStatus accepts any known status. Terminal sessions are refused
// before this runs.
func checkStatus(to string) error {
	if !IsValidStatus(to) {
		return fmt.Errorf("%w: %q is not one of Upcoming, Ongoing, Completed, Cancelled", ErrInvalidStatus, to)
	}
	return nil
}
