package scheduler

import (
	"fmt"
	"sort"

	"vetcare/models"
)

// Roster maps each recognized doctor to the only session type they hold.
type Roster struct {
	slots map[string]string
}

// DefaultRoster is used when configuration supplies no doctors.
func DefaultRoster() Roster {
	r, _ := NewRoster([]models.DoctorSlot{
		{DoctorName: "Dr. Mahesh Thilakarathna", SessionType: models.SessionTypeMorning},
		{DoctorName: "Dr. Sarathchandra Paranavitharana", SessionType: models.SessionTypeEvening},
	})
	return r
}

// NewRoster validates entries and builds a Roster. Names must be unique.
func NewRoster(entries []models.DoctorSlot) (Roster, error) {
	if len(entries) == 0 {
		return Roster{}, fmt.Errorf("roster needs at least one doctor")
	}
	slots := make(map[string]string, len(entries))
	for i, e := range entries {
		if e.DoctorName == "" {
			return Roster{}, fmt.Errorf("roster entry %d: doctor name is empty", i+1)
		}
		if !IsValidSessionType(e.SessionType) {
			return Roster{}, fmt.Errorf("roster entry %d: unknown session type %q", i+1, e.SessionType)
		}
		if _, dup := slots[e.DoctorName]; dup {
			return Roster{}, fmt.Errorf("roster entry %d: %s listed twice", i+1, e.DoctorName)
		}
		slots[e.DoctorName] = e.SessionType
	}
	return Roster{slots: slots}, nil
}

// RosterFromConfig returns the configured roster, or the default one when none is configured.
func RosterFromConfig(entries []models.DoctorSlot) (Roster, error) {
	if len(entries) == 0 {
		return DefaultRoster(), nil
	}
	return NewRoster(entries)
}

// RequiredType returns the doctor's fixed session type.
func (r Roster) RequiredType(doctor string) (string, bool) {
	t, ok := r.slots[doctor]
	return t, ok
}

// Doctors lists the roster sorted by name.
func (r Roster) Doctors() []models.DoctorSlot {
	out := make([]models.DoctorSlot, 0, len(r.slots))
	for name, t := range r.slots {
		out = append(out, models.DoctorSlot{DoctorName: name, SessionType: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DoctorName < out[j].DoctorName })
	return out
}

// IsValidSessionType reports whether t is Morning or Evening.
func IsValidSessionType(t string) bool {
	return t == models.SessionTypeMorning || t == models.SessionTypeEvening
}
