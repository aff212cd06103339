package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SessionTypeMorning = "Morning"
	SessionTypeEvening = "Evening"
)

const (
	SessionStatusUpcoming  = "Upcoming"
	SessionStatusOngoing   = "Ongoing"
	SessionStatusCompleted = "Completed"
	SessionStatusCancelled = "Cancelled"
)

// MaxSpecialNoticeLength is measured in characters, not bytes.
const MaxSpecialNoticeLength = 200

// Session is one doctor's availability slot for a single day and time band.
type Session struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DoctorName    string             `bson:"doctorName" json:"doctorName"`
	SessionType   string             `bson:"sessionType" json:"sessionType"`     // "Morning" or "Evening"
	SessionDate   time.Time          `bson:"sessionDate" json:"sessionDate"`     // local day start
	IsAvailable   bool               `bson:"isAvailable" json:"isAvailable"`     // default true
	SpecialNotice string             `bson:"specialNotice" json:"specialNotice"` // up to 200 chars
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsTerminal reports whether the session no longer accepts edits.
func (s *Session) IsTerminal() bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusCancelled
}

// SessionFilter narrows a listing. Zero values mean "no constraint".
// From is inclusive and Until exclusive, both on sessionDate.
type SessionFilter struct {
	DoctorName string
	From       time.Time
	Until      time.Time
}

// IsEmpty reports whether the filter matches every session.
func (f SessionFilter) IsEmpty() bool {
	return f.DoctorName == "" && f.From.IsZero() && f.Until.IsZero()
}

// CreateSessionInput carries the fields accepted when adding a session.
// Pointer fields distinguish "absent" from a zero value.
type CreateSessionInput struct {
	DoctorName    string
	SessionType   string
	SessionDate   *time.Time
	IsAvailable   *bool
	SpecialNotice string
}

// UpdateSessionInput is a partial update; nil fields keep the stored value.
type UpdateSessionInput struct {
	DoctorName    *string
	SessionType   *string
	SessionDate   *time.Time
	IsAvailable   *bool
	SpecialNotice *string
	Status        *string
}

// CreateSessionRequest is the JSON body of POST /api/sessions.
type CreateSessionRequest struct {
	DoctorName    string `json:"doctorName"`
	SessionType   string `json:"sessionType"`
	SessionDate   string `json:"sessionDate"`
	IsAvailable   *bool  `json:"isAvailable"`
	SpecialNotice string `json:"specialNotice"`
}

// UpdateSessionRequest is the JSON body of PUT /api/sessions/:id.
type UpdateSessionRequest struct {
	DoctorName    *string `json:"doctorName"`
	SessionType   *string `json:"sessionType"`
	SessionDate   *string `json:"sessionDate"`
	IsAvailable   *bool   `json:"isAvailable"`
	SpecialNotice *string `json:"specialNotice"`
	Status        *string `json:"status"`
}

// DoctorSlot pairs a doctor with the only session type they may hold.
type DoctorSlot struct {
	DoctorName  string `json:"doctorName" mapstructure:"name" validate:"required"`
	SessionType string `json:"sessionType" mapstructure:"sessionType" validate:"required,oneof=Morning Evening"`
}
