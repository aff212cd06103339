// File: database/repository/session/interface.go
package sessionRepo

import (
	"context"
	"errors"
	"time"

	"vetcare/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidSessionID = errors.New("invalid session id")
	// ErrDuplicateSession is returned when the unique (doctorName, sessionDate, sessionType) index rejects a write.
	ErrDuplicateSession = errors.New("session slot already taken")
	// ErrSessionLocked is returned when an update hits a session that reached a terminal status.
	ErrSessionLocked = errors.New("session is in a terminal status")
)

type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.Session, error)
	// SlotTaken reports whether a session other than excludeID holds the doctor/type
	// pair on a date in [dayStart, dayEnd). Pass primitive.NilObjectID to exclude nothing.
	SlotTaken(ctx context.Context, doctorName, sessionType string, dayStart, dayEnd time.Time, excludeID primitive.ObjectID) (bool, error)
	Update(ctx context.Context, s *models.Session) error
	DeleteByID(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoSessionRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoSessionRepo constructs a new MongoDB SessionRepository on db's "sessions" collection.
func NewMongoSessionRepo(db *mongo.Database) SessionRepository {
	return &mongoSessionRepo{
		coll: db.Collection("sessions"),
		now:  time.Now,
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidSessionID
	}
	return oid, nil
}
