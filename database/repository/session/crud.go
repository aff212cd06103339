// File: database/repository/session/crud.go
package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vetcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoSessionRepo) Create(ctx context.Context, s *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := r.now().UTC()
	s.ID = primitive.NewObjectID()
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		s.ID = primitive.NilObjectID
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSession
		}
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *mongoSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Session
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}
	return &s, nil
}

// Update overwrites the mutable fields of s. The write only applies while the
// stored session is still non-terminal.
func (r *mongoSessionRepo) Update(ctx context.Context, s *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.UpdatedAt = r.now().UTC()
	filter := bson.M{
		"_id": s.ID,
		"status": bson.M{"$nin": bson.A{
			models.SessionStatusCompleted,
			models.SessionStatusCancelled,
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"doctorName":    s.DoctorName,
			"sessionType":   s.SessionType,
			"sessionDate":   s.SessionDate,
			"isAvailable":   s.IsAvailable,
			"specialNotice": s.SpecialNotice,
			"status":        s.Status,
			"updatedAt":     s.UpdatedAt,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSession
		}
		return fmt.Errorf("failed to update session: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either gone or frozen by a concurrent status change.
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": s.ID})
	if err != nil {
		return fmt.Errorf("failed to recheck session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return ErrSessionLocked
}

func (r *mongoSessionRepo) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}
