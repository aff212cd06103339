// File: database/repository/session/queries.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"vetcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listFilter turns a SessionFilter into a Mongo query document.
func listFilter(f models.SessionFilter) bson.M {
	filter := bson.M{}
	if f.DoctorName != "" {
		filter["doctorName"] = f.DoctorName
	}
	dateRange := bson.M{}
	if !f.From.IsZero() {
		dateRange["$gte"] = f.From
	}
	if !f.Until.IsZero() {
		dateRange["$lt"] = f.Until
	}
	if len(dateRange) > 0 {
		filter["sessionDate"] = dateRange
	}
	return filter
}

// List returns matching sessions ordered by sessionDate, then sessionType.
func (r *mongoSessionRepo) List(ctx context.Context, f models.SessionFilter) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "sessionDate", Value: 1},
		{Key: "sessionType", Value: 1},
	})
	cursor, err := r.coll.Find(ctx, listFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []models.Session{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return sessions, nil
}

func (r *mongoSessionRepo) SlotTaken(
	ctx context.Context,
	doctorName, sessionType string,
	dayStart, dayEnd time.Time,
	excludeID primitive.ObjectID,
) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorName":  doctorName,
		"sessionType": sessionType,
		"sessionDate": bson.M{"$gte": dayStart, "$lt": dayEnd},
	}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check session slot: %w", err)
	}
	return n > 0, nil
}
