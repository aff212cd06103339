// FILE: database/repository/session/indexes.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the sessions collection.
func (r *mongoSessionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// One session per doctor, day and band. Last line of defense against racing creates.
		{
			Keys: bson.D{
				{Key: "doctorName", Value: 1},
				{Key: "sessionDate", Value: 1},
				{Key: "sessionType", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_doctor_date_type"),
		},
		// Listing order
		{
			Keys:    bson.D{{Key: "sessionDate", Value: 1}, {Key: "sessionType", Value: 1}},
			Options: options.Index().SetName("date_type_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}
