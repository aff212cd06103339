package sessionRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"vetcare/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemorySessionRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepo()
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	a := &models.Session{DoctorName: "Dr. A", SessionType: models.SessionTypeMorning, SessionDate: day, Status: models.SessionStatusUpcoming}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dup := &models.Session{DoctorName: "Dr. A", SessionType: models.SessionTypeMorning, SessionDate: day}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrDuplicateSession) {
		t.Fatalf("expected ErrDuplicateSession, got %v", err)
	}

	taken, err := repo.SlotTaken(ctx, "Dr. A", models.SessionTypeMorning, day, day.AddDate(0, 0, 1), primitive.NilObjectID)
	if err != nil || !taken {
		t.Fatalf("expected slot taken, got %v %v", taken, err)
	}
	taken, _ = repo.SlotTaken(ctx, "Dr. A", models.SessionTypeMorning, day, day.AddDate(0, 0, 1), a.ID)
	if taken {
		t.Fatal("expected excluded session to be ignored")
	}

	a.Status = models.SessionStatusCancelled
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.SpecialNotice = "late edit"
	if err := repo.Update(ctx, a); !errors.Is(err, ErrSessionLocked) {
		t.Fatalf("expected ErrSessionLocked, got %v", err)
	}

	if _, err := repo.GetByID(ctx, "bad"); !errors.Is(err, ErrInvalidSessionID) {
		t.Fatalf("expected ErrInvalidSessionID, got %v", err)
	}
	if err := repo.DeleteByID(ctx, a.ID.Hex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.GetByID(ctx, a.ID.Hex()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
