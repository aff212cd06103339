package scheduler

import (
	"context"
	"sync"
	"time"

	sessionRepo "vetcare/database/repository/session"
	"vetcare/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memRepo wraps the in-memory store with failure injection.
type memRepo struct {
	*sessionRepo.MemorySessionRepo

	// skipPrecheck makes SlotTaken always report a free slot, so only the
	// unique constraint can stop a duplicate.
	skipPrecheck bool
	failWith     error
}

func newMemRepo() *memRepo {
	return &memRepo{MemorySessionRepo: sessionRepo.NewMemorySessionRepo()}
}

func (m *memRepo) Create(ctx context.Context, s *models.Session) error {
	if m.failWith != nil {
		return m.failWith
	}
	return m.MemorySessionRepo.Create(ctx, s)
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.MemorySessionRepo.GetByID(ctx, id)
}

func (m *memRepo) List(ctx context.Context, f models.SessionFilter) ([]models.Session, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.MemorySessionRepo.List(ctx, f)
}

func (m *memRepo) SlotTaken(ctx context.Context, doctor, sessionType string, dayStart, dayEnd time.Time, exclude primitive.ObjectID) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	if m.skipPrecheck {
		return false, nil
	}
	return m.MemorySessionRepo.SlotTaken(ctx, doctor, sessionType, dayStart, dayEnd, exclude)
}

func (m *memRepo) Update(ctx context.Context, s *models.Session) error {
	if m.failWith != nil {
		return m.failWith
	}
	return m.MemorySessionRepo.Update(ctx, s)
}

func (m *memRepo) DeleteByID(ctx context.Context, id string) error {
	if m.failWith != nil {
		return m.failWith
	}
	return m.MemorySessionRepo.DeleteByID(ctx, id)
}

func (m *memRepo) count() int {
	all, _ := m.MemorySessionRepo.List(context.Background(), models.SessionFilter{})
	return len(all)
}

// forceStatus writes a status directly, bypassing the scheduler. The
// session must still be non-terminal.
func (m *memRepo) forceStatus(id primitive.ObjectID, status string) {
	ctx := context.Background()
	s, err := m.MemorySessionRepo.GetByID(ctx, id.Hex())
	if err != nil {
		panic(err)
	}
	s.Status = status
	if err := m.MemorySessionRepo.Update(ctx, s); err != nil {
		panic(err)
	}
}

type countingCache struct {
	mu          sync.Mutex
	stored      []models.Session
	has         bool
	hits        int
	invalidated int
}

func (c *countingCache) GetSessions(context.Context) ([]models.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.has {
		c.hits++
	}
	return c.stored, c.has
}

func (c *countingCache) SetSessions(_ context.Context, s []models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored, c.has = s, true
}

func (c *countingCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored, c.has = nil, false
	c.invalidated++
}
