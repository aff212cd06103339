// File: database/repository/session/memory.go
package sessionRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"vetcare/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemorySessionRepo is a process-local SessionRepository for development
// runs without MongoDB. It enforces the same unique slot constraint.
type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[primitive.ObjectID]models.Session
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{sessions: make(map[primitive.ObjectID]models.Session)}
}

func sameSlot(a, b models.Session) bool {
	return a.DoctorName == b.DoctorName && a.SessionType == b.SessionType && a.SessionDate.Equal(b.SessionDate)
}

func (m *MemorySessionRepo) slotHeld(s models.Session) bool {
	for id, other := range m.sessions {
		if id != s.ID && sameSlot(other, s) {
			return true
		}
	}
	return false
}

func (m *MemorySessionRepo) Create(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slotHeld(*s) {
		return ErrDuplicateSession
	}
	now := time.Now().UTC()
	s.ID = primitive.NewObjectID()
	s.CreatedAt, s.UpdatedAt = now, now
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemorySessionRepo) GetByID(_ context.Context, id string) (*models.Session, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[oid]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (m *MemorySessionRepo) List(_ context.Context, f models.SessionFilter) ([]models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Session{}
	for _, s := range m.sessions {
		if f.DoctorName != "" && s.DoctorName != f.DoctorName {
			continue
		}
		if !f.From.IsZero() && s.SessionDate.Before(f.From) {
			continue
		}
		if !f.Until.IsZero() && !s.SessionDate.Before(f.Until) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SessionDate.Equal(out[j].SessionDate) {
			return out[i].SessionDate.Before(out[j].SessionDate)
		}
		return out[i].SessionType < out[j].SessionType
	})
	return out, nil
}

func (m *MemorySessionRepo) SlotTaken(_ context.Context, doctorName, sessionType string, dayStart, dayEnd time.Time, excludeID primitive.ObjectID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, s := range m.sessions {
		if id == excludeID || s.DoctorName != doctorName || s.SessionType != sessionType {
			continue
		}
		if !s.SessionDate.Before(dayStart) && s.SessionDate.Before(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemorySessionRepo) Update(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.sessions[s.ID]
	if !ok {
		return ErrSessionNotFound
	}
	if stored.IsTerminal() {
		return ErrSessionLocked
	}
	if m.slotHeld(*s) {
		return ErrDuplicateSession
	}
	s.UpdatedAt = time.Now().UTC()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemorySessionRepo) DeleteByID(_ context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[oid]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, oid)
	return nil
}

func (m *MemorySessionRepo) EnsureIndexes(context.Context) error { return nil }
