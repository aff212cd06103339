// File: services/scheduler/scheduler.go
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	sessionRepo "vetcare/database/repository/session"
	"vetcare/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const dayLayout = "2006-01-02"

// ListCache holds the unfiltered, ordered session listing between writes.
type ListCache interface {
	GetSessions(ctx context.Context) ([]models.Session, bool)
	SetSessions(ctx context.Context, sessions []models.Session)
	Invalidate(ctx context.Context)
}

type noopCache struct{}

func (noopCache) GetSessions(context.Context) ([]models.Session, bool) { return nil, false }
func (noopCache) SetSessions(context.Context, []models.Session)        {}
func (noopCache) Invalidate(context.Context)                           {}

// Scheduler owns validation and conflict checks for doctor sessions.
// It holds no locks: the repository's unique index settles racing writes.
type Scheduler struct {
	repo   sessionRepo.SessionRepository
	roster Roster
	clock  Clock
	loc    *time.Location
	cache  ListCache
	logger *zap.Logger
}

// New wires a Scheduler. nil clock, loc, cache or logger fall back to
// the system clock, time.Local, no caching and a no-op logger.
func New(repo sessionRepo.SessionRepository, roster Roster, clock Clock, loc *time.Location, cache ListCache, logger *zap.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	if cache == nil {
		cache = noopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{repo: repo, roster: roster, clock: clock, loc: loc, cache: cache, logger: logger}
}

// Roster returns the doctors this scheduler accepts.
func (s *Scheduler) Roster() Roster { return s.roster }

// Location is the zone that decides where a calendar day starts.
func (s *Scheduler) Location() *time.Location { return s.loc }

func (s *Scheduler) dayStart(t time.Time) time.Time { return NormalizeToDayStart(t, s.loc) }

func (s *Scheduler) today() time.Time { return s.dayStart(s.clock.Now()) }

// ListAll returns every session ordered by date, then session type.
func (s *Scheduler) ListAll(ctx context.Context) ([]models.Session, error) {
	return s.List(ctx, "", nil, nil)
}

// List returns sessions optionally narrowed to one doctor and to the
// inclusive day range [from, to]. Ordering matches ListAll.
func (s *Scheduler) List(ctx context.Context, doctorName string, from, to *time.Time) ([]models.Session, error) {
	var filter models.SessionFilter
	filter.DoctorName = doctorName
	if from != nil {
		filter.From = s.dayStart(*from)
	}
	if to != nil {
		filter.Until = nextDay(s.dayStart(*to))
	}
	if from != nil && to != nil && s.dayStart(*to).Before(filter.From) {
		return nil, fmt.Errorf("%w: range end %s precedes start %s", ErrInvalidDate,
			to.In(s.loc).Format(dayLayout), from.In(s.loc).Format(dayLayout))
	}

	if filter.IsEmpty() {
		if cached, ok := s.cache.GetSessions(ctx); ok {
			return cached, nil
		}
	}

	sessions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fromRepo(err, "")
	}
	if filter.IsEmpty() {
		s.cache.SetSessions(ctx, sessions)
	}
	return sessions, nil
}

// Get loads one session by its hex id.
func (s *Scheduler) Get(ctx context.Context, id string) (*models.Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, id)
	}
	return sess, nil
}

// ValidateSlot runs the create checks that precede the date: required
// fields, then the doctor, the session type and their pairing. hasDate
// reports whether a session date was supplied at all.
func (s *Scheduler) ValidateSlot(doctorName, sessionType string, hasDate bool) error {
	var missing []string
	if doctorName == "" {
		missing = append(missing, "doctorName")
	}
	if sessionType == "" {
		missing = append(missing, "sessionType")
	}
	if !hasDate {
		missing = append(missing, "sessionDate")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	required, err := s.requiredType(doctorName)
	if err != nil {
		return err
	}
	return s.checkSlot(doctorName, sessionType, required)
}

// Create validates in and stores a new Upcoming session on the normalized day.
// Checks run in a fixed order and the first failure is returned.
func (s *Scheduler) Create(ctx context.Context, in models.CreateSessionInput) (*models.Session, error) {
	hasDate := in.SessionDate != nil && !in.SessionDate.IsZero()
	if err := s.ValidateSlot(in.DoctorName, in.SessionType, hasDate); err != nil {
		return nil, err
	}

	day, err := s.futureDay(*in.SessionDate)
	if err != nil {
		return nil, err
	}
	if err := checkNotice(in.SpecialNotice); err != nil {
		return nil, err
	}
	if err := s.checkConflict(ctx, in.DoctorName, in.SessionType, day, primitive.NilObjectID); err != nil {
		return nil, err
	}

	sess := &models.Session{
		DoctorName:    in.DoctorName,
		SessionType:   in.SessionType,
		SessionDate:   day,
		IsAvailable:   true,
		SpecialNotice: in.SpecialNotice,
		Status:        models.SessionStatusUpcoming,
	}
	if in.IsAvailable != nil {
		sess.IsAvailable = *in.IsAvailable
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		// A racing create may win between the pre-check and the insert.
		if errors.Is(err, sessionRepo.ErrDuplicateSession) {
			return nil, duplicateError(sess.DoctorName, sess.SessionType, day.Format(dayLayout))
		}
		return nil, fromRepo(err, "")
	}
	s.cache.Invalidate(ctx)

	s.logger.Info("session created",
		zap.String("id", sess.ID.Hex()),
		zap.String("doctor", sess.DoctorName),
		zap.String("type", sess.SessionType),
		zap.String("date", day.Format(dayLayout)),
	)
	return sess, nil
}

// Update applies a partial change to a non-terminal session.
func (s *Scheduler) Update(ctx context.Context, id string, in models.UpdateSessionInput) (*models.Session, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, id)
	}
	if existing.IsTerminal() {
		return nil, fmt.Errorf("%w: session %s is %s and can no longer be edited", ErrImmutableSession, id, existing.Status)
	}

	updated := *existing

	if in.DoctorName != nil {
		updated.DoctorName = *in.DoctorName
	}
	required, err := s.requiredType(updated.DoctorName)
	if err != nil {
		return nil, err
	}
	if in.SessionType != nil {
		updated.SessionType = *in.SessionType
	}
	if err := s.checkSlot(updated.DoctorName, updated.SessionType, required); err != nil {
		return nil, err
	}

	if in.SessionDate != nil {
		day, err := s.futureDay(*in.SessionDate)
		if err != nil {
			return nil, err
		}
		updated.SessionDate = day
	}

	if in.SpecialNotice != nil {
		if err := checkNotice(*in.SpecialNotice); err != nil {
			return nil, err
		}
		updated.SpecialNotice = *in.SpecialNotice
	}
	if in.IsAvailable != nil {
		updated.IsAvailable = *in.IsAvailable
	}
	if in.Status != nil {
		if err := checkStatus(*in.Status); err != nil {
			return nil, err
		}
		updated.Status = *in.Status
	}

	slotMoved := updated.DoctorName != existing.DoctorName ||
		updated.SessionType != existing.SessionType ||
		!updated.SessionDate.Equal(existing.SessionDate)
	if in.SessionDate != nil || slotMoved {
		if err := s.checkConflict(ctx, updated.DoctorName, updated.SessionType, s.dayStart(updated.SessionDate), existing.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fromRepo(err, id)
	}
	s.cache.Invalidate(ctx)

	s.logger.Info("session updated",
		zap.String("id", id),
		zap.String("status", updated.Status),
		zap.Bool("slotMoved", slotMoved),
	)
	return &updated, nil
}

// Remove hard-deletes a session.
func (s *Scheduler) Remove(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fromRepo(err, id)
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("session deleted", zap.String("id", id))
	return nil
}

func (s *Scheduler) requiredType(doctor string) (string, error) {
	required, ok := s.roster.RequiredType(doctor)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a recognized doctor", ErrInvalidDoctor, doctor)
	}
	return required, nil
}

func (s *Scheduler) checkSlot(doctor, sessionType, required string) error {
	if !IsValidSessionType(sessionType) {
		return fmt.Errorf("%w: %q must be Morning or Evening", ErrInvalidSessionType, sessionType)
	}
	if sessionType != required {
		return fmt.Errorf("%w: %s can only be assigned to %s sessions", ErrDoctorSlotMismatch, doctor, required)
	}
	return nil
}

// futureDay normalizes t and rejects days before today.
func (s *Scheduler) futureDay(t time.Time) (time.Time, error) {
	day := s.dayStart(t)
	today := s.today()
	if day.Before(today) {
		return time.Time{}, fmt.Errorf("%w: %s is before today (%s)", ErrPastDate, day.Format(dayLayout), today.Format(dayLayout))
	}
	return day, nil
}

func (s *Scheduler) checkConflict(ctx context.Context, doctor, sessionType string, day time.Time, exclude primitive.ObjectID) error {
	taken, err := s.repo.SlotTaken(ctx, doctor, sessionType, day, nextDay(day), exclude)
	if err != nil {
		return fromRepo(err, "")
	}
	if taken {
		return duplicateError(doctor, sessionType, day.Format(dayLayout))
	}
	return nil
}

func checkNotice(notice string) error {
	if n := utf8.RuneCountInString(notice); n > models.MaxSpecialNoticeLength {
		return fmt.Errorf("%w: special notice is %d characters, the limit is %d", ErrInvalidNotice, n, models.MaxSpecialNoticeLength)
	}
	return nil
}
