package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/models"
	"github.com/vytor/hippomemory/internal/puzzle"
	"github.com/vytor/hippomemory/internal/repository"
	"github.com/vytor/hippomemory/internal/stats"
)

// Record keys. The memaday_* names are from before the rename and are read
// once, then copied forward.
const (
	ProgressKey       = "hippomemory_progress"
	UserIDKey         = "hippomemory_userId"
	LegacyProgressKey = "memaday_progress"
	LegacyUserIDKey   = "memaday_userId"
)

// ProgressService owns the durable per-user record: streaks, completions,
// statistics and the in-progress snapshot. Every mutation is persisted
// before the call returns.
type ProgressService interface {
	UserID(ctx context.Context) (string, error)
	Load(ctx context.Context) (*models.UserProgress, error)
	Save(ctx context.Context, progress *models.UserProgress) error
	RecordCompletion(ctx context.Context, outcome models.GameOutcome) (*models.UserProgress, error)
	CheckCompletion(ctx context.Context, dayNumber int, difficulty models.Difficulty) (models.CompletionStatus, error)
	HasInProgress(ctx context.Context, dayNumber int) (bool, error)
	GetInProgress(ctx context.Context) (*models.InProgressSnapshot, error)
	SaveInProgress(ctx context.Context, snapshot models.InProgressSnapshot) error
	ClearInProgress(ctx context.Context) error
	ResetDay(ctx context.Context, dayNumber int) (bool, error)
}

type progressService struct {
	store repository.KeyValueStore
	cal   *puzzle.Calendar
	now   func() time.Time
	newID func() string
}

type ProgressOption func(*progressService)

// WithClock overrides the completion timestamp source.
func WithClock(now func() time.Time) ProgressOption {
	return func(s *progressService) {
		s.now = now
	}
}

// WithUserIDGenerator overrides how a device user id is minted.
func WithUserIDGenerator(gen func() string) ProgressOption {
	return func(s *progressService) {
		s.newID = gen
	}
}

// NewProgressService creates a new ProgressService
func NewProgressService(store repository.KeyValueStore, cal *puzzle.Calendar, opts ...ProgressOption) ProgressService {
	s := &progressService{
		store: store,
		cal:   cal,
		now:   time.Now,
		newID: func() string { return "user_" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *progressService) UserID(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")

	raw, err := s.readMigrating(ctx, UserIDKey, LegacyUserIDKey)
	if err == nil && len(raw) > 0 {
		return string(raw), nil
	}
	if err != nil && !stderrors.Is(err, repository.ErrNotFound) {
		return "", errors.NewInternalError(err)
	}

	id := s.newID()
	log.Info("assigned new user id %s", id)
	if err := s.store.Set(ctx, UserIDKey, []byte(id)); err != nil {
		log.Error("failed to persist user id: %v", err)
		return "", errors.NewInternalError(err)
	}
	return id, nil
}

func (s *progressService) Load(ctx context.Context) (*models.UserProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")

	userID, err := s.UserID(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.readMigrating(ctx, ProgressKey, LegacyProgressKey)
	if stderrors.Is(err, repository.ErrNotFound) {
		log.Debug("no stored progress, starting fresh")
		return models.NewUserProgress(userID), nil
	}
	if err != nil {
		log.Error("failed to read progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	var p models.UserProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Warn("reinitializing progress: %v", errors.NewPersistenceCorruptError("progress", err))
		return models.NewUserProgress(userID), nil
	}
	if p.UserID != userID {
		log.Warn("reinitializing progress: stored user %q does not match %q", p.UserID, userID)
		return models.NewUserProgress(userID), nil
	}

	if stats.RepairDistribution(&p) {
		log.Warn("solve distribution disagreed with completion history, rewriting")
		if err := s.Save(ctx, &p); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (s *progressService) Save(ctx context.Context, progress *models.UserProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress")

	raw, err := json.Marshal(progress)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if err := s.store.Set(ctx, ProgressKey, raw); err != nil {
		log.Error("failed to save progress: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) RecordCompletion(ctx context.Context, outcome models.GameOutcome) (*models.UserProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")
	log.Debug("recording completion: day=%d difficulty=%s won=%t score=%d rounds=%d time=%ds",
		outcome.DayNumber, outcome.Difficulty, outcome.Won, outcome.Score, outcome.RoundsCompleted, outcome.TimeToComplete)

	p, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	stats.ApplyCompletion(p, outcome, s.cal.DateForDayNumber(outcome.DayNumber), s.now().UTC())

	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CheckCompletion reports the day's completion. A day holds one completion,
// whatever difficulty produced it; Difficulty says which.
func (s *progressService) CheckCompletion(ctx context.Context, dayNumber int, difficulty models.Difficulty) (models.CompletionStatus, error) {
	logger.FromContext(ctx).WithPrefix("progress").Debug("checking completion: day=%d difficulty=%s", dayNumber, difficulty)

	p, err := s.Load(ctx)
	if err != nil {
		return models.CompletionStatus{}, err
	}
	rec, ok := p.Completions[dayNumber]
	if !ok {
		return models.CompletionStatus{}, nil
	}
	return models.CompletionStatus{
		Completed:       rec.Completed,
		Won:             rec.Won,
		Difficulty:      rec.Difficulty,
		Score:           rec.Score,
		RoundsCompleted: rec.RoundsCompleted,
		TimeToComplete:  rec.TimeToComplete,
	}, nil
}

func (s *progressService) HasInProgress(ctx context.Context, dayNumber int) (bool, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return p.InProgress != nil && p.InProgress.DayNumber == dayNumber, nil
}

func (s *progressService) GetInProgress(ctx context.Context) (*models.InProgressSnapshot, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return p.InProgress, nil
}

func (s *progressService) SaveInProgress(ctx context.Context, snapshot models.InProgressSnapshot) error {
	p, err := s.Load(ctx)
	if err != nil {
		return err
	}
	snapshot.SavedAt = s.now().UTC()
	p.InProgress = &snapshot
	return s.Save(ctx, p)
}

func (s *progressService) ClearInProgress(ctx context.Context) error {
	p, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if p.InProgress == nil {
		return nil
	}
	p.InProgress = nil
	return s.Save(ctx, p)
}

func (s *progressService) ResetDay(ctx context.Context, dayNumber int) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")

	p, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	if !stats.RevertDay(p, dayNumber, s.cal.DateForDayNumber(dayNumber)) {
		log.Debug("nothing to reset for day %d", dayNumber)
		return false, nil
	}
	log.Info("reset day %d", dayNumber)
	if err := s.Save(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}

func (s *progressService) readMigrating(ctx context.Context, key, legacy string) ([]byte, error) {
	raw, err := s.store.Get(ctx, key)
	if !stderrors.Is(err, repository.ErrNotFound) {
		return raw, err
	}

	raw, err = s.store.Get(ctx, legacy)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).WithPrefix("progress").Info("migrating legacy key %s to %s", legacy, key)
	if err := s.store.Set(ctx, key, raw); err != nil {
		return nil, err
	}
	return raw, nil
}
