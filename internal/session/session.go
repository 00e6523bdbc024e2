// Package session holds the process-lifetime widget state: the daily goal,
// the last calculator result, and the single pending-upload slot.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"hydration-backend/internal/intake"
	"hydration-backend/internal/shared/storage/object"
	"hydration-backend/internal/shared/util"
)

var (
	// ErrBusy indicates an analysis is already in flight for the pending upload.
	ErrBusy = errors.New("analysis already in progress")
	// ErrNoPendingUpload indicates there is no photo waiting to be analyzed.
	ErrNoPendingUpload = errors.New("no photo queued for analysis")
	// ErrNoCalculatedTarget indicates apply-goal was requested before the
	// calculator ran.
	ErrNoCalculatedTarget = errors.New("run the calculator first")
)

// Upload is the occupant of the pending-upload slot. Its stored preview
// object is released when the slot is replaced or consumed.
type Upload struct {
	PhotoID      string
	FileName     string
	Title        string
	StorageKey   string
	MimeType     string
	SizeBytes    int64
	LastModified time.Time
	UploadedAt   time.Time
}

// State is created once at session start and torn down at session end. All
// mutations are serialized; derived recomputation happens synchronously after
// the mutating call returns.
type State struct {
	mu             sync.Mutex
	store          object.ObjectStore
	dailyGoal      float64
	lastCalculated *intake.Result
	pending        *Upload
	analyzing      bool
}

// NewState constructs session state with the given starting goal.
func NewState(store object.ObjectStore, defaultGoal float64) *State {
	return &State{store: store, dailyGoal: defaultGoal}
}

// DailyGoal returns the current goal.
func (s *State) DailyGoal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dailyGoal
}

// SetCalculated stores the calculator's latest result.
func (s *State) SetCalculated(result intake.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := result
	s.lastCalculated = &r
}

// LastCalculated returns the stored calculator result, if any.
func (s *State) LastCalculated() (intake.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastCalculated == nil {
		return intake.Result{}, false
	}
	return *s.lastCalculated, true
}

// ApplyCalculatedGoal promotes the stored calculator result to the daily
// goal. The goal is never mutated by the analysis pipeline.
func (s *State) ApplyCalculatedGoal() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastCalculated == nil {
		return 0, ErrNoCalculatedTarget
	}
	s.dailyGoal = util.RoundTenth(s.lastCalculated.RecommendedOz)
	return s.dailyGoal, nil
}

// SetPending replaces the pending-upload slot, releasing the previous
// occupant's stored preview first.
func (s *State) SetPending(ctx context.Context, upload Upload) {
	s.mu.Lock()
	previous := s.pending
	s.pending = &upload
	s.mu.Unlock()

	if previous != nil {
		s.release(ctx, previous.StorageKey)
	}
}

// Pending returns a copy of the pending upload, if any.
func (s *State) Pending() (Upload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Upload{}, false
	}
	return *s.pending, true
}

// BeginAnalysis claims the pending upload for a single analysis attempt.
// Only one attempt may be in flight at a time.
func (s *State) BeginAnalysis() (Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyzing {
		return Upload{}, ErrBusy
	}
	if s.pending == nil {
		return Upload{}, ErrNoPendingUpload
	}
	s.analyzing = true
	return *s.pending, nil
}

// FinishAnalysis releases the in-flight claim. It always runs, success or
// failure, so the trigger is re-enabled in all outcomes. On success the slot
// is cleared and its preview released, unless a newer upload already replaced
// the analyzed one, in which case the newer occupant is left untouched.
// It reports whether the analyzed upload was still current.
func (s *State) FinishAnalysis(ctx context.Context, photoID string, success bool) bool {
	s.mu.Lock()
	s.analyzing = false
	current := s.pending != nil && s.pending.PhotoID == photoID
	var releaseKey string
	if success && current {
		releaseKey = s.pending.StorageKey
		s.pending = nil
	}
	s.mu.Unlock()

	if releaseKey != "" {
		s.release(ctx, releaseKey)
	}
	return current
}

func (s *State) release(ctx context.Context, storageKey string) {
	if s.store == nil || storageKey == "" {
		return
	}
	_ = s.store.Delete(ctx, storageKey)
}
