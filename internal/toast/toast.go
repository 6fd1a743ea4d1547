// Package toast implements the notification store: creation, in-place update,
// manual dismissal, and timer-driven auto-expiry.
package toast

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type classifies a toast and selects its default duration.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypePending Type = "pending"
	TypeInfo    Type = "info"
)

// DefaultDuration returns the auto-dismiss duration for a type.
// Zero means the toast stays until dismissed.
func DefaultDuration(t Type) time.Duration {
	switch t {
	case TypeSuccess, TypeInfo:
		return 5 * time.Second
	default:
		return 0
	}
}

// Toast is a single notification.
type Toast struct {
	ID          string        `json:"id"`
	Type        Type          `json:"type"`
	Title       string        `json:"title,omitempty"`
	Message     string        `json:"message"`
	Duration    time.Duration `json:"duration"`
	Dismissible bool          `json:"dismissible"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Update is a partial patch applied to an existing toast. Nil fields keep
// their current value.
type Update struct {
	Type        *Type
	Title       *string
	Message     *string
	Duration    *time.Duration
	Dismissible *bool
}

// Store owns all live toasts and their expiry timers. Timer handles are
// tracked per toast ID so a stale timer can never remove a toast that has
// since been updated or replaced.
type Store struct {
	mu     sync.Mutex
	toasts []Toast
	timers map[string]*time.Timer
	// generations guard against an already-fired stale callback removing a
	// toast whose timer was disarmed and re-armed while it was in flight.
	generations map[string]uint64

	// afterFunc is swappable in tests to drive timers synthetically.
	afterFunc func(d time.Duration, f func()) *time.Timer
}

// NewStore creates an empty toast store.
func NewStore() *Store {
	return &Store{
		timers:      make(map[string]*time.Timer),
		generations: make(map[string]uint64),
		afterFunc:   time.AfterFunc,
	}
}

// Add creates a toast with the type's default duration and returns its ID.
func (s *Store) Add(t Type, title, message string) string {
	return s.AddWithDuration(t, title, message, DefaultDuration(t))
}

// AddWithDuration creates a toast with an explicit duration (0 = sticky).
func (s *Store) AddWithDuration(t Type, title, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	toast := Toast{
		ID:          uuid.NewString(),
		Type:        t,
		Title:       title,
		Message:     message,
		Duration:    duration,
		Dismissible: t != TypePending,
		CreatedAt:   time.Now(),
	}
	s.toasts = append(s.toasts, toast)
	s.armTimer(toast.ID, duration)
	return toast.ID
}

// Update morphs a toast in place, used to turn a pending toast into a
// success or error. Any armed timer is cleared first; a new one is armed
// when the patch (or the resulting type's default) sets a positive duration.
func (s *Store) Update(id string, patch Update) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.toasts, func(t Toast) bool { return t.ID == id })
	if i < 0 {
		return false
	}

	s.disarmTimer(id)

	t := &s.toasts[i]
	if patch.Type != nil {
		t.Type = *patch.Type
		t.Duration = DefaultDuration(*patch.Type)
		t.Dismissible = *patch.Type != TypePending
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Message != nil {
		t.Message = *patch.Message
	}
	if patch.Duration != nil {
		t.Duration = *patch.Duration
	}
	if patch.Dismissible != nil {
		t.Dismissible = *patch.Dismissible
	}

	s.armTimer(id, t.Duration)
	return true
}

// Dismiss removes a toast and cancels its timer. Unknown IDs are a no-op,
// so dismissal after auto-expiry is harmless.
func (s *Store) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

// List returns the live toasts in creation order.
func (s *Store) List() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.toasts)
}

// Clear removes all toasts and cancels every timer.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.timers {
		s.timers[id].Stop()
		delete(s.timers, id)
	}
	s.toasts = nil
}

// armTimer schedules auto-removal. Callers must hold the lock and must have
// disarmed any previous timer for the ID.
func (s *Store) armTimer(id string, duration time.Duration) {
	if duration <= 0 {
		return
	}
	s.generations[id]++
	gen := s.generations[id]
	s.timers[id] = s.afterFunc(duration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generations[id] != gen {
			return
		}
		s.remove(id)
	})
}

func (s *Store) disarmTimer(id string) {
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	s.generations[id]++
}

func (s *Store) remove(id string) {
	s.disarmTimer(id)
	delete(s.generations, id)
	s.toasts = slices.DeleteFunc(s.toasts, func(t Toast) bool { return t.ID == id })
}
