// Package roster implements the member roster operations: read, bulk
// replace, add, update, delete, and aggregate statistics. Each mutating
// operation loads the full collection, applies one change in memory,
// validates the collection invariants, and persists the full collection
// back before returning.
package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shaxn3/WSTFinalProject/internal/domain"
	"github.com/shaxn3/WSTFinalProject/internal/store"
)

// Stats summarizes the collection: total member count and a per-course
// count keyed by uppercased course name.
type Stats struct {
	Total   int            `json:"total"`
	Courses map[string]int `json:"courses"`
}

// Service owns the roster operations over a MemberStore.
//
// Without a guard the load-mutate-save sequence is unsynchronized: two
// concurrent mutations race and the second save overwrites the first
// (lost update). That is the documented behavior of the baseline design;
// WithGuard serializes the critical section per service instance without
// changing the external contract.
type Service struct {
	store  store.MemberStore
	logger *slog.Logger
	guard  *sync.Mutex
	now    func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithGuard serializes the load-mutate-save critical section of the
// mutating operations behind a mutex scoped to the backing document.
func WithGuard() Option {
	return func(s *Service) {
		s.guard = &sync.Mutex{}
	}
}

// WithClock overrides the time source used for ID generation. Tests use it
// to pin the ID year.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a roster Service over the given store.
func New(st store.MemberStore, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for roster.Service")
	}

	s := &Service{
		store:  st,
		logger: logger.With(slog.String("component", "roster_service")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lock acquires the critical-section guard when configured. The returned
// function releases it and is a no-op for the unguarded baseline.
func (s *Service) lock() func() {
	if s.guard == nil {
		return func() {}
	}
	s.guard.Lock()
	return s.guard.Unlock
}

// List returns the entire collection in stored order.
func (s *Service) List(ctx context.Context) ([]domain.Member, error) {
	members, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	return members, nil
}

// Replace overwrites the store wholesale with the candidate collection.
// Every candidate is validated first and all violations are reported
// together, keyed by candidate position; duplicate IDs or emails across
// candidates are reported against every position involved. On any failure
// the store is left untouched.
func (s *Service) Replace(ctx context.Context, members []domain.Member) error {
	if verr := validateCollection(members); verr != nil {
		return verr
	}

	unlock := s.lock()
	defer unlock()

	if err := s.store.Save(ctx, members); err != nil {
		return fmt.Errorf("replace members: %w", err)
	}

	s.logger.Info("collection replaced", slog.Int("count", len(members)))
	return nil
}

// Add validates the candidate, assigns an ID when none was supplied, and
// appends it to the collection. Name, email, and course are trimmed before
// validation. The picture check runs first and produces ErrInvalidImage;
// field violations produce a ValidationError; colliding IDs or emails
// produce ErrDuplicateID / ErrDuplicateEmail. Returns the stored member,
// including any generated ID.
func (s *Service) Add(ctx context.Context, candidate domain.Member) (domain.Member, error) {
	candidate = trimmed(candidate)

	if !domain.ValidPicture(candidate.Picture) {
		return domain.Member{}, ErrInvalidImage
	}
	if errs := candidate.Validate(); len(errs) > 0 {
		return domain.Member{}, &ValidationError{Fields: errs}
	}

	unlock := s.lock()
	defer unlock()

	members, err := s.store.Load(ctx)
	if err != nil {
		return domain.Member{}, fmt.Errorf("load members: %w", err)
	}

	if candidate.ID == "" {
		candidate.ID = domain.NextID(members, s.now().Year())
	}
	if domain.IDExists(members, candidate.ID) {
		return domain.Member{}, ErrDuplicateID
	}
	if domain.EmailExists(members, candidate.Email, -1) {
		return domain.Member{}, ErrDuplicateEmail
	}

	members = append(members, candidate)
	if err := s.store.Save(ctx, members); err != nil {
		return domain.Member{}, fmt.Errorf("save member: %w", err)
	}

	s.logger.Info("member added", slog.String("member_id", candidate.ID))
	return candidate, nil
}

// Update replaces the record with the given ID by the candidate. The
// candidate's own ID field is ignored: the target ID is authoritative and
// immutable. The new email may only collide with the record being updated.
func (s *Service) Update(ctx context.Context, id string, candidate domain.Member) (domain.Member, error) {
	candidate = trimmed(candidate)

	if !domain.ValidPicture(candidate.Picture) {
		return domain.Member{}, ErrInvalidImage
	}

	// The ID is supplied out-of-band; whatever the body carried is
	// discarded before validation.
	candidate.ID = id

	if errs := candidate.Validate(); len(errs) > 0 {
		return domain.Member{}, &ValidationError{Fields: errs}
	}

	unlock := s.lock()
	defer unlock()

	members, err := s.store.Load(ctx)
	if err != nil {
		return domain.Member{}, fmt.Errorf("load members: %w", err)
	}

	index := -1
	for i := range members {
		if members[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return domain.Member{}, ErrMemberNotFound
	}

	if domain.EmailExists(members, candidate.Email, index) {
		return domain.Member{}, ErrDuplicateEmail
	}

	members[index] = candidate
	if err := s.store.Save(ctx, members); err != nil {
		return domain.Member{}, fmt.Errorf("save member: %w", err)
	}

	s.logger.Info("member updated", slog.String("member_id", id))
	return candidate, nil
}

// Delete removes the record with the given ID, preserving the relative
// order of the remaining records.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.lock()
	defer unlock()

	members, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load members: %w", err)
	}

	remaining := make([]domain.Member, 0, len(members))
	for _, m := range members {
		if m.ID != id {
			remaining = append(remaining, m)
		}
	}
	if len(remaining) == len(members) {
		return ErrMemberNotFound
	}

	if err := s.store.Save(ctx, remaining); err != nil {
		return fmt.Errorf("save members: %w", err)
	}

	s.logger.Info("member deleted", slog.String("member_id", id))
	return nil
}

// Stats returns the total member count and the per-course membership
// counts, with course names uppercased.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	members, err := s.store.Load(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load members: %w", err)
	}

	stats := Stats{
		Total:   len(members),
		Courses: make(map[string]int),
	}
	for _, m := range members {
		stats.Courses[strings.ToUpper(m.Course)]++
	}
	return stats, nil
}

// trimmed returns the candidate with name, email, and course whitespace
// trimmed. The picture value is passed through untouched.
func trimmed(m domain.Member) domain.Member {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Course = strings.TrimSpace(m.Course)
	return m
}

// validateCollection checks every candidate's field rules plus the
// collection-wide uniqueness invariants, and gathers all violations into a
// single ValidationError keyed by candidate position.
func validateCollection(members []domain.Member) *ValidationError {
	records := make(map[string][]domain.FieldError)

	key := func(i int) string { return fmt.Sprintf("member_%d", i) }

	for i, m := range members {
		if errs := m.Validate(); len(errs) > 0 {
			records[key(i)] = append(records[key(i)], errs...)
		}
	}

	// Uniqueness violations are reported against every position involved
	// so the caller can fix either record.
	seenID := make(map[string][]int)
	seenEmail := make(map[string][]int)
	for i, m := range members {
		if m.ID != "" {
			seenID[m.ID] = append(seenID[m.ID], i)
		}
		if m.Email != "" {
			seenEmail[strings.ToLower(m.Email)] = append(seenEmail[strings.ToLower(m.Email)], i)
		}
	}
	for _, positions := range seenID {
		if len(positions) < 2 {
			continue
		}
		for _, i := range positions {
			records[key(i)] = append(records[key(i)], domain.FieldError{
				Field:   "id",
				Kind:    domain.IDDuplicate,
				Message: "Member ID already exists",
			})
		}
	}
	for _, positions := range seenEmail {
		if len(positions) < 2 {
			continue
		}
		for _, i := range positions {
			records[key(i)] = append(records[key(i)], domain.FieldError{
				Field:   "email",
				Kind:    domain.EmailDuplicate,
				Message: "Email already exists",
			})
		}
	}

	if len(records) == 0 {
		return nil
	}
	return &ValidationError{Records: records}
}
