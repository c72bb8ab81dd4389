// Package store defines the persistence interface for the member roster.
// The interface abstracts the backing document from the application's core
// logic, so the roster operations stay independent of the on-disk format.
package store

import (
	"context"

	"github.com/shaxn3/WSTFinalProject/internal/domain"
)

// MemberStore persists the whole member collection as one unit. There is no
// incremental access: callers load the full collection, mutate it in memory,
// and save it back.
type MemberStore interface {
	// Load returns the current collection in stored order. A missing
	// backing document is created empty; an unreadable one degrades to an
	// empty collection rather than failing the caller.
	Load(ctx context.Context) ([]domain.Member, error)

	// Save serializes the full collection, replacing the document's prior
	// contents. The replacement is atomic from the caller's perspective:
	// either the whole collection is persisted or the document is left
	// untouched.
	Save(ctx context.Context, members []domain.Member) error
}
