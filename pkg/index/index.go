// Package index maintains a searchable catalog of loaded recipes. The
// catalog is rebuilt wholesale from a collection after each successful
// load; it never mutates incrementally, so a crashed build leaves the
// previous index intact. Two backends exist: a SQLite store for the
// on-disk index the search command reads, and an in-memory store for
// the preview server's search endpoint.
package index

import (
	"context"
	"fmt"

	"hearthside/cookbook/pkg/cookbook/recipe"
)

// DefaultLimit caps search results when the query does not set a limit.
const DefaultLimit = 50

// Entry is one indexed recipe: the searchable fields plus enough
// metadata to point back at the source file and the rendered page. The
// json tags shape the preview server's search responses.
type Entry struct {
	// ID is the recipe's document identifier
	ID string `json:"id"`

	// Title is the recipe title
	Title string `json:"title"`

	// Path is the source file the recipe was loaded from
	Path string `json:"path"`

	// Image is the companion image file name, empty when none
	Image string `json:"image,omitempty"`

	// Tags are the recipe's classification labels
	Tags []string `json:"tags,omitempty"`

	// Groups are the group labels the recipe claims
	Groups []string `json:"groups,omitempty"`

	// Ingredients is the ingredient count
	Ingredients int `json:"ingredients"`

	// Steps is the step count
	Steps int `json:"steps"`
}

// Query filters a search. All populated fields must match.
type Query struct {
	// Terms are matched case-insensitively as substrings of the title or
	// tags; every term must match
	Terms []string

	// Tag narrows to entries carrying exactly this tag
	Tag string

	// Group narrows to entries that claim exactly this group label
	Group string

	// Limit caps the number of results; zero means DefaultLimit
	Limit int
}

// Store is the persistence contract for the recipe index.
type Store interface {
	// Rebuild atomically replaces the whole catalog with entries.
	Rebuild(ctx context.Context, entries []*Entry) error

	// Search returns entries matching the query, ordered by title.
	Search(ctx context.Context, query Query) ([]*Entry, error)

	// Count returns the number of indexed entries.
	Count(ctx context.Context) (int64, error)

	// Close releases the store's resources.
	Close() error
}

// FromCollection converts a loaded collection into index entries, in
// load order.
func FromCollection(c *recipe.Collection) []*Entry {
	entries := make([]*Entry, 0, len(c.Recipes))
	for _, r := range c.Recipes {
		entries = append(entries, &Entry{
			ID:          r.ID,
			Title:       r.Title,
			Path:        r.Path,
			Image:       r.Img,
			Tags:        r.Tags,
			Groups:      r.Groups,
			Ingredients: len(r.Ingredients),
			Steps:       len(r.Steps),
		})
	}
	return entries
}

// StorageError reports a failed index operation.
type StorageError struct {
	// Backend identifies the store implementation ("sqlite", "memory")
	Backend string

	// Operation is the store operation that failed
	Operation string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("index %s: %s failed: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a storage error for the given backend and
// operation.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}
