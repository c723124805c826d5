package index

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore implements Store with an in-process catalog. The preview
// server uses it for its search endpoint when no on-disk index is
// configured; it is also convenient in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryStore creates an empty in-memory index.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Rebuild implements Store.
func (s *MemoryStore) Rebuild(ctx context.Context, entries []*Entry) error {
	if err := ctx.Err(); err != nil {
		return NewStorageError("memory", "rebuild", err)
	}

	replacement := make([]*Entry, len(entries))
	copy(replacement, entries)

	s.mu.Lock()
	s.entries = replacement
	s.mu.Unlock()
	return nil
}

// Search implements Store.
func (s *MemoryStore) Search(ctx context.Context, query Query) ([]*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewStorageError("memory", "search", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []*Entry{}
	for _, e := range s.entries {
		if matchesQuery(e, query) {
			matches = append(matches, e)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return strings.ToLower(matches[i].Title) < strings.ToLower(matches[j].Title)
	})

	limit := DefaultLimit
	if query.Limit > 0 {
		limit = query.Limit
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Count implements Store.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, NewStorageError("memory", "count", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

// matchesQuery checks an entry against every populated query filter.
func matchesQuery(e *Entry, query Query) bool {
	for _, term := range query.Terms {
		if !matchesTerm(e, strings.ToLower(term)) {
			return false
		}
	}
	if query.Tag != "" && !contains(e.Tags, query.Tag) {
		return false
	}
	if query.Group != "" && !contains(e.Groups, query.Group) {
		return false
	}
	return true
}

func matchesTerm(e *Entry, term string) bool {
	if strings.Contains(strings.ToLower(e.Title), term) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
