package comment

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound is returned when a comment id does not exist.
	ErrNotFound = errors.New("comment not found")
	// ErrTextRequired is returned when comment text is empty after sanitizing.
	ErrTextRequired = errors.New("comment text is required")
)

// Store holds comments for the lifetime of the process.
type Store interface {
	// Add appends a comment. Its ParentID, if set, must reference a stored comment.
	Add(ctx context.Context, c Comment) error
	// Get returns the comment with the given id, without replies.
	Get(ctx context.Context, id string) (Comment, error)
	// List returns every comment in insertion order, without replies.
	List(ctx context.Context) ([]Comment, error)
	// Upvote increments a comment's votes and returns the new count.
	Upvote(ctx context.Context, id string) (int, error)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*Repository)(nil)
)

// MemoryStore is a slice-backed Store.
type MemoryStore struct {
	mu       sync.RWMutex
	comments []Comment
	index    map[string]int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[string]int)}
}

// Add appends c to the store.
func (m *MemoryStore) Add(_ context.Context, c Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.index[c.ID]; exists {
		return fmt.Errorf("comment %s already exists", c.ID)
	}
	if c.ParentID != nil {
		if _, ok := m.index[*c.ParentID]; !ok {
			return fmt.Errorf("parent %s: %w", *c.ParentID, ErrNotFound)
		}
	}

	c.Replies = nil
	m.index[c.ID] = len(m.comments)
	m.comments = append(m.comments, c)
	return nil
}

// Get returns the comment with the given id.
func (m *MemoryStore) Get(_ context.Context, id string) (Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		return Comment{}, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	return m.comments[i], nil
}

// List returns a snapshot of all comments in insertion order.
func (m *MemoryStore) List(_ context.Context) ([]Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Comment, len(m.comments))
	copy(out, m.comments)
	return out, nil
}

// Upvote increments the votes of the comment with the given id.
func (m *MemoryStore) Upvote(_ context.Context, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[id]
	if !ok {
		return 0, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	m.comments[i].Votes++
	return m.comments[i].Votes, nil
}
