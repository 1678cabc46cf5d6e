package store

import (
	"context"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/bexshelf/bexshelf-server/internal/errors"
)

// Collection provides generic load/mutate/save operations over a single
// JSON array file for one entity type. All public operations hold the
// collection mutex for the full read-modify-write cycle, so the last
// writer can never silently drop an earlier concurrent write.
type Collection[T any] struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewCollection creates a Collection backed by the given file path.
func NewCollection[T any](path string, logger *slog.Logger) *Collection[T] {
	return &Collection[T]{
		path:   path,
		logger: logger,
	}
}

// load reads and parses the backing file. A missing or unreadable file
// yields an empty slice (fails open), matching the behavior clients of
// the original data files depend on for first-run.
func (c *Collection[T]) load() []T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		if c.logger != nil {
			c.logger.Warn("Failed to parse record file, treating as empty", "path", c.path, "error", err)
		}
		return []T{}
	}
	return records
}

// save serializes and rewrites the entire backing file. Two-space
// indentation keeps the files diffable and identical in shape to what
// the original client wrote.
func (c *Collection[T]) save(records []T) error {
	data, err := json.Marshal(records, jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}

// All returns every record in stored (insertion) order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(), nil
}

// Filter returns the records matching the predicate, in stored order.
func (c *Collection[T]) Filter(ctx context.Context, match func(*T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var out []T
	for _, rec := range c.load() {
		if match(&rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Find returns the first record matching the predicate.
// Returns ErrNotFound if nothing matches.
func (c *Collection[T]) Find(ctx context.Context, match func(*T) bool) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range c.load() {
		if match(&rec) {
			return &rec, nil
		}
	}
	return nil, errors.ErrNotFound
}

// Insert appends a record and persists.
func (c *Collection[T]) Insert(ctx context.Context, record T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	records := append(c.load(), record)
	return c.save(records)
}

// Update locates the record matching the predicate, applies mutate to it
// in place, persists, and returns the mutated record.
// Returns ErrNotFound if nothing matches; the file is left untouched.
func (c *Collection[T]) Update(ctx context.Context, match func(*T) bool, mutate func(*T) error) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load()
	for i := range records {
		if match(&records[i]) {
			if err := mutate(&records[i]); err != nil {
				return nil, err
			}
			if err := c.save(records); err != nil {
				return nil, err
			}
			return &records[i], nil
		}
	}
	return nil, errors.ErrNotFound
}

// Remove deletes the first record matching the predicate and persists.
// Returns the removed record, or ErrNotFound if nothing matched.
func (c *Collection[T]) Remove(ctx context.Context, match func(*T) bool) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load()
	for i := range records {
		if match(&records[i]) {
			removed := records[i]
			records = append(records[:i], records[i+1:]...)
			if err := c.save(records); err != nil {
				return nil, err
			}
			return &removed, nil
		}
	}
	return nil, errors.ErrNotFound
}

// Transact runs fn over the full record slice under the collection lock
// and persists whatever slice fn returns. It exists for the few
// operations that must touch several records in one read-modify-write
// cycle (the reading-goal deactivation cascade, the quick-note cap
// check). fn returning a nil slice means "no change, skip the save".
func (c *Collection[T]) Transact(ctx context.Context, fn func(records []T) ([]T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	updated, err := fn(c.load())
	if err != nil {
		return err
	}
	if updated == nil {
		return nil
	}
	return c.save(updated)
}

// Count returns how many records match the predicate.
func (c *Collection[T]) Count(ctx context.Context, match func(*T) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, rec := range c.load() {
		if match(&rec) {
			count++
		}
	}
	return count, nil
}
