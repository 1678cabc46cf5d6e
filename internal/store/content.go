package store

import (
	"context"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bexshelf/bexshelf-server/internal/domain"
)

// ContentStore persists one free-text content blob per parent entity as
// a standalone JSON file named {parentID}.json. Content files live
// independently of the parent's record: clearing content keeps the
// file, deleting the parent removes it best-effort.
type ContentStore struct {
	dir    string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewContentStore creates a ContentStore over the given directory.
// The directory is created by Store.New before this is called.
func NewContentStore(dir string, logger *slog.Logger) *ContentStore {
	return &ContentStore{
		dir:    dir,
		logger: logger,
	}
}

// path maps a parent ID to its content file, rejecting IDs that would
// escape the content directory. IDs come from URLs, so this is the one
// place they touch the filesystem unvalidated.
func (c *ContentStore) path(parentID string) (string, error) {
	if parentID == "" || strings.ContainsAny(parentID, "/\\") || strings.Contains(parentID, "..") {
		return "", fmt.Errorf("invalid content id %q", parentID)
	}
	return filepath.Join(c.dir, parentID+".json"), nil
}

// Get returns the content for a parent, or nil if none was ever saved.
// Callers substitute domain.EmptySideContent for nil.
func (c *ContentStore) Get(ctx context.Context, parentID string) (*domain.SideContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := c.path(parentID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		// Absent content is not an error; callers treat it as empty.
		return nil, nil
	}

	var content domain.SideContent
	if err := json.Unmarshal(data, &content); err != nil {
		if c.logger != nil {
			c.logger.Warn("Failed to parse content file, treating as absent", "path", path, "error", err)
		}
		return nil, nil
	}
	return &content, nil
}

// Save fully overwrites the content for a parent. An empty theme
// defaults to "classic".
func (c *ContentStore) Save(ctx context.Context, parentID, content string, wordCount int, theme string) (*domain.SideContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := c.path(parentID)
	if err != nil {
		return nil, err
	}

	if theme == "" {
		theme = domain.DefaultContentTheme
	}

	sc := &domain.SideContent{
		Content:   content,
		WordCount: wordCount,
		Theme:     theme,
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(sc, jsontext.WithIndent("  "))
	if err != nil {
		return nil, fmt.Errorf("marshal content: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return sc, nil
}

// Delete removes a parent's content file, best-effort. Called when the
// parent entity is deleted; a missing file is not an error.
func (c *ContentStore) Delete(ctx context.Context, parentID string) {
	if ctx.Err() != nil {
		return
	}

	path, err := c.path(parentID)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) && c.logger != nil {
		c.logger.Warn("Failed to delete content file", "path", path, "error", err)
	}
}
