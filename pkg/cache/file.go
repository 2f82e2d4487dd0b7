package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores rendered artifacts on disk, one file per cache key.
// Keys built by [ArtifactKey] carry a "<category>:<hash>" shape; the
// category becomes a subdirectory, so artifacts are easy to inspect (and
// clear) by hand under the CLI's cache directory.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir.
// The directory is created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entry wraps a stored artifact with its cache metadata.
type entry struct {
	Artifact  []byte    `json:"artifact"`
	SavedAt   time.Time `json:"saved_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves an artifact. Corrupt and expired entries are removed and
// reported as misses, so a damaged cache heals itself on access.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return e.Artifact, true, nil
}

// Set stores an artifact. A zero ttl means the entry never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{
		Artifact: data,
		SavedAt:  time.Now(),
	}
	if ttl > 0 {
		e.ExpiresAt = e.SavedAt.Add(ttl)
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0644)
}

// Delete removes an artifact. Deleting an absent key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file backend.
func (c *FileCache) Close() error {
	return nil
}

// path maps a cache key to its file. The key's category prefix (the part
// before the first colon, e.g. "artifact") becomes a subdirectory; keys
// without one land under "misc". The filename is always the SHA-256 of the
// full key, so arbitrary keys stay filesystem-safe.
func (c *FileCache) path(key string) string {
	category, _, ok := strings.Cut(key, ":")
	if !ok || category == "" {
		category = "misc"
	}
	return filepath.Join(c.dir, category, Hash([]byte(key))+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
