// Package cache stores model replies on disk keyed by a digest of the
// model name and full prompt. Re-running the job over an unchanged week
// reuses the prior summary instead of paying for a second completion.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
)

// SummaryCache is a flat-file cache directory. A nil receiver or empty Dir
// disables caching.
type SummaryCache struct {
	Dir string
}

// KeyFrom builds a cache key from the model name and the exact prompt sent.
func KeyFrom(model, prompt string) string {
	h := sha256.Sum256([]byte(model + "\n\n" + prompt))
	return hex.EncodeToString(h[:])
}

func (c *SummaryCache) enabled() bool {
	return c != nil && c.Dir != ""
}

func (c *SummaryCache) ensureDir() error {
	if !c.enabled() {
		return errors.New("cache dir not configured")
	}
	return os.MkdirAll(c.Dir, 0o755)
}

func (c *SummaryCache) pathFor(key string) string {
	return filepath.Join(c.Dir, key+".md")
}

// Get returns a cached summary if present.
func (c *SummaryCache) Get(_ context.Context, key string) (string, bool) {
	if !c.enabled() {
		return "", false
	}
	b, err := os.ReadFile(c.pathFor(key))
	if err != nil || len(b) == 0 {
		return "", false
	}
	return string(b), true
}

// Save writes a summary to the cache. A disabled cache saves nothing and
// returns nil; write failures surface as errors for the caller to log.
func (c *SummaryCache) Save(_ context.Context, key, summary string) error {
	if !c.enabled() {
		return nil
	}
	if err := c.ensureDir(); err != nil {
		return err
	}
	return os.WriteFile(c.pathFor(key), []byte(summary), 0o644)
}
