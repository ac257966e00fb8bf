package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/asyncapitools/parser"
)

// docInput represents the two ways an AsyncAPI document can be provided to
// a tool. Exactly one of File or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an AsyncAPI document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline AsyncAPI document content (JSON or YAML)"`
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *parser.ParseResult
	insertAt  time.Time
	expiresAt time.Time
}

// docCacheStore provides a session-scoped cache for parsed documents.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. Entries have per-type TTLs and a background sweeper
// removes expired entries.
type docCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var docCache = &docCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *docCacheStore) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.result
	}
	return nil
}

// putWithTTL stores a result with a specific TTL, evicting the oldest entry if at capacity.
func (c *docCacheStore) putWithTTL(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}

	// If already cached, just update.
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	// Evict oldest if at capacity.
	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *docCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *docCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	var sweeping atomic.Bool
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !sweeping.CompareAndSwap(false, true) {
					continue
				}
				c.sweep()
				sweeping.Store(false)
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *docCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *docCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given document input.
// Returns empty string when extra parser options are provided since we cannot
// distinguish option sets.
func makeCacheKey(d docInput, extraOpts []parser.Option) string {
	if len(extraOpts) > 0 {
		return ""
	}

	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return fmt.Sprintf("content:%s", hex.EncodeToString(h[:]))
	default:
		return ""
	}
}

// resolve parses the document from whichever input was provided, using the
// cache for both file and content inputs. Additional parser options can be
// passed to customize parsing behavior.
func (d docInput) resolve(extraOpts ...parser.Option) (*parser.ParseResult, error) {
	count := 0
	if d.File != "" {
		count++
	}
	if d.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}

	// Enforce inline content size limit.
	if d.Content != "" && int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set ASYNCAPITOOLS_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}

	// Determine cache key and TTL (skip when caching is disabled).
	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(d, extraOpts)
		if d.File != "" {
			ttl = cfg.CacheFileTTL
		} else {
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := docCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var opts []parser.Option
	switch {
	case d.File != "":
		opts = append(opts, parser.WithFilePath(d.File))
	case d.Content != "":
		opts = append(opts, parser.WithReader(strings.NewReader(d.Content)))
	}
	opts = append(opts, extraOpts...)

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}

	// Cache the result for future calls (key is empty when caching is disabled).
	if key != "" {
		docCache.putWithTTL(key, result, ttl)
	}

	return result, nil
}
