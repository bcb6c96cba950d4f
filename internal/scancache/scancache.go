// Package scancache adapts the teacher's two-tier IntelligentCache
// (cache/intelligent.go) into a scan-result cache: it remembers the
// MatchHunks a file produced the last time it was scanned, keyed by path
// plus the file's size and modification time, so an unchanged file can
// skip the pattern/compound matching pass when it is scanned again through
// the same in-memory Cache. Nothing is persisted between processes.
package scancache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	gocache "github.com/patrickmn/go-cache"

	"github.com/renamify-go/renamify/internal/planmodel"
)

// Stats mirrors the teacher's CacheStats hit/miss counters, kept as one
// pair of totals across both tiers.
type Stats struct {
	Hits   int64
	Misses int64
}

// Cache holds cached scan results for one plan invocation's lifetime. The
// bigcache tier holds the serialized MatchHunk slices (potentially large,
// benefits from bigcache's off-heap shards); the go-cache tier holds the
// small (size, mtime) fingerprint used to validate a hit.
type Cache struct {
	hunks *bigcache.BigCache
	meta  *gocache.Cache

	mu    sync.Mutex
	stats Stats
}

type fingerprint struct {
	Size    int64
	ModTime time.Time
}

// New builds a Cache sized for a single scan run. lifeWindow bounds how
// long entries survive, matching the teacher's LifeWindow/CleanWindow
// pairing (shortened here since a scan run is much shorter-lived than an
// interactive MCP session).
func New(lifeWindow time.Duration) (*Cache, error) {
	if lifeWindow <= 0 {
		lifeWindow = 10 * time.Minute
	}
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.Shards = 64
	cfg.MaxEntrySize = 1024 * 1024
	bc, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, err
	}
	return &Cache{
		hunks: bc,
		meta:  gocache.New(lifeWindow, lifeWindow/2),
	}, nil
}

// Get returns the cached MatchHunks for path if its fingerprint (size,
// mtime) still matches what was cached.
func (c *Cache) Get(path string, size int64, modTime time.Time) ([]planmodel.MatchHunk, bool) {
	raw, found := c.meta.Get(path)
	if !found {
		c.miss()
		return nil, false
	}
	fp := raw.(fingerprint)
	if fp.Size != size || !fp.ModTime.Equal(modTime) {
		c.miss()
		return nil, false
	}

	data, err := c.hunks.Get(path)
	if err != nil {
		c.miss()
		return nil, false
	}
	var hunks []planmodel.MatchHunk
	if err := json.Unmarshal(data, &hunks); err != nil {
		c.miss()
		return nil, false
	}
	c.hit()
	return hunks, true
}

func (c *Cache) hit() {
	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
}

func (c *Cache) miss() {
	c.mu.Lock()
	c.stats.Misses++
	c.mu.Unlock()
}

// Set stores hunks for path under its current fingerprint.
func (c *Cache) Set(path string, size int64, modTime time.Time, hunks []planmodel.MatchHunk) {
	data, err := json.Marshal(hunks)
	if err != nil {
		return
	}
	if err := c.hunks.Set(path, data); err != nil {
		return
	}
	c.meta.Set(path, fingerprint{Size: size, ModTime: modTime}, gocache.DefaultExpiration)
}

// Stats returns a snapshot of hit/miss counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
