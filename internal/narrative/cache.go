package narrative

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/fleetwise-id/armada-insight/internal/analysis"
)

// Cache stores generated narratives keyed by their fully formatted inputs.
// Two requests with the same dimension, category, and rendered facts are
// guaranteed to want the same text.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, text string) error
}

// CacheKey is stable across processes: formatted fact values already carry
// the rounding applied by the report formatter, so float jitter below the
// display precision collapses onto one key.
func CacheKey(req analysis.NarrativeRequest) string {
	parts := make([]string, 0, 4+len(req.Facts))
	parts = append(parts, string(req.Dimension), req.Category, req.UnitName, req.Segment)
	for _, f := range req.Facts {
		parts = append(parts, f.Name+"="+f.Value)
	}
	return strings.Join(parts, "|")
}

// MemoryCache is a process-local Cache safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.entries[key]
	return text, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = text
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// CachedNarrator serves repeated requests from the cache and only calls the
// wrapped narrator on a miss. Cache failures degrade to a miss; they never
// fail the narration.
type CachedNarrator struct {
	next  analysis.Narrator
	cache Cache
}

func NewCachedNarrator(next analysis.Narrator, cache Cache) *CachedNarrator {
	return &CachedNarrator{next: next, cache: cache}
}

func (c *CachedNarrator) Narrate(ctx context.Context, req analysis.NarrativeRequest) (string, error) {
	key := CacheKey(req)
	if text, ok, err := c.cache.Get(ctx, key); err != nil {
		log.Printf("narrative cache get failed: %v", err)
	} else if ok {
		return text, nil
	}

	text, err := c.next.Narrate(ctx, req)
	if err != nil {
		return "", err
	}
	if err := c.cache.Set(ctx, key, text); err != nil {
		log.Printf("narrative cache set failed: %v", err)
	}
	return text, nil
}

var _ analysis.Narrator = (*CachedNarrator)(nil)
