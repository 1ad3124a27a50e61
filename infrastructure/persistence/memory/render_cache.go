package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/ports"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/aggregates"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/rendering"
)

var _ ports.RenderCache = (*RenderCache)(nil)

// DefaultRenderCacheSize is used when NewRenderCache gets a non-positive size
const DefaultRenderCacheSize = 256

// RenderCache keeps rendered documents, evicting the oldest entry once full.
// Keys start with the draft id followed by "/". Documents are copied on the
// way in and out, so callers may modify what they get.
type RenderCache struct {
	mu    sync.RWMutex
	size  int
	items map[string]*rendering.Document
	order []string
}

// NewRenderCache creates a cache holding at most size documents
func NewRenderCache(size int) *RenderCache {
	if size <= 0 {
		size = DefaultRenderCacheSize
	}
	return &RenderCache{
		size:  size,
		items: make(map[string]*rendering.Document),
	}
}

// Get retrieves a copy of a cached document
func (c *RenderCache) Get(ctx context.Context, key string) (*rendering.Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.items[key]
	if !ok {
		return nil, false
	}
	return doc.Clone(), true
}

// Set stores a document
func (c *RenderCache) Set(ctx context.Context, key string, doc *rendering.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists {
		if len(c.order) >= c.size {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.items, oldest)
		}
		c.order = append(c.order, key)
	}
	c.items[key] = doc.Clone()
}

// Invalidate removes every entry of a draft
func (c *RenderCache) Invalidate(ctx context.Context, draftID aggregates.DraftID) {
	prefix := draftID.String() + "/"

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.order[:0]
	for _, key := range c.order {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept
}

// Len returns the number of cached documents
func (c *RenderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
