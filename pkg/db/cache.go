package db

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yumyai/hitview/pkg/model"
)

// CachedStore keeps recently read analyses in memory. Repeated Gets return the
// same *model.Analysis until it is replaced or deleted, which is what lets the
// pipeline caches (keyed by pointer) hit across requests.
//
// Every Put or Delete bumps the id's generation after the write lands. A Get
// only caches what it loaded if the generation did not move while loading, so
// a read racing a write never pins the old analysis.
type CachedStore struct {
	next  Store
	cache *lru.Cache[string, *model.Analysis]

	mu          sync.Mutex
	generations map[string]uint64
}

func NewCachedStore(next Store, size int) (Store, error) {
	if size <= 0 {
		return next, nil
	}

	cache, err := lru.New[string, *model.Analysis](size)
	if err != nil {
		return nil, fmt.Errorf("analysis cache: %w", err)
	}
	return &CachedStore{
		next:        next,
		cache:       cache,
		generations: make(map[string]uint64),
	}, nil
}

func (c *CachedStore) Put(ctx context.Context, a *model.Analysis) error {
	if err := c.next.Put(ctx, a); err != nil {
		return err
	}
	c.invalidate(a.ID)
	return nil
}

func (c *CachedStore) Get(ctx context.Context, id string) (*model.Analysis, error) {
	if a, ok := c.cache.Get(id); ok {
		return a, nil
	}

	c.mu.Lock()
	gen := c.generations[id]
	c.mu.Unlock()

	a, err := c.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generations[id] == gen {
		c.cache.Add(id, a)
	}
	c.mu.Unlock()
	return a, nil
}

func (c *CachedStore) List(ctx context.Context) ([]AnalysisRecord, error) {
	return c.next.List(ctx)
}

func (c *CachedStore) Delete(ctx context.Context, id string) error {
	err := c.next.Delete(ctx, id)
	c.invalidate(id)
	return err
}

func (c *CachedStore) invalidate(id string) {
	c.mu.Lock()
	c.generations[id]++
	c.cache.Remove(id)
	c.mu.Unlock()
}
