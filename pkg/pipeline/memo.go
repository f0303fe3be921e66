package pipeline

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yumyai/hitview/pkg/model"
)

// Entries are keyed on the *model.Analysis pointer: an analysis is replaced,
// never mutated, so a new pointer always means new inputs.
type filterCacheKey struct {
	analysis *model.Analysis
	toggles  Toggles
}

type sortCacheKey struct {
	analysis *model.Analysis
	key      model.SortKey
}

// CachedStages memoizes another Stages with bounded LRU caches.
type CachedStages struct {
	next    Stages
	filters *lru.Cache[filterCacheKey, []model.ID]
	sorts   *lru.Cache[sortCacheKey, []model.ID]
	indexes *lru.Cache[*model.Analysis, FuzzyIndex]
	lookups *lru.Cache[*model.Analysis, Lookup]
}

// NewCachedStages wraps next with caches of size entries each. A size of zero
// or less returns next unchanged.
func NewCachedStages(next Stages, size int) (Stages, error) {
	if size <= 0 {
		return next, nil
	}

	filters, err := lru.New[filterCacheKey, []model.ID](size)
	if err != nil {
		return nil, fmt.Errorf("filter cache: %w", err)
	}
	sorts, err := lru.New[sortCacheKey, []model.ID](size)
	if err != nil {
		return nil, fmt.Errorf("sort cache: %w", err)
	}
	indexes, err := lru.New[*model.Analysis, FuzzyIndex](size)
	if err != nil {
		return nil, fmt.Errorf("index cache: %w", err)
	}
	lookups, err := lru.New[*model.Analysis, Lookup](size)
	if err != nil {
		return nil, fmt.Errorf("lookup cache: %w", err)
	}

	return &CachedStages{
		next:    next,
		filters: filters,
		sorts:   sorts,
		indexes: indexes,
		lookups: lookups,
	}, nil
}

func (c *CachedStages) FilterIDs(a *model.Analysis, t Toggles) []model.ID {
	key := filterCacheKey{analysis: a, toggles: t}
	if ids, ok := c.filters.Get(key); ok {
		return ids
	}
	ids := c.next.FilterIDs(a, t)
	c.filters.Add(key, ids)
	return ids
}

func (c *CachedStages) SortIDs(a *model.Analysis, key model.SortKey) []model.ID {
	ck := sortCacheKey{analysis: a, key: key}
	if ids, ok := c.sorts.Get(ck); ok {
		return ids
	}
	ids := c.next.SortIDs(a, key)
	c.sorts.Add(ck, ids)
	return ids
}

func (c *CachedStages) Index(a *model.Analysis) FuzzyIndex {
	if ix, ok := c.indexes.Get(a); ok {
		return ix
	}
	ix := c.next.Index(a)
	c.indexes.Add(a, ix)
	return ix
}

func (c *CachedStages) Lookup(a *model.Analysis) Lookup {
	if l, ok := c.lookups.Get(a); ok {
		return l
	}
	l := c.next.Lookup(a)
	c.lookups.Add(a, l)
	return l
}

// Purge drops every cached entry.
func (c *CachedStages) Purge() {
	c.filters.Purge()
	c.sorts.Purge()
	c.indexes.Purge()
	c.lookups.Purge()
}
