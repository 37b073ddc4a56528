package langstats

import (
	"context"
	"fmt"

	"github.com/bastiangx/langstats/pkg/grams"
	"github.com/bastiangx/langstats/pkg/wordtree"
	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is used when NewCache is given a size below 1.
const DefaultCacheSize = 16

type modelKey struct {
	language  string
	order     grams.Order
	useSpaces bool
}

func (k modelKey) String() string {
	return fmt.Sprintf("grams/%s/%d/%t", k.language, k.order, k.useSpaces)
}

// Cache keeps recently used gram models and dictionaries of one statistics
// directory. Concurrent requests for the same resource share a single load.
// Everything handed out by the cache is fully loaded and, when normalizeMax
// is positive, normalized; callers must treat it as read-only.
type Cache struct {
	dir          string
	normalizeMax float64

	models *lru.Cache[modelKey, *grams.Model]
	trees  *lru.Cache[string, *wordtree.Tree]
	loads  singleflight.Group
}

// NewCache returns a cache over dir holding up to size models and size
// dictionaries.
func NewCache(dir string, size int, normalizeMax float64) (*Cache, error) {
	if size < 1 {
		size = DefaultCacheSize
	}
	models, err := lru.New[modelKey, *grams.Model](size)
	if err != nil {
		return nil, fmt.Errorf("creating model cache: %w", err)
	}
	trees, err := lru.New[string, *wordtree.Tree](size)
	if err != nil {
		return nil, fmt.Errorf("creating dictionary cache: %w", err)
	}
	return &Cache{
		dir:          dir,
		normalizeMax: normalizeMax,
		models:       models,
		trees:        trees,
	}, nil
}

// Dir returns the statistics directory of the cache.
func (c *Cache) Dir() string { return c.dir }

// Grams returns the model for language and order, loading it on a miss.
func (c *Cache) Grams(language string, order grams.Order, useSpaces bool) (*grams.Model, error) {
	if !order.Valid() {
		return nil, &grams.UnsupportedOrderError{Order: int(order)}
	}
	key := modelKey{language: language, order: order, useSpaces: useSpaces}
	if m, ok := c.models.Get(key); ok {
		return m, nil
	}

	v, err, shared := c.loads.Do(key.String(), func() (any, error) {
		if m, ok := c.models.Get(key); ok {
			return m, nil
		}
		m, err := CreateGrams(language, c.dir, order, useSpaces)
		if err != nil {
			return nil, err
		}
		if c.normalizeMax > 0 {
			if err := m.Normalize(c.normalizeMax); err != nil {
				return nil, err
			}
		}
		c.models.Add(key, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debugf("Shared load of %s", key)
	}
	return v.(*grams.Model), nil
}

// WordTree returns the dictionary of language, loading it on a miss.
func (c *Cache) WordTree(language string) (*wordtree.Tree, error) {
	if t, ok := c.trees.Get(language); ok {
		return t, nil
	}
	v, err, _ := c.loads.Do("dict/"+language, func() (any, error) {
		if t, ok := c.trees.Get(language); ok {
			return t, nil
		}
		t, err := LoadWordTree(language, c.dir)
		if err != nil {
			return nil, err
		}
		c.trees.Add(language, t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*wordtree.Tree), nil
}

// Preload loads the given orders of language concurrently. The first error
// cancels the remaining loads that have not started.
func (c *Cache) Preload(ctx context.Context, language string, useSpaces bool, orders []grams.Order) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, order := range orders {
		order := order
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := c.Grams(language, order, useSpaces); err != nil {
				return fmt.Errorf("preloading %s: %w", order, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Loaded returns the orders of language currently held in the cache.
func (c *Cache) Loaded(language string, useSpaces bool) []grams.Order {
	var orders []grams.Order
	for o := grams.Unigrams; o <= grams.MaxOrder; o++ {
		if c.models.Contains(modelKey{language: language, order: o, useSpaces: useSpaces}) {
			orders = append(orders, o)
		}
	}
	return orders
}

// Len returns the number of cached models and dictionaries.
func (c *Cache) Len() int {
	return c.models.Len() + c.trees.Len()
}
