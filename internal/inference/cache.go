package inference

import lru "github.com/hashicorp/golang-lru/v2"

const defaultCacheSize = 256

// Cache memoizes pattern inference. The dev loop re-delivers unchanged
// route tables frequently, so identical patterns are inferred over and
// over; inference is pure, which makes it safe to cache. Safe for
// concurrent use.
type Cache struct {
	entries *lru.Cache[string, ParamTypes]
}

// NewCache creates a cache holding up to size patterns. A size of zero or
// less uses a default.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = defaultCacheSize
	}
	entries, _ := lru.New[string, ParamTypes](size)
	return &Cache{entries: entries}
}

// Infer returns the cached inference for pattern, computing and storing it
// on a miss.
func (c *Cache) Infer(pattern string) ParamTypes {
	if types, ok := c.entries.Get(pattern); ok {
		return types
	}
	types := Infer(pattern)
	c.entries.Add(pattern, types)
	return types
}
