package pricing

import (
	"github.com/floatdrop/lru"

	"git.gammaspectra.live/Haven/consensus/types"
)

// Cache Keeps parsed pricing records per block hash. Verification of a block
// re-reads the record for every transaction within it; the cache is shared
// and read-mostly.
type Cache struct {
	inner *lru.LRU[types.Hash, *Record]
}

func NewCache(size int) *Cache {
	return &Cache{
		inner: lru.New[types.Hash, *Record](size),
	}
}

func (c *Cache) Get(blockId types.Hash) *Record {
	if r := c.inner.Get(blockId); r != nil {
		return *r
	}
	return nil
}

func (c *Cache) Set(blockId types.Hash, r *Record) {
	c.inner.Set(blockId, r)
}
