package web

// cache is a ring of recently sent memory pages, keyed by their
// xxhash digest. Clients keep an identical ring so that a page that
// has already been sent can be referenced by its slot.
type cache struct {
	cache   []cacheEntry
	idx     int
	enabled bool
}

type cacheEntry struct {
	hash uint64
	data []byte
}

func newCache(size int) *cache {
	return &cache{
		cache:   make([]cacheEntry, size),
		enabled: true,
	}
}

// index returns the slot holding hash, or -1.
func (c *cache) index(hash uint64) int {
	if !c.enabled {
		return -1
	}
	for i, e := range c.cache {
		if e.data != nil && e.hash == hash {
			return i
		}
	}

	return -1
}

// add stores data in the next slot and returns that slot.
func (c *cache) add(hash uint64, data []byte) int {
	slot := c.idx
	c.cache[slot] = cacheEntry{hash: hash, data: data}
	c.idx = (c.idx + 1) % len(c.cache)
	return slot
}
