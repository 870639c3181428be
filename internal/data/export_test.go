package data

import "time"

// SetClock replaces the cache's time source.
func (c *Cache[V]) SetClock(now func() time.Time) { c.now = now }
