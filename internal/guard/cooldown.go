// Package guard holds in-process anti-spam state.
package guard

import (
	"sync"
	"time"
)

// Cooldown is a per-user fixed-interval limiter. A user's first request
// after the interval elapses is allowed and stamps the clock; anything
// sooner is rejected. State lives only in memory and resets on restart;
// last-write-wins per key is acceptable since one human cannot issue two
// simultaneous inputs.
type Cooldown struct {
	mu       sync.Mutex
	last     map[int64]time.Time
	interval time.Duration
	now      func() time.Time
}

// NewCooldown creates a limiter with the given minimum interval between
// allowed requests per user.
func NewCooldown(interval time.Duration) *Cooldown {
	return &Cooldown{
		last:     make(map[int64]time.Time),
		interval: interval,
		now:      time.Now,
	}
}

// Allow reports whether the user may proceed, stamping the clock when true.
func (c *Cooldown) Allow(userID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if last, ok := c.last[userID]; ok && now.Sub(last) < c.interval {
		return false
	}
	c.last[userID] = now
	return true
}
