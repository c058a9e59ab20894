// Package timer provides frame-tick countdowns. The engine is driven by
// discrete ticks, so timeouts are counted in ticks rather than wall-clock
// time; one Advance call per engine tick.
package timer

// Countdown counts engine ticks toward expiry.
type Countdown struct {
	remaining int
	active    bool
}

// Start arms the countdown for the given number of ticks. A non-positive
// count expires on the next Advance.
func (c *Countdown) Start(ticks int) {
	c.remaining = ticks
	c.active = true
}

// Stop disarms the countdown without expiring it.
func (c *Countdown) Stop() {
	c.active = false
	c.remaining = 0
}

// Advance consumes one tick and reports true exactly once, on the tick
// the countdown expires.
func (c *Countdown) Advance() bool {
	if !c.active {
		return false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.active = false
		c.remaining = 0
		return true
	}
	return false
}

// Active reports whether the countdown is armed.
func (c *Countdown) Active() bool {
	return c.active
}

// Remaining reports the ticks left before expiry.
func (c *Countdown) Remaining() int {
	if !c.active {
		return 0
	}
	return c.remaining
}
