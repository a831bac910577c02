package simd

// Counter tracks per-lane iteration counts for a batch.
//
// A lane starts active. Each Step increments the lanes that are both active
// and still running, then freezes the lanes that stopped. A frozen lane never
// counts again, even if its running bit later comes back.
type Counter struct {
	counts  [Lanes]uint8
	active  Mask
	changed bool
}

// NewCounter returns a counter with every lane active.
func NewCounter() Counter {
	return Counter{active: MaskAll()}
}

// Step applies one iteration's running mask.
func (c *Counter) Step(running Mask) {
	inc := c.active.And(running)
	for i := range Lanes {
		if inc[i] {
			c.counts[i]++
		}
	}
	c.active = inc
	c.changed = inc.Any()
}

// Done reports whether every lane has stopped.
func (c *Counter) Done() bool { return !c.active.Any() }

// Changed reports whether the last Step incremented any lane.
func (c *Counter) Changed() bool { return c.changed }

// Active returns the lanes still running.
func (c *Counter) Active() Mask { return c.active }

// Counts returns the per-lane counts.
func (c *Counter) Counts() [Lanes]uint8 { return c.counts }
