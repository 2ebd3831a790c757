package ecs

// Clock is the fixed-step simulation clock. Now is zero during the first
// tick and advances by Step after every scheduled tick.
type Clock struct {
	Step float64
	Tick int
	Now  float64
}

func (c *Clock) advance() {
	c.Tick++
	c.Now = float64(c.Tick) * c.Step
}

// Reset rewinds the clock to tick zero, keeping the step.
func (c *Clock) Reset() {
	c.Tick = 0
	c.Now = 0
}
