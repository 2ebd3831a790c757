package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stealth/common"
)

// ButtonState is the classified reading of one channel for one tick.
// Down and Up are never both set; DoubleTap implies Down.
type ButtonState struct {
	Active    bool
	Down      bool
	Up        bool
	DoubleTap bool
	// Value is the raw axis value for axes and 1 or 0 for buttons.
	Value float64
}

// MovementIntent is the planar movement request in the body's local space.
type MovementIntent struct {
	// Vector holds (Horizontal, 0, Vertical), clamped to length 1.
	Vector   mgl64.Vec3
	HasInput bool
}

// Frame is everything the classifier produced for one tick.
type Frame struct {
	Time     float64
	States   [NumChannels]ButtonState
	Movement MovementIntent
}

func (f Frame) State(ch Channel) ButtonState {
	if !ch.Valid() {
		return ButtonState{}
	}
	return f.States[ch]
}

type Settings struct {
	// InputThreshold is the absolute axis value an axis must exceed to be active.
	InputThreshold float64
	// DoubleTapDelay is the window in seconds after a press during which the
	// next press counts as a double tap.
	DoubleTapDelay float64
}

// channelHistory is the per-channel memory between ticks. The zero value means
// the channel has never been observed; hasDeadline is set on the first
// observation.
type channelHistory struct {
	wasActive   bool
	deadline    float64
	hasDeadline bool
}

// Classifier turns raw device readings into edge and double-tap aware
// ButtonStates. It is not safe for concurrent use.
type Classifier struct {
	settings Settings
	history  [NumChannels]channelHistory
	now      float64
}

func NewClassifier(settings Settings) *Classifier {
	return &Classifier{settings: settings}
}

func (c *Classifier) Settings() Settings {
	return c.settings
}

// SetSettings replaces the configuration. History is kept; callers that
// change the threshold mid-run should Reset to avoid a phantom edge.
func (c *Classifier) SetSettings(s Settings) {
	c.settings = s
}

// Now returns the classifier's clock as advanced by Advance.
func (c *Classifier) Now() float64 {
	return c.now
}

// Reset forgets all channel history and rewinds the clock.
func (c *Classifier) Reset() {
	c.history = [NumChannels]channelHistory{}
	c.now = 0
}

// Advance moves the internal clock forward by dt and classifies dev at the
// new time.
func (c *Classifier) Advance(dt float64, dev Device) Frame {
	c.now += dt
	return c.Classify(c.now, dev)
}

// Classify runs one full tick at time now: axes, then the movement intent,
// then buttons.
func (c *Classifier) Classify(now float64, dev Device) Frame {
	if dev == nil {
		dev = Snapshot{}
	}
	f := Frame{Time: now}
	for _, ch := range Axes {
		f.States[ch] = c.ClassifyAxis(ch, now, dev)
	}
	f.Movement = NewMovementIntent(f.States[Horizontal], f.States[Vertical])
	for _, ch := range Buttons {
		f.States[ch] = c.ClassifyButton(ch, now, dev)
	}
	return f
}

// ClassifyAxis thresholds the raw value of ch and detects edges against the
// previous tick.
func (c *Classifier) ClassifyAxis(ch Channel, now float64, dev Device) ButtonState {
	if !ch.Valid() {
		return ButtonState{}
	}
	raw := dev.RawAxisValue(ch)
	active := math.Abs(raw) > c.settings.InputThreshold

	h := &c.history[ch]
	down := !h.wasActive && active
	up := h.wasActive && !active
	h.wasActive = active

	return ButtonState{
		Active:    active,
		Down:      down,
		Up:        up,
		DoubleTap: c.doubleTap(ch, now, down),
		Value:     raw,
	}
}

// ClassifyButton reads the level and edges of ch directly from the device.
func (c *Classifier) ClassifyButton(ch Channel, now float64, dev Device) ButtonState {
	if !ch.Valid() {
		return ButtonState{}
	}
	held := dev.IsButtonHeld(ch)
	down := dev.IsButtonPressed(ch)
	up := dev.IsButtonReleased(ch) && !down

	value := 0.0
	if held {
		value = 1
	}
	return ButtonState{
		Active:    held,
		Down:      down,
		Up:        up,
		DoubleTap: c.doubleTap(ch, now, down),
		Value:     value,
	}
}

// doubleTap reports whether a rising edge at now falls inside the open
// window on ch. The first observation of a channel opens the window whatever
// its level; after that every rising edge reopens it, whether or not it was
// itself a double tap.
func (c *Classifier) doubleTap(ch Channel, now float64, rising bool) bool {
	h := &c.history[ch]
	if !h.hasDeadline {
		h.deadline = now + c.settings.DoubleTapDelay
		h.hasDeadline = true
		return false
	}
	if !rising {
		return false
	}
	hit := now < h.deadline
	h.deadline = now + c.settings.DoubleTapDelay
	return hit
}

// NewMovementIntent combines the two axis states into a clamped local-space
// vector.
func NewMovementIntent(horizontal, vertical ButtonState) MovementIntent {
	v := mgl64.Vec3{horizontal.Value, 0, vertical.Value}
	return MovementIntent{
		Vector:   common.ClampMagnitude(v, 1),
		HasInput: horizontal.Active || vertical.Active,
	}
}
