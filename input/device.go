package input

// Device is the raw signal source sampled once per tick.
type Device interface {
	RawAxisValue(ch Channel) float64
	IsButtonHeld(ch Channel) bool
	IsButtonPressed(ch Channel) bool
	IsButtonReleased(ch Channel) bool
}

// Snapshot is a frozen Device reading. The zero value reads as "nothing held".
type Snapshot struct {
	Axes     [NumChannels]float64
	Held     [NumChannels]bool
	Pressed  [NumChannels]bool
	Released [NumChannels]bool
}

func (s Snapshot) RawAxisValue(ch Channel) float64 {
	if !ch.Valid() {
		return 0
	}
	return s.Axes[ch]
}

func (s Snapshot) IsButtonHeld(ch Channel) bool {
	return ch.Valid() && s.Held[ch]
}

func (s Snapshot) IsButtonPressed(ch Channel) bool {
	return ch.Valid() && s.Pressed[ch]
}

func (s Snapshot) IsButtonReleased(ch Channel) bool {
	return ch.Valid() && s.Released[ch]
}

// Next builds the snapshot for the following tick from axis values and held
// levels, deriving pressed/released edges against s.
func (s Snapshot) Next(axes [NumChannels]float64, held [NumChannels]bool) Snapshot {
	var next Snapshot
	next.Axes = axes
	for c, h := range held {
		next.Held[c] = h
		next.Pressed[c] = h && !s.Held[c]
		next.Released[c] = !h && s.Held[c]
	}
	return next
}

// Capture reads every channel of dev into a Snapshot.
func Capture(dev Device) Snapshot {
	var s Snapshot
	if dev == nil {
		return s
	}
	for c := Channel(0); c < NumChannels; c++ {
		s.Axes[c] = dev.RawAxisValue(c)
		s.Held[c] = dev.IsButtonHeld(c)
		s.Pressed[c] = dev.IsButtonPressed(c)
		s.Released[c] = dev.IsButtonReleased(c)
	}
	return s
}
