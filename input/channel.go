package input

import "fmt"

// Channel identifies one logical input source: an analog axis or a button.
type Channel int

const (
	Horizontal Channel = iota
	Vertical
	Sneak
	Run
	Jump

	NumChannels
)

var channelNames = [NumChannels]string{
	Horizontal: "Horizontal",
	Vertical:   "Vertical",
	Sneak:      "Sneak",
	Run:        "Run",
	Jump:       "Jump",
}

// Axes lists the analog channels in classification order.
var Axes = []Channel{Horizontal, Vertical}

// Buttons lists the discrete channels in classification order.
var Buttons = []Channel{Sneak, Run, Jump}

func (c Channel) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

func (c Channel) Valid() bool {
	return c >= 0 && c < NumChannels
}

// IsAxis reports whether c carries a continuous value.
func (c Channel) IsAxis() bool {
	return c == Horizontal || c == Vertical
}

// ParseChannel maps a channel name back to its Channel.
func ParseChannel(name string) (Channel, error) {
	for c, n := range channelNames {
		if n == name {
			return Channel(c), nil
		}
	}
	return 0, fmt.Errorf("input: unknown channel %q", name)
}
