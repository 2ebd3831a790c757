package component

import "github.com/milk9111/stealth/input"

// Input holds the classified input for the current tick.
type Input struct {
	// Raw is the device reading the frame was classified from.
	Raw   input.Snapshot
	Frame input.Frame
	// Look is the camera orbit axis in [-1, 1].
	Look float64
}

var InputComponent = NewComponent[Input]()
