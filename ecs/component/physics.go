package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data. The body is created by the
// physics system on first sight; Body stays nil until then.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Radius   float64
	Mass     float64
	Friction float64
	// Blocked is set while the body is pressed against an arena wall.
	Blocked bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Arena is the walled rectangle centred on the origin that bodies move in.
type Arena struct {
	Width float64
	Depth float64
	// Scale is pixels per world unit for the debug view.
	Scale float64
}

var ArenaComponent = NewComponent[Arena]()
