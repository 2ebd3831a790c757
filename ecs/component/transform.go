package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stealth/common"
)

// Transform is a ground-plane pose. Y is up and never stored.
type Transform struct {
	X        float64
	Z        float64
	Rotation mgl64.Quat
}

func (t Transform) Position() mgl64.Vec3 {
	return mgl64.Vec3{t.X, 0, t.Z}
}

// Heading is the facing yaw in degrees, 0 along +Z.
func (t Transform) Heading() float64 {
	return common.Yaw(t.Rotation) * 180 / math.Pi
}

var TransformComponent = NewComponent[Transform]()
