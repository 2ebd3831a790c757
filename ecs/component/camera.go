package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits TargetName. Angles are in degrees.
type Camera struct {
	TargetName string
	Yaw        float64
	Pitch      float64
	OrbitSpeed float64
}

// Forward is the camera's viewing direction. Positive pitch looks down.
func (c Camera) Forward() mgl64.Vec3 {
	yaw := mgl64.DegToRad(c.Yaw)
	pitch := mgl64.DegToRad(c.Pitch)
	return mgl64.Vec3{
		math.Sin(yaw) * math.Cos(pitch),
		-math.Sin(pitch),
		math.Cos(yaw) * math.Cos(pitch),
	}
}

var CameraComponent = NewComponent[Camera]()
