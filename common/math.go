package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate; every system runs once per tick.
	TPS = 60
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Length returns |v| without overflowing for large components.
func Length(v mgl64.Vec3) float64 {
	return math.Hypot(math.Hypot(v[0], v[1]), v[2])
}

// ClampMagnitude scales v down so that its length is at most limit.
// Direction is preserved. Vectors already within the limit are returned as is;
// vectors with NaN components collapse to zero.
func ClampMagnitude(v mgl64.Vec3, limit float64) mgl64.Vec3 {
	l := Length(v)
	switch {
	case math.IsNaN(l):
		return mgl64.Vec3{}
	case l <= limit:
		return v
	case math.IsInf(l, 1):
		v = rescale(v)
		l = Length(v)
	}
	return v.Mul(limit / l)
}

// rescale divides v by its largest component so its length becomes finite.
// Infinite components dominate: they map to ±1 and finite ones to 0.
func rescale(v mgl64.Vec3) mgl64.Vec3 {
	m := 0.0
	for _, c := range v {
		m = math.Max(m, math.Abs(c))
	}
	if !math.IsInf(m, 1) {
		return v.Mul(1 / m)
	}
	var out mgl64.Vec3
	for i, c := range v {
		if math.IsInf(c, 0) {
			out[i] = math.Copysign(1, c)
		}
	}
	return out
}

// Flatten zeroes the height component of v.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	v[1] = 0
	return v
}

// LookRotation returns the yaw rotation that turns +Z onto the horizontal
// direction of forward. ok is false when forward has no horizontal component.
func LookRotation(forward mgl64.Vec3) (q mgl64.Quat, ok bool) {
	flat := Flatten(forward)
	if Length(flat) == 0 || math.IsNaN(flat[0]) || math.IsNaN(flat[2]) {
		return mgl64.QuatIdent(), false
	}
	yaw := math.Atan2(flat[0], flat[2])
	return mgl64.QuatRotate(yaw, Up), true
}

// Yaw returns the heading of q in radians, measured from +Z towards +X.
func Yaw(q mgl64.Quat) float64 {
	f := q.Rotate(Forward)
	return math.Atan2(f[0], f[2])
}

// QuatAngle returns the angle in degrees between two orientations.
func QuatAngle(a, b mgl64.Quat) float64 {
	d := math.Abs(a.Normalize().Dot(b.Normalize()))
	if d >= 1 {
		return 0
	}
	return mgl64.RadToDeg(2 * math.Acos(d))
}

// RotateTowards rotates from towards to by at most maxDegrees. It never
// overshoots: when the remaining angle fits in the step, to is returned.
// Non-positive steps leave from unchanged.
func RotateTowards(from, to mgl64.Quat, maxDegrees float64) mgl64.Quat {
	if !(maxDegrees > 0) {
		return from
	}
	angle := QuatAngle(from, to)
	if angle <= maxDegrees {
		return to
	}
	return Slerp(from, to, maxDegrees/angle)
}

// Slerp interpolates along the shortest arc between a and b.
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	a, b = a.Normalize(), b.Normalize()
	d := a.Dot(b)
	if d < 0 {
		b = b.Scale(-1)
		d = -d
	}
	if d > 0.9999999 {
		return a.Add(b.Sub(a).Scale(t)).Normalize()
	}
	theta := math.Acos(d)
	s := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / s
	wb := math.Sin(t*theta) / s
	return a.Scale(wa).Add(b.Scale(wb)).Normalize()
}
