package motion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/input"
)

// Tier is the speed band selected from the modifier buttons.
type Tier int

const (
	Walk Tier = iota
	Run
	Sneak
)

func (t Tier) String() string {
	switch t {
	case Walk:
		return "walk"
	case Run:
		return "run"
	case Sneak:
		return "sneak"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

type Settings struct {
	WalkSpeed  float64
	RunSpeed   float64
	SneakSpeed float64
	// TurnSpeed is the maximum yaw rate in degrees per second.
	TurnSpeed float64
}

// Command is what the body should be set to for this tick. Velocity and
// Orientation are always meaningful; Orientation equals the input orientation
// when no turn happened.
type Command struct {
	Velocity    mgl64.Vec3
	Orientation mgl64.Quat
	Tier        Tier
	Speed       float64
}

// Resolver converts a classified frame into a body command. It holds no
// per-tick state.
type Resolver struct {
	settings Settings
}

func NewResolver(settings Settings) *Resolver {
	return &Resolver{settings: settings}
}

func (r *Resolver) Settings() Settings {
	return r.settings
}

// SelectTier picks sneak over run over walk.
func SelectTier(sneak, run input.ButtonState) Tier {
	switch {
	case sneak.Active:
		return Sneak
	case run.Active:
		return Run
	}
	return Walk
}

// Speed returns the configured speed for t.
func (r *Resolver) Speed(t Tier) float64 {
	switch t {
	case Sneak:
		return r.settings.SneakSpeed
	case Run:
		return r.settings.RunSpeed
	}
	return r.settings.WalkSpeed
}

// WorldDirection rotates a local intent into world space and drops the
// height component.
func WorldDirection(local mgl64.Vec3, orientation mgl64.Quat) mgl64.Vec3 {
	return common.Flatten(orientation.Rotate(local))
}

func Velocity(dir mgl64.Vec3, speed float64) mgl64.Vec3 {
	return dir.Mul(speed)
}

// Rotation turns current towards the horizontal camera heading, limited to
// TurnSpeed*dt degrees. Without input, or with a vertical camera, current is
// returned untouched.
func (r *Resolver) Rotation(hasInput bool, current mgl64.Quat, cameraForward mgl64.Vec3, dt float64) mgl64.Quat {
	if !hasInput {
		return current
	}
	target, ok := common.LookRotation(cameraForward)
	if !ok {
		return current
	}
	return common.RotateTowards(current, target, r.settings.TurnSpeed*dt)
}

// Resolve computes the full command for one tick.
func (r *Resolver) Resolve(f input.Frame, orientation mgl64.Quat, cameraForward mgl64.Vec3, dt float64) Command {
	tier := SelectTier(f.State(input.Sneak), f.State(input.Run))
	speed := r.Speed(tier)
	dir := WorldDirection(f.Movement.Vector, orientation)
	return Command{
		Velocity:    Velocity(dir, speed),
		Orientation: r.Rotation(f.Movement.HasInput, orientation, cameraForward, dt),
		Tier:        tier,
		Speed:       speed,
	}
}
