package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/prefabs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, err
	}
	return NewPlayerFromSpec(w, spec)
}

// NewPlayerFromSpec builds the player entity. The physics body itself is
// created by the physics system on its first update.
func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	player := ecs.CreateEntity(w)
	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	rot, ok := common.LookRotation(yawForward(spec.Body.Yaw))
	if !ok {
		rot = mgl64.QuatIdent()
	}
	if err := ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.Body.X,
		Z:        spec.Body.Z,
		Rotation: rot,
	}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
		Motion: spec.Motion.Settings(),
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	if err := ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius: spec.Body.Radius,
		Mass:   spec.Body.Mass,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}

	return player, nil
}

// ApplySpec pushes reloaded tuning onto an existing player without moving
// it.
func ApplySpec(w *ecs.World, player ecs.Entity, spec *prefabs.PlayerSpec) error {
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("player: %s has no player component", player)
	}
	p.Motion = spec.Motion.Settings()

	if cam, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		if c, ok := ecs.Get(w, cam, component.CameraComponent.Kind()); ok {
			c.Pitch = spec.Camera.Pitch
			c.OrbitSpeed = spec.Camera.OrbitSpeed
		}
	}
	return nil
}

func yawForward(deg float64) mgl64.Vec3 {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), common.Up).Rotate(common.Forward)
}
