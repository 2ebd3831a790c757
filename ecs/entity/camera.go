package entity

import (
	"fmt"

	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/prefabs"
)

func NewCamera(w *ecs.World, spec prefabs.CameraSpec) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		TargetName: "player",
		Yaw:        spec.Yaw,
		Pitch:      spec.Pitch,
		OrbitSpeed: spec.OrbitSpeed,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}
	return camera, nil
}

// NewArena adds the walled play area. Dimensions that are not positive leave
// the arena open.
func NewArena(w *ecs.World, spec prefabs.ArenaSpec) (ecs.Entity, error) {
	arena := ecs.CreateEntity(w)
	scale := spec.Scale
	if scale <= 0 {
		scale = 40
	}
	if err := ecs.Add(w, arena, component.ArenaComponent.Kind(), &component.Arena{
		Width: spec.Width,
		Depth: spec.Depth,
		Scale: scale,
	}); err != nil {
		return 0, fmt.Errorf("arena: add arena: %w", err)
	}
	return arena, nil
}

// NewScene builds the arena, camera and player from one player spec.
func NewScene(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	if _, err := NewArena(w, spec.Arena); err != nil {
		return 0, err
	}
	if _, err := NewCamera(w, spec.Camera); err != nil {
		return 0, err
	}
	return NewPlayerFromSpec(w, spec)
}
