package system

import (
	"math"

	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
)

type CameraSystem struct {
	camEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update orbits the camera around its target by the target's look input.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	target := findEntityByNameOrTag(w, cam.TargetName)
	in, ok := ecs.Get(w, target, component.InputComponent.Kind())
	if !ok || in.Look == 0 {
		return
	}

	cam.Yaw = wrapDegrees(cam.Yaw + in.Look*cam.OrbitSpeed*w.Clock().Step)
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}

// wrapDegrees maps a to [-180, 180).
func wrapDegrees(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}
