package system

import (
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/motion"
)

// PlayerControllerSystem turns each player's input frame into a motion
// command: the body velocity is replaced and the facing turned toward the
// camera every tick.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	camForward := common.Forward
	if e, ok := w.First(component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
			camForward = cam.Forward()
		}
	}
	dt := w.Clock().Step

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PlayerComponent.Kind(),
	)
	for _, e := range entities {
		in, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			continue
		}

		cmd := motion.NewResolver(player.Motion).Resolve(in.Frame, transform.Rotation, camForward, dt)
		if cmd.Tier != player.Last.Tier {
			w.Events().Push(ecs.Event{
				Kind:   ecs.EventTierChanged,
				Entity: e,
				Tick:   w.Clock().Tick,
				Time:   w.Clock().Now,
				Data:   cmd.Tier.String(),
			})
		}
		player.Last = cmd
		transform.Rotation = cmd.Orientation

		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && bodyComp.Body != nil {
			bodyComp.Body.SetVelocity(cmd.Velocity.X(), cmd.Velocity.Z())
		}
	}
}
