package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeWall
)

const wallRadius = 0.1

// PhysicsSystem moves bodies on the ground plane. World X maps to space X
// and world Z to space Y; the space has no gravity, so bodies only move at
// the velocity the controller sets.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts map[ecs.Entity]bool

	walls []*cp.Shape
	arena component.Arena
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
		contacts: make(map[ecs.Entity]bool),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncArena(w)
	ps.syncAngles(w)

	for e := range ps.contacts {
		delete(ps.contacts, e)
	}
	ps.space.Step(w.Clock().Step)

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}
	handler := ps.space.NewCollisionHandler(collisionTypeBody, collisionTypeWall)
	handler.UserData = ps
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		a, b := arb.Shapes()
		if e, ok := sys.shapes[a]; ok {
			sys.contacts[e] = true
		} else if e, ok := sys.shapes[b]; ok {
			sys.contacts[e] = true
		}
		return true
	}
	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		if info := ps.entities[e]; info != nil {
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
			continue
		}

		info := ps.createBodyInfo(transform, bodyComp)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		ps.shapes[info.shape] = e
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape

		// the controller ran before the body existed this tick
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			info.body.SetVelocity(p.Last.Velocity.X(), p.Last.Velocity.Z())
		}
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	if bodyComp.Radius <= 0 || bodyComp.Mass <= 0 {
		return nil
	}

	// Infinite moment: contacts never spin the body, facing is owned by the
	// controller.
	body := cp.NewBody(bodyComp.Mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Z})
	body.SetAngle(bodyAngle(transform.Rotation))

	shape := cp.NewCircle(body, bodyComp.Radius, cp.Vector{})
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeBody)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

// syncArena rebuilds the wall segments whenever the arena changes size.
func (ps *PhysicsSystem) syncArena(w *ecs.World) {
	var arena component.Arena
	if e, ok := w.First(component.ArenaComponent.Kind()); ok {
		if a, ok := ecs.Get(w, e, component.ArenaComponent.Kind()); ok {
			arena = *a
		}
	}
	if arena.Width == ps.arena.Width && arena.Depth == ps.arena.Depth && (len(ps.walls) > 0 || arena.Width <= 0 || arena.Depth <= 0) {
		ps.arena = arena
		return
	}

	for _, shape := range ps.walls {
		ps.space.RemoveShape(shape)
	}
	ps.walls = nil
	ps.arena = arena
	if arena.Width <= 0 || arena.Depth <= 0 {
		return
	}

	hw, hd := arena.Width/2, arena.Depth/2
	corners := []cp.Vector{
		{X: -hw, Y: -hd},
		{X: hw, Y: -hd},
		{X: hw, Y: hd},
		{X: -hw, Y: hd},
	}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		seg := cp.NewSegment(ps.space.StaticBody, a, b, wallRadius)
		seg.SetFriction(0)
		seg.SetCollisionType(collisionTypeWall)
		ps.space.AddShape(seg)
		ps.walls = append(ps.walls, seg)
	}
}

func (ps *PhysicsSystem) syncAngles(w *ecs.World) {
	for e, info := range ps.entities {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			info.body.SetAngle(bodyAngle(t.Rotation))
			info.body.SetAngularVelocity(0)
		}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Z = pos.Y

		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		blocked := ps.contacts[e]
		if blocked && !bodyComp.Blocked {
			w.Events().Push(ecs.Event{
				Kind:   ecs.EventWallContact,
				Entity: e,
				Tick:   w.Clock().Tick,
				Time:   w.Clock().Now,
			})
		}
		bodyComp.Blocked = blocked
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.space.RemoveShape(info.shape)
		ps.space.RemoveBody(info.body)
		delete(ps.shapes, info.shape)
		delete(ps.entities, e)
		delete(ps.contacts, e)
	}
}

// bodyAngle converts a yaw rotation (0 along +Z, clockwise seen from above)
// into a space angle (0 along +X, counter-clockwise).
func bodyAngle(q mgl64.Quat) float64 {
	return math.Pi/2 - common.Yaw(q)
}
