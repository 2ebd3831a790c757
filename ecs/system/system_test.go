package system

import (
	"math"
	"testing"

	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/ecs/entity"
	"github.com/milk9111/stealth/input"
	"github.com/milk9111/stealth/motion"
	"github.com/milk9111/stealth/prefabs"
)

// seqDevice replays one reading per tick, then reads as idle. Only the axes
// and held levels of each entry are used; edges are derived while sampling.
type seqDevice struct {
	ticks []input.Snapshot
	cur   input.Snapshot
	look  float64
}

func (d *seqDevice) Sample(tick int, _ float64) error {
	var next input.Snapshot
	if tick < len(d.ticks) {
		next = d.ticks[tick]
	}
	d.cur = d.cur.Next(next.Axes, next.Held)
	return nil
}

func (d *seqDevice) RawAxisValue(ch input.Channel) float64 { return d.cur.RawAxisValue(ch) }
func (d *seqDevice) IsButtonHeld(ch input.Channel) bool    { return d.cur.IsButtonHeld(ch) }
func (d *seqDevice) IsButtonPressed(ch input.Channel) bool { return d.cur.IsButtonPressed(ch) }
func (d *seqDevice) IsButtonReleased(ch input.Channel) bool {
	return d.cur.IsButtonReleased(ch)
}
func (d *seqDevice) LookAxis() float64 { return d.look }

// hold returns n ticks with the given axes and buttons held throughout.
func hold(n int, axes map[input.Channel]float64, buttons ...input.Channel) []input.Snapshot {
	var a [input.NumChannels]float64
	var h [input.NumChannels]bool
	for c, v := range axes {
		a[c] = v
	}
	for _, c := range buttons {
		h[c] = true
	}
	out := make([]input.Snapshot, n)
	for i := range out {
		out[i] = input.Snapshot{Axes: a, Held: h}
	}
	return out
}

func testSpec() *prefabs.PlayerSpec {
	return &prefabs.PlayerSpec{
		Name:   "player",
		Input:  prefabs.InputSpec{Threshold: 0.2, DoubleTapDelay: 0.3},
		Motion: prefabs.MotionSpec{WalkSpeed: 3, RunSpeed: 6, SneakSpeed: 1.5, TurnSpeed: 360},
		Body:   prefabs.BodySpec{Radius: 0.4, Mass: 70},
		Camera: prefabs.CameraSpec{Pitch: 20, OrbitSpeed: 90},
		Arena:  prefabs.ArenaSpec{Width: 40, Depth: 40, Scale: 10},
	}
}

type harness struct {
	w      *ecs.World
	player ecs.Entity
	in     *InputSystem
	sched  *ecs.Scheduler
	events []ecs.Event
}

func newHarness(t *testing.T, spec *prefabs.PlayerSpec, dev input.Device) *harness {
	t.Helper()
	w := ecs.NewWorld()
	player, err := entity.NewScene(w, spec)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	h := &harness{w: w, player: player}
	h.in = NewInputSystem(dev, spec.Input.Settings())
	logSys := NewEventLogSystem()
	logSys.Sink = func(e ecs.Event) { h.events = append(h.events, e) }
	h.sched = ecs.NewScheduler(h.in, NewCameraSystem(), NewPlayerControllerSystem(), NewPhysicsSystem(), logSys)
	return h
}

func (h *harness) run(n int) {
	for i := 0; i < n; i++ {
		h.sched.Update(h.w)
	}
}

func (h *harness) transform(t *testing.T) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(h.w, h.player, component.TransformComponent.Kind())
	if !ok {
		t.Fatal("player has no transform")
	}
	return tr
}

func (h *harness) count(kind ecs.EventKind, data string) []int {
	var ticks []int
	for _, e := range h.events {
		if e.Kind == kind && e.Data == data {
			ticks = append(ticks, e.Tick)
		}
	}
	return ticks
}

func TestInputSystemWritesFrameAndEdges(t *testing.T) {
	dev := &seqDevice{ticks: hold(3, nil, input.Sneak)}
	h := newHarness(t, testSpec(), dev)

	h.run(1)
	in, _ := ecs.Get(h.w, h.player, component.InputComponent.Kind())
	if st := in.Frame.State(input.Sneak); !st.Active || !st.Down {
		t.Fatalf("tick 0 sneak state %+v", st)
	}
	if !in.Raw.Held[input.Sneak] || !in.Raw.Pressed[input.Sneak] || in.Raw.Held[input.Run] {
		t.Fatalf("tick 0 raw reading %+v", in.Raw)
	}

	h.run(3)
	if st := in.Frame.State(input.Sneak); st.Active || !st.Up {
		t.Fatalf("tick 3 sneak state %+v", st)
	}
	if got := h.count(ecs.EventChannelDown, "Sneak"); len(got) != 1 || got[0] != 0 {
		t.Fatalf("down events at %v", got)
	}
	if got := h.count(ecs.EventChannelUp, "Sneak"); len(got) != 1 || got[0] != 3 {
		t.Fatalf("up events at %v", got)
	}
}

func TestInputSystemDoubleTapEvent(t *testing.T) {
	var ticks []input.Snapshot
	ticks = append(ticks, hold(2, nil, input.Jump)...)
	ticks = append(ticks, hold(6, nil)...)
	ticks = append(ticks, hold(2, nil, input.Jump)...)

	h := newHarness(t, testSpec(), &seqDevice{ticks: ticks})
	h.run(len(ticks))

	if got := h.count(ecs.EventDoubleTap, "Jump"); len(got) != 1 || got[0] != 8 {
		t.Fatalf("double tap events at %v, want [8]", got)
	}
}

func TestInputSystemThresholdChangeResets(t *testing.T) {
	dev := &seqDevice{ticks: hold(10, map[input.Channel]float64{input.Horizontal: 0.5})}
	h := newHarness(t, testSpec(), dev)
	h.run(2)

	s := h.in.Settings()
	s.InputThreshold = 0.6
	h.in.SetSettings(s)
	h.run(1)

	in, _ := ecs.Get(h.w, h.player, component.InputComponent.Kind())
	if st := in.Frame.State(input.Horizontal); st.Active || st.Up {
		t.Fatalf("after raising threshold: %+v", st)
	}
}

func TestWalkForward(t *testing.T) {
	dev := &seqDevice{ticks: hold(60, map[input.Channel]float64{input.Vertical: 1})}
	h := newHarness(t, testSpec(), dev)
	h.run(60)

	tr := h.transform(t)
	if math.Abs(tr.Z-3) > 1e-6 || math.Abs(tr.X) > 1e-9 {
		t.Fatalf("after 1s of walking: x=%v z=%v, want 0, 3", tr.X, tr.Z)
	}

	p, _ := ecs.Get(h.w, h.player, component.PlayerComponent.Kind())
	if p.Last.Tier != motion.Walk || p.Last.Speed != 3 {
		t.Fatalf("last command %+v", p.Last)
	}
}

func TestRunThenStop(t *testing.T) {
	ticks := hold(30, map[input.Channel]float64{input.Vertical: 1}, input.Run)
	dev := &seqDevice{ticks: ticks}
	h := newHarness(t, testSpec(), dev)
	h.run(30)
	z := h.transform(t).Z
	if math.Abs(z-3) > 1e-6 {
		t.Fatalf("half a second of running: z=%v, want 3", z)
	}

	// idle ticks stop the body dead
	h.run(10)
	if got := h.transform(t).Z; math.Abs(got-z) > 1e-9 {
		t.Fatalf("body drifted while idle: %v -> %v", z, got)
	}
	if got := h.count(ecs.EventTierChanged, "run"); len(got) != 1 || got[0] != 0 {
		t.Fatalf("tier change to run at %v", got)
	}
	if got := h.count(ecs.EventTierChanged, "walk"); len(got) != 1 || got[0] != 30 {
		t.Fatalf("tier change to walk at %v", got)
	}
}

func TestTurnTowardsCamera(t *testing.T) {
	spec := testSpec()
	spec.Camera.Yaw = 90
	dev := &seqDevice{ticks: hold(20, map[input.Channel]float64{input.Vertical: 1})}
	h := newHarness(t, spec, dev)

	h.run(1)
	if got := h.transform(t).Heading(); math.Abs(got-6) > 1e-6 {
		t.Fatalf("heading after one tick %v, want 6", got)
	}
	h.run(19)
	if got := h.transform(t).Heading(); math.Abs(got-90) > 1e-6 {
		t.Fatalf("heading after 20 ticks %v, want 90", got)
	}
}

func TestIdleKeepsFacing(t *testing.T) {
	spec := testSpec()
	spec.Camera.Yaw = 135
	h := newHarness(t, spec, &seqDevice{})
	before := h.transform(t).Rotation
	h.run(120)
	if got := h.transform(t).Rotation; got != before {
		t.Fatalf("idle rotation changed: %v -> %v", before, got)
	}
}

func TestCameraOrbit(t *testing.T) {
	dev := &seqDevice{look: 1}
	h := newHarness(t, testSpec(), dev)
	h.run(60)

	camEnt, _ := h.w.First(component.CameraComponent.Kind())
	cam, _ := ecs.Get(h.w, camEnt, component.CameraComponent.Kind())
	if math.Abs(cam.Yaw-90) > 1e-6 {
		t.Fatalf("camera yaw %v after one second, want 90", cam.Yaw)
	}

	dev.look = 5
	h.run(180)
	if cam.Yaw < -180 || cam.Yaw >= 180 {
		t.Fatalf("camera yaw %v not wrapped", cam.Yaw)
	}
}

func TestArenaWallsStopBody(t *testing.T) {
	spec := testSpec()
	spec.Arena = prefabs.ArenaSpec{Width: 4, Depth: 4}
	dev := &seqDevice{ticks: hold(120, map[input.Channel]float64{input.Vertical: 1}, input.Run)}
	h := newHarness(t, spec, dev)
	h.run(120)

	if z := h.transform(t).Z; z > 2 {
		t.Fatalf("body left the arena: z=%v", z)
	}
	body, _ := ecs.Get(h.w, h.player, component.PhysicsBodyComponent.Kind())
	if !body.Blocked {
		t.Fatalf("body should report wall contact")
	}
	if len(h.count(ecs.EventWallContact, "")) == 0 {
		t.Fatalf("expected a wall contact event")
	}
}

func TestPhysicsDropsDestroyedBodies(t *testing.T) {
	h := newHarness(t, testSpec(), &seqDevice{})
	phys := NewPhysicsSystem()
	phys.Update(h.w)
	if len(phys.entities) != 1 {
		t.Fatalf("expected one body, got %d", len(phys.entities))
	}
	ecs.DestroyEntity(h.w, h.player)
	phys.Update(h.w)
	if len(phys.entities) != 0 {
		t.Fatalf("destroyed entity kept its body")
	}
}

func TestWrapDegrees(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{180, -180},
		{-180, -180},
		{270, -90},
		{-190, 170},
		{725, 5},
	}
	for _, c := range cases {
		if got := wrapDegrees(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("wrapDegrees(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
