package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/input"
	"github.com/milk9111/stealth/motion"
	"golang.org/x/image/font/basicfont"
)

const eventHistory = 8

var (
	colorFloor   = color.NRGBA{R: 0x1b, G: 0x1f, B: 0x24, A: 0xff}
	colorWall    = color.NRGBA{R: 0x6c, G: 0x75, B: 0x7d, A: 0xff}
	colorWalk    = color.NRGBA{R: 0x4d, G: 0xab, B: 0xf7, A: 0xff}
	colorRun     = color.NRGBA{R: 0xff, G: 0x92, B: 0x2b, A: 0xff}
	colorSneak   = color.NRGBA{R: 0x84, G: 0x5e, B: 0xf7, A: 0xff}
	colorFacing  = color.White
	colorCamera  = color.NRGBA{R: 0x51, G: 0xcf, B: 0x66, A: 0xff}
	colorText    = color.NRGBA{R: 0xe9, G: 0xec, B: 0xef, A: 0xff}
	colorBlocked = color.NRGBA{R: 0xfa, G: 0x52, B: 0x52, A: 0xff}
)

// overlay draws the top-down view: arena, body, facing and camera heading,
// plus a text panel with channel states when debug is on.
type overlay struct {
	face   text.Face
	events []ecs.Event
}

func newOverlay() *overlay {
	return &overlay{face: text.NewGoXFace(basicfont.Face7x13)}
}

// record keeps the most recent events for the panel.
func (o *overlay) record(e ecs.Event) {
	o.events = append(o.events, e)
	if n := len(o.events); n > eventHistory {
		o.events = o.events[n-eventHistory:]
	}
}

func (o *overlay) Draw(screen *ebiten.Image, w *ecs.World, debug bool) {
	screen.Fill(colorFloor)

	scale := 40.0
	if e, ok := w.First(component.ArenaComponent.Kind()); ok {
		if arena, ok := ecs.Get(w, e, component.ArenaComponent.Kind()); ok {
			scale = arena.Scale
			drawArena(screen, arena)
		}
	}

	var camForward = common.Forward
	if e, ok := w.First(component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
			camForward = common.Flatten(cam.Forward())
		}
	}

	player, ok := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())

	cx, cy := toScreen(tr.X, tr.Z, scale)
	radius := float32(0.4 * scale)
	fill := color.Color(colorWalk)
	if p != nil {
		switch p.Last.Tier {
		case motion.Run:
			fill = colorRun
		case motion.Sneak:
			fill = colorSneak
		}
	}
	if body != nil {
		radius = float32(body.Radius * scale)
		if body.Blocked {
			vector.StrokeCircle(screen, cx, cy, radius+3, 2, colorBlocked, true)
		}
	}
	vector.FillCircle(screen, cx, cy, radius, fill, true)

	facing := tr.Rotation.Rotate(common.Forward)
	fx, fy := toScreen(tr.X+facing.X()*0.8, tr.Z+facing.Z()*0.8, scale)
	vector.StrokeLine(screen, cx, cy, fx, fy, 2, colorFacing, true)

	if l := common.Length(camForward); l > 0 {
		camForward = camForward.Mul(1 / l)
		gx, gy := toScreen(tr.X+camForward.X()*1.5, tr.Z+camForward.Z()*1.5, scale)
		vector.StrokeLine(screen, cx, cy, gx, gy, 1, colorCamera, true)
	}

	if debug {
		o.drawPanel(screen, w, player)
	}
}

func (o *overlay) drawPanel(screen *ebiten.Image, w *ecs.World, player ecs.Entity) {
	var b strings.Builder
	fmt.Fprintf(&b, "tick %d  t=%.2fs  fps %.0f\n", w.Clock().Tick, w.Clock().Now, ebiten.ActualFPS())

	if in, ok := ecs.Get(w, player, component.InputComponent.Kind()); ok {
		for c := input.Channel(0); c < input.NumChannels; c++ {
			st := in.Frame.State(c)
			fmt.Fprintf(&b, "%-10s %s %+.2f\n", c, flags(st), st.Value)
		}
		m := in.Frame.Movement
		fmt.Fprintf(&b, "move (%.2f, %.2f) input=%v look=%+.2f\n", m.Vector.X(), m.Vector.Z(), m.HasInput, in.Look)
	}
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		v := p.Last.Velocity
		fmt.Fprintf(&b, "tier %s  speed %.2f  vel (%.2f, %.2f)\n", p.Last.Tier, p.Last.Speed, v.X(), v.Z())
	}
	if tr, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		fmt.Fprintf(&b, "pos (%.2f, %.2f)  heading %.1f\n", tr.X, tr.Z, tr.Heading())
	}
	b.WriteString("\n")
	for _, e := range o.events {
		fmt.Fprintf(&b, "%5d %-10s %s\n", e.Tick, e.Kind, e.Data)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(12, 12)
	op.LineSpacing = 15
	op.ColorScale.ScaleWithColor(colorText)
	text.Draw(screen, b.String(), o.face, op)
}

func flags(st input.ButtonState) string {
	f := []byte("----")
	if st.Active {
		f[0] = 'A'
	}
	if st.Down {
		f[1] = 'D'
	}
	if st.Up {
		f[2] = 'U'
	}
	if st.DoubleTap {
		f[3] = '2'
	}
	return string(f)
}

func drawArena(screen *ebiten.Image, arena *component.Arena) {
	if arena.Width <= 0 || arena.Depth <= 0 {
		return
	}
	x, y := toScreen(-arena.Width/2, arena.Depth/2, arena.Scale)
	vector.StrokeRect(screen, x, y, float32(arena.Width*arena.Scale), float32(arena.Depth*arena.Scale), 2, colorWall, true)
}

// toScreen maps ground-plane coordinates to pixels: +X right, +Z up the
// screen, origin at the centre.
func toScreen(x, z, scale float64) (float32, float32) {
	sx := common.BaseWidth/2 + x*scale
	sy := common.BaseHeight/2 - z*scale
	return float32(math.Round(sx)), float32(math.Round(sy))
}
