package main

import (
	"log/slog"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/device"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/entity"
	"github.com/milk9111/stealth/ecs/system"
	"github.com/milk9111/stealth/input"
	"github.com/milk9111/stealth/logger"
	"github.com/milk9111/stealth/prefabs"
)

type Game struct {
	world  *ecs.World
	sched  *ecs.Scheduler
	input  *system.InputSystem
	player ecs.Entity

	keyboard *Keyboard
	script   *device.Script
	watcher  *prefabs.Watcher

	overlay *overlay
	ui      *ebitenui.UI
	paused  bool
	debug   bool

	log *slog.Logger
}

// NewGame builds the scene from player.yaml. When scriptName is set the
// player is driven by that script instead of the keyboard.
func NewGame(scriptName string, debug bool) (*Game, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:   ecs.NewWorld(),
		overlay: newOverlay(),
		debug:   debug,
		log:     logger.L().With("component", "game"),
	}

	g.keyboard, err = NewKeyboard(spec.Bindings)
	if err != nil {
		return nil, err
	}
	var dev input.Device = g.keyboard
	if scriptName != "" {
		if g.script, err = device.LoadScript(scriptName); err != nil {
			return nil, err
		}
		dev = g.script
	}

	if g.player, err = entity.NewScene(g.world, spec); err != nil {
		return nil, err
	}

	g.input = system.NewInputSystem(dev, spec.Input.Settings())
	events := system.NewEventLogSystem()
	events.Sink = g.overlay.record
	g.sched = ecs.NewScheduler(
		g.input,
		system.NewCameraSystem(),
		system.NewPlayerControllerSystem(),
		system.NewPhysicsSystem(),
		events,
	)

	if w, err := prefabs.NewWatcher(prefabs.Dir); err != nil {
		g.log.Warn("hot reload disabled", "dir", prefabs.Dir, "err", err)
	} else {
		g.watcher = w
	}

	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	if changed := g.watcher.Changed(); len(changed) > 0 {
		g.reload(changed)
	}

	g.sched.Update(g.world)
	return nil
}

// reload re-reads the changed files. A broken file is logged and the
// running configuration is kept.
func (g *Game) reload(changed []string) {
	for _, name := range changed {
		switch {
		case name == prefabs.PlayerFile:
			if err := g.reloadPlayer(); err != nil {
				g.log.Error("reload", "file", name, "err", err)
				continue
			}
		case strings.HasPrefix(name, "scripts/"):
			if g.script == nil || name != prefabs.ScriptKey(g.script.Path()) {
				continue
			}
			s, err := device.LoadScript(g.script.Path())
			if err != nil {
				g.log.Error("reload", "file", name, "err", err)
				continue
			}
			g.script = s
			g.input.SetDevice(s)
		default:
			continue
		}
		g.world.Events().Push(ecs.Event{
			Kind: ecs.EventConfigReload,
			Tick: g.world.Clock().Tick,
			Time: g.world.Clock().Now,
			Data: name,
		})
		g.log.Info("reloaded", "file", name)
	}
}

func (g *Game) reloadPlayer() error {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	if err := g.keyboard.SetBindings(spec.Bindings); err != nil {
		return err
	}
	if err := entity.ApplySpec(g.world, g.player, spec); err != nil {
		return err
	}
	g.input.SetSettings(spec.Input.Settings())
	return nil
}

func (g *Game) resetInput() {
	g.input.Reset()
	if g.script != nil {
		g.script.Reset()
	}
	g.log.Info("input reset")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.overlay.Draw(screen, g.world, g.debug)
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
