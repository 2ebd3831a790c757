// Command inputsim runs a tengo input script through the full tick pipeline
// without a window and logs what the player did on each tick.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/device"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/ecs/entity"
	"github.com/milk9111/stealth/ecs/system"
	"github.com/milk9111/stealth/input"
	"github.com/milk9111/stealth/logger"
	"github.com/milk9111/stealth/prefabs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func main() {
	script := flag.String("script", "patrol", "script name in prefabs/scripts")
	ticks := flag.Int("ticks", 600, "number of ticks to simulate")
	every := flag.Int("every", 1, "log every n-th tick; ticks with edges are always logged")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logFormat := flag.String("log-format", "console", "console, text or json")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory checked for prefab overrides")
	flag.Parse()

	log := logger.Init(logger.Config{Level: *logLevel, Format: *logFormat, Output: os.Stdout})
	prefabs.Dir = *prefabDir

	if err := run(*script, *ticks, *every); err != nil {
		log.Error("inputsim", "err", err)
		os.Exit(1)
	}
}

func run(scriptName string, ticks, every int) error {
	log := logger.L()

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	dev, err := device.LoadScript(scriptName)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	player, err := entity.NewScene(w, spec)
	if err != nil {
		return err
	}
	sched := ecs.NewScheduler(
		system.NewInputSystem(dev, spec.Input.Settings()),
		system.NewCameraSystem(),
		system.NewPlayerControllerSystem(),
		system.NewPhysicsSystem(),
		system.NewEventLogSystem(),
	)

	if every < 1 {
		every = 1
	}
	var (
		speeds  []float64
		taps    int
		prevX   float64
		prevZ   float64
		started bool
	)
	for i := 0; i < ticks; i++ {
		sched.Update(w)

		in, _ := ecs.Get(w, player, component.InputComponent.Kind())
		p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
		tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
		if in == nil || p == nil || tr == nil {
			return fmt.Errorf("inputsim: player %s lost its components", player)
		}
		if started {
			speeds = append(speeds, math.Hypot(tr.X-prevX, tr.Z-prevZ)*common.TPS)
		}
		prevX, prevZ, started = tr.X, tr.Z, true
		for _, st := range in.Frame.States {
			if st.DoubleTap {
				taps++
			}
		}
		if i%every != 0 && !hasEdge(in.Frame) {
			continue
		}
		log.Info("tick",
			"n", i,
			"t", fmt.Sprintf("%.3f", in.Frame.Time),
			"input", channels(in.Frame),
			"tier", p.Last.Tier.String(),
			"speed", p.Last.Speed,
			"x", fmt.Sprintf("%.3f", tr.X),
			"z", fmt.Sprintf("%.3f", tr.Z),
			"heading", fmt.Sprintf("%.1f", tr.Heading()),
		)
	}

	if len(speeds) > 0 {
		mean, std := stat.MeanStdDev(speeds, nil)
		log.Info("summary",
			"ticks", ticks,
			"distance", fmt.Sprintf("%.3f", floats.Sum(speeds)/common.TPS),
			"mean_speed", fmt.Sprintf("%.3f", mean),
			"max_speed", fmt.Sprintf("%.3f", floats.Max(speeds)),
			"stddev", fmt.Sprintf("%.3f", std),
			"double_taps", taps,
		)
	}
	return nil
}

func hasEdge(f input.Frame) bool {
	for _, st := range f.States {
		if st.Down || st.Up {
			return true
		}
	}
	return false
}

// channels renders the active channels, e.g. "Vertical+,Run,Jump*2".
// "+" marks a rising edge, "-" a falling one and "*2" a double tap.
func channels(f input.Frame) string {
	var parts []string
	for c := input.Channel(0); c < input.NumChannels; c++ {
		st := f.State(c)
		if !st.Active && !st.Up {
			continue
		}
		s := c.String()
		switch {
		case st.Down:
			s += "+"
		case st.Up:
			s += "-"
		}
		if st.DoubleTap {
			s += "*2"
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "idle"
	}
	return strings.Join(parts, ",")
}
