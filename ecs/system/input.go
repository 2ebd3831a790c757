package system

import (
	"log/slog"

	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/input"
	"github.com/milk9111/stealth/logger"
)

// Sampler is a device that must be polled once before each tick's reads.
type Sampler interface {
	Sample(tick int, now float64) error
}

// LookSource is a device that also reports a camera orbit axis.
type LookSource interface {
	LookAxis() float64
}

// InputSystem classifies the device once per tick and hands the resulting
// frame to every player entity.
type InputSystem struct {
	device     input.Device
	classifier *input.Classifier
	log        *slog.Logger
	lastErr    string
}

func NewInputSystem(dev input.Device, settings input.Settings) *InputSystem {
	return &InputSystem{
		device:     dev,
		classifier: input.NewClassifier(settings),
		log:        logger.L().With("system", "input"),
	}
}

func (i *InputSystem) Device() input.Device {
	return i.device
}

// SetDevice swaps the signal source and forgets channel history, since edges
// from the old device mean nothing for the new one.
func (i *InputSystem) SetDevice(dev input.Device) {
	i.device = dev
	i.classifier.Reset()
}

// SetSettings applies new tuning. Changing the threshold resets history so
// a channel cannot report an edge caused only by the new threshold.
func (i *InputSystem) SetSettings(s input.Settings) {
	prev := i.classifier.Settings()
	i.classifier.SetSettings(s)
	if prev.InputThreshold != s.InputThreshold {
		i.classifier.Reset()
	}
}

func (i *InputSystem) Settings() input.Settings {
	return i.classifier.Settings()
}

func (i *InputSystem) Reset() {
	i.classifier.Reset()
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	clock := w.Clock()

	if s, ok := i.device.(Sampler); ok {
		if err := s.Sample(clock.Tick, clock.Now); err != nil {
			// scripts fail the same way every tick; log once per message
			if msg := err.Error(); msg != i.lastErr {
				i.log.Error("sample device", "tick", clock.Tick, "err", err)
				i.lastErr = msg
			}
		} else {
			i.lastErr = ""
		}
	}

	raw := input.Capture(i.device)
	frame := i.classifier.Classify(clock.Now, raw)

	look := 0.0
	if ls, ok := i.device.(LookSource); ok {
		look = clampUnit(ls.LookAxis())
	}

	entities := w.Query(component.PlayerTagComponent.Kind(), component.InputComponent.Kind())
	for _, e := range entities {
		in, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		in.Raw = raw
		in.Frame = frame
		in.Look = look
		i.pushEdges(w, e, frame)
	}
}

func (i *InputSystem) pushEdges(w *ecs.World, e ecs.Entity, f input.Frame) {
	clock := w.Clock()
	for c := input.Channel(0); c < input.NumChannels; c++ {
		st := f.State(c)
		evt := ecs.Event{Entity: e, Tick: clock.Tick, Time: clock.Now, Data: c.String()}
		if st.Down {
			evt.Kind = ecs.EventChannelDown
			w.Events().Push(evt)
		}
		if st.Up {
			evt.Kind = ecs.EventChannelUp
			w.Events().Push(evt)
		}
		if st.DoubleTap {
			evt.Kind = ecs.EventDoubleTap
			w.Events().Push(evt)
			i.log.Debug("double tap", "channel", c, "tick", clock.Tick)
		}
	}
}

func clampUnit(v float64) float64 {
	switch {
	case v != v:
		return 0
	case v < -1:
		return -1
	case v > 1:
		return 1
	}
	return v
}
