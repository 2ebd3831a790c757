package device

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/stealth/input"
	"github.com/milk9111/stealth/prefabs"
)

// Outputs a script assigns each run. They are predeclared, so scripts use
// "=" rather than ":=".
var scriptOutputs = map[input.Channel]string{
	input.Horizontal: "horizontal",
	input.Vertical:   "vertical",
	input.Sneak:      "sneak",
	input.Run:        "run",
	input.Jump:       "jump",
}

const scriptLookVar = "look"

// Script is an input.Device driven by a tengo program. The program is run
// once per Sample with the current tick and time, and its output globals
// become the device reading for that tick.
type Script struct {
	path     string
	compiled *tengo.Compiled
	snap     input.Snapshot
	look     float64
}

// LoadScript compiles a script from prefabs/scripts (disk first, then the
// embedded copy).
func LoadScript(path string) (*Script, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("device: load script %s: %w", path, err)
	}
	s, err := NewScript(src)
	if err != nil {
		return nil, fmt.Errorf("device: %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

type scriptVar struct {
	name  string
	value any
}

// scriptGlobals lists the inputs and predeclared outputs of every script.
func scriptGlobals() []scriptVar {
	vars := []scriptVar{{"tick", 0}, {"time", 0.0}}
	for c := input.Channel(0); c < input.NumChannels; c++ {
		if c.IsAxis() {
			vars = append(vars, scriptVar{scriptOutputs[c], 0.0})
		} else {
			vars = append(vars, scriptVar{scriptOutputs[c], false})
		}
	}
	return append(vars, scriptVar{scriptLookVar, 0.0})
}

func declare(script *tengo.Script, vars []scriptVar) error {
	for _, v := range vars {
		if err := script.Add(v.name, v.value); err != nil {
			return fmt.Errorf("device: declare %s: %w", v.name, err)
		}
	}
	return nil
}

func NewScript(src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	if err := declare(script, scriptGlobals()); err != nil {
		return nil, err
	}

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &Script{compiled: compiled}, nil
}

// Path is the script name it was loaded from, empty for NewScript.
func (s *Script) Path() string {
	return s.path
}

// Sample runs the program for one tick. Edges are derived against the
// previous Sample, so it must be called exactly once per tick.
func (s *Script) Sample(tick int, now float64) error {
	if err := s.compiled.Set("tick", tick); err != nil {
		return err
	}
	if err := s.compiled.Set("time", now); err != nil {
		return err
	}
	if err := s.compiled.Run(); err != nil {
		// hold the last reading so edges are not repeated
		s.snap = s.snap.Next(s.snap.Axes, s.snap.Held)
		return fmt.Errorf("device: run script %s: %w", s.name(), err)
	}

	var axes [input.NumChannels]float64
	var held [input.NumChannels]bool
	for c, name := range scriptOutputs {
		v := s.compiled.Get(name)
		if c.IsAxis() {
			axes[c] = v.Float()
		} else {
			held[c] = v.Bool()
		}
	}
	s.snap = s.snap.Next(axes, held)
	s.look = s.compiled.Get(scriptLookVar).Float()
	return nil
}

// Reset forgets the held state of the previous Sample.
func (s *Script) Reset() {
	s.snap = input.Snapshot{}
	s.look = 0
}

func (s *Script) RawAxisValue(ch input.Channel) float64 { return s.snap.RawAxisValue(ch) }
func (s *Script) IsButtonHeld(ch input.Channel) bool    { return s.snap.IsButtonHeld(ch) }
func (s *Script) IsButtonPressed(ch input.Channel) bool { return s.snap.IsButtonPressed(ch) }
func (s *Script) IsButtonReleased(ch input.Channel) bool {
	return s.snap.IsButtonReleased(ch)
}

// LookAxis is the camera orbit input in [-1, 1].
func (s *Script) LookAxis() float64 {
	return s.look
}

func (s *Script) name() string {
	if strings.TrimSpace(s.path) == "" {
		return "<inline>"
	}
	return s.path
}
