package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/stealth/input"
	"gopkg.in/yaml.v3"
)

const PlayerFile = "player.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name     string       `yaml:"name"`
	Input    InputSpec    `yaml:"input"`
	Motion   MotionSpec   `yaml:"motion"`
	Body     BodySpec     `yaml:"body"`
	Camera   CameraSpec   `yaml:"camera"`
	Arena    ArenaSpec    `yaml:"arena"`
	Bindings BindingsSpec `yaml:"bindings"`
}

type InputSpec struct {
	Threshold      float64 `yaml:"threshold"`
	DoubleTapDelay float64 `yaml:"double_tap_delay"`
}

type MotionSpec struct {
	WalkSpeed  float64 `yaml:"walk_speed"`
	RunSpeed   float64 `yaml:"run_speed"`
	SneakSpeed float64 `yaml:"sneak_speed"`
	TurnSpeed  float64 `yaml:"turn_speed"`
}

type BodySpec struct {
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Yaw    float64 `yaml:"yaw"`
}

type CameraSpec struct {
	Yaw        float64 `yaml:"yaw"`
	Pitch      float64 `yaml:"pitch"`
	OrbitSpeed float64 `yaml:"orbit_speed"`
}

type ArenaSpec struct {
	Width float64 `yaml:"width"`
	Depth float64 `yaml:"depth"`
	// Scale is pixels per world unit in the debug view.
	Scale float64 `yaml:"scale"`
}

type BindingsSpec struct {
	Axes    map[string]AxisBindingSpec   `yaml:"axes"`
	Buttons map[string]ButtonBindingSpec `yaml:"buttons"`
	Look    AxisBindingSpec              `yaml:"look"`
}

type AxisBindingSpec struct {
	Negative    []string `yaml:"negative"`
	Positive    []string `yaml:"positive"`
	GamepadAxis string   `yaml:"gamepad_axis"`
	Invert      bool     `yaml:"invert"`
}

type ButtonBindingSpec struct {
	Keys          []string `yaml:"keys"`
	GamepadButton string   `yaml:"gamepad_button"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", PlayerFile, err)
	}
	return &spec, nil
}

// Validate checks the parts of the spec that would otherwise fail silently at
// runtime. Tuning values are not range checked: a negative delay or a zero
// turn speed is a legal, if odd, configuration.
func (s *PlayerSpec) Validate() error {
	var errs []error
	for name := range s.Bindings.Axes {
		ch, err := input.ParseChannel(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ch.IsAxis() {
			errs = append(errs, fmt.Errorf("binding %s: channel is a button, not an axis", name))
		}
	}
	for name := range s.Bindings.Buttons {
		ch, err := input.ParseChannel(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ch.IsAxis() {
			errs = append(errs, fmt.Errorf("binding %s: channel is an axis, not a button", name))
		}
	}
	if s.Body.Radius <= 0 {
		errs = append(errs, fmt.Errorf("body radius must be positive, got %v", s.Body.Radius))
	}
	if s.Body.Mass <= 0 {
		errs = append(errs, fmt.Errorf("body mass must be positive, got %v", s.Body.Mass))
	}
	return errors.Join(errs...)
}
