package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stealth/input"
	"github.com/milk9111/stealth/prefabs"
)

var gamepadAxes = map[string]ebiten.StandardGamepadAxis{
	"LeftStickHorizontal":  ebiten.StandardGamepadAxisLeftStickHorizontal,
	"LeftStickVertical":    ebiten.StandardGamepadAxisLeftStickVertical,
	"RightStickHorizontal": ebiten.StandardGamepadAxisRightStickHorizontal,
	"RightStickVertical":   ebiten.StandardGamepadAxisRightStickVertical,
}

var gamepadButtons = map[string]ebiten.StandardGamepadButton{
	"RightBottom":      ebiten.StandardGamepadButtonRightBottom,
	"RightRight":       ebiten.StandardGamepadButtonRightRight,
	"RightLeft":        ebiten.StandardGamepadButtonRightLeft,
	"RightTop":         ebiten.StandardGamepadButtonRightTop,
	"FrontTopLeft":     ebiten.StandardGamepadButtonFrontTopLeft,
	"FrontTopRight":    ebiten.StandardGamepadButtonFrontTopRight,
	"FrontBottomLeft":  ebiten.StandardGamepadButtonFrontBottomLeft,
	"FrontBottomRight": ebiten.StandardGamepadButtonFrontBottomRight,
	"LeftStick":        ebiten.StandardGamepadButtonLeftStick,
	"RightStick":       ebiten.StandardGamepadButtonRightStick,
}

type axisBinding struct {
	negative []ebiten.Key
	positive []ebiten.Key
	stick    ebiten.StandardGamepadAxis
	hasStick bool
	invert   bool
}

type buttonBinding struct {
	keys      []ebiten.Key
	button    ebiten.StandardGamepadButton
	hasButton bool
}

// Keyboard reads the keyboard and the first standard gamepad through the
// bindings in player.yaml.
type Keyboard struct {
	axes    [input.NumChannels]axisBinding
	buttons [input.NumChannels]buttonBinding
	look    axisBinding

	snap     input.Snapshot
	lookAxis float64
}

func NewKeyboard(b prefabs.BindingsSpec) (*Keyboard, error) {
	k := &Keyboard{}
	if err := k.SetBindings(b); err != nil {
		return nil, err
	}
	return k, nil
}

// SetBindings replaces every binding. On error the old bindings stay.
func (k *Keyboard) SetBindings(b prefabs.BindingsSpec) error {
	var (
		axes    [input.NumChannels]axisBinding
		buttons [input.NumChannels]buttonBinding
		errs    []error
		err     error
	)
	for _, ch := range input.Axes {
		if axes[ch], err = parseAxisBinding(b.AxisBinding(ch)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch, err))
		}
	}
	for _, ch := range input.Buttons {
		if buttons[ch], err = parseButtonBinding(b.ButtonBinding(ch)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch, err))
		}
	}
	look, err := parseAxisBinding(b.Look)
	if err != nil {
		errs = append(errs, fmt.Errorf("look: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("bindings: %w", err)
	}
	k.axes, k.buttons, k.look = axes, buttons, look
	return nil
}

func (k *Keyboard) Sample(_ int, _ float64) error {
	pad, hasPad := firstGamepad()

	var axes [input.NumChannels]float64
	var held [input.NumChannels]bool
	for _, ch := range input.Axes {
		axes[ch] = k.axes[ch].value(pad, hasPad)
	}
	for _, ch := range input.Buttons {
		held[ch] = k.buttons[ch].held(pad, hasPad)
	}
	k.snap = k.snap.Next(axes, held)
	k.lookAxis = k.look.value(pad, hasPad)
	return nil
}

func (k *Keyboard) RawAxisValue(ch input.Channel) float64 { return k.snap.RawAxisValue(ch) }
func (k *Keyboard) IsButtonHeld(ch input.Channel) bool    { return k.snap.IsButtonHeld(ch) }
func (k *Keyboard) IsButtonPressed(ch input.Channel) bool { return k.snap.IsButtonPressed(ch) }
func (k *Keyboard) IsButtonReleased(ch input.Channel) bool {
	return k.snap.IsButtonReleased(ch)
}

func (k *Keyboard) LookAxis() float64 {
	return k.lookAxis
}

func firstGamepad() (ebiten.GamepadID, bool) {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return id, true
		}
	}
	return 0, false
}

// value combines keys and stick: whichever is further from rest wins.
func (a axisBinding) value(pad ebiten.GamepadID, hasPad bool) float64 {
	v := 0.0
	if anyPressed(a.negative) {
		v--
	}
	if anyPressed(a.positive) {
		v++
	}
	if a.hasStick && hasPad {
		s := ebiten.StandardGamepadAxisValue(pad, a.stick)
		if a.invert {
			s = -s
		}
		if math.Abs(s) > math.Abs(v) {
			v = s
		}
	}
	return v
}

func (b buttonBinding) held(pad ebiten.GamepadID, hasPad bool) bool {
	if anyPressed(b.keys) {
		return true
	}
	return b.hasButton && hasPad && ebiten.IsStandardGamepadButtonPressed(pad, b.button)
}

func anyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func parseAxisBinding(s prefabs.AxisBindingSpec) (axisBinding, error) {
	var (
		b   axisBinding
		err error
	)
	if b.negative, err = parseKeys(s.Negative); err != nil {
		return b, err
	}
	if b.positive, err = parseKeys(s.Positive); err != nil {
		return b, err
	}
	if s.GamepadAxis != "" {
		stick, ok := gamepadAxes[s.GamepadAxis]
		if !ok {
			return b, fmt.Errorf("unknown gamepad axis %q", s.GamepadAxis)
		}
		b.stick, b.hasStick = stick, true
	}
	b.invert = s.Invert
	return b, nil
}

func parseButtonBinding(s prefabs.ButtonBindingSpec) (buttonBinding, error) {
	var (
		b   buttonBinding
		err error
	)
	if b.keys, err = parseKeys(s.Keys); err != nil {
		return b, err
	}
	if s.GamepadButton != "" {
		btn, ok := gamepadButtons[s.GamepadButton]
		if !ok {
			return b, fmt.Errorf("unknown gamepad button %q", s.GamepadButton)
		}
		b.button, b.hasButton = btn, true
	}
	return b, nil
}

func parseKeys(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
