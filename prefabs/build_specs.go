package prefabs

import (
	"github.com/milk9111/stealth/input"
	"github.com/milk9111/stealth/motion"
)

func (s InputSpec) Settings() input.Settings {
	return input.Settings{
		InputThreshold: s.Threshold,
		DoubleTapDelay: s.DoubleTapDelay,
	}
}

func (s MotionSpec) Settings() motion.Settings {
	return motion.Settings{
		WalkSpeed:  s.WalkSpeed,
		RunSpeed:   s.RunSpeed,
		SneakSpeed: s.SneakSpeed,
		TurnSpeed:  s.TurnSpeed,
	}
}

// AxisBinding returns the binding for an axis channel, or the zero binding
// when the channel is not bound.
func (b BindingsSpec) AxisBinding(ch input.Channel) AxisBindingSpec {
	return b.Axes[ch.String()]
}

func (b BindingsSpec) ButtonBinding(ch input.Channel) ButtonBindingSpec {
	return b.Buttons[ch.String()]
}
