package device

import (
	"testing"

	"github.com/d5/tengo/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/input"
)

func TestScriptEdges(t *testing.T) {
	s, err := NewScript([]byte(`
jump = tick == 1 || tick == 2
horizontal = tick * 0.25
look = -1
`))
	require.NoError(t, err)

	want := []struct {
		held, pressed, released bool
		horizontal              float64
	}{
		{false, false, false, 0},
		{true, true, false, 0.25},
		{true, false, false, 0.5},
		{false, false, true, 0.75},
	}
	for tick, w := range want {
		require.NoError(t, s.Sample(tick, float64(tick)/common.TPS))
		assert.Equal(t, w.held, s.IsButtonHeld(input.Jump), "tick %d held", tick)
		assert.Equal(t, w.pressed, s.IsButtonPressed(input.Jump), "tick %d pressed", tick)
		assert.Equal(t, w.released, s.IsButtonReleased(input.Jump), "tick %d released", tick)
		assert.Equal(t, w.horizontal, s.RawAxisValue(input.Horizontal), "tick %d horizontal", tick)
	}
	assert.Equal(t, -1.0, s.LookAxis())

	s.Reset()
	assert.False(t, s.IsButtonHeld(input.Jump))
	assert.Zero(t, s.LookAxis())
}

func TestScriptCompileError(t *testing.T) {
	_, err := NewScript([]byte(`jump = (`))
	assert.Error(t, err)
}

func TestScriptRuntimeErrorHoldsReading(t *testing.T) {
	s, err := NewScript([]byte(`
jump = true
if tick > 0 { horizontal = 1 / (tick - tick) }
`))
	require.NoError(t, err)

	require.NoError(t, s.Sample(0, 0))
	require.True(t, s.IsButtonPressed(input.Jump))

	assert.Error(t, s.Sample(1, 1.0/common.TPS))
	assert.True(t, s.IsButtonHeld(input.Jump), "failed sample should keep the level")
	assert.False(t, s.IsButtonPressed(input.Jump), "failed sample should not repeat the edge")
}

func TestDeclareReportsBadGlobal(t *testing.T) {
	require.NoError(t, declare(tengo.NewScript(nil), scriptGlobals()))

	err := declare(tengo.NewScript(nil), []scriptVar{{"tick", 0}, {"feed", make(chan int)}})
	assert.ErrorContains(t, err, "declare feed")
}

func TestLoadScriptMissing(t *testing.T) {
	_, err := LoadScript("does_not_exist")
	assert.ErrorContains(t, err, "does_not_exist")
}

func TestDoubleTapScriptThroughClassifier(t *testing.T) {
	s, err := LoadScript("double_tap")
	require.NoError(t, err)
	c := input.NewClassifier(input.Settings{InputThreshold: 0.2, DoubleTapDelay: 0.3})

	var taps, rising []int
	for tick := 0; tick < 40; tick++ {
		now := float64(tick) / common.TPS
		require.NoError(t, s.Sample(tick, now))
		st := c.Classify(now, s).State(input.Vertical)
		if st.Down {
			rising = append(rising, tick)
		}
		if st.DoubleTap {
			taps = append(taps, tick)
		}
	}

	// the idle first tick opens the window, so the first tap at 10/60s
	// already lands inside it
	assert.Equal(t, []int{10, 26}, rising)
	assert.Equal(t, []int{10, 26}, taps)
}
