package wind

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

func TestRegenerateStaysWithinWeightedBounds(t *testing.T) {
	cfg := config.Default().Wind
	m := New(cfg, rand.New(rand.NewSource(7)))

	maxLat := cfg.Max * cfg.LateralWeight
	maxFront := cfg.Max * cfg.FrontalWeight
	for i := 0; i < 10000; i++ {
		m.Regenerate()
		c := m.Components()
		require.LessOrEqual(t, math.Abs(c.Lateral), maxLat+1e-15, "draw %d", i)
		require.LessOrEqual(t, math.Abs(c.Frontal), maxFront+1e-15, "draw %d", i)

		info := m.Info()
		require.GreaterOrEqual(t, info.Bearing, 0.0)
		require.Less(t, info.Bearing, 360.0)
		require.GreaterOrEqual(t, info.Percent, 0)
		require.LessOrEqual(t, info.Percent, 100)
	}
}

func TestDisabledWindIsExactlyZero(t *testing.T) {
	cfg := config.Default().Wind
	cfg.Enabled = false
	m := New(cfg, rand.New(rand.NewSource(7)))

	for i := 0; i < 10000; i++ {
		m.Regenerate()
		require.Equal(t, types.Wind{}, m.Components())
	}
	m.Set(90, cfg.Max)
	assert.Equal(t, types.Wind{}, m.Components(), "Set is ignored when disabled")
	assert.Equal(t, 0, m.Info().Percent)
}

func TestSetDecomposesDirection(t *testing.T) {
	cfg := config.Default().Wind
	m := New(cfg, rand.New(rand.NewSource(1)))

	m.Set(90, cfg.Max)
	c := m.Components()
	assert.InDelta(t, cfg.Max*cfg.LateralWeight, c.Lateral, 1e-15, "east wind pushes +X")
	assert.InDelta(t, 0, c.Frontal, 1e-15)

	info := m.Info()
	assert.InDelta(t, 90, info.Bearing, 1e-9)
	assert.Equal(t, "E", info.Cardinal)
	assert.Equal(t, int(math.Round(cfg.LateralWeight/math.Hypot(cfg.LateralWeight, cfg.FrontalWeight)*100)), info.Percent)

	m.Set(0, cfg.Max)
	c = m.Components()
	assert.InDelta(t, -cfg.Max*cfg.FrontalWeight, c.Frontal, 1e-15, "north wind pushes toward the goal")
	assert.InDelta(t, 0, m.Info().Bearing, 1e-9)
	assert.Equal(t, "N", m.Info().Cardinal)

	m.Set(270, cfg.Max)
	assert.InDelta(t, 270, m.Info().Bearing, 1e-9)
}

func TestCardinal(t *testing.T) {
	cases := map[float64]string{
		0:     "N",
		22:    "N",
		23:    "NE",
		135:   "SE",
		180:   "S",
		260:   "W",
		315:   "NW",
		330:   "NW",
		359.9: "N",
	}
	for deg, want := range cases {
		assert.Equal(t, want, Cardinal(deg), "%v degrees", deg)
	}
}
