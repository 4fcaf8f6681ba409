// Package wind draws a random wind once per round and exposes it as two
// weighted components plus a display bundle for the on-screen indicator.
package wind

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

var cardinals = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Model owns the wind of the current round.
type Model struct {
	cfg config.Wind
	rng *rand.Rand

	direction  float64 // degrees, 0 blows toward the goal
	magnitude  float64
	components types.Wind
}

// New returns a calm model. Call Regenerate to draw the first wind.
func New(cfg config.Wind, rng *rand.Rand) *Model {
	return &Model{cfg: cfg, rng: rng}
}

// Regenerate draws a new direction in [0, 360) and magnitude in [min, max].
// A disabled model pins everything to zero.
func (m *Model) Regenerate() {
	if !m.cfg.Enabled {
		m.Set(0, 0)
		return
	}
	direction := m.rng.Float64() * 360
	magnitude := m.cfg.Min + m.rng.Float64()*(m.cfg.Max-m.cfg.Min)
	m.Set(direction, magnitude)
}

// Set fixes the raw wind. Direction is in degrees with 0 toward the goal (-Z)
// and 90 toward +X.
func (m *Model) Set(direction, magnitude float64) {
	if !m.cfg.Enabled {
		direction, magnitude = 0, 0
	}
	m.direction = direction
	m.magnitude = magnitude

	rad := mgl64.DegToRad(direction)
	rawX := math.Sin(rad) * magnitude
	rawZ := -math.Cos(rad) * magnitude
	m.components = types.Wind{
		Lateral: rawX * m.cfg.LateralWeight,
		Frontal: rawZ * m.cfg.FrontalWeight,
	}
}

// Components returns the weighted components fed to the integrator.
func (m *Model) Components() types.Wind {
	return m.components
}

// Info returns the display bundle. The bearing and percentage describe the
// weighted components, so they reflect what the ball actually feels.
func (m *Model) Info() types.WindInfo {
	lat, front := m.components.Lateral, m.components.Frontal
	magnitude := math.Hypot(lat, front)

	bearing := mgl64.RadToDeg(math.Atan2(lat, -front))
	if bearing < 0 {
		bearing += 360
	}

	percent := 0
	if maxMagnitude := math.Hypot(m.cfg.Max*m.cfg.LateralWeight, m.cfg.Max*m.cfg.FrontalWeight); maxMagnitude > 0 {
		percent = int(math.Round(magnitude / maxMagnitude * 100))
	}

	return types.WindInfo{
		Bearing:   bearing,
		Magnitude: magnitude,
		Percent:   percent,
		Cardinal:  Cardinal(m.direction),
		Lateral:   lat,
		Frontal:   front,
	}
}

// Cardinal maps a direction in degrees to an 8-point compass label.
func Cardinal(direction float64) string {
	idx := int(math.Round(direction/45)) % len(cardinals)
	if idx < 0 {
		idx += len(cardinals)
	}
	return cardinals[idx]
}
