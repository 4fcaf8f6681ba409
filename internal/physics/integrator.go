// Package physics advances the ball one frame at a time and resolves it
// against the fixed obstacle set: ground, goal frame, barrier, goalkeeper and net.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

// CurveForce returns the spin-induced deflection for the current velocity:
// perpendicular to it in the horizontal plane, proportional to spin and speed.
func CurveForce(vel mgl64.Vec3, spin, curveStrength float64) mgl64.Vec3 {
	return types.Up.Cross(vel).Mul(spin * curveStrength)
}

// MagnusLift returns the vertical lift for the current velocity.
func MagnusLift(vel mgl64.Vec3, spin, lift float64) float64 {
	return math.Abs(spin) * vel.Len() * lift
}

// Step advances position and velocity by one fixed frame using explicit Euler.
// A nil wind adds no wind terms. Step is the only stepping rule in the module:
// live playback and the keeper's look-ahead both go through it, so they cannot
// drift apart.
func Step(pos, vel mgl64.Vec3, spin float64, p config.Physics, wind *types.Wind) (mgl64.Vec3, mgl64.Vec3) {
	var curve mgl64.Vec3
	lift := 0.0
	if spin != 0 {
		curve = CurveForce(vel, spin, p.CurveStrength)
		lift = MagnusLift(vel, spin, p.MagnusLift)
	}
	if wind != nil {
		curve[types.AxisX] += wind.Lateral
		vel[types.AxisZ] += wind.Frontal
	}

	vel = vel.Add(curve)
	vel[types.AxisY] += lift + p.Gravity

	return pos.Add(vel), vel
}

// Advance is Step without wind, the rule used for trajectory prediction.
func Advance(pos, vel mgl64.Vec3, spin float64, p config.Physics) (mgl64.Vec3, mgl64.Vec3) {
	return Step(pos, vel, spin, p, nil)
}

// Integrate moves the ball one frame and advances its cosmetic roll.
func Integrate(b *types.BallState, spin float64, p config.Physics, wind *types.Wind) {
	b.Position, b.Velocity = Step(b.Position, b.Velocity, spin, p, wind)
	b.Roll += b.Velocity.Len() * p.RollRate
}
