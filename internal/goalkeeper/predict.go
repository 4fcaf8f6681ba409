// Package goalkeeper implements the keeper AI: a forward predictor of where
// the ball crosses the goal plane, a reaction-delayed target selector and a
// motion controller with a dive mode and a cosmetic lean pose.
package goalkeeper

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/physics"
	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

// Predict forward-simulates the ball on a private copy with the same frame
// rule the real ball uses (no wind, no collisions) and returns the point where
// it reaches the goal plane. It reports false when the ball is not heading
// for the plane or would take longer than horizon frames to get there.
func Predict(ball types.BallState, spin, goalZ float64, p config.Physics, horizon int) (mgl64.Vec3, bool) {
	vz := ball.Velocity[types.AxisZ]
	if vz >= 0 {
		return mgl64.Vec3{}, false
	}
	timeToGoal := (goalZ - ball.Position[types.AxisZ]) / vz
	if timeToGoal < 0 || timeToGoal > float64(horizon) {
		return mgl64.Vec3{}, false
	}

	pos, vel := ball.Position, ball.Velocity
	for i := 0; i < horizon && pos[types.AxisZ] > goalZ; i++ {
		pos, vel = physics.Advance(pos, vel, spin, p)
		if pos[types.AxisZ] <= goalZ {
			return mgl64.Vec3{pos[types.AxisX], pos[types.AxisY], goalZ}, true
		}
	}
	return mgl64.Vec3{}, false
}
