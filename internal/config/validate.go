package config

import (
	"math"

	"github.com/pkg/errors"
)

// Validate rejects configurations that would make the core produce NaNs or
// nonsense instead of failing at startup.
func (c Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Ball.Radius > 0, "ball.radius must be positive"},
		{c.Physics.Gravity <= 0, "physics.gravity must pull down (<= 0)"},
		{c.Kick.BaseSpeed > 0, "kick.base_speed must be positive"},
		{c.Kick.MinHeight <= c.Kick.MaxHeight, "kick.min_height exceeds kick.max_height"},
		{c.Kick.MinPower >= 0 && c.Kick.MinPower <= 100, "kick.min_power must be within [0,100]"},
		{c.Kick.MaxPowerMultiplier > 0, "kick.max_power_multiplier must be positive"},

		{unit(c.Surfaces.GroundRestitution), "surfaces.ground_restitution must be within [0,1]"},
		{unit(c.Surfaces.GroundFriction), "surfaces.ground_friction must be within [0,1]"},
		{unit(c.Surfaces.PostRestitution), "surfaces.post_restitution must be within [0,1]"},
		{unit(c.Surfaces.BarrierRestitution), "surfaces.barrier_restitution must be within [0,1]"},
		{unit(c.Surfaces.BarrierFriction), "surfaces.barrier_friction must be within [0,1]"},
		{unit(c.Surfaces.SaveDamping), "surfaces.save_damping must be within [0,1]"},
		{unit(c.Surfaces.NetBleed), "surfaces.net_bleed must be within [0,1]"},
		{unit(c.Surfaces.InNetDamping), "surfaces.in_net_damping must be within [0,1]"},
		{c.Surfaces.RestSpeed >= 0 && c.Surfaces.RestVerticalSpeed >= 0, "surfaces rest thresholds must not be negative"},

		{c.Goal.Width > 0 && c.Goal.Height > 0 && c.Goal.Depth > 0, "goal dimensions must be positive"},
		{c.Goal.PostRadius > 0, "goal.post_radius must be positive"},
		{c.Goal.FrameBand > 0, "goal.frame_band must be positive"},
		{c.Goal.ScoreFront >= 0 && c.Goal.ScoreBack >= 0, "goal score band must not be negative"},
		{c.Field.KickSpotZ > c.Goal.LineZ, "field.kick_spot_z must be in front of the goal line"},

		{c.Barrier.Width >= 0 && c.Barrier.Height >= 0 && c.Barrier.Thickness >= 0, "barrier dimensions must not be negative"},
		{c.Barrier.OffsetMin >= 0 && c.Barrier.OffsetMin <= c.Barrier.OffsetMax, "barrier offsets must satisfy 0 <= offset_min <= offset_max"},

		{c.Goalkeeper.Scale > 0 && c.Goalkeeper.CollisionRadius > 0, "goalkeeper scale and collision_radius must be positive"},
		{c.Goalkeeper.ReactionFrames >= 0, "goalkeeper.reaction_frames must not be negative"},
		{c.Goalkeeper.PredictionHorizon > 0, "goalkeeper.prediction_horizon must be positive"},
		{c.Goalkeeper.ReachX >= 0 && c.Goalkeeper.ReachY >= 0, "goalkeeper reach box must not be negative"},
		{c.Goalkeeper.Acceleration > 0, "goalkeeper.acceleration must be positive"},
		{c.Goalkeeper.MaxSpeed > 0 && c.Goalkeeper.DiveSpeed >= c.Goalkeeper.MaxSpeed, "goalkeeper speeds must satisfy 0 < max_speed <= dive_speed"},
		{c.Goalkeeper.DiveRadius >= 0, "goalkeeper.dive_radius must not be negative"},
		{c.Goalkeeper.DiveRelease >= 1, "goalkeeper.dive_release must be >= 1"},
		{c.Goalkeeper.ArrivalRadius > 0, "goalkeeper.arrival_radius must be positive"},
		{unit(c.Goalkeeper.Deceleration), "goalkeeper.deceleration must be within [0,1]"},
		{unit(c.Goalkeeper.LeanSmoothing), "goalkeeper.lean_smoothing must be within [0,1]"},
		{c.Goalkeeper.MaxLean >= 0, "goalkeeper.max_lean must not be negative"},

		{c.Wind.Min >= 0, "wind.min must not be negative"},
		{c.Wind.Min <= c.Wind.Max, "wind.min exceeds wind.max"},
		{c.Wind.LateralWeight >= 0 && c.Wind.FrontalWeight >= 0, "wind weights must not be negative"},
	}
	for _, check := range checks {
		if !check.ok {
			return errors.New(check.msg)
		}
	}
	if !finite(c) {
		return errors.New("config contains NaN or infinite values")
	}
	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func finite(c Config) bool {
	values := []float64{
		c.Ball.Radius,
		c.Physics.Gravity, c.Physics.CurveStrength, c.Physics.MagnusLift, c.Physics.RollRate,
		c.Field.GroundHeight, c.Field.KickSpotX, c.Field.KickSpotZ,
		c.Goal.CenterX, c.Goal.LineZ,
		c.Barrier.Z,
		c.Goalkeeper.StartZ, c.Goalkeeper.BaseY, c.Goalkeeper.SideOffset, c.Goalkeeper.LeanGain, c.Goalkeeper.LeanLift,
		c.Goalkeeper.ArrivalRadius, c.Goalkeeper.Acceleration, c.Goalkeeper.MaxSpeed, c.Goalkeeper.DiveSpeed,
		c.Wind.Max,
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
