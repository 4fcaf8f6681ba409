// Package config holds the session constants of the free-kick core. Values are
// fixed for a session: they are loaded once at startup and never mutated.
package config

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

// Config is the full tuning surface.
type Config struct {
	Ball       Ball       `toml:"ball"`
	Physics    Physics    `toml:"physics"`
	Kick       Kick       `toml:"kick"`
	Surfaces   Surfaces   `toml:"surfaces"`
	Field      Field      `toml:"field"`
	Goal       Goal       `toml:"goal"`
	Barrier    Barrier    `toml:"barrier"`
	Goalkeeper Goalkeeper `toml:"goalkeeper"`
	Wind       Wind       `toml:"wind"`
}

type Ball struct {
	Radius float64 `toml:"radius"`
}

// Physics drives the trajectory integrator. Velocities are in units/frame.
type Physics struct {
	Gravity       float64 `toml:"gravity"`        // added to vy every frame
	CurveStrength float64 `toml:"curve_strength"` // scales up x velocity by spin
	MagnusLift    float64 `toml:"magnus_lift"`    // |spin| x speed x this, added to vy
	RollRate      float64 `toml:"roll_rate"`      // visual roll per unit speed
}

// Kick maps the aim/power inputs to launch parameters.
type Kick struct {
	BaseSpeed          float64 `toml:"base_speed"`
	DefaultHeight      float64 `toml:"default_height"`
	MinHeight          float64 `toml:"min_height"`
	MaxHeight          float64 `toml:"max_height"`
	MinPower           float64 `toml:"min_power"`
	MaxPowerMultiplier float64 `toml:"max_power_multiplier"`
}

// Surfaces holds restitution and friction coefficients per obstacle.
type Surfaces struct {
	GroundRestitution  float64 `toml:"ground_restitution"`
	GroundFriction     float64 `toml:"ground_friction"`
	RestVerticalSpeed  float64 `toml:"rest_vertical_speed"`
	RestSpeed          float64 `toml:"rest_speed"`
	PostRestitution    float64 `toml:"post_restitution"`
	BarrierRestitution float64 `toml:"barrier_restitution"`
	BarrierFriction    float64 `toml:"barrier_friction"`
	SaveDamping        float64 `toml:"save_damping"`
	NetBleed           float64 `toml:"net_bleed"`
	InNetDamping       float64 `toml:"in_net_damping"`
	InNetMaxDrop       float64 `toml:"in_net_max_drop"`
}

// Field places the ground, the kick spot and the out-of-play bounds.
type Field struct {
	GroundHeight float64 `toml:"ground_height"`
	KickSpotX    float64 `toml:"kick_spot_x"`
	KickSpotZ    float64 `toml:"kick_spot_z"`

	MissBelowGround float64 `toml:"miss_below_ground"`
	MissBeyondGoal  float64 `toml:"miss_beyond_goal"`
	MissMaxZ        float64 `toml:"miss_max_z"`
	MissHalfWidth   float64 `toml:"miss_half_width"`
	MissStopSpeed   float64 `toml:"miss_stop_speed"`
}

type Goal struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Depth      float64 `toml:"depth"`
	CenterX    float64 `toml:"center_x"`
	LineZ      float64 `toml:"line_z"`
	PostRadius float64 `toml:"post_radius"`
	FrameBand  float64 `toml:"frame_band"`
	ScoreFront float64 `toml:"score_front"`
	ScoreBack  float64 `toml:"score_back"`
}

type Barrier struct {
	Enabled   bool    `toml:"enabled"`
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	Thickness float64 `toml:"thickness"`
	Z         float64 `toml:"z"`
	OffsetMin float64 `toml:"offset_min"`
	OffsetMax float64 `toml:"offset_max"`
}

// Goalkeeper tunes the keeper body, AI and motion controller.
type Goalkeeper struct {
	Enabled         bool    `toml:"enabled"`
	Scale           float64 `toml:"scale"`
	CollisionRadius float64 `toml:"collision_radius"`
	StartZ          float64 `toml:"start_z"`
	BaseY           float64 `toml:"base_y"`
	SideOffset      float64 `toml:"side_offset"`

	ReactionFrames    int     `toml:"reaction_frames"`
	PredictionHorizon int     `toml:"prediction_horizon"`
	ReachX            float64 `toml:"reach_x"`
	ReachY            float64 `toml:"reach_y"`

	Acceleration  float64 `toml:"acceleration"`
	MaxSpeed      float64 `toml:"max_speed"`
	DiveSpeed     float64 `toml:"dive_speed"`
	DiveRadius    float64 `toml:"dive_radius"`
	DiveRelease   float64 `toml:"dive_release"` // multiple of DiveRadius that ends a dive
	ArrivalRadius float64 `toml:"arrival_radius"`
	Deceleration  float64 `toml:"deceleration"`
	Brake         bool    `toml:"brake"` // cap speed at sqrt(2*acceleration*distance)

	LeanGain      float64 `toml:"lean_gain"`
	MaxLean       float64 `toml:"max_lean"`
	LeanSmoothing float64 `toml:"lean_smoothing"`
	LeanLift      float64 `toml:"lean_lift"`
}

type Wind struct {
	Enabled       bool    `toml:"enabled"`
	Min           float64 `toml:"min"`
	Max           float64 `toml:"max"`
	LateralWeight float64 `toml:"lateral_weight"`
	FrontalWeight float64 `toml:"frontal_weight"`
}

// Default returns the tuned arcade constants.
func Default() Config {
	return Config{
		Ball: Ball{Radius: 0.3},
		Physics: Physics{
			Gravity:       -0.0098,
			CurveStrength: 0.01,
			MagnusLift:    -0.005,
			RollRate:      0.1,
		},
		Kick: Kick{
			BaseSpeed:          0.4,
			DefaultHeight:      0.2,
			MinHeight:          0.05,
			MaxHeight:          0.40,
			MinPower:           2,
			MaxPowerMultiplier: 2.5,
		},
		Surfaces: Surfaces{
			GroundRestitution:  0.6,
			GroundFriction:     0.95,
			RestVerticalSpeed:  0.02,
			RestSpeed:          0.05,
			PostRestitution:    0.7,
			BarrierRestitution: 0.5,
			BarrierFriction:    0.9,
			SaveDamping:        0.45,
			NetBleed:           0.3,
			InNetDamping:       0.3,
			InNetMaxDrop:       0.1,
		},
		Field: Field{
			GroundHeight:    -0.5,
			KickSpotX:       0,
			KickSpotZ:       10,
			MissBelowGround: 2,
			MissBeyondGoal:  20,
			MissMaxZ:        12,
			MissHalfWidth:   20,
			MissStopSpeed:   0.01,
		},
		Goal: Goal{
			Width:      16,
			Height:     5,
			Depth:      2,
			CenterX:    0,
			LineZ:      -20,
			PostRadius: 0.2,
			FrameBand:  1,
			ScoreFront: 0.5,
			ScoreBack:  0.2,
		},
		Barrier: Barrier{
			Enabled:   true,
			Width:     4,
			Height:    2.8,
			Thickness: 0.3,
			Z:         2,
			OffsetMin: 1.5,
			OffsetMax: 2,
		},
		Goalkeeper: Goalkeeper{
			Enabled:           true,
			Scale:             1.4,
			CollisionRadius:   1,
			StartZ:            -19,
			BaseY:             0.5,
			SideOffset:        4,
			ReactionFrames:    1,
			PredictionHorizon: 200,
			ReachX:            6,
			ReachY:            2,
			Acceleration:      0.01,
			MaxSpeed:          0.15,
			DiveSpeed:         1,
			DiveRadius:        3,
			DiveRelease:       1.5,
			ArrivalRadius:     0.05,
			Deceleration:      0.85,
			Brake:             true,
			LeanGain:          0.35,
			MaxLean:           1.2,
			LeanSmoothing:     0.2,
			LeanLift:          0.4,
		},
		Wind: Wind{
			Enabled:       true,
			Min:           0,
			Max:           0.009,
			LateralWeight: 0.3,
			FrontalWeight: 0.1,
		},
	}
}

// Load decodes a TOML file over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "could not decode config (%s)", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, errors.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config (%s)", path)
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(cfg), "could not encode config")
}

// GoalGeometry returns the goal frame resting on the ground plane.
func (c Config) GoalGeometry() types.Goal {
	return types.Goal{
		Width:      c.Goal.Width,
		Height:     c.Goal.Height,
		Depth:      c.Goal.Depth,
		Position:   mgl64.Vec3{c.Goal.CenterX, c.Field.GroundHeight, c.Goal.LineZ},
		PostRadius: c.Goal.PostRadius,
		FrameBand:  c.Goal.FrameBand,
		ScoreFront: c.Goal.ScoreFront,
		ScoreBack:  c.Goal.ScoreBack,
	}
}

// GroundPlane returns the ground geometry.
func (c Config) GroundPlane() types.Ground {
	return types.Ground{Height: c.Field.GroundHeight}
}

// KickSpot returns where the ball rests before each kick.
func (c Config) KickSpot() mgl64.Vec3 {
	return mgl64.Vec3{c.Field.KickSpotX, c.Field.GroundHeight + c.Ball.Radius, c.Field.KickSpotZ}
}

// BarrierAt returns the barrier box standing on the ground at lateral offset x.
func (c Config) BarrierAt(x float64) types.Barrier {
	return types.Barrier{
		Width:     c.Barrier.Width,
		Height:    c.Barrier.Height,
		Thickness: c.Barrier.Thickness,
		Position:  mgl64.Vec3{x, c.Field.GroundHeight + c.Barrier.Height/2, c.Barrier.Z},
	}
}

// KeeperStart returns the keeper body at the centre of the goal.
func (c Config) KeeperStart() types.KeeperBody {
	return types.KeeperBody{
		Position:        mgl64.Vec3{c.Goal.CenterX, c.Goalkeeper.BaseY, c.Goalkeeper.StartZ},
		CollisionRadius: c.Goalkeeper.CollisionRadius,
		Scale:           c.Goalkeeper.Scale,
	}
}
