package types

import "github.com/go-gl/mathgl/mgl64"

// Axis indices into an mgl64.Vec3. X is lateral, Y is up and Z is depth;
// the goal mouth faces +Z and the kick spot sits on the +Z side of it.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// Up is the world-up direction used for spin-induced curve.
var Up = mgl64.Vec3{0, 1, 0}

// BallState is the mutable ball the core integrates and resolves.
type BallState struct {
	Position mgl64.Vec3 `json:"position" msgpack:"position"`
	Velocity mgl64.Vec3 `json:"velocity" msgpack:"velocity"`
	Radius   float64    `json:"radius" msgpack:"radius"`
	Roll     float64    `json:"roll" msgpack:"roll"` // visual only
}

// Speed returns the length of the velocity vector.
func (b BallState) Speed() float64 {
	return b.Velocity.Len()
}

// Bottom returns the lowest point of the ball.
func (b BallState) Bottom() float64 {
	return b.Position[AxisY] - b.Radius
}

// Ground is the horizontal plane the ball bounces and rolls on.
type Ground struct {
	Height float64 `json:"height" msgpack:"height"`
}

// Goal describes the goal frame. Position is the centre of the goal line at
// ground level; the net cavity extends Depth units toward -Z.
type Goal struct {
	Width      float64    `json:"width" msgpack:"width"`
	Height     float64    `json:"height" msgpack:"height"`
	Depth      float64    `json:"depth" msgpack:"depth"`
	Position   mgl64.Vec3 `json:"position" msgpack:"position"`
	PostRadius float64    `json:"post_radius" msgpack:"post_radius"`

	// FrameBand is the half-depth around the goal line where posts and
	// crossbar are tested.
	FrameBand float64 `json:"frame_band" msgpack:"frame_band"`
	// ScoreFront and ScoreBack bound the shallow depth band that counts as
	// crossing the line.
	ScoreFront float64 `json:"score_front" msgpack:"score_front"`
	ScoreBack  float64 `json:"score_back" msgpack:"score_back"`
}

// LineZ returns the depth of the goal plane.
func (g Goal) LineZ() float64 { return g.Position[AxisZ] }

// LeftPostX returns the lateral position of the left post axis.
func (g Goal) LeftPostX() float64 { return g.Position[AxisX] - g.Width/2 }

// RightPostX returns the lateral position of the right post axis.
func (g Goal) RightPostX() float64 { return g.Position[AxisX] + g.Width/2 }

// CrossbarY returns the height of the crossbar axis.
func (g Goal) CrossbarY() float64 { return g.Position[AxisY] + g.Height }

// BackZ returns the depth of the back net.
func (g Goal) BackZ() float64 { return g.Position[AxisZ] - g.Depth }

// Barrier is the defensive wall, an axis-aligned box. Position is the box centre.
type Barrier struct {
	Width     float64    `json:"width" msgpack:"width"`
	Height    float64    `json:"height" msgpack:"height"`
	Thickness float64    `json:"thickness" msgpack:"thickness"`
	Position  mgl64.Vec3 `json:"position" msgpack:"position"`
}

// Min returns the lower corner of the box.
func (b Barrier) Min() mgl64.Vec3 {
	return b.Position.Sub(b.halfExtents())
}

// Max returns the upper corner of the box.
func (b Barrier) Max() mgl64.Vec3 {
	return b.Position.Add(b.halfExtents())
}

func (b Barrier) halfExtents() mgl64.Vec3 {
	return mgl64.Vec3{b.Width / 2, b.Height / 2, b.Thickness / 2}
}

// KeeperBody is the goalkeeper's collision volume.
type KeeperBody struct {
	Position        mgl64.Vec3 `json:"position" msgpack:"position"`
	CollisionRadius float64    `json:"collision_radius" msgpack:"collision_radius"`
	Scale           float64    `json:"scale" msgpack:"scale"`
}

// Radius returns the scaled collision radius.
func (k KeeperBody) Radius() float64 { return k.CollisionRadius * k.Scale }

// KickParams is immutable for the duration of one flight.
type KickParams struct {
	Spin      float64    `json:"spin" msgpack:"spin"` // -1..1
	Direction mgl64.Vec3 `json:"direction" msgpack:"direction"`
	Speed     float64    `json:"speed" msgpack:"speed"`
	Lift      float64    `json:"lift" msgpack:"lift"`
}

// Velocity returns the launch velocity: horizontal direction scaled by speed
// with the vertical launch component replacing the direction's own.
func (k KickParams) Velocity() mgl64.Vec3 {
	v := k.Direction.Mul(k.Speed)
	v[AxisY] = k.Lift
	return v
}

// Wind holds the two weighted wind components fed to the integrator.
type Wind struct {
	Lateral float64 `json:"lateral" msgpack:"lateral"` // east-west, shares the curve channel
	Frontal float64 `json:"frontal" msgpack:"frontal"` // north-south, added to depth velocity
}

// WindInfo is the read-only display bundle for the wind indicator.
type WindInfo struct {
	Bearing   float64 `json:"bearing" msgpack:"bearing"` // degrees, 0 faces the goal
	Magnitude float64 `json:"magnitude" msgpack:"magnitude"`
	Percent   int     `json:"percent" msgpack:"percent"`
	Cardinal  string  `json:"cardinal" msgpack:"cardinal"`
	Lateral   float64 `json:"lateral" msgpack:"lateral"`
	Frontal   float64 `json:"frontal" msgpack:"frontal"`
}

// KeeperState is the goalkeeper AI record, mutated once per frame.
type KeeperState struct {
	Target          mgl64.Vec2 `json:"target" msgpack:"target"`
	Velocity        mgl64.Vec2 `json:"velocity" msgpack:"velocity"`
	ReactionCounter int        `json:"reaction_counter" msgpack:"reaction_counter"`
	Diving          bool       `json:"diving" msgpack:"diving"`
}

// KeeperPose is the cosmetic lean layer. It never feeds collision geometry.
type KeeperPose struct {
	Roll  float64 `json:"roll" msgpack:"roll"`   // sideways tilt, radians
	Pitch float64 `json:"pitch" msgpack:"pitch"` // vertical reach tilt, radians
	Lift  float64 `json:"lift" msgpack:"lift"`   // extra render height
}

// GameplayEvent tracks state changes worth UI/audio feedback.
type GameplayEvent struct {
	Type     string     `json:"type" msgpack:"type"` // reset|kick|post|barrier|save|goal|miss|rest
	Frame    uint64     `json:"frame" msgpack:"frame"`
	Position mgl64.Vec3 `json:"position" msgpack:"position"`
}

// FrameState is a copy of the world handed to presentation collaborators.
type FrameState struct {
	Round      uint64          `json:"round" msgpack:"round"`
	Frame      uint64          `json:"frame" msgpack:"frame"`
	Ball       BallState       `json:"ball" msgpack:"ball"`
	Kick       KickParams      `json:"kick" msgpack:"kick"`
	Kicked     bool            `json:"kicked" msgpack:"kicked"`
	Scored     bool            `json:"scored" msgpack:"scored"`
	InNet      bool            `json:"in_net" msgpack:"in_net"`
	Over       bool            `json:"over" msgpack:"over"`
	Keeper     KeeperBody      `json:"keeper" msgpack:"keeper"`
	KeeperAI   KeeperState     `json:"keeper_ai" msgpack:"keeper_ai"`
	KeeperPose KeeperPose      `json:"keeper_pose" msgpack:"keeper_pose"`
	Barrier    Barrier         `json:"barrier" msgpack:"barrier"`
	Wind       WindInfo        `json:"wind" msgpack:"wind"`
	Prediction *mgl64.Vec3     `json:"prediction,omitempty" msgpack:"prediction,omitempty"`
	Events     []GameplayEvent `json:"events" msgpack:"events"`
}
