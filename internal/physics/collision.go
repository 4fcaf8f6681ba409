package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

// GroundResult reports what the ground resolver did this frame.
type GroundResult struct {
	Contact bool
	Rested  bool
}

// Ground bounces the ball off the ground plane. While touching, horizontal
// velocity loses a fixed fraction per frame; once both the vertical speed and
// the overall speed fall under the rest thresholds the ball stops dead.
func Ground(b *types.BallState, g types.Ground, s config.Surfaces) GroundResult {
	if b.Bottom() > g.Height {
		return GroundResult{}
	}

	c := planeContact(types.AxisY, g.Height, 1, b.Radius)
	resolve(b, c, surface{
		restitution: s.GroundRestitution,
		bleed:       mgl64.Vec3{s.GroundFriction, 1, s.GroundFriction},
	})

	if math.Abs(b.Velocity[types.AxisY]) < s.RestVerticalSpeed && b.Speed() < s.RestSpeed {
		b.Velocity = mgl64.Vec3{}
		return GroundResult{Contact: true, Rested: true}
	}
	return GroundResult{Contact: true}
}

// FrameHit identifies which part of the goal frame was struck.
type FrameHit int

const (
	NoFrameHit FrameHit = iota
	LeftPost
	RightPost
	Crossbar
)

func (h FrameHit) String() string {
	switch h {
	case LeftPost:
		return "left_post"
	case RightPost:
		return "right_post"
	case Crossbar:
		return "crossbar"
	default:
		return "none"
	}
}

// Posts resolves the ball against the goal frame. Only the first contact in
// the order left post, right post, crossbar is handled even when several
// penetrate in the same frame.
func Posts(b *types.BallState, goal types.Goal, s config.Surfaces) FrameHit {
	lineZ := goal.LineZ()
	z := b.Position[types.AxisZ]
	if z <= lineZ-goal.FrameBand || z >= lineZ+goal.FrameBand {
		return NoFrameHit
	}

	reach := b.Radius + goal.PostRadius
	postBleed := mgl64.Vec3{1, s.PostRestitution, 1}
	barBleed := mgl64.Vec3{s.PostRestitution, 1, 1}

	if c, ok := pointContact(b.Position, mgl64.Vec3{goal.LeftPostX(), 0, lineZ}, planeXZ, reach); ok {
		resolve(b, c, surface{restitution: s.PostRestitution, bleed: postBleed})
		return LeftPost
	}
	if c, ok := pointContact(b.Position, mgl64.Vec3{goal.RightPostX(), 0, lineZ}, planeXZ, reach); ok {
		resolve(b, c, surface{restitution: s.PostRestitution, bleed: postBleed})
		return RightPost
	}

	x := b.Position[types.AxisX]
	if x <= goal.LeftPostX() || x >= goal.RightPostX() {
		return NoFrameHit
	}
	if c, ok := pointContact(b.Position, mgl64.Vec3{0, goal.CrossbarY(), lineZ}, planeYZ, reach); ok {
		resolve(b, c, surface{restitution: s.PostRestitution, bleed: barBleed})
		return Crossbar
	}
	return NoFrameHit
}

// Keeper resolves a save against the goalkeeper's sphere. It is only
// evaluated while the ball is in flight and no goal has been scored. The whole
// velocity is reflected and scaled by the save damping.
func Keeper(b *types.BallState, body types.KeeperBody, s config.Surfaces, inFlight, scored bool) bool {
	if !inFlight || scored {
		return false
	}
	c, ok := pointContact(b.Position, body.Position, planeXYZ, b.Radius+body.Radius())
	if !ok {
		return false
	}
	resolve(b, c, surface{restitution: s.SaveDamping, bleed: uniformBleed(1)})
	return true
}

// Net keeps a scored ball inside the net cavity. Velocity on a clamped axis
// is replaced by a small bleed pointing back into the cavity.
func Net(b *types.BallState, goal types.Goal, s config.Surfaces, inNet bool) {
	if !inNet {
		return
	}
	r := b.Radius
	pos := &b.Position
	vel := &b.Velocity

	if back := goal.BackZ() + r; pos[types.AxisZ] < back {
		pos[types.AxisZ] = back
		vel[types.AxisZ] = math.Abs(vel[types.AxisZ]) * s.NetBleed
	}
	if left := goal.LeftPostX() + r; pos[types.AxisX] < left {
		pos[types.AxisX] = left
		vel[types.AxisX] = math.Abs(vel[types.AxisX]) * s.NetBleed
	}
	if right := goal.RightPostX() - r; pos[types.AxisX] > right {
		pos[types.AxisX] = right
		vel[types.AxisX] = -math.Abs(vel[types.AxisX]) * s.NetBleed
	}
}

// GoalCrossed reports whether the ball is inside the goal mouth: within the
// posts, above the ground, under the crossbar and inside the shallow band
// around the goal line. It never fires twice in a round.
func GoalCrossed(pos mgl64.Vec3, goal types.Goal, ground types.Ground, alreadyScored bool) bool {
	if alreadyScored {
		return false
	}
	lineZ := goal.LineZ()
	insideX := math.Abs(pos[types.AxisX]-goal.Position[types.AxisX]) < goal.Width/2
	insideY := pos[types.AxisY] > ground.Height && pos[types.AxisY] < goal.CrossbarY()
	insideZ := pos[types.AxisZ] < lineZ+goal.ScoreFront && pos[types.AxisZ] > lineZ-goal.ScoreBack
	return insideX && insideY && insideZ
}
