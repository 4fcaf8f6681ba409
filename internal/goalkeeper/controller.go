package goalkeeper

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

// Controller owns the keeper body, its AI record and the lean pose. It is
// driven once per frame: Update picks the target, Move steps the body.
type Controller struct {
	cfg  config.Goalkeeper
	home mgl64.Vec2 // idle target, centre of the goal at base height

	body  types.KeeperBody
	state types.KeeperState
	pose  types.KeeperPose
}

// NewController returns a controller whose idle target is the goal centre.
func NewController(cfg config.Goalkeeper, centerX float64) *Controller {
	c := &Controller{
		cfg:  cfg,
		home: mgl64.Vec2{centerX, cfg.BaseY},
	}
	c.state.Target = c.home
	return c
}

// Reset places the body and clears motion, targeting and pose.
func (c *Controller) Reset(body types.KeeperBody) {
	c.body = body
	c.state = types.KeeperState{Target: c.home}
	c.pose = types.KeeperPose{}
}

// Body returns the collision volume at its current position.
func (c *Controller) Body() types.KeeperBody { return c.body }

func (c *Controller) State() types.KeeperState { return c.state }

func (c *Controller) Pose() types.KeeperPose { return c.pose }

// Update runs reaction and targeting. While the ball is dead or a goal has
// been scored the keeper aims at the centre. Otherwise, once the reaction
// delay has elapsed, every valid prediction becomes the new target after
// being clamped into the reach box. A missing prediction keeps the last one.
func (c *Controller) Update(live, scored bool, prediction *mgl64.Vec3) {
	if !live || scored {
		c.state.Target = c.home
		c.state.ReactionCounter = 0
		return
	}

	c.state.ReactionCounter++
	if c.state.ReactionCounter < c.cfg.ReactionFrames || prediction == nil {
		return
	}
	c.state.Target = c.clampReach(mgl64.Vec2{prediction[types.AxisX], prediction[types.AxisY]})
}

func (c *Controller) clampReach(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		mgl64.Clamp(p[0], c.home[0]-c.cfg.ReachX, c.home[0]+c.cfg.ReachX),
		mgl64.Clamp(p[1], c.home[1], c.home[1]+c.cfg.ReachY),
	}
}

// Move steps the body toward the target. ball is the real ball centre, used
// only to switch dive mode.
func (c *Controller) Move(ball mgl64.Vec3) {
	dist := ball.Sub(c.body.Position).Len()
	switch {
	case !c.state.Diving && dist < c.cfg.DiveRadius:
		c.state.Diving = true
	case c.state.Diving && dist > c.cfg.DiveRadius*c.cfg.DiveRelease:
		c.state.Diving = false
	}

	maxSpeed := c.cfg.MaxSpeed
	if c.state.Diving {
		maxSpeed = c.cfg.DiveSpeed
	}

	pos := mgl64.Vec2{c.body.Position[types.AxisX], c.body.Position[types.AxisY]}
	toTarget := c.state.Target.Sub(pos)
	if d := toTarget.Len(); d < c.cfg.ArrivalRadius || d == 0 {
		c.state.Velocity = c.state.Velocity.Mul(c.cfg.Deceleration)
	} else {
		c.state.Velocity = c.state.Velocity.Add(toTarget.Mul(c.cfg.Acceleration / d))
		limit := maxSpeed
		if c.cfg.Brake {
			// Never faster than the keeper can brake over the remaining distance.
			limit = math.Min(limit, math.Sqrt(2*c.cfg.Acceleration*d))
		}
		if speed := c.state.Velocity.Len(); speed > limit {
			c.state.Velocity = c.state.Velocity.Mul(limit / speed)
		}
	}

	c.body.Position[types.AxisX] += c.state.Velocity[0]
	c.body.Position[types.AxisY] += c.state.Velocity[1]
	c.lean()
}

// lean eases the cosmetic pose toward a tilt proportional to the remaining
// distance to the target while diving, and back to upright otherwise.
func (c *Controller) lean() {
	var roll, pitch float64
	if c.state.Diving {
		dx := c.state.Target[0] - c.body.Position[types.AxisX]
		dy := c.state.Target[1] - c.body.Position[types.AxisY]
		roll = mgl64.Clamp(-dx*c.cfg.LeanGain, -c.cfg.MaxLean, c.cfg.MaxLean)
		pitch = mgl64.Clamp(dy*c.cfg.LeanGain, -c.cfg.MaxLean, c.cfg.MaxLean)
	}
	c.pose.Roll += (roll - c.pose.Roll) * c.cfg.LeanSmoothing
	c.pose.Pitch += (pitch - c.pose.Pitch) * c.cfg.LeanSmoothing
	c.pose.Lift = (math.Abs(c.pose.Roll) + math.Abs(c.pose.Pitch)) * c.cfg.LeanLift
}
