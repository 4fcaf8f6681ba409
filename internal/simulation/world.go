package simulation

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/goalkeeper"
	"github.com/brenero/3d-free-kick-game/internal/physics"
	"github.com/brenero/3d-free-kick-game/internal/shared/logger"
	"github.com/brenero/3d-free-kick-game/internal/shared/types"
	"github.com/brenero/3d-free-kick-game/internal/wind"
)

// restSlack is how close to the ground a stopped ball must be to end the round.
const restSlack = 0.01

// World owns every piece of mutable state of one free-kick session: ball,
// barrier, keeper, wind and the round flags. It is driven by a single caller
// through Reset, Kick and Tick, one call at a time.
type World struct {
	cfg    config.Config
	log    *logger.Logger
	rng    *rand.Rand
	wind   *wind.Model
	keeper *goalkeeper.Controller

	goal   types.Goal
	ground types.Ground
	state  types.FrameState
}

// NewWorld validates cfg and returns a world ready for the first kick.
// The seed drives barrier placement and wind, so equal seeds replay equal
// rounds.
func NewWorld(cfg config.Config, seed int64, log *logger.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if log == nil {
		log = logger.Discard()
	}
	rng := rand.New(rand.NewSource(seed))
	w := &World{
		cfg:    cfg,
		log:    log,
		rng:    rng,
		wind:   wind.New(cfg.Wind, rng),
		keeper: goalkeeper.NewController(cfg.Goalkeeper, cfg.Goal.CenterX),
		goal:   cfg.GoalGeometry(),
		ground: cfg.GroundPlane(),
	}
	w.Reset()
	return w, nil
}

// Reset starts a new round: ball back on the spot, barrier on a random side,
// keeper shifted to the other side and a fresh wind.
func (w *World) Reset() {
	round := w.state.Round + 1
	w.state = types.FrameState{
		Round: round,
		Ball: types.BallState{
			Position: w.cfg.KickSpot(),
			Radius:   w.cfg.Ball.Radius,
		},
	}

	offset := w.cfg.Barrier.OffsetMin + w.rng.Float64()*(w.cfg.Barrier.OffsetMax-w.cfg.Barrier.OffsetMin)
	side := 1.0
	if w.rng.Float64() < 0.5 {
		side = -1
	}
	w.state.Barrier = w.cfg.BarrierAt(w.cfg.Goal.CenterX + side*offset)

	body := w.cfg.KeeperStart()
	body.Position[types.AxisX] -= side * w.cfg.Goalkeeper.SideOffset
	w.keeper.Reset(body)

	w.wind.Regenerate()
	info := w.wind.Info()

	w.emit("reset")
	w.log.Debug("round reset",
		"round", round,
		"barrier_x", w.state.Barrier.Position[types.AxisX],
		"keeper_x", body.Position[types.AxisX],
		"wind", info.Cardinal,
		"wind_pct", info.Percent,
	)
}

// Kick launches the ball. Spin is clamped to [-1, 1] and the direction is
// flattened and normalised; a direction with no horizontal part is rejected.
func (w *World) Kick(k types.KickParams) error {
	if w.state.Kicked {
		return errors.Errorf("ball already kicked in round %d", w.state.Round)
	}
	k, err := clampKick(k)
	if err != nil {
		return err
	}

	w.state.Kick = k
	w.state.Kicked = true
	w.state.Ball.Velocity = k.Velocity()
	w.emit("kick")
	w.log.Debug("kick",
		"round", w.state.Round,
		"speed", k.Speed,
		"lift", k.Lift,
		"spin", k.Spin,
	)
	return nil
}

// Tick advances one frame. A kicked ball runs the full flight pipeline until
// the round is over; a scored ball keeps settling in the net until Reset.
func (w *World) Tick() {
	w.state.Frame++
	w.state.Events = w.state.Events[:0]

	switch {
	case w.state.InNet:
		w.settleInNet()
	case w.state.Kicked && !w.state.Over:
		w.fly()
	}
}

// fly runs integration, collisions, the goal check, the miss check and
// finally the keeper, in that order.
func (w *World) fly() {
	b := &w.state.Ball
	s := w.cfg.Surfaces
	spin := w.state.Kick.Spin

	wc := w.wind.Components()
	physics.Integrate(b, spin, w.cfg.Physics, &wc)

	rested := physics.Ground(b, w.ground, s).Rested
	if rested {
		w.emit("rest")
	}
	if w.cfg.Barrier.Enabled {
		if face := physics.Barrier(b, w.state.Barrier, s); face != physics.NoFace {
			w.emit("barrier")
			w.log.Debug("barrier hit", "face", face, "frame", w.state.Frame)
		}
	}
	if hit := physics.Posts(b, w.goal, s); hit != physics.NoFrameHit {
		w.emit("post")
		w.log.Debug("frame hit", "part", hit, "frame", w.state.Frame)
	}
	if w.cfg.Goalkeeper.Enabled {
		if physics.Keeper(b, w.keeper.Body(), s, w.state.Kicked, w.state.Scored) {
			w.emit("save")
			w.log.Debug("save", "frame", w.state.Frame, "keeper", w.keeper.Body().Position)
		}
	}

	if physics.GoalCrossed(b.Position, w.goal, w.ground, w.state.Scored) {
		w.state.Scored = true
		w.state.InNet = true
		w.state.Over = true
		b.Velocity = b.Velocity.Mul(s.InNetDamping)
		b.Velocity[types.AxisY] = math.Max(b.Velocity[types.AxisY], -s.InNetMaxDrop)
		w.emit("goal")
		w.log.Info("goal", "round", w.state.Round, "frame", w.state.Frame, "x", b.Position[types.AxisX], "y", b.Position[types.AxisY])
	} else if w.missed() {
		w.state.Over = true
		w.emit("miss")
		w.log.Info("miss", "round", w.state.Round, "frame", w.state.Frame)
	}

	if !w.cfg.Goalkeeper.Enabled {
		return
	}
	w.state.Prediction = nil
	if !w.state.Over {
		if p, ok := goalkeeper.Predict(*b, spin, w.goal.LineZ(), w.cfg.Physics, w.cfg.Goalkeeper.PredictionHorizon); ok {
			w.state.Prediction = &p
		}
	}
	w.keeper.Update(!w.state.Over, w.state.Scored, w.state.Prediction)
	w.keeper.Move(b.Position)
}

// missed reports whether the live ball has left play or stopped short.
func (w *World) missed() bool {
	f := w.cfg.Field
	b := w.state.Ball
	pos := b.Position
	ground := w.ground.Height
	stopped := b.Speed() < f.MissStopSpeed && pos[types.AxisY] <= ground+b.Radius+restSlack

	return pos[types.AxisY] < ground-f.MissBelowGround ||
		pos[types.AxisZ] < w.goal.LineZ()-f.MissBeyondGoal ||
		pos[types.AxisZ] > f.MissMaxZ ||
		math.Abs(pos[types.AxisX]) > f.MissHalfWidth ||
		stopped
}

// settleInNet keeps a scored ball moving under gravity alone, bouncing on the
// ground and held inside the net.
func (w *World) settleInNet() {
	b := &w.state.Ball
	b.Velocity[types.AxisY] += w.cfg.Physics.Gravity
	b.Position = b.Position.Add(b.Velocity)
	physics.Ground(b, w.ground, w.cfg.Surfaces)
	physics.Net(b, w.goal, w.cfg.Surfaces, w.state.InNet)
}

func (w *World) emit(kind string) {
	w.state.Events = append(w.state.Events, types.GameplayEvent{
		Type:     kind,
		Frame:    w.state.Frame,
		Position: w.state.Ball.Position,
	})
}

// Snapshot returns a deep copy of the state for presentation.
func (w *World) Snapshot() types.FrameState {
	out := w.state
	out.Keeper = w.keeper.Body()
	out.KeeperAI = w.keeper.State()
	out.KeeperPose = w.keeper.Pose()
	out.Wind = w.wind.Info()

	out.Events = make([]types.GameplayEvent, len(w.state.Events))
	copy(out.Events, w.state.Events)
	if w.state.Prediction != nil {
		p := *w.state.Prediction
		out.Prediction = &p
	}
	return out
}

// Wind returns the weighted wind components of the current round.
func (w *World) Wind() types.Wind {
	return w.wind.Components()
}

// Goal returns the goal frame geometry.
func (w *World) Goal() types.Goal {
	return w.goal
}

// Over reports whether the current round has ended.
func (w *World) Over() bool {
	return w.state.Over
}

// InFlight reports whether the ball has been kicked and the round is still live.
func (w *World) InFlight() bool {
	return w.state.Kicked && !w.state.Over
}
