package simulation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

func practiceConfig() config.Config {
	cfg := config.Default()
	cfg.Wind.Enabled = false
	cfg.Barrier.Enabled = false
	cfg.Goalkeeper.Enabled = false
	return cfg
}

func newWorld(t *testing.T, cfg config.Config, seed int64) *World {
	t.Helper()
	w, err := NewWorld(cfg, seed, nil)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

// straightKick lifts the ball so it carries to the goal: a ball rolling from
// the spot loses a share of its speed to ground friction every frame and
// stops well short of the goal line.
func straightKick() types.KickParams {
	return types.KickParams{Direction: mgl64.Vec3{0, 0, -1}, Speed: 0.4, Lift: 0.38}
}

func countEvents(events []types.GameplayEvent, kind string) int {
	n := 0
	for _, e := range events {
		if e.Type == kind {
			n++
		}
	}
	return n
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Wind.Min = 0.5
	cfg.Wind.Max = 0.1
	if _, err := NewWorld(cfg, 1, nil); err == nil {
		t.Fatal("expected inverted wind bounds to be rejected")
	}
}

func TestResetPlacesBarrierAndKeeperOnOppositeSides(t *testing.T) {
	cfg := config.Default()
	for seed := int64(1); seed <= 25; seed++ {
		snap := newWorld(t, cfg, seed).Snapshot()

		bx := snap.Barrier.Position[types.AxisX]
		kx := snap.Keeper.Position[types.AxisX]
		if math.Abs(bx) < cfg.Barrier.OffsetMin || math.Abs(bx) > cfg.Barrier.OffsetMax {
			t.Fatalf("seed %d: barrier offset %v outside [%v, %v]", seed, bx, cfg.Barrier.OffsetMin, cfg.Barrier.OffsetMax)
		}
		if math.Signbit(bx) == math.Signbit(kx) {
			t.Fatalf("seed %d: barrier x=%v and keeper x=%v on the same side", seed, bx, kx)
		}
		if math.Abs(kx) != cfg.Goalkeeper.SideOffset {
			t.Fatalf("seed %d: keeper offset %v, want %v", seed, kx, cfg.Goalkeeper.SideOffset)
		}
		if snap.Ball.Position != cfg.KickSpot() || snap.Ball.Velocity != (mgl64.Vec3{}) {
			t.Fatalf("seed %d: ball not on the spot: %+v", seed, snap.Ball)
		}
		if countEvents(snap.Events, "reset") != 1 {
			t.Fatalf("seed %d: expected a reset event, got %+v", seed, snap.Events)
		}
	}
}

func TestSameSeedReplaysRound(t *testing.T) {
	a := newWorld(t, config.Default(), 42)
	b := newWorld(t, config.Default(), 42)

	assert.Equal(t, a.Snapshot().Barrier, b.Snapshot().Barrier)
	assert.Equal(t, a.Wind(), b.Wind())

	require.NoError(t, a.Kick(straightKick()))
	require.NoError(t, b.Kick(straightKick()))
	for i := 0; i < 150; i++ {
		a.Tick()
		b.Tick()
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestResetStartsNewRound(t *testing.T) {
	w := newWorld(t, config.Default(), 3)
	require.NoError(t, w.Kick(straightKick()))
	w.Tick()

	w.Reset()
	snap := w.Snapshot()
	assert.Equal(t, uint64(2), snap.Round)
	assert.False(t, snap.Kicked)
	assert.Zero(t, snap.Frame)
	assert.Equal(t, mgl64.Vec2{0, config.Default().Goalkeeper.BaseY}, snap.KeeperAI.Target)
}

func TestStraightKickScoresExactlyOnce(t *testing.T) {
	cfg := practiceConfig()
	w := newWorld(t, cfg, 1)
	require.NoError(t, w.Kick(straightKick()))
	require.Equal(t, mgl64.Vec3{0, 0.38, -0.4}, w.Snapshot().Ball.Velocity)

	// First frame n where kickZ - 0.4n enters the scoring band.
	goal := w.Goal()
	wantFrame := uint64(math.Ceil((cfg.Field.KickSpotZ - (goal.LineZ() + goal.ScoreFront)) / 0.4))

	goals := 0
	var goalFrame uint64
	for i := 0; i < 300; i++ {
		w.Tick()
		snap := w.Snapshot()
		if n := countEvents(snap.Events, "goal"); n > 0 {
			goals += n
			goalFrame = snap.Frame
			pos := snap.Ball.Position
			assert.Less(t, math.Abs(pos[types.AxisX]), goal.Width/2)
			assert.Greater(t, pos[types.AxisY], cfg.Field.GroundHeight)
			assert.Less(t, pos[types.AxisY], goal.CrossbarY())
		}
		assert.Zero(t, countEvents(snap.Events, "miss"), "frame %d", snap.Frame)
	}

	snap := w.Snapshot()
	assert.Equal(t, 1, goals)
	assert.Equal(t, wantFrame, goalFrame)
	assert.True(t, snap.Scored)
	assert.True(t, snap.InNet)

	// The scored ball settles inside the net cavity.
	pos := snap.Ball.Position
	assert.GreaterOrEqual(t, pos[types.AxisZ], goal.BackZ()+snap.Ball.Radius-1e-9)
	assert.LessOrEqual(t, math.Abs(pos[types.AxisX]), goal.Width/2-snap.Ball.Radius+1e-9)
	assert.GreaterOrEqual(t, pos[types.AxisY], cfg.Field.GroundHeight+snap.Ball.Radius-1e-9)
}

func TestLevelFlightScoresOnComputedFrame(t *testing.T) {
	cfg := practiceConfig()
	cfg.Physics.Gravity = 0
	w := newWorld(t, cfg, 1)
	w.state.Ball.Position[types.AxisY] = 1.5
	require.NoError(t, w.Kick(types.KickParams{Direction: mgl64.Vec3{0, 0, -1}, Speed: 0.4}))
	require.Equal(t, mgl64.Vec3{0, 0, -0.4}, w.Snapshot().Ball.Velocity)

	goal := w.Goal()
	wantFrame := uint64(math.Ceil((cfg.Field.KickSpotZ - (goal.LineZ() + goal.ScoreFront)) / 0.4))

	goals := 0
	for i := 0; i < 200; i++ {
		w.Tick()
		snap := w.Snapshot()
		if n := countEvents(snap.Events, "goal"); n > 0 {
			goals += n
			if snap.Frame != wantFrame {
				t.Fatalf("expected goal on frame %d, got %d", wantFrame, snap.Frame)
			}
			pos := snap.Ball.Position
			if math.Abs(pos[types.AxisX]) >= goal.Width/2 || pos[types.AxisY] >= goal.CrossbarY() {
				t.Fatalf("goal outside the frame at %v", pos)
			}
		}
		if !snap.Scored && snap.Ball.Velocity != (mgl64.Vec3{0, 0, -0.4}) {
			t.Fatalf("frame %d: velocity changed in level flight: %v", snap.Frame, snap.Ball.Velocity)
		}
	}
	if goals != 1 {
		t.Fatalf("expected exactly one goal, got %d", goals)
	}
}

func TestKeeperSavesShotAtCentre(t *testing.T) {
	cfg := practiceConfig()
	cfg.Goalkeeper.Enabled = true
	w := newWorld(t, cfg, 5)
	require.NoError(t, w.Kick(straightKick()))

	saves, goals := 0, 0
	for i := 0; i < 300; i++ {
		w.Tick()
		snap := w.Snapshot()
		saves += countEvents(snap.Events, "save")
		goals += countEvents(snap.Events, "goal")
	}
	assert.Positive(t, saves)
	assert.Zero(t, goals)
	assert.True(t, w.Over(), "saved ball ends as a miss")
}

func TestKeeperTracksPrediction(t *testing.T) {
	cfg := practiceConfig()
	cfg.Goalkeeper.Enabled = true
	w := newWorld(t, cfg, 9)
	require.NoError(t, w.Kick(types.KickParams{Direction: mgl64.Vec3{0.1, 0, -1}, Speed: 0.4, Lift: 0.38}))

	w.Tick()
	snap := w.Snapshot()
	require.NotNil(t, snap.Prediction)
	assert.Equal(t, w.Goal().LineZ(), snap.Prediction[types.AxisZ])
	assert.InDelta(t, snap.Prediction[types.AxisX], snap.KeeperAI.Target[0], 1e-12)
}

func TestBallStoppedShortIsAMiss(t *testing.T) {
	w := newWorld(t, practiceConfig(), 1)
	require.NoError(t, w.Kick(types.KickParams{Direction: mgl64.Vec3{0, 0, -1}, Speed: 0.05}))

	for i := 0; i < 2000 && !w.Over(); i++ {
		w.Tick()
	}
	snap := w.Snapshot()
	if !snap.Over || snap.Scored {
		t.Fatalf("expected a miss, got over=%v scored=%v ball=%+v", snap.Over, snap.Scored, snap.Ball)
	}
	if countEvents(snap.Events, "miss") != 1 {
		t.Fatalf("expected miss event on the final frame, got %+v", snap.Events)
	}

	frame := snap.Frame
	pos := snap.Ball.Position
	w.Tick()
	if after := w.Snapshot(); after.Ball.Position != pos || after.Frame != frame+1 {
		t.Fatalf("ball moved after the round ended: %+v", after.Ball)
	}
}

func TestWideShotIsAMiss(t *testing.T) {
	w := newWorld(t, practiceConfig(), 1)
	require.NoError(t, w.Kick(types.KickParams{Direction: mgl64.Vec3{1, 0, -0.2}, Speed: 0.6, Lift: 0.2}))

	for i := 0; i < 500 && !w.Over(); i++ {
		w.Tick()
	}
	snap := w.Snapshot()
	require.True(t, snap.Over)
	assert.False(t, snap.Scored)
	assert.Greater(t, math.Abs(snap.Ball.Position[types.AxisX]), config.Default().Field.MissHalfWidth)
}

func TestKickValidation(t *testing.T) {
	w := newWorld(t, practiceConfig(), 1)

	err := w.Kick(types.KickParams{Direction: mgl64.Vec3{0, 1, 0}, Speed: 0.4})
	require.Error(t, err, "vertical-only direction")
	require.Error(t, w.Kick(types.KickParams{Direction: mgl64.Vec3{0, 0, -1}, Speed: -1}))

	inf, nan := math.Inf(1), math.NaN()
	for name, k := range map[string]types.KickParams{
		"infinite speed": {Direction: mgl64.Vec3{0, 0, -1}, Speed: inf},
		"NaN spin":       {Direction: mgl64.Vec3{0, 0, -1}, Speed: 0.4, Spin: nan},
		"infinite spin":  {Direction: mgl64.Vec3{0, 0, -1}, Speed: 0.4, Spin: -inf},
		"NaN lift":       {Direction: mgl64.Vec3{0, 0, -1}, Speed: 0.4, Lift: nan},
		"NaN direction":  {Direction: mgl64.Vec3{nan, 0, -1}, Speed: 0.4},
	} {
		assert.Error(t, w.Kick(k), name)
	}
	require.False(t, w.Snapshot().Kicked, "rejected kicks leave the ball on the spot")

	require.NoError(t, w.Kick(types.KickParams{Direction: mgl64.Vec3{0, 0, -2}, Speed: 0.4, Spin: 5}))
	snap := w.Snapshot()
	assert.Equal(t, 1.0, snap.Kick.Spin)
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, snap.Kick.Direction)
	assert.Equal(t, 1, countEvents(snap.Events, "kick"))

	assert.Error(t, w.Kick(straightKick()), "second kick in the same round")
}

func TestKickFromAim(t *testing.T) {
	cfg := config.Default().Kick

	k, err := KickFromAim(cfg, Aim{Power: 40, Height: 0.38})
	require.NoError(t, err)
	assert.InDelta(t, 0.4, k.Speed, 1e-12)
	assert.InDelta(t, 0.38, k.Lift, 1e-12)
	assert.InDelta(t, 0, k.Direction[types.AxisX], 1e-12)
	assert.Equal(t, -1.0, k.Direction[types.AxisZ])

	k, err = KickFromAim(cfg, Aim{Yaw: math.Pi / 2, Power: 100, Height: 3, Curve: -4})
	require.NoError(t, err)
	assert.InDelta(t, -1, k.Direction[types.AxisX], 1e-12, "positive yaw turns toward -X")
	assert.InDelta(t, cfg.MaxHeight*cfg.MaxPowerMultiplier, k.Lift, 1e-12)
	assert.Equal(t, -1.0, k.Spin)

	_, err = KickFromAim(cfg, Aim{Power: cfg.MinPower / 2})
	assert.Error(t, err)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	cfg := practiceConfig()
	cfg.Goalkeeper.Enabled = true
	w := newWorld(t, cfg, 1)
	require.NoError(t, w.Kick(straightKick()))

	snap := w.Snapshot()
	require.NotEmpty(t, snap.Events)
	snap.Events[0].Type = "tampered"
	if w.Snapshot().Events[0].Type == "tampered" {
		t.Fatal("events mutated through snapshot")
	}

	w.Tick()
	snap = w.Snapshot()
	require.NotNil(t, snap.Prediction)
	snap.Prediction[types.AxisX] = 999
	if w.Snapshot().Prediction[types.AxisX] == 999 {
		t.Fatal("prediction mutated through snapshot")
	}
}
