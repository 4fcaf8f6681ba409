package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

// Face is one side of the barrier box. The enumeration order is the
// tie-break order when two faces are equally close.
type Face int

const (
	FaceFront  Face = iota // +Z, toward the kick spot
	FaceBack               // -Z, toward the goal
	FaceLeft               // -X
	FaceRight              // +X
	FaceTop                // +Y
	FaceBottom             // -Y
)

// NoFace means the ball did not touch the barrier.
const NoFace Face = -1

var faceNames = [...]string{"front", "back", "left", "right", "top", "bottom"}

func (f Face) String() string {
	if f < FaceFront || f > FaceBottom {
		return "none"
	}
	return faceNames[f]
}

// axis returns the axis the face is perpendicular to and its outward sign.
func (f Face) axis() (int, float64) {
	switch f {
	case FaceFront:
		return types.AxisZ, 1
	case FaceBack:
		return types.AxisZ, -1
	case FaceLeft:
		return types.AxisX, -1
	case FaceRight:
		return types.AxisX, 1
	case FaceTop:
		return types.AxisY, 1
	default:
		return types.AxisY, -1
	}
}

// FaceCandidate pairs a face with the ball centre's distance to its plane.
type FaceCandidate struct {
	Face  Face
	Depth float64
}

// PickFace returns the candidate with the smallest depth. On ties the
// earliest candidate wins, so callers list faces in enumeration order.
func PickFace(candidates []FaceCandidate) FaceCandidate {
	best := FaceCandidate{Face: NoFace, Depth: math.Inf(1)}
	for _, c := range candidates {
		if c.Depth < best.Depth {
			best = c
		}
	}
	return best
}

// faceCandidates lists every face of the box with the ball's distance to it.
func faceCandidates(pos, lo, hi mgl64.Vec3) []FaceCandidate {
	return []FaceCandidate{
		{FaceFront, math.Abs(pos[types.AxisZ] - hi[types.AxisZ])},
		{FaceBack, math.Abs(pos[types.AxisZ] - lo[types.AxisZ])},
		{FaceLeft, math.Abs(pos[types.AxisX] - lo[types.AxisX])},
		{FaceRight, math.Abs(pos[types.AxisX] - hi[types.AxisX])},
		{FaceTop, math.Abs(pos[types.AxisY] - hi[types.AxisY])},
		{FaceBottom, math.Abs(pos[types.AxisY] - lo[types.AxisY])},
	}
}

// Barrier resolves the ball against the wall box inflated by the ball radius.
// The ball exits through the nearest face; velocity on that axis is turned
// outward and scaled by the barrier restitution, and the horizontal axes
// along the face lose a share to friction.
func Barrier(b *types.BallState, wall types.Barrier, s config.Surfaces) Face {
	lo, hi := wall.Min(), wall.Max()
	r := b.Radius
	for axis := 0; axis < 3; axis++ {
		p := b.Position[axis]
		if p <= lo[axis]-r || p >= hi[axis]+r {
			return NoFace
		}
	}

	face := PickFace(faceCandidates(b.Position, lo, hi)).Face
	axis, sign := face.axis()
	plane := lo[axis]
	if sign > 0 {
		plane = hi[axis]
	}

	bleed := uniformBleed(1)
	bleed[types.AxisX] = s.BarrierFriction
	bleed[types.AxisZ] = s.BarrierFriction
	resolve(b, planeContact(axis, plane, sign, r), surface{
		restitution: s.BarrierRestitution,
		bleed:       bleed,
	})
	return face
}
