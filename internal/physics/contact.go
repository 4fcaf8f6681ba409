package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

// contact is a penetration against a convex feature, already established to be
// non-degenerate. The ball is moved to anchor + normal*dist on the axes in the
// contact plane; the other axes keep their position.
type contact struct {
	plane  [3]bool
	anchor mgl64.Vec3
	normal mgl64.Vec3 // unit length, zero outside the contact plane
	dist   float64
}

// surface is the response at a contact. Restitution scales the in-plane
// velocity after reflection; bleed scales each axis outside the plane.
type surface struct {
	restitution float64
	bleed       mgl64.Vec3
}

func uniformBleed(f float64) mgl64.Vec3 {
	return mgl64.Vec3{f, f, f}
}

// resolve pushes the ball out along the contact normal and reflects the
// normal velocity component. Velocity already leaving the surface is not
// turned back into it: the normal component always ends up pointing out.
func resolve(b *types.BallState, c contact, s surface) {
	dot := b.Velocity.Dot(c.normal)
	outward := c.normal.Mul(math.Abs(dot))

	for axis := 0; axis < 3; axis++ {
		if !c.plane[axis] {
			b.Velocity[axis] *= s.bleed[axis]
			continue
		}
		b.Position[axis] = c.anchor[axis] + c.normal[axis]*c.dist
		tangent := b.Velocity[axis] - dot*c.normal[axis]
		b.Velocity[axis] = (tangent + outward[axis]) * s.restitution
	}
}

// pointContact builds a contact for a ball whose centre lies within reach of a
// feature point, measured only on the plane axes. It reports false when there
// is no penetration or the centre coincides with the feature.
func pointContact(pos, feature mgl64.Vec3, plane [3]bool, reach float64) (contact, bool) {
	var delta mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		if plane[axis] {
			delta[axis] = pos[axis] - feature[axis]
		}
	}
	d := delta.Len()
	if d >= reach || d <= 0 {
		return contact{}, false
	}
	return contact{
		plane:  plane,
		anchor: feature,
		normal: delta.Mul(1 / d),
		dist:   reach,
	}, true
}

// planeContact builds a contact against an axis-aligned plane at offset along
// axis, with the outward normal pointing toward sign.
func planeContact(axis int, offset, sign, dist float64) contact {
	var c contact
	c.plane[axis] = true
	c.anchor[axis] = offset
	c.normal[axis] = sign
	c.dist = dist
	return c
}

var (
	planeXZ  = [3]bool{true, false, true}
	planeYZ  = [3]bool{false, true, true}
	planeXYZ = [3]bool{true, true, true}
)
