package shape

import (
	"fmt"
	"math"

	"github.com/achilleasa/pointlabel/types"
)

// A solid capped cylinder around the segment CenterA-CenterB. A cylinder
// whose centers coincide is treated as a sphere of the same radius.
type Cylinder struct {
	CenterA types.Vec3
	CenterB types.Vec3
	Radius  float64

	objectID uint16
}

// Create a new cylinder. Returns ErrInvalidCylinder if any of the inputs is
// not finite or the radius is negative.
func NewCylinder(centerA, centerB types.Vec3, radius float64, objectID uint16) (*Cylinder, error) {
	if !centerA.IsFinite() || !centerB.IsFinite() {
		return nil, fmt.Errorf("%w: non-finite center", ErrInvalidCylinder)
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidCylinder, radius)
	}

	return &Cylinder{
		CenterA:  centerA,
		CenterB:  centerB,
		Radius:   radius,
		objectID: objectID,
	}, nil
}

// Test whether p lies inside the cylinder or on its surface.
func (c *Cylinder) ContainsPoint(p types.Vec3) bool {
	if !p.IsFinite() {
		return false
	}

	axis := c.CenterB.Sub(c.CenterA)
	len2 := axis.LenSq()
	rel := p.Sub(c.CenterA)
	radiusSq := c.Radius * c.Radius

	if len2 == 0 {
		return rel.LenSq() <= radiusSq
	}

	// Reject points beyond the end caps
	t := rel.Dot(axis)
	if t < 0 || t > len2 {
		return false
	}

	closest := axis.Mul(t / len2)
	return rel.Sub(closest).LenSq() <= radiusSq
}

// Get the union of the two end spheres' bounding boxes.
func (c *Cylinder) BBox() types.AABB {
	r := types.Vec3{c.Radius, c.Radius, c.Radius}
	return types.AABB{
		Min: types.MinVec3(c.CenterA, c.CenterB).Sub(r),
		Max: types.MaxVec3(c.CenterA, c.CenterB).Add(r),
	}
}

func (c *Cylinder) ObjectID() uint16 {
	return c.objectID
}

func (c *Cylinder) Kind() Kind {
	return KindCylinder
}
