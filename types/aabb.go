package types

import "math"

// An axis-aligned bounding box. A non-empty box satisfies Min[i] <= Max[i]
// for every axis.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Create an empty box. The empty box is the identity element for Union and
// contains no points.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
}

// The canonical [-1, 1]^3 cube used as the local frame of oriented boxes.
func BaseCube() AABB {
	return AABB{
		Min: Vec3{-1, -1, -1},
		Max: Vec3{1, 1, 1},
	}
}

// Create the smallest box containing all the given points.
func AABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.Extend(p)
	}
	return box
}

// Apply m to the 8 corners of the base cube and return their bounds. When m
// contains a rotation the result is looser than the transformed cube itself.
func TransformedBaseCube(m Mat4) AABB {
	box := EmptyAABB()
	for corner := 0; corner < 8; corner++ {
		p := Vec3{-1, -1, -1}
		for axis := 0; axis < 3; axis++ {
			if corner&(1<<axis) != 0 {
				p[axis] = 1
			}
		}
		box = box.Extend(m.TransformPoint(p))
	}
	return box
}

// Returns true if this box has not been extended by any point.
func (b AABB) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Returns true if p lies inside the box or on its boundary. Points with NaN
// components are never contained.
func (b AABB) ContainsPoint(p Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Return the union of two boxes.
func (b AABB) Union(b2 AABB) AABB {
	return AABB{
		Min: MinVec3(b.Min, b2.Min),
		Max: MaxVec3(b.Max, b2.Max),
	}
}

// Grow the box so it includes p.
func (b AABB) Extend(p Vec3) AABB {
	return AABB{
		Min: MinVec3(b.Min, p),
		Max: MaxVec3(b.Max, p),
	}
}

// Get box center.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get box side lengths.
func (b AABB) Extent() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Get the axis with the greatest extent. Ties resolve to the lower axis.
func (b AABB) LongestAxis() Axis {
	side := b.Extent()
	axis := XAxis
	if side[YAxis] > side[axis] {
		axis = YAxis
	}
	if side[ZAxis] > side[axis] {
		axis = ZAxis
	}
	return axis
}

// Grow the box on every axis by rel * (1 + the largest coordinate magnitude
// on that axis). Empty boxes are returned unchanged.
func (b AABB) Pad(rel float64) AABB {
	if b.IsEmpty() {
		return b
	}

	out := b
	for axis := 0; axis < 3; axis++ {
		eps := rel * (1 + math.Max(math.Abs(b.Min[axis]), math.Abs(b.Max[axis])))
		out.Min[axis] -= eps
		out.Max[axis] += eps
	}
	return out
}

// Get half of the box surface area.
func (b AABB) HalfArea() float64 {
	side := b.Extent()
	return side[0]*side[1] + side[1]*side[2] + side[0]*side[2]
}
