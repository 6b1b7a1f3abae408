package input

import (
	"errors"
	"fmt"
	"math"

	"github.com/achilleasa/pointlabel/types"
)

const (
	// Object id reserved for points that no shape contains.
	UnassignedID = 0

	// Largest object id that fits in a label.
	MaxObjectID = math.MaxUint16
)

var (
	ErrMalformedShape  = errors.New("input: shape record must define exactly one of cylinder or oriented_box")
	ErrObjectIDRange   = errors.New("input: object id out of range")
	ErrMalformedBBox   = errors.New("input: malformed bounding box")
	ErrMalformedPoints = errors.New("input: point buffer length is not a multiple of 3")
	ErrNonFiniteOffset = errors.New("input: point offset is not finite")
	ErrNonFiniteShape  = errors.New("input: shape record contains non-finite values")
	ErrNegativeRadius  = errors.New("input: cylinder radius is negative")
)

// A capped cylinder as sent by the host.
type CylinderRecord struct {
	CenterA [3]float64 `json:"center_a"`
	CenterB [3]float64 `json:"center_b"`
	Radius  float64    `json:"radius"`
}

// An oriented box as sent by the host. The matrix is the inverse of the
// box instance transform, flattened in column-major order.
type OrientedBoxRecord struct {
	InvInstanceMatrix [16]float64 `json:"inv_instance_matrix"`
}

// A host-decoded annotation shape. Exactly one of Cylinder or OrientedBox
// must be set. Several records may share an object id when an object is
// made of more than one primitive.
type ShapeRecord struct {
	ObjectID    uint32             `json:"object_id"`
	Cylinder    *CylinderRecord    `json:"cylinder,omitempty"`
	OrientedBox *OrientedBoxRecord `json:"oriented_box,omitempty"`
}

// Check that the record defines exactly one well-formed shape and that its
// object id can be stored in a label.
func (r *ShapeRecord) Validate() error {
	if (r.Cylinder == nil) == (r.OrientedBox == nil) {
		return ErrMalformedShape
	}

	if r.ObjectID == UnassignedID || r.ObjectID > MaxObjectID {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrObjectIDRange, r.ObjectID, MaxObjectID)
	}

	if r.Cylinder != nil {
		if !finite(r.Cylinder.CenterA[:]...) || !finite(r.Cylinder.CenterB[:]...) || !finite(r.Cylinder.Radius) {
			return ErrNonFiniteShape
		}
		if r.Cylinder.Radius < 0 {
			return fmt.Errorf("%w: %v", ErrNegativeRadius, r.Cylinder.Radius)
		}
	} else if !finite(r.OrientedBox.InvInstanceMatrix[:]...) {
		return ErrNonFiniteShape
	}

	return nil
}

// Get the inverse instance matrix in row-major form.
func (r *OrientedBoxRecord) Matrix() types.Mat4 {
	return types.Mat4FromColumnMajor(r.InvInstanceMatrix)
}

// An axis-aligned box as sent by the host.
type BoundingBox struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Check that the box is finite and that min <= max on every axis.
func (b *BoundingBox) Validate() error {
	if !finite(b.Min[:]...) || !finite(b.Max[:]...) {
		return fmt.Errorf("%w: non-finite bounds", ErrMalformedBBox)
	}
	for axis := 0; axis < 3; axis++ {
		if b.Min[axis] > b.Max[axis] {
			return fmt.Errorf("%w: min[%d] = %v > max[%d] = %v", ErrMalformedBBox, axis, b.Min[axis], axis, b.Max[axis])
		}
	}
	return nil
}

// Convert to an AABB.
func (b *BoundingBox) AABB() types.AABB {
	return types.AABB{Min: types.Vec3(b.Min), Max: types.Vec3(b.Max)}
}

// Convert a flat x, y, z buffer into points, translating each one by offset.
func ParsePoints(buf []float32, offset [3]float64) ([]types.Vec3, error) {
	if len(buf)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d values", ErrMalformedPoints, len(buf))
	}
	if !finite(offset[:]...) {
		return nil, ErrNonFiniteOffset
	}

	points := make([]types.Vec3, len(buf)/3)
	for i := range points {
		points[i] = types.Vec3{
			float64(buf[3*i+0]) + offset[0],
			float64(buf[3*i+1]) + offset[1],
			float64(buf[3*i+2]) + offset[2],
		}
	}
	return points, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
