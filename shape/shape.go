// Package shape defines the annotation volumes that points are assigned to.
package shape

import (
	"errors"

	"github.com/achilleasa/pointlabel/types"
)

var (
	ErrInvalidCylinder   = errors.New("shape: invalid cylinder")
	ErrSingularTransform = errors.New("shape: oriented box transform is not invertible")
)

// The kind of a shape.
type Kind uint8

const (
	KindCylinder Kind = iota
	KindOrientedBox
)

// Get the kind name.
func (k Kind) String() string {
	switch k {
	case KindCylinder:
		return "cylinder"
	case KindOrientedBox:
		return "oriented_box"
	}
	return "unknown"
}

// The Shape interface is implemented by all annotation volumes.
type Shape interface {
	// Get a box that contains every point the shape contains. The box
	// may be looser than the tightest possible one.
	BBox() types.AABB

	// Exact point-in-shape test.
	ContainsPoint(p types.Vec3) bool

	// The id of the object this shape belongs to.
	ObjectID() uint16

	// The shape kind.
	Kind() Kind
}
