package shape

import (
	"fmt"

	"github.com/achilleasa/pointlabel/types"
)

// Relative padding applied to oriented box bounds.
const bboxMargin = 1e-9

// A box obtained by applying an instance transform to the base cube
// [-1, 1]^3. The box keeps the inverse transform for containment tests and
// the forward transform for computing its bounds.
type OrientedBox struct {
	invInstance types.Mat4
	instance    types.Mat4

	objectID uint16
}

// Create a new oriented box from the inverse of its instance-to-world
// transform. The transform must be invertible; otherwise an error wrapping
// ErrSingularTransform is returned.
func NewOrientedBox(invInstance types.Mat4, objectID uint16) (*OrientedBox, error) {
	instance, err := invInstance.Inverse()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingularTransform, err)
	}

	return &OrientedBox{
		invInstance: invInstance,
		instance:    instance,
		objectID:    objectID,
	}, nil
}

// Test whether p lies inside the box or on its surface. The point is
// mapped to the box local frame and tested against the base cube.
func (b *OrientedBox) ContainsPoint(p types.Vec3) bool {
	return types.BaseCube().ContainsPoint(b.invInstance.TransformPoint(p))
}

// Get the bounds of the transformed base cube corners, padded by
// bboxMargin. The corners come from the inverted matrix while containment
// uses the inverse instance transform directly, so without the padding a
// point on a face may pass ContainsPoint yet fall a few ULPs outside the
// bounds. For rotated boxes the result is a superset of the box.
func (b *OrientedBox) BBox() types.AABB {
	return types.TransformedBaseCube(b.instance).Pad(bboxMargin)
}

func (b *OrientedBox) ObjectID() uint16 {
	return b.objectID
}

func (b *OrientedBox) Kind() Kind {
	return KindOrientedBox
}
