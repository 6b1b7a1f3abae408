package compiler

import (
	"fmt"
	"time"

	"github.com/achilleasa/pointlabel/asset/compiler/bvh"
	"github.com/achilleasa/pointlabel/asset/compiler/input"
	"github.com/achilleasa/pointlabel/log"
	"github.com/achilleasa/pointlabel/shape"
	"github.com/achilleasa/pointlabel/types"
)

// Describes the record that caused compilation to fail.
type RecordError struct {
	// Position of the record in the input list.
	Index int

	// The object id declared by the record.
	ObjectID uint32

	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("compiler: shape record %d (object id %d): %s", e.Index, e.ObjectID, e.Err.Error())
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

type shapeCompiler struct {
	records []input.ShapeRecord
	logger  log.Logger
}

// Convert a list of host shape records into shapes. All records are
// validated before any shape is constructed; the first failure is returned
// as a *RecordError and no shapes are returned.
func CompileShapes(records []input.ShapeRecord) ([]shape.Shape, error) {
	sc := &shapeCompiler{
		records: records,
		logger:  log.New("shape compiler"),
	}

	if err := sc.validate(); err != nil {
		return nil, err
	}
	return sc.createShapes()
}

// Compile a list of host shape records into a BVH tree.
func Compile(records []input.ShapeRecord, strategy bvh.SplitStrategy) (*bvh.Tree, error) {
	start := time.Now()

	shapes, err := CompileShapes(records)
	if err != nil {
		return nil, err
	}

	items := make([]bvh.Item, len(shapes))
	for index, s := range shapes {
		items[index] = bvh.NewItem(s)
	}
	tree := bvh.Build(items, strategy)

	log.New("shape compiler").Infof("compiled %d shapes in %d ms", len(shapes), time.Since(start).Nanoseconds()/1e6)
	return tree, nil
}

func (sc *shapeCompiler) validate() error {
	for index := range sc.records {
		rec := &sc.records[index]
		if err := rec.Validate(); err != nil {
			return &RecordError{Index: index, ObjectID: rec.ObjectID, Err: err}
		}
	}
	return nil
}

func (sc *shapeCompiler) createShapes() ([]shape.Shape, error) {
	var cylinders, boxes int

	shapes := make([]shape.Shape, len(sc.records))
	for index := range sc.records {
		rec := &sc.records[index]
		id := uint16(rec.ObjectID)

		var err error
		switch {
		case rec.Cylinder != nil:
			shapes[index], err = shape.NewCylinder(
				types.Vec3(rec.Cylinder.CenterA),
				types.Vec3(rec.Cylinder.CenterB),
				rec.Cylinder.Radius,
				id,
			)
			cylinders++
		case rec.OrientedBox != nil:
			shapes[index], err = shape.NewOrientedBox(rec.OrientedBox.Matrix(), id)
			boxes++
		}

		if err != nil {
			return nil, &RecordError{Index: index, ObjectID: rec.ObjectID, Err: err}
		}
	}

	sc.logger.Debugf("created %d cylinders and %d oriented boxes", cylinders, boxes)
	return shapes, nil
}
