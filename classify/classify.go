// Package classify assigns the points of a point cloud to the object ids of
// the annotation shapes that contain them.
package classify

import (
	"context"
	"runtime"
	"time"

	"github.com/achilleasa/pointlabel/asset/compiler"
	"github.com/achilleasa/pointlabel/asset/compiler/bvh"
	"github.com/achilleasa/pointlabel/asset/compiler/input"
	"github.com/achilleasa/pointlabel/log"
	"github.com/achilleasa/pointlabel/types"
	"golang.org/x/sync/errgroup"
)

// A classification request as assembled by the host.
type Request struct {
	// Annotation shapes. Shapes earlier in the list do not take priority;
	// overlaps resolve to the first match in BVH traversal order.
	Shapes []input.ShapeRecord

	// Flat x, y, z buffer.
	Points []float32

	// World bounds of the point cloud. It is validated but does not
	// affect the result.
	WorldBoundingBox input.BoundingBox

	// Translation added to every point before classification.
	PointOffset [3]float64
}

// A contiguous range of points processed by a single worker.
type block struct {
	start, end int
}

// Classify each point of the request against its shapes. The returned slice
// holds one object id per point, in input order, with input.UnassignedID for
// points that no shape contains. On failure no labels are returned.
func Assign(ctx context.Context, req Request, opts Options) ([]uint16, error) {
	logger := log.New("classifier")
	start := time.Now()

	if err := req.WorldBoundingBox.Validate(); err != nil {
		return nil, err
	}

	points, err := input.ParsePoints(req.Points, req.PointOffset)
	if err != nil {
		return nil, err
	}

	tree, err := compiler.Compile(req.Shapes, opts.Split)
	if err != nil {
		return nil, err
	}

	labels := make([]uint16, len(points))
	if err = run(ctx, tree, points, labels, opts); err != nil {
		return nil, err
	}

	logger.Infof("classified %d points against %d shapes in %d ms", len(points), len(req.Shapes), time.Since(start).Nanoseconds()/1e6)
	return labels, nil
}

func run(ctx context.Context, tree *bvh.Tree, points []types.Vec3, labels []uint16, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	blocks := splitBlocks(len(points), opts.BlockSize)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers == 1 {
		for _, b := range blocks {
			if err := ctx.Err(); err != nil {
				return err
			}
			queryBlock(tree, points[b.start:b.end], labels[b.start:b.end])
		}
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, b := range blocks {
		if groupCtx.Err() != nil {
			break
		}

		b := b
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			queryBlock(tree, points[b.start:b.end], labels[b.start:b.end])
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func queryBlock(tree *bvh.Tree, points []types.Vec3, labels []uint16) {
	for i, p := range points {
		labels[i] = tree.Query(p)
	}
}

// Partition count points into consecutive blocks of at most blockSize points.
func splitBlocks(count, blockSize int) []block {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	blocks := make([]block, 0, (count+blockSize-1)/blockSize)
	for start := 0; start < count; start += blockSize {
		end := start + blockSize
		if end > count {
			end = count
		}
		blocks = append(blocks, block{start, end})
	}
	return blocks
}
