package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/achilleasa/pointlabel/asset/compiler/bvh"
	"github.com/achilleasa/pointlabel/asset/reader"
	"github.com/achilleasa/pointlabel/asset/writer"
	"github.com/achilleasa/pointlabel/classify"
	"github.com/urfave/cli"
)

// Classify a point cloud against a set of annotation shapes and write the
// resulting labels.
func AssignLabels(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	shapesFile := ctx.String("shapes")
	pointsFile := ctx.String("points")
	if shapesFile == "" || pointsFile == "" {
		return errors.New("both --shapes and --points must be specified")
	}

	split, err := bvh.ParseSplitStrategy(ctx.String("split"))
	if err != nil {
		return err
	}

	opts := classify.Options{
		Workers:   ctx.Int("workers"),
		BlockSize: ctx.Int("block-size"),
		Split:     split,
	}

	var offset [3]float64
	if value := ctx.String("offset"); value != "" {
		if offset, err = parseVec3(value); err != nil {
			return err
		}
	}

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	records, err := reader.ReadShapes(runCtx, shapesFile)
	if err != nil {
		return err
	}

	points, err := reader.ReadPoints(runCtx, pointsFile)
	if err != nil {
		return err
	}

	bbox, err := worldBoundingBox(ctx.String("bbox-min"), ctx.String("bbox-max"), points, offset)
	if err != nil {
		return err
	}

	labels, err := classify.Assign(runCtx, classify.Request{
		Shapes:           records,
		Points:           points,
		WorldBoundingBox: bbox,
		PointOffset:      offset,
	}, opts)
	if err != nil {
		return err
	}

	if err = writer.WriteLabels(labels, ctx.String("out")); err != nil {
		return err
	}

	logger.Noticef("label statistics\n%s", classify.Summarize(labels).Table())
	return nil
}
