package cmd

import (
	"context"
	"errors"

	"github.com/achilleasa/pointlabel/asset/compiler"
	"github.com/achilleasa/pointlabel/asset/compiler/bvh"
	"github.com/achilleasa/pointlabel/asset/reader"
	"github.com/urfave/cli"
)

// Compile a set of annotation shapes and display the resulting BVH.
func InspectShapes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	shapesFile := ctx.String("shapes")
	if shapesFile == "" && ctx.NArg() == 1 {
		shapesFile = ctx.Args().First()
	}
	if shapesFile == "" {
		return errors.New("missing shapes file argument")
	}

	split, err := bvh.ParseSplitStrategy(ctx.String("split"))
	if err != nil {
		return err
	}

	records, err := reader.ReadShapes(context.Background(), shapesFile)
	if err != nil {
		return err
	}

	tree, err := compiler.Compile(records, split)
	if err != nil {
		return err
	}

	logger.Noticef("shapes in traversal order\n%s", tree.ShapeTable())
	logger.Noticef("bvh statistics\n%s", tree.StatsTable())
	return nil
}
