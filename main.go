package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/pointlabel/classify"
	"github.com/achilleasa/pointlabel/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pointlabel"
	app.Usage = "label point clouds using annotation shapes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set log level (debug, info, notice, warning, error)",
		},
	}

	splitFlag := cli.StringFlag{
		Name:  "split",
		Value: "median",
		Usage: "bvh split strategy (median or sah)",
	}
	shapesFlag := cli.StringFlag{
		Name:  "shapes, s",
		Usage: "JSON file or URL with the annotation shapes",
	}

	app.Commands = []cli.Command{
		{
			Name:  "assign",
			Usage: "assign each point to the object id of the shape that contains it",
			Description: `
Load a list of annotation shapes (cylinders and oriented boxes), index them
with a BVH and label each point of a point cloud with the object id of the
first shape that contains it. Points outside every shape get label 0.

Points are read from packed little-endian float32 xyz triples (.bin, .f32)
or whitespace separated text (.xyz, .txt). Labels are written as packed
little-endian uint16 values, or as text when the output file ends in .txt.`,
			Flags: []cli.Flag{
				shapesFlag,
				cli.StringFlag{
					Name:  "points, p",
					Usage: "point cloud file or URL",
				},
				cli.StringFlag{
					Name:  "offset",
					Usage: "translation x,y,z added to every point",
				},
				cli.StringFlag{
					Name:  "bbox-min",
					Usage: "world bounding box min corner x,y,z",
				},
				cli.StringFlag{
					Name:  "bbox-max",
					Usage: "world bounding box max corner x,y,z",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of classification workers (0 uses all CPUs)",
				},
				cli.IntFlag{
					Name:  "block-size",
					Value: classify.DefaultBlockSize,
					Usage: "number of points per work block",
				},
				splitFlag,
				cli.StringFlag{
					Name:  "out, o",
					Value: "labels.bin",
					Usage: "label output file; use - for stdout",
				},
			},
			Action: cmd.AssignLabels,
		},
		{
			Name:        "inspect",
			Usage:       "compile annotation shapes and display the BVH",
			Description: `Print the indexed shapes in traversal order and the BVH statistics.`,
			ArgsUsage:   "[shapes.json]",
			Flags: []cli.Flag{
				shapesFlag,
				splitFlag,
			},
			Action: cmd.InspectShapes,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}
