package cmd

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

const testShapes = `[
	{"object_id": 4, "cylinder": {"center_a": [0, 0, 0], "center_b": [0, 0, 2], "radius": 1}},
	{"object_id": 9, "oriented_box": {"inv_instance_matrix": [1,0,0,0, 0,1,0,0, 0,0,1,0, -5,0,0,1]}}
]`

func newTestApp() *cli.App {
	app := cli.NewApp()
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "v"},
		cli.BoolFlag{Name: "vv"},
		cli.StringFlag{Name: "log-level"},
	}
	app.Commands = []cli.Command{
		{
			Name: "assign",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "shapes"},
				cli.StringFlag{Name: "points"},
				cli.StringFlag{Name: "offset"},
				cli.StringFlag{Name: "bbox-min"},
				cli.StringFlag{Name: "bbox-max"},
				cli.IntFlag{Name: "workers"},
				cli.IntFlag{Name: "block-size", Value: 2},
				cli.StringFlag{Name: "split", Value: "median"},
				cli.StringFlag{Name: "out"},
			},
			Action: AssignLabels,
		},
		{
			Name: "inspect",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "shapes"},
				cli.StringFlag{Name: "split", Value: "median"},
			},
			Action: InspectShapes,
		},
	}
	return app
}

func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestAssignCommand(t *testing.T) {
	dir := t.TempDir()
	shapesFile := writeTestFile(t, dir, "shapes.json", []byte(testShapes))

	// The cylinder spans x in [-1, 1] and the box is centered at x = 5.
	points := []float32{
		0, 0, 1,
		5, 0.5, 0,
		3, 0, 0,
		-0.5, 0, 1.5,
	}
	data := make([]byte, 4*len(points))
	for i, v := range points {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v-1))
	}
	pointsFile := writeTestFile(t, dir, "points.bin", data)
	outFile := filepath.Join(dir, "labels.bin")

	err := newTestApp().Run([]string{
		"pointlabel", "assign",
		"--shapes", shapesFile,
		"--points", pointsFile,
		"--offset", "1,1,1",
		"--split", "sah",
		"--workers", "2",
		"--out", outFile,
	})
	require.NoError(t, err)

	out, err := os.ReadFile(outFile)
	require.NoError(t, err)
	require.Len(t, out, 8)

	exp := []uint16{4, 9, 0, 4}
	for i := range exp {
		if got := binary.LittleEndian.Uint16(out[2*i:]); got != exp[i] {
			t.Fatalf("expected label %d to be %d; got %d", i, exp[i], got)
		}
	}
}

func TestAssignCommandErrors(t *testing.T) {
	dir := t.TempDir()
	shapesFile := writeTestFile(t, dir, "shapes.json", []byte(testShapes))
	pointsFile := writeTestFile(t, dir, "points.xyz", []byte("0 0 0\n"))
	outFile := filepath.Join(dir, "labels.txt")

	specs := [][]string{
		{"pointlabel", "assign", "--points", pointsFile},
		{"pointlabel", "assign", "--shapes", shapesFile, "--points", pointsFile, "--split", "octree"},
		{"pointlabel", "assign", "--shapes", shapesFile, "--points", pointsFile, "--offset", "1,1"},
		{"pointlabel", "assign", "--shapes", shapesFile, "--points", pointsFile, "--bbox-min", "1,1,1", "--bbox-max", "0,0,0"},
		{"pointlabel", "--log-level", "chatty", "assign", "--shapes", shapesFile, "--points", pointsFile},
	}

	for index, args := range specs {
		if err := newTestApp().Run(append(args, "--out", outFile)); err == nil {
			t.Fatalf("[spec %d] expected an error", index)
		}
	}
}

func TestInspectCommand(t *testing.T) {
	shapesFile := writeTestFile(t, t.TempDir(), "shapes.json", []byte(testShapes))

	require.NoError(t, newTestApp().Run([]string{"pointlabel", "inspect", "--shapes", shapesFile}))
	require.NoError(t, newTestApp().Run([]string{"pointlabel", "inspect", shapesFile}))
	require.Error(t, newTestApp().Run([]string{"pointlabel", "inspect"}))
}
