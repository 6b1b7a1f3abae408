package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/pointlabel/asset/compiler/input"
	"github.com/achilleasa/pointlabel/types"
)

// Parse an "x,y,z" vector flag value.
func parseVec3(value string) ([3]float64, error) {
	var v [3]float64

	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("expected vector in x,y,z format; got %q", value)
	}
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return v, fmt.Errorf("invalid vector component %q: %w", part, err)
		}
		v[i] = f
	}
	return v, nil
}

// Get the world bounding box from the bbox-min and bbox-max flag values.
// When both are empty the box is calculated from the finite points in buf.
func worldBoundingBox(minValue, maxValue string, buf []float32, offset [3]float64) (input.BoundingBox, error) {
	if minValue == "" && maxValue == "" {
		return pointBounds(buf, offset), nil
	}
	if minValue == "" || maxValue == "" {
		return input.BoundingBox{}, errors.New("both bbox-min and bbox-max must be specified")
	}

	lo, err := parseVec3(minValue)
	if err != nil {
		return input.BoundingBox{}, fmt.Errorf("bbox-min: %w", err)
	}
	hi, err := parseVec3(maxValue)
	if err != nil {
		return input.BoundingBox{}, fmt.Errorf("bbox-max: %w", err)
	}
	return input.BoundingBox{Min: lo, Max: hi}, nil
}

func pointBounds(buf []float32, offset [3]float64) input.BoundingBox {
	box := types.EmptyAABB()
	for i := 0; i+2 < len(buf); i += 3 {
		p := types.XYZ(
			float64(buf[i+0])+offset[0],
			float64(buf[i+1])+offset[1],
			float64(buf[i+2])+offset[2],
		)
		if p.IsFinite() {
			box = box.Extend(p)
		}
	}

	if box.IsEmpty() {
		return input.BoundingBox{}
	}
	return input.BoundingBox{Min: box.Min, Max: box.Max}
}
