package reader

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/pointlabel/asset"
	"github.com/achilleasa/pointlabel/asset/compiler/input"
	"github.com/achilleasa/pointlabel/log"
)

var (
	ErrUnsupportedFormat = errors.New("reader: unsupported point file format")
	ErrTruncatedPoints   = errors.New("reader: point data is not a whole number of xyz triples")
)

// The PointReader interface is implemented by all point buffer readers.
type PointReader interface {
	// Read a flat x, y, z buffer from a resource.
	Read(*asset.Resource) ([]float32, error)
}

// Read a JSON array of shape records from a file or URL.
func ReadShapes(ctx context.Context, path string) ([]input.ShapeRecord, error) {
	res, err := asset.NewResource(ctx, path)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return DecodeShapes(res)
}

// Decode a JSON array of shape records. Unknown fields are rejected so that
// misspelled shape kinds do not silently produce empty records.
func DecodeShapes(r io.Reader) ([]input.ShapeRecord, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var records []input.ShapeRecord
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("reader: could not decode shape records: %w", err)
	}
	return records, nil
}

// Read points from a file or URL. The decoder is selected by file
// extension: .xyz and .txt files contain whitespace separated triples, one
// point per line; anything else is treated as packed little-endian float32
// triples.
func ReadPoints(ctx context.Context, path string) ([]float32, error) {
	res, err := asset.NewResource(ctx, path)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var reader PointReader
	switch {
	case strings.HasSuffix(path, ".xyz"), strings.HasSuffix(path, ".txt"):
		reader = newTextPointReader()
	case strings.HasSuffix(path, ".bin"), strings.HasSuffix(path, ".f32"):
		reader = newBinaryPointReader()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return reader.Read(res)
}

type binaryPointReader struct {
	logger log.Logger
}

func newBinaryPointReader() *binaryPointReader {
	return &binaryPointReader{
		logger: log.New("point reader"),
	}
}

// Read packed little-endian float32 triples.
func (p *binaryPointReader) Read(res *asset.Resource) ([]float32, error) {
	start := time.Now()

	data, err := io.ReadAll(res)
	if err != nil {
		return nil, err
	}
	if len(data)%12 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedPoints, len(data))
	}

	buf := make([]float32, len(data)/4)
	for i := range buf {
		buf[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}

	p.logger.Infof(`read %d points from "%s" in %d ms`, len(buf)/3, res.Path(), time.Since(start).Nanoseconds()/1e6)
	return buf, nil
}

type textPointReader struct {
	logger log.Logger
}

func newTextPointReader() *textPointReader {
	return &textPointReader{
		logger: log.New("point reader"),
	}
}

// Read whitespace separated triples. Empty lines and lines starting with
// '#' are skipped; columns after the third are ignored.
func (p *textPointReader) Read(res *asset.Resource) ([]float32, error) {
	start := time.Now()

	buf := make([]float32, 0)
	scanner := bufio.NewScanner(res)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("reader: %s:%d: expected 3 coordinates; got %d", res.Path(), lineNum, len(fields))
		}
		for _, field := range fields[:3] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("reader: %s:%d: %w", res.Path(), lineNum, err)
			}
			buf = append(buf, float32(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	p.logger.Infof(`read %d points from "%s" in %d ms`, len(buf)/3, res.Path(), time.Since(start).Nanoseconds()/1e6)
	return buf, nil
}
