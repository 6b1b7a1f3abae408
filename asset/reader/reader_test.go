package reader

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func packFloats(values ...float32) []byte {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v))
	}
	return data
}

func TestReadBinaryPoints(t *testing.T) {
	exp := []float32{1, 2, 3, -4.5, 0.25, 1e6}
	path := writeFile(t, "points.bin", packFloats(exp...))

	buf, err := ReadPoints(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != len(exp) {
		t.Fatalf("expected %d values; got %d", len(exp), len(buf))
	}
	for i := range exp {
		if buf[i] != exp[i] {
			t.Fatalf("expected value %d to be %v; got %v", i, exp[i], buf[i])
		}
	}
}

func TestReadTruncatedBinaryPoints(t *testing.T) {
	path := writeFile(t, "points.bin", packFloats(1, 2, 3, 4))

	_, err := ReadPoints(context.Background(), path)
	if !errors.Is(err, ErrTruncatedPoints) {
		t.Fatalf("expected to get ErrTruncatedPoints; got %v", err)
	}
}

func TestReadTextPoints(t *testing.T) {
	payload := "# x y z intensity\n1 2 3 100\n\n-1.5\t0.5  2\n"
	path := writeFile(t, "points.xyz", []byte(payload))

	buf, err := ReadPoints(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	exp := []float32{1, 2, 3, -1.5, 0.5, 2}
	if len(buf) != len(exp) {
		t.Fatalf("expected %d values; got %v", len(exp), buf)
	}
	for i := range exp {
		if buf[i] != exp[i] {
			t.Fatalf("expected value %d to be %v; got %v", i, exp[i], buf[i])
		}
	}

	path = writeFile(t, "bad.txt", []byte("1 2\n"))
	if _, err = ReadPoints(context.Background(), path); err == nil || !strings.Contains(err.Error(), "bad.txt:1") {
		t.Fatalf("expected an error referencing bad.txt:1; got %v", err)
	}

	path = writeFile(t, "bad.xyz", []byte("1 2 foo\n"))
	if _, err = ReadPoints(context.Background(), path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestReadPointsUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "points.las", nil)
	if _, err := ReadPoints(context.Background(), path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected to get ErrUnsupportedFormat; got %v", err)
	}
}

func TestReadShapes(t *testing.T) {
	payload := `[
		{"object_id": 1, "cylinder": {"center_a": [0, 0, 0], "center_b": [0, 0, 5], "radius": 1}},
		{"object_id": 2, "oriented_box": {"inv_instance_matrix": [1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1]}}
	]`
	path := writeFile(t, "shapes.json", []byte(payload))

	recs, err := ReadShapes(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[0].Cylinder == nil || recs[1].OrientedBox == nil {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestReadShapesOverHttp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"object_id": 3, "cylinder": {"center_a": [0,0,0], "center_b": [1,0,0], "radius": 0.5}}]`))
	}))
	defer server.Close()

	recs, err := ReadShapes(context.Background(), server.URL+"/shapes.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].ObjectID != 3 {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestDecodeShapesRejectsUnknownFields(t *testing.T) {
	_, err := DecodeShapes(strings.NewReader(`[{"object_id": 1, "sphere": {"radius": 1}}]`))
	if err == nil || !strings.Contains(err.Error(), "sphere") {
		t.Fatalf("expected an unknown field error; got %v", err)
	}
}
