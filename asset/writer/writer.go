package writer

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"strconv"
	"strings"
)

// The Writer interface is implemented by all label writers.
type Writer interface {
	// Write one label per point.
	Write(w io.Writer, labels []uint16) error
}

// Write labels to a file. Files ending in .txt receive one decimal id per
// line; any other name receives packed little-endian uint16 values. A
// filename of "-" writes binary labels to stdout.
func WriteLabels(labels []uint16, filename string) error {
	var out io.Writer = os.Stdout
	if filename != "-" {
		f, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	var writer Writer = binaryLabelWriter{}
	if strings.HasSuffix(filename, ".txt") {
		writer = textLabelWriter{}
	}

	bw := bufio.NewWriter(out)
	if err := writer.Write(bw, labels); err != nil {
		return err
	}
	return bw.Flush()
}

type binaryLabelWriter struct{}

func (binaryLabelWriter) Write(w io.Writer, labels []uint16) error {
	return binary.Write(w, binary.LittleEndian, labels)
}

type textLabelWriter struct{}

func (textLabelWriter) Write(w io.Writer, labels []uint16) error {
	line := make([]byte, 0, 8)
	for _, label := range labels {
		line = strconv.AppendUint(line[:0], uint64(label), 10)
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
