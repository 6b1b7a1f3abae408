package classify

import "github.com/achilleasa/pointlabel/asset/compiler/bvh"

const (
	// Points per block when Options.BlockSize is not set.
	DefaultBlockSize = 16384
)

type Options struct {
	// Number of goroutines that process point blocks. Values <= 0 select
	// runtime.NumCPU(); 1 processes all blocks on the calling goroutine.
	Workers int

	// Number of points per block.
	BlockSize int

	// BVH split strategy. A nil strategy selects the median split.
	Split bvh.SplitStrategy
}

// Get the default options.
func DefaultOptions() Options {
	return Options{
		BlockSize: DefaultBlockSize,
		Split:     bvh.MedianSplit,
	}
}
