package bvh

import (
	"math"
	"sort"
	"time"

	"github.com/achilleasa/pointlabel/log"
	"github.com/achilleasa/pointlabel/types"
)

var (
	// Split each work list in half after sorting it along the widest axis.
	// This bounds the tree depth to O(log n) regardless of how shapes
	// are clustered.
	MedianSplit SplitStrategy = medianSplit{}

	// A split strategy that uses the surface area heuristic (SAH).
	SurfaceAreaHeuristic SplitStrategy = surfaceAreaHeuristic{}
)

// A split strategy selects where a work list, sorted by item centroid along
// the split axis, is divided into a left and a right partition.
type SplitStrategy interface {
	// Return an index in [1, len(workList)-1]. Items before the index go
	// to the left child.
	SplitIndex(workList []Item) int

	// Strategy name.
	String() string
}

type builder struct {
	logger log.Logger

	// Bvh nodes stored as a contiguous list
	nodes []Node

	// The items being partitioned, in input order. Leafs refer to them
	// by index.
	items []Item

	// The split strategy to use.
	strategy SplitStrategy

	stats Stats
}

// Construct a BVH from a set of items. Each leaf holds exactly one item.
//
// At each level the builder computes the bounds of the work list, sorts the
// work list by item centroid along the axis where those bounds are widest
// and asks the split strategy where to divide it. A nil strategy selects
// MedianSplit. Building an empty list yields an empty tree.
func Build(items []Item, strategy SplitStrategy) *Tree {
	if strategy == nil {
		strategy = MedianSplit
	}

	b := &builder{
		logger:   log.New("bvh builder"),
		nodes:    make([]Node, 0, 2*len(items)),
		items:    items,
		strategy: strategy,
		stats: Stats{
			Items:    len(items),
			Strategy: strategy.String(),
		},
	}

	start := time.Now()
	if len(items) > 0 {
		workList := make([]workItem, len(items))
		for index, item := range items {
			workList[index] = workItem{index: uint32(index), center: item.Box.Center()}
		}
		b.partition(workList, 0)
	}
	b.stats.BuildTime = time.Since(start)

	b.logger.Debugf(
		"BVH tree build time: %d ms, strategy: %s, maxDepth: %d, nodes: %d, leafs: %d",
		b.stats.BuildTime.Nanoseconds()/1e6, b.stats.Strategy,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leafs,
	)

	return &Tree{
		nodes: b.nodes,
		items: items,
		stats: b.stats,
	}
}

// An entry in a work list. Sorting indices keeps the caller's item slice
// untouched.
type workItem struct {
	index  uint32
	center types.Vec3
}

// Partition worklist and return node index.
func (b *builder) partition(workList []workItem, depth int) uint32 {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	if len(workList) == 1 {
		return b.createLeaf(workList[0].index)
	}

	// Calculate bounding box for node and pick the widest axis
	bbox := types.EmptyAABB()
	for _, w := range workList {
		bbox = bbox.Union(b.items[w.index].Box)
	}
	axis := bbox.LongestAxis()

	// A stable sort keeps the input order for items with equal
	// centroids so the resulting tree is deterministic.
	sort.SliceStable(workList, func(i, j int) bool {
		return workList[i].center[axis] < workList[j].center[axis]
	})

	splitIndex := b.strategy.SplitIndex(b.resolve(workList))
	if splitIndex < 1 || splitIndex >= len(workList) {
		splitIndex = len(workList) / 2
	}

	// Add node to list
	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, Node{})
	b.stats.Nodes++

	// Partition children and update node indices
	leftNodeIndex := b.partition(workList[:splitIndex], depth+1)
	rightNodeIndex := b.partition(workList[splitIndex:], depth+1)

	node := &b.nodes[nodeIndex]
	node.Box = b.nodes[leftNodeIndex].Box.Union(b.nodes[rightNodeIndex].Box)
	node.SetChildNodes(leftNodeIndex, rightNodeIndex)

	return uint32(nodeIndex)
}

// Append a leaf for the given item and return its node index.
func (b *builder) createLeaf(itemIndex uint32) uint32 {
	node := Node{Box: b.items[itemIndex].Box}
	node.SetItem(itemIndex)

	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, node)

	b.stats.Nodes++
	b.stats.Leafs++

	return uint32(nodeIndex)
}

func (b *builder) resolve(workList []workItem) []Item {
	out := make([]Item, len(workList))
	for i, w := range workList {
		out[i] = b.items[w.index]
	}
	return out
}

type medianSplit struct{}

func (medianSplit) SplitIndex(workList []Item) int {
	return len(workList) / 2
}

func (medianSplit) String() string {
	return "median"
}

// A strategy that uses surface area heuristic for selecting splits.
type surfaceAreaHeuristic struct{}

// Score every split position using the formula (lower score is better):
//
// left count * left BBOX area + right count * right BBOX area
//
// and return the position with the lowest score. Ties resolve to the
// position closest to the median.
func (surfaceAreaHeuristic) SplitIndex(workList []Item) int {
	count := len(workList)
	if count < 2 {
		return count / 2
	}

	// suffix[i] holds the bounds of workList[i:]
	suffix := make([]types.AABB, count)
	suffix[count-1] = workList[count-1].Box
	for i := count - 2; i >= 0; i-- {
		suffix[i] = suffix[i+1].Union(workList[i].Box)
	}

	median := count / 2
	bestIndex := median
	bestScore := math.MaxFloat64
	left := types.EmptyAABB()
	for i := 1; i < count; i++ {
		left = left.Union(workList[i-1].Box)
		score := float64(i)*left.HalfArea() + float64(count-i)*suffix[i].HalfArea()
		if score < bestScore || (score == bestScore && absInt(i-median) < absInt(bestIndex-median)) {
			bestScore = score
			bestIndex = i
		}
	}

	return bestIndex
}

func (surfaceAreaHeuristic) String() string {
	return "sah"
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
