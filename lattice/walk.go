package lattice

import (
	"fmt"
	"math"
	"time"
)

// WalkResult is the outcome of a walk: an ordered node sequence tiling the
// entire reading sequence, plus diagnostic counters.
type WalkResult struct {
	Nodes               []*Node
	Vertices            int
	Edges               int
	ElapsedMicroseconds int64
	TotalReadings       int
}

// viterbiState is one cell of the DP table: the best accumulated score into
// a reading position and the back-pointer for path reconstruction.
type viterbiState struct {
	fromIndex int
	fromNode  *Node
	maxScore  float64
}

// Walk finds the weightiest full covering of the readings, i.e. the most
// likely segmentation-and-selection of values. Because every edge points
// strictly forward, processing positions in index order is a topological
// order, so a single forward relaxation sweep computes the longest path in
// O(|V| + |E|); with log-probability scores, longest means most probable.
func (g *ReadingGrid) Walk() WalkResult {
	var result WalkResult
	if len(g.spans) == 0 {
		return result
	}
	start := time.Now()

	readingLen := len(g.readings)
	viterbi := make([]viterbiState, readingLen+1)
	for i := 1; i <= readingLen; i++ {
		viterbi[i].maxScore = math.Inf(-1)
	}

	vertices := 0
	edges := 0
	for i := 0; i < readingLen; i++ {
		vertices++

		span := &g.spans[i]
		for spanLen := 1; spanLen <= span.MaxLength(); spanLen++ {
			node := span.NodeOf(spanLen)
			if node == nil {
				continue
			}
			edges++

			// Relax the transition: adopt the path through this node if it
			// beats the best known path into the destination position.
			score := viterbi[i].maxScore + node.Score()
			target := &viterbi[i+spanLen]
			if score > target.maxScore {
				target.maxScore = score
				target.fromNode = node
				target.fromIndex = i
			}
		}
	}
	result.Vertices = vertices
	result.Edges = edges

	// Trace the back-pointers from the end of the grid to the root, then
	// reverse into left-to-right order.
	totalReadingLen := 0
	for curr := readingLen; curr > 0; curr = viterbi[curr].fromIndex {
		node := viterbi[curr].fromNode
		if node == nil {
			panic(fmt.Sprintf("lattice: walk backtrack hit a gap at position %d", curr))
		}
		totalReadingLen += node.SpanningLength()
		result.Nodes = append(result.Nodes, node)
	}
	for i, j := 0, len(result.Nodes)-1; i < j; i, j = i+1, j-1 {
		result.Nodes[i], result.Nodes[j] = result.Nodes[j], result.Nodes[i]
	}
	if totalReadingLen != readingLen {
		panic(fmt.Sprintf("lattice: walk covered %d of %d readings", totalReadingLen, readingLen))
	}
	result.TotalReadings = totalReadingLen

	result.ElapsedMicroseconds = time.Since(start).Microseconds()
	return result
}

// ValuesAsStrings projects the walked nodes to their selected values.
func (r *WalkResult) ValuesAsStrings() []string {
	values := make([]string, 0, len(r.Nodes))
	for _, node := range r.Nodes {
		values = append(values, node.Value())
	}
	return values
}

// ReadingsAsStrings projects the walked nodes to their combined readings.
func (r *WalkResult) ReadingsAsStrings() []string {
	readings := make([]string, 0, len(r.Nodes))
	for _, node := range r.Nodes {
		readings = append(readings, node.Reading())
	}
	return readings
}

// FindNodeAt locates the node covering the given reading cursor. It returns
// the node's index in Nodes and the reading index immediately past that
// node, or (-1, 0) if the result is empty or the cursor is out of range.
// A cursor at or past the last reading maps to the last node.
func (r *WalkResult) FindNodeAt(cursor int) (nodeIndex int, cursorPastNode int) {
	if len(r.Nodes) == 0 {
		return -1, 0
	}
	if cursor > r.TotalReadings {
		return -1, 0
	}
	if cursor == 0 {
		return 0, r.Nodes[0].SpanningLength()
	}
	// Covers both "cursor right at the end" and "cursor one reading before
	// the end".
	if cursor >= r.TotalReadings-1 {
		return len(r.Nodes) - 1, r.TotalReadings
	}

	accumulated := 0
	for i, node := range r.Nodes {
		accumulated += node.SpanningLength()
		if accumulated > cursor {
			return i, accumulated
		}
	}

	// Unreachable: the nodes tile the readings.
	return -1, 0
}
