package lattice

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultReadingSeparator joins adjacent readings into the combined-reading
// key used for language-model lookups.
const DefaultReadingSeparator = "-"

// ReadingGrid is a mutable sequence of phonetic readings plus the lattice of
// candidate spans over it. The grid is strictly single-threaded and
// non-reentrant; callers must serialize access externally. The language
// model is borrowed for the grid's lifetime and never mutated.
type ReadingGrid struct {
	lm        *ScoreRankedLanguageModel
	cursor    int
	separator string
	readings  []string
	spans     []Span
}

// Candidate is one entry of a candidate listing: the combined reading it
// covers plus the displayed and raw values.
type Candidate struct {
	Reading  string `json:"reading"`
	Value    string `json:"value"`
	RawValue string `json:"raw_value"`
}

// NodeInSpan pairs a node with the index of the span holding it.
type NodeInSpan struct {
	Node      *Node
	SpanIndex int
}

// NewReadingGrid creates an empty grid over the given language model. The
// model is wrapped so that every node receives unigrams ranked by
// descending score.
func NewReadingGrid(lm LanguageModel) *ReadingGrid {
	return &ReadingGrid{
		lm:        NewScoreRankedLanguageModel(lm),
		separator: DefaultReadingSeparator,
	}
}

// Clear removes all readings and spans and resets the cursor.
func (g *ReadingGrid) Clear() {
	g.cursor = 0
	g.readings = nil
	g.spans = nil
}

// Cursor returns the current insertion point, in [0, len(readings)].
func (g *ReadingGrid) Cursor() int { return g.cursor }

// SetCursor moves the insertion point. The cursor must not exceed the
// number of readings.
func (g *ReadingGrid) SetCursor(cursor int) {
	if cursor < 0 || cursor > len(g.readings) {
		panic(fmt.Sprintf("lattice: cursor %d out of range [0, %d]", cursor, len(g.readings)))
	}
	g.cursor = cursor
}

// ReadingSeparator returns the string used to join adjacent readings.
func (g *ReadingGrid) ReadingSeparator() string { return g.separator }

// SetReadingSeparator changes the separator used for combined readings.
// Changing it on a non-empty grid is not supported: existing node readings
// were joined with the old separator.
func (g *ReadingGrid) SetReadingSeparator(separator string) {
	g.separator = separator
}

// Readings returns a copy of the current reading sequence.
func (g *ReadingGrid) Readings() []string {
	readings := make([]string, len(g.readings))
	copy(readings, g.readings)
	return readings
}

// ReadingCount returns the number of readings in the grid.
func (g *ReadingGrid) ReadingCount() int { return len(g.readings) }

// SpanCount returns the number of spans; equal to ReadingCount after any
// mutation completes.
func (g *ReadingGrid) SpanCount() int { return len(g.spans) }

// InsertReading inserts a reading at the cursor and advances the cursor.
// Returns false, leaving the grid unchanged, if the reading is empty,
// equals the separator, or has no unigrams at all.
func (g *ReadingGrid) InsertReading(reading string) bool {
	if reading == "" || reading == g.separator {
		return false
	}
	if !g.lm.HasUnigrams(reading) {
		return false
	}

	g.readings = append(g.readings, "")
	copy(g.readings[g.cursor+1:], g.readings[g.cursor:])
	g.readings[g.cursor] = reading

	g.expandGridAt(g.cursor)
	g.update()

	// Cursor must only move after update(): the refresh window is centered
	// on the pre-advance cursor.
	g.cursor++
	return true
}

// DeleteReadingBeforeCursor removes the reading immediately before the
// cursor. Returns false if the cursor is at the head.
func (g *ReadingGrid) DeleteReadingBeforeCursor() bool {
	if g.cursor == 0 {
		return false
	}

	g.readings = append(g.readings[:g.cursor-1], g.readings[g.cursor:]...)
	// Cursor must decrement before grid shrinking and update.
	g.cursor--
	g.shrinkGridAt(g.cursor)
	g.update()
	return true
}

// DeleteReadingAfterCursor removes the reading immediately after the
// cursor. Returns false if the cursor is at the end.
func (g *ReadingGrid) DeleteReadingAfterCursor() bool {
	if g.cursor == len(g.readings) {
		return false
	}

	g.readings = append(g.readings[:g.cursor], g.readings[g.cursor+1:]...)
	g.shrinkGridAt(g.cursor)
	g.update()
	return true
}

// FindInSpan returns the first node overlapping the cursor position that
// satisfies the predicate, or nil. A cursor at the very end is treated as
// the last position.
func (g *ReadingGrid) FindInSpan(cursor int, predicate func(*Node) bool) *Node {
	if cursor > len(g.readings) {
		panic(fmt.Sprintf("lattice: cursor %d out of range [0, %d]", cursor, len(g.readings)))
	}
	loc := cursor
	if loc == len(g.readings) {
		loc--
	}
	for _, nis := range g.overlappingNodesAt(loc) {
		if predicate(nis.Node) {
			return nis.Node
		}
	}
	return nil
}

// CandidatesAt lists every unigram of every node overlapping loc. Nodes are
// visited longest-spanning first (stable within equal lengths); within a
// node, unigrams keep their descending-score order. A loc at the very end
// is treated as the last position.
func (g *ReadingGrid) CandidatesAt(loc int) []Candidate {
	var result []Candidate
	if len(g.readings) == 0 || loc > len(g.readings) {
		return result
	}

	queryLoc := loc
	if queryLoc == len(g.readings) {
		queryLoc--
	}
	nodes := g.overlappingNodesAt(queryLoc)

	// Longer words first; stable within equal lengths.
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Node.SpanningLength() > nodes[j].Node.SpanningLength()
	})

	for _, nis := range nodes {
		for _, unigram := range nis.Node.Unigrams() {
			result = append(result, Candidate{
				Reading:  nis.Node.Reading(),
				Value:    unigram.Value,
				RawValue: unigram.RawValue,
			})
		}
	}
	return result
}

// OverrideCandidate applies the candidate's value at loc, matching only
// nodes whose combined reading equals the candidate's reading.
func (g *ReadingGrid) OverrideCandidate(loc int, candidate Candidate, overrideType OverrideType) bool {
	return g.overrideCandidate(loc, &candidate.Reading, candidate.Value, overrideType)
}

// OverrideCandidateValue applies the value at loc against any overlapping
// node regardless of reading.
func (g *ReadingGrid) OverrideCandidateValue(loc int, value string, overrideType OverrideType) bool {
	return g.overrideCandidate(loc, nil, value, overrideType)
}

func (g *ReadingGrid) overrideCandidate(loc int, reading *string, value string, overrideType OverrideType) bool {
	if loc > len(g.readings) {
		return false
	}

	queryLoc := loc
	if queryLoc == len(g.readings) {
		queryLoc--
	}

	var overridden *NodeInSpan
	for _, nis := range g.overlappingNodesAt(queryLoc) {
		if reading != nil && nis.Node.Reading() != *reading {
			continue
		}
		if nis.Node.SelectOverrideUnigram(value, overrideType) {
			overridden = &nis
			break
		}
	}

	if overridden == nil {
		// Nothing gets overridden.
		return false
	}

	// An override commits to one node covering one stretch of readings. Any
	// other node overlapping that stretch cannot co-exist with the choice in
	// a walk, so stale overrides on them must be cleared; leaving them live
	// would quietly bias walks after later edits.
	for i := overridden.SpanIndex; i < overridden.SpanIndex+overridden.Node.SpanningLength() && i < len(g.spans); i++ {
		for _, nis := range g.overlappingNodesAt(i) {
			if nis.Node != overridden.Node {
				nis.Node.Reset()
			}
		}
	}
	return true
}

// overlappingNodesAt returns every node covering position loc: first the
// nodes starting at loc by increasing length, then nodes starting before loc
// that extend through it.
func (g *ReadingGrid) overlappingNodesAt(loc int) []NodeInSpan {
	var results []NodeInSpan
	if len(g.spans) == 0 || loc >= len(g.spans) {
		return results
	}

	for length := 1; length <= g.spans[loc].MaxLength(); length++ {
		if node := g.spans[loc].NodeOf(length); node != nil {
			results = append(results, NodeInSpan{Node: node, SpanIndex: loc})
		}
	}

	begin := loc - (MaximumSpanLength - 1)
	if begin < 0 {
		begin = 0
	}
	for i := begin; i < loc; i++ {
		beginLen := loc - i + 1
		endLen := g.spans[i].MaxLength()
		for j := beginLen; j <= endLen; j++ {
			if node := g.spans[i].NodeOf(j); node != nil {
				results = append(results, NodeInSpan{Node: node, SpanIndex: i})
			}
		}
	}
	return results
}

// expandGridAt splices a fresh span in at loc and removes nodes broken by
// the split.
func (g *ReadingGrid) expandGridAt(loc int) {
	g.spans = append(g.spans, Span{})
	copy(g.spans[loc+1:], g.spans[loc:])
	g.spans[loc] = Span{}
	if loc == 0 || loc == len(g.spans)-1 {
		return
	}
	g.removeAffectedNodes(loc)
}

// shrinkGridAt removes the span at loc and removes nodes that straddled it.
func (g *ReadingGrid) shrinkGridAt(loc int) {
	if loc == len(g.spans) {
		return
	}
	g.spans = append(g.spans[:loc], g.spans[loc+1:]...)
	g.removeAffectedNodes(loc)
}

// removeAffectedNodes drops, from every span within reach of loc, any node
// that extended to or past loc. Splicing a span in (or out) at loc breaks
// exactly those nodes:
//
//	Span index 0   1   2   3
//	               (---)
//	               (-------)
//	           (-----------)
//
// after inserting a span at 2, the two longer nodes straddle the splice
// point and must go; the length-1 node at 1 survives.
func (g *ReadingGrid) removeAffectedNodes(loc int) {
	if len(g.spans) == 0 {
		return
	}
	affectedLength := MaximumSpanLength - 1
	begin := 0
	if loc > affectedLength {
		begin = loc - affectedLength
	}
	end := 0
	if loc >= 1 {
		end = loc - 1
	}
	for i := begin; i <= end; i++ {
		g.spans[i].RemoveNodesOfOrLongerThan(loc - i + 1)
	}
}

func (g *ReadingGrid) insertNode(loc int, node *Node) {
	if loc >= len(g.spans) {
		panic(fmt.Sprintf("lattice: span index %d out of range [0, %d)", loc, len(g.spans)))
	}
	g.spans[loc].Add(node)
}

func (g *ReadingGrid) combineReading(from, to int) string {
	return strings.Join(g.readings[from:to], g.separator)
}

// hasNodeAt reports whether the span at loc already holds a node of the
// given length with exactly this combined reading.
func (g *ReadingGrid) hasNodeAt(loc, readingLen int, reading string) bool {
	if loc > len(g.spans) {
		return false
	}
	node := g.spans[loc].NodeOf(readingLen)
	if node == nil {
		return false
	}
	return reading == node.Reading()
}

// update refreshes the lattice in a bounded window around the cursor: every
// position within MaximumSpanLength of the cursor gets nodes for every
// combined reading the language model knows. A single edit therefore only
// touches O(MaximumSpanLength²) grid cells.
func (g *ReadingGrid) update() {
	begin := 0
	if g.cursor > MaximumSpanLength {
		begin = g.cursor - MaximumSpanLength
	}
	end := g.cursor + MaximumSpanLength
	if end > len(g.readings) {
		end = len(g.readings)
	}

	for pos := begin; pos < end; pos++ {
		for length := 1; length <= MaximumSpanLength && pos+length <= end; length++ {
			combinedReading := g.combineReading(pos, pos+length)
			if g.hasNodeAt(pos, length, combinedReading) {
				continue
			}
			unigrams := g.lm.Unigrams(combinedReading)
			if len(unigrams) == 0 {
				continue
			}
			g.insertNode(pos, NewNode(combinedReading, length, unigrams))
		}
	}
}
