package lattice

import "fmt"

// OverrideType describes how a user selection pins or biases a node's
// candidate during the walk.
type OverrideType int

const (
	// OverrideNone means the node carries no user selection.
	OverrideNone OverrideType = iota

	// OverrideValueWithHighScore is a hard pin: the node's score becomes
	// OverridingScore so the walk must pick it whenever the lattice allows.
	OverrideValueWithHighScore

	// OverrideValueWithScoreFromTopUnigram is a soft correction: the user
	// chose a lower-ranked candidate but the node scores as if the top
	// unigram were selected, so a genuinely better competing span can
	// still win.
	OverrideValueWithScoreFromTopUnigram
)

// OverridingScore is the sentinel score a hard-pinned node reports. It is
// higher than any typical negative log probability, so such a node dominates
// in the walk. If a language model legitimately produces non-negative
// scores, this dominance no longer holds.
const OverridingScore float64 = 0

// Node is one lattice vertex: a combined reading, the number of readings it
// covers, its ranked candidate unigrams, and the current selection plus
// override state. Nodes are shared by reference between the span that stores
// them and any walk result a caller holds; selection and override mutations
// are visible to every holder.
type Node struct {
	reading        string
	spanningLength int
	unigrams       []Unigram
	currentIndex   int
	overrideType   OverrideType
}

// NewNode creates a node over the given combined reading. The unigrams must
// be non-empty and already ranked by descending score (see
// ScoreRankedLanguageModel); the first one is the initial selection.
func NewNode(reading string, spanningLength int, unigrams []Unigram) *Node {
	if spanningLength < 1 || spanningLength > MaximumSpanLength {
		panic(fmt.Sprintf("lattice: node spanning length %d out of range [1, %d]", spanningLength, MaximumSpanLength))
	}
	return &Node{
		reading:        reading,
		spanningLength: spanningLength,
		unigrams:       unigrams,
	}
}

// Reading returns the combined reading this node covers.
func (n *Node) Reading() string { return n.reading }

// SpanningLength returns the number of readings this node covers.
func (n *Node) SpanningLength() int { return n.spanningLength }

// Unigrams returns the node's ranked candidate unigrams.
func (n *Node) Unigrams() []Unigram { return n.unigrams }

// CurrentUnigram returns the currently selected unigram, or a zero Unigram
// if the node has none.
func (n *Node) CurrentUnigram() Unigram {
	if len(n.unigrams) == 0 {
		return Unigram{}
	}
	return n.unigrams[n.currentIndex]
}

// Value returns the value of the currently selected unigram, or "" if the
// node has none.
func (n *Node) Value() string {
	if len(n.unigrams) == 0 {
		return ""
	}
	return n.unigrams[n.currentIndex].Value
}

// Score returns the node's score as seen by the walk. A hard-pinned node
// reports OverridingScore; a soft-corrected node reports the top unigram's
// score regardless of the selection; otherwise the selected unigram's score.
func (n *Node) Score() float64 {
	if len(n.unigrams) == 0 {
		return 0
	}
	switch n.overrideType {
	case OverrideValueWithHighScore:
		return OverridingScore
	case OverrideValueWithScoreFromTopUnigram:
		return n.unigrams[0].Score
	default:
		return n.unigrams[n.currentIndex].Score
	}
}

// IsOverridden reports whether a user selection is in effect.
func (n *Node) IsOverridden() bool {
	return n.overrideType != OverrideNone
}

// Reset clears any override and re-selects the top unigram.
func (n *Node) Reset() {
	n.currentIndex = 0
	n.overrideType = OverrideNone
}

// SelectOverrideUnigram selects the first unigram whose value equals value
// and records the override type. Returns false if no unigram matches.
// Calling with OverrideNone is a precondition violation.
func (n *Node) SelectOverrideUnigram(value string, overrideType OverrideType) bool {
	if overrideType == OverrideNone {
		panic("lattice: SelectOverrideUnigram requires a non-none override type")
	}
	for i, unigram := range n.unigrams {
		if unigram.Value == value {
			n.currentIndex = i
			n.overrideType = overrideType
			return true
		}
	}
	return false
}
