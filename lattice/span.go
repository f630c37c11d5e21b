package lattice

import "fmt"

// MaximumSpanLength is the largest number of readings a single node may
// cover. It is a contract, not a tuning knob: it bounds both the refresh
// window and the invalidation window after an edit.
const MaximumSpanLength = 10

// Span holds the nodes that begin at one reading position, indexed by
// spanning length. A span stores at most one node per length.
type Span struct {
	nodes     [MaximumSpanLength]*Node
	maxLength int
}

// Clear empties all slots.
func (s *Span) Clear() {
	s.nodes = [MaximumSpanLength]*Node{}
	s.maxLength = 0
}

// MaxLength returns the largest occupied spanning length, 0 if the span is
// empty.
func (s *Span) MaxLength() int { return s.maxLength }

// Add stores the node at the slot for its spanning length, replacing any
// prior occupant.
func (s *Span) Add(node *Node) {
	length := node.SpanningLength()
	s.nodes[length-1] = node
	if length >= s.maxLength {
		s.maxLength = length
	}
}

// NodeOf returns the node of the given spanning length, or nil. The length
// must be within [1, MaximumSpanLength].
func (s *Span) NodeOf(length int) *Node {
	checkSpanLength(length)
	return s.nodes[length-1]
}

// RemoveNodesOfOrLongerThan clears every slot of the given length or longer
// and recomputes the cached max length from the remaining slots.
func (s *Span) RemoveNodesOfOrLongerThan(length int) {
	checkSpanLength(length)
	for i := length - 1; i < MaximumSpanLength; i++ {
		s.nodes[i] = nil
	}
	s.maxLength = 0
	for i := length - 2; i >= 0; i-- {
		if s.nodes[i] != nil {
			s.maxLength = i + 1
			return
		}
	}
}

func checkSpanLength(length int) {
	if length < 1 || length > MaximumSpanLength {
		panic(fmt.Sprintf("lattice: span length %d out of range [1, %d]", length, MaximumSpanLength))
	}
}
