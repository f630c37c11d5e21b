package lattice

import "testing"

// mapLanguageModel is a test language model backed by a literal map. Entries
// are deliberately unsorted; the grid's ranked adapter is responsible for
// ordering.
type mapLanguageModel struct {
	entries map[string][]Unigram
}

func (m *mapLanguageModel) Unigrams(reading string) []Unigram {
	unigrams := m.entries[reading]
	result := make([]Unigram, len(unigrams))
	copy(result, unigrams)
	return result
}

func (m *mapLanguageModel) HasUnigrams(reading string) bool {
	return len(m.entries[reading]) > 0
}

// newSampleLanguageModel returns the model used across the walk scenarios:
// three syllables that compose into one, two or three word candidates, plus
// the standalone syllable xin.
func newSampleLanguageModel() *mapLanguageModel {
	return &mapLanguageModel{entries: map[string][]Unigram{
		"gao":       {NewUnigram("高", -2.9), NewUnigram("膏", -4.5)},
		"ke":        {NewUnigram("科", -3.0)},
		"ji":        {NewUnigram("技", -3.1)},
		"gao-ke":    {NewUnigram("高科", -5.5)},
		"ke-ji":     {NewUnigram("科技", -5.4)},
		"gao-ke-ji": {NewUnigram("高科技", -6.0)},
		"xin":       {NewUnigram("新", -3.0)},
	}}
}

func insertReadings(t *testing.T, grid *ReadingGrid, readings ...string) {
	t.Helper()
	for _, reading := range readings {
		if !grid.InsertReading(reading) {
			t.Fatalf("InsertReading(%q) = false, want true", reading)
		}
	}
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// checkGridInvariants verifies the structural invariants that must hold
// after every mutation: span count matches reading count, the cursor is in
// range, and every stored node covers in-range readings whose separator-join
// equals the node's combined reading.
func checkGridInvariants(t *testing.T, grid *ReadingGrid) {
	t.Helper()
	readings := grid.Readings()
	if grid.SpanCount() != len(readings) {
		t.Fatalf("span count = %d, want %d", grid.SpanCount(), len(readings))
	}
	if grid.Cursor() > len(readings) {
		t.Fatalf("cursor %d exceeds reading count %d", grid.Cursor(), len(readings))
	}
	for i := 0; i < grid.SpanCount(); i++ {
		for length := 1; length <= MaximumSpanLength; length++ {
			node := grid.spans[i].NodeOf(length)
			if node == nil {
				continue
			}
			if i+length > len(readings) {
				t.Fatalf("node at span %d length %d extends past %d readings", i, length, len(readings))
			}
			if node.SpanningLength() != length {
				t.Fatalf("node at span %d slot %d has spanning length %d", i, length, node.SpanningLength())
			}
			if combined := grid.combineReading(i, i+length); node.Reading() != combined {
				t.Fatalf("node at span %d length %d reads %q, want %q", i, length, node.Reading(), combined)
			}
		}
	}
}

// spanTriple identifies one stored node by position, length and reading.
type spanTriple struct {
	index   int
	length  int
	reading string
}

func collectSpanTriples(grid *ReadingGrid) []spanTriple {
	var triples []spanTriple
	for i := 0; i < grid.SpanCount(); i++ {
		for length := 1; length <= MaximumSpanLength; length++ {
			if node := grid.spans[i].NodeOf(length); node != nil {
				triples = append(triples, spanTriple{index: i, length: length, reading: node.Reading()})
			}
		}
	}
	return triples
}
