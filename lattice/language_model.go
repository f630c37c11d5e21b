// Package lattice implements the sentence-composition core of the engine: a
// grid of overlapping candidate spans over a sequence of phonetic readings,
// and a Viterbi walk that picks the most likely segmentation of the whole
// input into words.
package lattice

import "sort"

// Unigram is a single language-model entry for a combined reading.
type Unigram struct {
	Value    string  `json:"value"`               // Displayed form (e.g., "高科技")
	RawValue string  `json:"raw_value,omitempty"` // Underlying form when it differs from Value (e.g., macro expansions)
	Score    float64 `json:"score"`               // Additive score, typically a negative log probability
}

// NewUnigram creates a unigram whose raw value equals its value.
func NewUnigram(value string, score float64) Unigram {
	return Unigram{Value: value, RawValue: value, Score: score}
}

// LanguageModel supplies candidate unigrams for combined readings.
// Implementations must be pure with respect to the grid: both methods are
// total and fail only by returning an empty slice or false.
type LanguageModel interface {
	// Unigrams returns the candidate unigrams for a combined reading,
	// possibly empty.
	Unigrams(reading string) []Unigram

	// HasUnigrams reports whether any unigram exists for the reading.
	// Equivalent to len(Unigrams(reading)) > 0 but may be cheaper.
	HasUnigrams(reading string) bool
}

// ScoreRankedLanguageModel wraps a LanguageModel so that Unigrams always
// returns candidates sorted by descending score. Ties keep the underlying
// model's order. Nodes rely on this contract: unigrams[0] is the
// top-scoring candidate.
type ScoreRankedLanguageModel struct {
	lm LanguageModel
}

// NewScoreRankedLanguageModel wraps the given language model.
func NewScoreRankedLanguageModel(lm LanguageModel) *ScoreRankedLanguageModel {
	return &ScoreRankedLanguageModel{lm: lm}
}

// Unigrams returns the underlying model's unigrams stable-sorted by
// descending score.
func (m *ScoreRankedLanguageModel) Unigrams(reading string) []Unigram {
	unigrams := m.lm.Unigrams(reading)
	sort.SliceStable(unigrams, func(i, j int) bool {
		return unigrams[i].Score > unigrams[j].Score
	})
	return unigrams
}

// HasUnigrams delegates to the underlying model.
func (m *ScoreRankedLanguageModel) HasUnigrams(reading string) bool {
	return m.lm.HasUnigrams(reading)
}
