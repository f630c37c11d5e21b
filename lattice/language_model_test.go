package lattice

import "testing"

func TestScoreRankedLanguageModel(t *testing.T) {
	lm := &mapLanguageModel{entries: map[string][]Unigram{
		"duo": {
			NewUnigram("c", -9.0),
			NewUnigram("a", -2.0),
			{Value: "b1", RawValue: "b1", Score: -5.0},
			{Value: "b2", RawValue: "b2", Score: -5.0},
		},
	}}
	ranked := NewScoreRankedLanguageModel(lm)

	t.Run("sorts by descending score keeping ties stable", func(t *testing.T) {
		unigrams := ranked.Unigrams("duo")
		want := []string{"a", "b1", "b2", "c"}
		if len(unigrams) != len(want) {
			t.Fatalf("got %d unigrams, want %d", len(unigrams), len(want))
		}
		for i, value := range want {
			if unigrams[i].Value != value {
				t.Errorf("unigrams[%d].Value = %q, want %q", i, unigrams[i].Value, value)
			}
		}
	})

	t.Run("delegates existence queries", func(t *testing.T) {
		if !ranked.HasUnigrams("duo") {
			t.Error("HasUnigrams(duo) = false, want true")
		}
		if ranked.HasUnigrams("nope") {
			t.Error("HasUnigrams(nope) = true, want false")
		}
	})

	t.Run("unknown reading yields an empty slice", func(t *testing.T) {
		if got := ranked.Unigrams("nope"); len(got) != 0 {
			t.Errorf("Unigrams(nope) = %v, want empty", got)
		}
	})
}
