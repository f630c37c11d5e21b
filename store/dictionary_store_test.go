package store

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/gcbaptista/go-composer-engine/lattice"
)

func TestDictionaryStoreAddAndLookup(t *testing.T) {
	ds := NewDictionaryStore()
	ds.Add("gao", lattice.NewUnigram("高", -2.9))
	ds.Add("gao", lattice.NewUnigram("膏", -4.5))
	ds.Add("ke", lattice.NewUnigram("科", -3.0))

	if !ds.HasUnigrams("gao") {
		t.Error("HasUnigrams(gao) = false, want true")
	}
	if ds.HasUnigrams("ji") {
		t.Error("HasUnigrams(ji) = true, want false")
	}

	unigrams := ds.Unigrams("gao")
	if len(unigrams) != 2 {
		t.Fatalf("Unigrams(gao) returned %d entries, want 2", len(unigrams))
	}
	if unigrams[0].Value != "高" || unigrams[1].Value != "膏" {
		t.Errorf("Unigrams(gao) = %v, want insertion order preserved", unigrams)
	}

	if got := ds.ReadingCount(); got != 2 {
		t.Errorf("ReadingCount() = %d, want 2", got)
	}
	if got := ds.UnigramCount(); got != 3 {
		t.Errorf("UnigramCount() = %d, want 3", got)
	}
}

func TestDictionaryStoreReturnsCopies(t *testing.T) {
	ds := NewDictionaryStore()
	ds.Add("gao", lattice.NewUnigram("高", -2.9))

	unigrams := ds.Unigrams("gao")
	unigrams[0].Value = "mutated"

	if got := ds.Unigrams("gao")[0].Value; got != "高" {
		t.Errorf("stored unigram mutated through returned slice: %q", got)
	}
}

func TestDictionaryStoreReadings(t *testing.T) {
	ds := NewDictionaryStore()
	ds.Add("gao", lattice.NewUnigram("高", -2.9))
	ds.Add("ke", lattice.NewUnigram("科", -3.0))

	readings := ds.Readings()
	if len(readings) != 2 {
		t.Fatalf("Readings() returned %d entries, want 2", len(readings))
	}
	seen := map[string]bool{}
	for _, reading := range readings {
		seen[reading] = true
	}
	if !seen["gao"] || !seen["ke"] {
		t.Errorf("Readings() = %v, want gao and ke", readings)
	}
}

func TestDictionaryStoreClear(t *testing.T) {
	ds := NewDictionaryStore()
	ds.Add("gao", lattice.NewUnigram("高", -2.9))
	ds.Clear()
	if ds.ReadingCount() != 0 {
		t.Errorf("ReadingCount() = %d after Clear, want 0", ds.ReadingCount())
	}
}

func TestDictionaryStoreGobRoundTrip(t *testing.T) {
	ds := NewDictionaryStore()
	ds.Add("gao", lattice.NewUnigram("高", -2.9))
	ds.Add("ke-ji", lattice.Unigram{Value: "科技", RawValue: "科技", Score: -5.4})

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ds); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded := &DictionaryStore{}
	if err := gob.NewDecoder(&buf).Decode(decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded.ReadingCount() != 2 {
		t.Fatalf("decoded ReadingCount() = %d, want 2", decoded.ReadingCount())
	}
	unigrams := decoded.Unigrams("ke-ji")
	if len(unigrams) != 1 || unigrams[0].Value != "科技" || unigrams[0].Score != -5.4 {
		t.Errorf("decoded Unigrams(ke-ji) = %v", unigrams)
	}
}

func TestDictionaryStoreGobDecodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&DictionaryStore{}); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded := &DictionaryStore{}
	if err := gob.NewDecoder(&buf).Decode(decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Entries == nil {
		t.Error("Entries map not initialized after decoding an empty store")
	}
}
