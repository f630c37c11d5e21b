package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/gcbaptista/go-composer-engine/lattice"
)

// DictionaryStore holds a dictionary's unigram table: every combined reading
// the dictionary knows, mapped to its candidate unigrams in insertion order.
// Ranking by score is the ranked adapter's job, not the store's.
type DictionaryStore struct {
	Mu      sync.RWMutex
	Entries map[string][]lattice.Unigram
}

// NewDictionaryStore creates an empty dictionary store.
func NewDictionaryStore() *DictionaryStore {
	return &DictionaryStore{Entries: make(map[string][]lattice.Unigram)}
}

// Add appends a unigram under the given combined reading.
func (ds *DictionaryStore) Add(reading string, unigram lattice.Unigram) {
	ds.Mu.Lock()
	defer ds.Mu.Unlock()
	ds.Entries[reading] = append(ds.Entries[reading], unigram)
}

// Unigrams returns a copy of the unigrams stored for the reading, possibly
// empty. The copy keeps callers (and the ranked adapter's in-place sort)
// from mutating the stored slice.
func (ds *DictionaryStore) Unigrams(reading string) []lattice.Unigram {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	stored := ds.Entries[reading]
	if len(stored) == 0 {
		return nil
	}
	unigrams := make([]lattice.Unigram, len(stored))
	copy(unigrams, stored)
	return unigrams
}

// HasUnigrams reports whether any unigram is stored for the reading.
func (ds *DictionaryStore) HasUnigrams(reading string) bool {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	return len(ds.Entries[reading]) > 0
}

// Readings returns every combined reading the store knows, in no particular
// order.
func (ds *DictionaryStore) Readings() []string {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	readings := make([]string, 0, len(ds.Entries))
	for reading := range ds.Entries {
		readings = append(readings, reading)
	}
	return readings
}

// ReadingCount returns the number of distinct combined readings stored.
func (ds *DictionaryStore) ReadingCount() int {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	return len(ds.Entries)
}

// UnigramCount returns the total number of unigrams across all readings.
func (ds *DictionaryStore) UnigramCount() int {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	count := 0
	for _, unigrams := range ds.Entries {
		count += len(unigrams)
	}
	return count
}

// Clear removes every entry.
func (ds *DictionaryStore) Clear() {
	ds.Mu.Lock()
	defer ds.Mu.Unlock()
	ds.Entries = make(map[string][]lattice.Unigram)
}

// gobDictionaryStoreData is a helper struct for Gob encoding/decoding
// DictionaryStore data. It excludes the mutex.
type gobDictionaryStoreData struct {
	Entries map[string][]lattice.Unigram
}

// GobEncode implements the gob.GobEncoder interface for DictionaryStore.
func (ds *DictionaryStore) GobEncode() ([]byte, error) {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()

	dataToEncode := gobDictionaryStoreData{Entries: ds.Entries}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode dictionary store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for DictionaryStore.
func (ds *DictionaryStore) GobDecode(data []byte) error {
	decodedData := gobDictionaryStoreData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode dictionary store data: %w", err)
	}

	ds.Mu.Lock()
	defer ds.Mu.Unlock()

	ds.Entries = decodedData.Entries

	// Ensure the map is initialized if it was nil after decoding
	if ds.Entries == nil {
		ds.Entries = make(map[string][]lattice.Unigram)
	}

	return nil
}
