// Package testing provides utilities and helpers for testing the composer engine.
package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-composer-engine/config"
	"github.com/gcbaptista/go-composer-engine/internal/engine"
	"github.com/gcbaptista/go-composer-engine/model"
	"github.com/gcbaptista/go-composer-engine/services"
)

// SampleDictionaryEntries returns the dictionary used across service-level
// tests: three syllables composing into one, two or three word candidates,
// plus the standalone syllable xin.
func SampleDictionaryEntries() []model.DictionaryEntry {
	return []model.DictionaryEntry{
		{Reading: "gao", Value: "高", Score: -2.9},
		{Reading: "gao", Value: "膏", Score: -4.5},
		{Reading: "ke", Value: "科", Score: -3.0},
		{Reading: "ji", Value: "技", Score: -3.1},
		{Reading: "xin", Value: "新", Score: -3.0},
		{Reading: "gao-ke", Value: "高科", Score: -5.5},
		{Reading: "ke-ji", Value: "科技", Score: -5.4},
		{Reading: "gao-ke-ji", Value: "高科技", Score: -6.0},
	}
}

// CreateTestEngine creates an engine instance backed by a temporary data
// directory, with shutdown registered for cleanup.
func CreateTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.NewEngine(t.TempDir())
	t.Cleanup(eng.Stop)
	return eng
}

// CreateTestDictionary creates a dictionary populated with the sample
// entries.
func CreateTestDictionary(t *testing.T, eng *engine.Engine, name string) {
	t.Helper()
	require.NoError(t, eng.CreateDictionary(name))
	added, err := eng.AddDictionaryEntries(name, SampleDictionaryEntries())
	require.NoError(t, err)
	require.Equal(t, len(SampleDictionaryEntries()), added)
}

// CreateTestComposer creates a composer over the named dictionary and
// returns its accessor.
func CreateTestComposer(t *testing.T, eng *engine.Engine, name, dictionary string) services.ComposerAccessor {
	t.Helper()
	require.NoError(t, eng.CreateComposer(config.ComposerSettings{Name: name, Dictionary: dictionary}))
	composer, err := eng.GetComposer(name)
	require.NoError(t, err)
	return composer
}

// InsertReadings inserts readings in order, failing the test on any error.
func InsertReadings(t *testing.T, composer services.ComposerAccessor, readings ...string) {
	t.Helper()
	for _, reading := range readings {
		require.NoError(t, composer.InsertReading(reading), "inserting reading %q", reading)
	}
}
