package engine

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/gcbaptista/go-composer-engine/internal/errors"
	"github.com/gcbaptista/go-composer-engine/internal/langmodel"
	"github.com/gcbaptista/go-composer-engine/internal/persistence"
	"github.com/gcbaptista/go-composer-engine/internal/typoutil"
	"github.com/gcbaptista/go-composer-engine/model"
	"github.com/gcbaptista/go-composer-engine/store"
)

const (
	suggestionMaxDistance = 2
	suggestionMaxResults  = 5
)

// CreateDictionary creates a new, empty dictionary and persists it.
func (e *Engine) CreateDictionary(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("name", "dictionary name cannot be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.dictionaries[name]; exists {
		return errors.NewDictionaryAlreadyExistsError(name)
	}

	dictStore := store.NewDictionaryStore()
	langModel, err := langmodel.NewService(dictStore)
	if err != nil {
		return fmt.Errorf("failed to create language model service for '%s': %w", name, err)
	}

	if err := persistence.SaveDictionary(e.dataDir, name, dictStore); err != nil {
		return fmt.Errorf("failed to persist new dictionary '%s': %w", name, err)
	}

	e.dictionaries[name] = &dictionaryInstance{store: dictStore, langModel: langModel}
	log.Printf("Dictionary '%s' created and persisted.", name)
	return nil
}

// DeleteDictionary removes a dictionary from memory and disk. A dictionary
// still referenced by a composer cannot be deleted.
func (e *Engine) DeleteDictionary(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.dictionaries[name]; !exists {
		return errors.NewDictionaryNotFoundError(name)
	}
	for composerName, instance := range e.composers {
		if instance.Settings().Dictionary == name {
			return errors.NewValidationError("name",
				fmt.Sprintf("dictionary '%s' is in use by composer '%s'", name, composerName))
		}
	}

	if err := persistence.DeleteDictionary(e.dataDir, name); err != nil {
		return fmt.Errorf("failed to delete dictionary '%s' from disk: %w", name, err)
	}
	delete(e.dictionaries, name)
	log.Printf("Dictionary '%s' deleted.", name)
	return nil
}

// ListDictionaries returns stats for every dictionary, sorted by name.
func (e *Engine) ListDictionaries() []model.DictionaryStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stats := make([]model.DictionaryStats, 0, len(e.dictionaries))
	for name, instance := range e.dictionaries {
		dictStats := instance.langModel.Stats()
		dictStats.Name = name
		stats = append(stats, dictStats)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// GetDictionaryStats retrieves stats for one dictionary.
func (e *Engine) GetDictionaryStats(name string) (model.DictionaryStats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.dictionaries[name]
	if !exists {
		return model.DictionaryStats{}, errors.NewDictionaryNotFoundError(name)
	}
	stats := instance.langModel.Stats()
	stats.Name = name
	return stats, nil
}

// AddDictionaryEntries validates and stores entries, then persists the
// dictionary. Returns the number of entries added.
func (e *Engine) AddDictionaryEntries(name string, entries []model.DictionaryEntry) (int, error) {
	e.mu.RLock()
	instance, exists := e.dictionaries[name]
	e.mu.RUnlock()
	if !exists {
		return 0, errors.NewDictionaryNotFoundError(name)
	}

	added, err := instance.langModel.AddEntries(entries)
	if err != nil {
		return added, errors.NewValidationError("entries", err.Error())
	}

	if err := persistence.SaveDictionary(e.dataDir, name, instance.store); err != nil {
		log.Printf("Warning: Failed to persist dictionary '%s' after adding entries: %v", name, err)
	}
	return added, nil
}

// PersistDictionary writes a dictionary's current state to disk.
func (e *Engine) PersistDictionary(name string) error {
	e.mu.RLock()
	instance, exists := e.dictionaries[name]
	e.mu.RUnlock()
	if !exists {
		return errors.NewDictionaryNotFoundError(name)
	}
	return persistence.SaveDictionary(e.dataDir, name, instance.store)
}

// SuggestReadings returns known readings close to an unknown one, closest
// first. Unknown dictionaries yield no suggestions.
func (e *Engine) SuggestReadings(name, reading string) []string {
	e.mu.RLock()
	instance, exists := e.dictionaries[name]
	e.mu.RUnlock()
	if !exists {
		return nil
	}
	return suggestKnownReadings(instance.store, reading)
}

func suggestKnownReadings(dictionary *store.DictionaryStore, reading string) []string {
	suggestions := typoutil.SuggestReadings(dictionary.Readings(), reading, suggestionMaxDistance, suggestionMaxResults)
	readings := make([]string, 0, len(suggestions))
	for _, suggestion := range suggestions {
		readings = append(readings, suggestion.Reading)
	}
	return readings
}
