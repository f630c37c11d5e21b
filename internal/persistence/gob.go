// Package persistence stores dictionary snapshots on disk using gob
// encoding. Composer grids are never persisted; only dictionary data
// survives restarts.
package persistence

import (
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gcbaptista/go-composer-engine/store"
)

// SnapshotFileName is the file a dictionary is saved under inside its
// directory.
const SnapshotFileName = "dictionary.gob"

// SaveDictionary encodes the dictionary store with gob and writes it under
// dir/name/dictionary.gob, creating directories as needed.
func SaveDictionary(dir, name string, dictionary *store.DictionaryStore) error {
	dictionaryDir := filepath.Join(dir, name)
	if err := os.MkdirAll(dictionaryDir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dictionaryDir, err)
	}

	filePath := filepath.Join(dictionaryDir, SnapshotFileName)
	file, err := os.Create(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			// Log the error but don't override the main error
			log.Printf("Warning: failed to close file %s: %v", filePath, closeErr)
		}
	}()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(dictionary); err != nil {
		return fmt.Errorf("failed to gob encode dictionary to %s: %w", filePath, err)
	}
	return nil
}

// LoadDictionary decodes a dictionary snapshot from dir/name/dictionary.gob.
// If the snapshot does not exist, it returns os.ErrNotExist so callers can
// handle fresh starts gracefully.
func LoadDictionary(dir, name string) (*store.DictionaryStore, error) {
	filePath := filepath.Join(dir, name, SnapshotFileName)
	file, err := os.Open(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			// Log the error but don't override the main error
			log.Printf("Warning: failed to close file %s: %v", filePath, closeErr)
		}
	}()

	dictionary := store.NewDictionaryStore()
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(dictionary); err != nil {
		return nil, fmt.Errorf("failed to gob decode dictionary from %s: %w", filePath, err)
	}
	return dictionary, nil
}

// DeleteDictionary removes a dictionary's directory and its snapshot.
func DeleteDictionary(dir, name string) error {
	dictionaryDir := filepath.Join(dir, name)
	if err := os.RemoveAll(dictionaryDir); err != nil {
		return fmt.Errorf("failed to remove directory %s: %w", dictionaryDir, err)
	}
	return nil
}

// ListDictionaries returns the names of dictionaries that have a snapshot
// under dir.
func ListDictionaries(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data directory %s: %w", dir, err)
	}

	var names []string
	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, item.Name(), SnapshotFileName)); err == nil {
			names = append(names, item.Name())
		}
	}
	return names, nil
}
