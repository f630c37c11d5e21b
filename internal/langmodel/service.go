// Package langmodel implements the lattice.LanguageModel contract on top of
// a dictionary store, plus bulk loading of dictionary data.
package langmodel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gcbaptista/go-composer-engine/lattice"
	"github.com/gcbaptista/go-composer-engine/model"
	"github.com/gcbaptista/go-composer-engine/store"
)

// Service answers language-model queries for one dictionary. It is a thin,
// read-mostly layer over the store; ranking is left to the grid's ranked
// adapter.
type Service struct {
	dictionary *store.DictionaryStore
}

// NewService creates a language-model service over the given dictionary
// store.
func NewService(dictionary *store.DictionaryStore) (*Service, error) {
	if dictionary == nil {
		return nil, fmt.Errorf("dictionary store must not be nil")
	}
	return &Service{dictionary: dictionary}, nil
}

// Unigrams implements lattice.LanguageModel.
func (s *Service) Unigrams(reading string) []lattice.Unigram {
	return s.dictionary.Unigrams(reading)
}

// HasUnigrams implements lattice.LanguageModel.
func (s *Service) HasUnigrams(reading string) bool {
	return s.dictionary.HasUnigrams(reading)
}

// AddEntries stores dictionary entries after validating them. It returns the
// number of entries added; on a validation error, entries before the bad one
// are already stored.
func (s *Service) AddEntries(entries []model.DictionaryEntry) (int, error) {
	added := 0
	for i, entry := range entries {
		if entry.Reading == "" {
			return added, fmt.Errorf("entry %d: reading cannot be empty", i)
		}
		if entry.Value == "" {
			return added, fmt.Errorf("entry %d: value cannot be empty", i)
		}
		rawValue := entry.RawValue
		if rawValue == "" {
			rawValue = entry.Value
		}
		s.dictionary.Add(entry.Reading, lattice.Unigram{
			Value:    entry.Value,
			RawValue: rawValue,
			Score:    entry.Score,
		})
		added++
	}
	return added, nil
}

// ImportTSV reads tab-separated dictionary data: one entry per line as
// "reading<TAB>value<TAB>score" with an optional fourth raw-value column.
// Blank lines and lines starting with '#' are skipped. The import stops
// with ctx.Err() when the context is cancelled mid-stream; entries read
// before that point are already stored. Returns the number of entries
// imported.
func (s *Service) ImportTSV(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	imported := 0
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return imported, err
		}
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return imported, fmt.Errorf("line %d: expected at least 3 tab-separated fields, got %d", lineNo, len(fields))
		}
		reading := fields[0]
		value := fields[1]
		score, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return imported, fmt.Errorf("line %d: invalid score %q: %w", lineNo, fields[2], err)
		}
		rawValue := value
		if len(fields) >= 4 && fields[3] != "" {
			rawValue = fields[3]
		}
		if reading == "" || value == "" {
			return imported, fmt.Errorf("line %d: reading and value cannot be empty", lineNo)
		}

		s.dictionary.Add(reading, lattice.Unigram{Value: value, RawValue: rawValue, Score: score})
		imported++
	}
	if err := scanner.Err(); err != nil {
		return imported, fmt.Errorf("reading dictionary data: %w", err)
	}
	return imported, nil
}

// Stats reports the dictionary's size.
func (s *Service) Stats() model.DictionaryStats {
	return model.DictionaryStats{
		ReadingCount: s.dictionary.ReadingCount(),
		UnigramCount: s.dictionary.UnigramCount(),
	}
}
