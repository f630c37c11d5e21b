package engine

import (
	"sync"

	"github.com/gcbaptista/go-composer-engine/config"
	"github.com/gcbaptista/go-composer-engine/internal/errors"
	"github.com/gcbaptista/go-composer-engine/internal/readings"
	"github.com/gcbaptista/go-composer-engine/lattice"
	"github.com/gcbaptista/go-composer-engine/services"
	"github.com/gcbaptista/go-composer-engine/store"
)

// ComposerInstance holds one composition session: a reading grid plus the
// dictionary it draws candidates from. The grid itself is single-threaded
// and non-reentrant by contract, so the instance serializes every operation
// behind a mutex. It implements the services.ComposerAccessor interface.
type ComposerInstance struct {
	mu         sync.Mutex
	settings   *config.ComposerSettings
	grid       *lattice.ReadingGrid
	dictionary *store.DictionaryStore
}

// NewComposerInstance creates a session over the given dictionary. The
// settings must already carry defaults and have passed validation.
func NewComposerInstance(settings config.ComposerSettings, dictionary *dictionaryInstance) *ComposerInstance {
	grid := lattice.NewReadingGrid(dictionary.langModel)
	grid.SetReadingSeparator(settings.Separator)
	return &ComposerInstance{
		settings:   &settings,
		grid:       grid,
		dictionary: dictionary.store,
	}
}

// Settings returns the configuration for this composer.
// This satisfies a part of the services.ComposerAccessor interface.
func (c *ComposerInstance) Settings() config.ComposerSettings {
	return *c.settings
}

// InsertReading inserts a reading at the cursor.
// This satisfies a part of the services.ComposerAccessor interface.
func (c *ComposerInstance) InsertReading(reading string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !readings.IsValid(reading, c.settings.Separator) {
		return errors.NewValidationError("reading", "reading must be non-empty and must not contain the separator")
	}
	if c.grid.InsertReading(reading) {
		return nil
	}
	// The grid rejects well-formed readings only when the dictionary has no
	// candidates at all for them.
	suggestions := c.suggestionsFor(reading)
	return errors.NewUnknownReadingError(reading, suggestions)
}

// DeleteReadingBeforeCursor removes the reading before the cursor.
// This satisfies a part of the services.ComposerAccessor interface.
func (c *ComposerInstance) DeleteReadingBeforeCursor() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.grid.DeleteReadingBeforeCursor() {
		return errors.ErrNothingToDelete
	}
	return nil
}

// DeleteReadingAfterCursor removes the reading after the cursor.
// This satisfies a part of the services.ComposerAccessor interface.
func (c *ComposerInstance) DeleteReadingAfterCursor() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.grid.DeleteReadingAfterCursor() {
		return errors.ErrNothingToDelete
	}
	return nil
}

// SetCursor moves the insertion point.
// This satisfies a part of the services.ComposerAccessor interface.
func (c *ComposerInstance) SetCursor(cursor int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cursor < 0 || cursor > c.grid.ReadingCount() {
		return errors.ErrCursorOutOfRange
	}
	c.grid.SetCursor(cursor)
	return nil
}

// Cursor returns the current insertion point.
// This satisfies a part of the services.ComposerAccessor interface.
func (c *ComposerInstance) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Cursor()
}

// Readings returns the current reading sequence.
// This satisfies a part of the services.ComposerAccessor interface.
func (c *ComposerInstance) Readings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Readings()
}

// Clear empties the session.
// This satisfies a part of the services.ComposerAccessor interface.
func (c *ComposerInstance) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grid.Clear()
}

// Walk computes the most likely segmentation of the current readings.
// This satisfies a part of the services.ComposerAccessor interface.
func (c *ComposerInstance) Walk() services.ComposeResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	walk := c.grid.Walk()
	result := services.ComposeResult{
		Segments:      make([]services.SegmentResult, 0, len(walk.Nodes)),
		Values:        walk.ValuesAsStrings(),
		Readings:      walk.ReadingsAsStrings(),
		TotalReadings: walk.TotalReadings,
		Vertices:      walk.Vertices,
		Edges:         walk.Edges,
		Took:          walk.ElapsedMicroseconds,
	}
	for _, node := range walk.Nodes {
		result.Segments = append(result.Segments, services.SegmentResult{
			Reading:        node.Reading(),
			Value:          node.Value(),
			RawValue:       node.CurrentUnigram().RawValue,
			SpanningLength: node.SpanningLength(),
			Overridden:     node.IsOverridden(),
		})
	}
	return result
}

// CandidatesAt lists the candidates overlapping a location, longest words
// first. This satisfies a part of the services.ComposerAccessor interface.
func (c *ComposerInstance) CandidatesAt(location int) []services.CandidateResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	candidates := c.grid.CandidatesAt(location)
	results := make([]services.CandidateResult, 0, len(candidates))
	for _, candidate := range candidates {
		results = append(results, services.CandidateResult{
			Reading:  candidate.Reading,
			Value:    candidate.Value,
			RawValue: candidate.RawValue,
		})
	}
	return results
}

// OverrideCandidate applies a user candidate selection.
// This satisfies a part of the services.ComposerAccessor interface.
func (c *ComposerInstance) OverrideCandidate(req services.OverrideRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var overrideType lattice.OverrideType
	switch req.Type {
	case services.OverrideTypeHighScore:
		overrideType = lattice.OverrideValueWithHighScore
	case services.OverrideTypeTopUnigramScore:
		overrideType = lattice.OverrideValueWithScoreFromTopUnigram
	default:
		return errors.NewValidationError("type", "must be '"+services.OverrideTypeHighScore+"' or '"+services.OverrideTypeTopUnigramScore+"'")
	}

	if req.Location < 0 {
		return errors.NewValidationError("location", "must not be negative")
	}

	var ok bool
	if req.Reading != "" {
		ok = c.grid.OverrideCandidate(req.Location, lattice.Candidate{Reading: req.Reading, Value: req.Value}, overrideType)
	} else {
		ok = c.grid.OverrideCandidateValue(req.Location, req.Value, overrideType)
	}
	if !ok {
		return errors.ErrNothingOverridden
	}
	return nil
}

// suggestionsFor returns nearby known readings for an unknown one. Callers
// must hold the instance lock.
func (c *ComposerInstance) suggestionsFor(reading string) []string {
	suggestions := suggestKnownReadings(c.dictionary, reading)
	return suggestions
}
