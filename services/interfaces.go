package services

import (
	"github.com/gcbaptista/go-composer-engine/config"
	"github.com/gcbaptista/go-composer-engine/model"
)

// SegmentResult represents one chosen node of a walk: a stretch of readings
// and the value selected for it.
type SegmentResult struct {
	Reading        string `json:"reading"`         // Combined reading the segment covers, e.g. "ke-ji"
	Value          string `json:"value"`           // Selected value, e.g. "科技"
	RawValue       string `json:"raw_value"`       // Underlying value when it differs
	SpanningLength int    `json:"spanning_length"` // Number of readings covered
	Overridden     bool   `json:"overridden"`      // Whether a user override is in effect
}

// ComposeResult is the outcome of walking a composer's grid.
type ComposeResult struct {
	Segments      []SegmentResult `json:"segments"`
	Values        []string        `json:"values"`
	Readings      []string        `json:"readings"`
	TotalReadings int             `json:"total_readings"`
	Vertices      int             `json:"vertices"` // Source positions processed by the walk
	Edges         int             `json:"edges"`    // Relaxations attempted by the walk
	Took          int64           `json:"took_us"`  // microseconds
}

// CandidateResult is one candidate listed at a location.
type CandidateResult struct {
	Reading  string `json:"reading"`
	Value    string `json:"value"`
	RawValue string `json:"raw_value"`
}

// Override types accepted on the API surface.
const (
	// OverrideTypeHighScore pins the candidate: the walk must pick it
	// whenever the lattice allows.
	OverrideTypeHighScore = "high_score"

	// OverrideTypeTopUnigramScore selects the candidate but scores it as the
	// node's best candidate, so a genuinely better longer span can still win.
	OverrideTypeTopUnigramScore = "top_unigram_score"
)

// OverrideRequest asks a composer to apply a user candidate selection.
type OverrideRequest struct {
	Location int    `json:"location"`
	Reading  string `json:"reading,omitempty"` // Optional: restrict matching to this combined reading
	Value    string `json:"value"`
	Type     string `json:"type"` // OverrideTypeHighScore or OverrideTypeTopUnigramScore
}

// Composer defines the editing operations of one composition session.
type Composer interface {
	InsertReading(reading string) error
	DeleteReadingBeforeCursor() error
	DeleteReadingAfterCursor() error
	SetCursor(cursor int) error
	Cursor() int
	Readings() []string
	Clear()
}

// Walker defines the query operations of one composition session.
type Walker interface {
	Walk() ComposeResult
	CandidatesAt(location int) []CandidateResult
	OverrideCandidate(req OverrideRequest) error
}

// ComposerAccessor combines editing and querying for a single composer.
type ComposerAccessor interface {
	Composer
	Walker
	Settings() config.ComposerSettings
}

// ComposerManager manages the lifecycle of composer sessions.
type ComposerManager interface {
	CreateComposer(settings config.ComposerSettings) error
	GetComposer(name string) (ComposerAccessor, error)
	GetComposerSettings(name string) (config.ComposerSettings, error)
	DeleteComposer(name string) error
	ListComposers() []string
}

// DictionaryManager manages the lifecycle of dictionaries.
type DictionaryManager interface {
	CreateDictionary(name string) error
	DeleteDictionary(name string) error
	ListDictionaries() []model.DictionaryStats
	GetDictionaryStats(name string) (model.DictionaryStats, error)
	AddDictionaryEntries(name string, entries []model.DictionaryEntry) (int, error)
	PersistDictionary(name string) error
	SuggestReadings(name, reading string) []string
}

// DictionaryManagerWithAsyncImport extends DictionaryManager with background
// TSV imports for large dictionary files.
type DictionaryManagerWithAsyncImport interface {
	DictionaryManager
	ImportDictionaryTSVAsync(name string, data []byte) (string, error) // Returns job ID
}

// EngineManager is the full service surface the API wires against.
type EngineManager interface {
	ComposerManager
	DictionaryManager
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(dictionaryName string, status *model.JobStatus) []*model.Job
	CancelJob(jobID string) error
}
