// Package engine orchestrates composer sessions and the dictionaries they
// draw candidates from.
package engine

import (
	"log"
	"os"
	"sync"

	"github.com/gcbaptista/go-composer-engine/internal/jobs"
	"github.com/gcbaptista/go-composer-engine/internal/langmodel"
	"github.com/gcbaptista/go-composer-engine/internal/persistence"
	"github.com/gcbaptista/go-composer-engine/model"
	"github.com/gcbaptista/go-composer-engine/store"
)

const (
	dataDirPerm = 0755

	// maxActiveJobDictionaries caps how many dictionaries may execute
	// background jobs at once; jobs within one dictionary always run in
	// submission order.
	maxActiveJobDictionaries = 4
)

// dictionaryInstance bundles a dictionary's store with the language-model
// service answering queries over it.
type dictionaryInstance struct {
	store     *store.DictionaryStore
	langModel *langmodel.Service
}

// Engine manages composer sessions and dictionaries. It implements the
// services.EngineManager interface. Dictionaries are persisted under the
// data directory; composer sessions are in-memory only.
type Engine struct {
	mu           sync.RWMutex
	composers    map[string]*ComposerInstance
	dictionaries map[string]*dictionaryInstance
	dataDir      string
	jobManager   *jobs.Manager
}

// NewEngine creates a new composer engine orchestrator and loads any
// persisted dictionaries from the data directory.
func NewEngine(dataDir string) *Engine {
	eng := &Engine{
		composers:    make(map[string]*ComposerInstance),
		dictionaries: make(map[string]*dictionaryInstance),
		dataDir:      dataDir,
		jobManager:   jobs.NewManager(maxActiveJobDictionaries),
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence for dictionaries.", dataDir, err)
	}
	eng.loadDictionariesFromDisk()
	return eng
}

// JobManager exposes the engine's background job manager.
func (e *Engine) JobManager() *jobs.Manager {
	return e.jobManager
}

// GetJob implements services.JobManager.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs implements services.JobManager.
func (e *Engine) ListJobs(dictionaryName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(dictionaryName, status)
}

// GetJobMetrics returns current job performance metrics.
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// GetJobSuccessRate returns the overall job success rate.
func (e *Engine) GetJobSuccessRate() float64 {
	return e.jobManager.GetJobSuccessRate()
}

// GetCurrentWorkload returns the number of currently active jobs.
func (e *Engine) GetCurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}

// Stop shuts down background workers.
func (e *Engine) Stop() {
	e.jobManager.Stop()
}

func (e *Engine) loadDictionariesFromDisk() {
	log.Printf("Loading dictionaries from disk: %s", e.dataDir)
	names, err := persistence.ListDictionaries(e.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to list dictionaries in %s: %v. No dictionaries loaded.", e.dataDir, err)
		return
	}

	for _, name := range names {
		dictStore, err := persistence.LoadDictionary(e.dataDir, name)
		if err != nil {
			log.Printf("Warning: Failed to load dictionary %s: %v. Skipping.", name, err)
			continue
		}

		langModel, err := langmodel.NewService(dictStore)
		if err != nil {
			log.Printf("Error creating language model service for dictionary %s: %v. Skipping.", name, err)
			continue
		}

		e.dictionaries[name] = &dictionaryInstance{store: dictStore, langModel: langModel}
		log.Printf("Successfully loaded dictionary: %s (%d readings)", name, dictStore.ReadingCount())
	}
}
