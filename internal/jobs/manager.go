// Package jobs runs and tracks background dictionary operations.
//
// Jobs are keyed by dictionary, and jobs against the same dictionary run
// strictly in submission order: an import mutates that dictionary's store
// and snapshots it to disk, so two imports into the same dictionary must
// never interleave. Jobs against different dictionaries run concurrently,
// up to a global cap on simultaneously active dictionaries. Pending and
// running jobs can be cancelled.
package jobs

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-composer-engine/internal/errors"
	"github.com/gcbaptista/go-composer-engine/model"
)

// finishedJobRetention is how long completed, failed, and cancelled jobs
// stay queryable. Old jobs are pruned on the next Enqueue.
const finishedJobRetention = 24 * time.Hour

// ProgressFunc reports a job's progress to the manager. Job functions call
// it as they move through their phases.
type ProgressFunc func(current, total int, message string)

// JobFunc is the work a job performs. It must return promptly once ctx is
// cancelled. The returned map becomes the job's Result on success.
type JobFunc func(ctx context.Context, progress ProgressFunc) (map[string]string, error)

// trackedJob pairs a job record with its work and, while running, the
// cancel function for its context. All fields are guarded by the manager's
// mutex.
type trackedJob struct {
	job    model.Job
	fn     JobFunc
	cancel context.CancelFunc
}

// Manager owns the per-dictionary queues and the job registry.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]*trackedJob
	queues   map[string][]*trackedJob // pending jobs per dictionary, FIFO
	draining map[string]bool          // dictionaries with a drain goroutine alive
	slots    chan struct{}            // caps concurrently active dictionaries
	stopChan chan struct{}
	stopped  bool
	wg       sync.WaitGroup
	metrics  *JobMetrics
}

// NewManager creates a job manager that lets at most maxActiveDictionaries
// dictionaries execute jobs at the same time.
func NewManager(maxActiveDictionaries int) *Manager {
	return &Manager{
		jobs:     make(map[string]*trackedJob),
		queues:   make(map[string][]*trackedJob),
		draining: make(map[string]bool),
		slots:    make(chan struct{}, maxActiveDictionaries),
		stopChan: make(chan struct{}),
		metrics:  NewJobMetrics(),
	}
}

// Stop cancels every pending and running job and waits for the drain
// goroutines to exit.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	close(m.stopChan)

	for _, tj := range m.jobs {
		switch tj.job.Status {
		case model.JobStatusPending:
			m.markCancelledWhileQueuedLocked(tj)
		case model.JobStatusRunning:
			tj.job.Status = model.JobStatusCancelling
			tj.cancel()
		}
	}
	for name := range m.queues {
		m.queues[name] = nil
	}
	m.mu.Unlock()

	m.wg.Wait()
	log.Printf("Job manager stopped")
}

// Enqueue registers a job for the dictionary and returns its ID. The job
// starts once every earlier job for the same dictionary has finished.
func (m *Manager) Enqueue(jobType model.JobType, dictionaryName string, metadata map[string]string, fn JobFunc) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return "", fmt.Errorf("job manager is shutting down")
	}

	m.pruneFinishedLocked(finishedJobRetention)

	tj := &trackedJob{
		job: model.Job{
			ID:             uuid.New().String(),
			Type:           jobType,
			Status:         model.JobStatusPending,
			DictionaryName: dictionaryName,
			CreatedAt:      time.Now(),
			Metadata:       metadata,
		},
		fn: fn,
	}
	m.jobs[tj.job.ID] = tj
	m.queues[dictionaryName] = append(m.queues[dictionaryName], tj)
	m.metrics.RecordJobCreated(jobType, dictionaryName)
	log.Printf("Queued job %s (type: %s) for dictionary '%s' (position %d)",
		tj.job.ID, tj.job.Type, dictionaryName, len(m.queues[dictionaryName]))

	if !m.draining[dictionaryName] {
		m.draining[dictionaryName] = true
		m.wg.Add(1)
		go m.drainDictionary(dictionaryName)
	}
	return tj.job.ID, nil
}

// drainDictionary runs the dictionary's queued jobs one at a time, in
// order, until the queue is empty.
func (m *Manager) drainDictionary(dictionaryName string) {
	defer m.wg.Done()

	for {
		m.mu.Lock()
		queue := m.queues[dictionaryName]
		if len(queue) == 0 || m.stopped {
			m.draining[dictionaryName] = false
			m.mu.Unlock()
			return
		}
		tj := queue[0]
		m.queues[dictionaryName] = queue[1:]

		ctx, cancel := context.WithCancel(context.Background())
		tj.cancel = cancel
		tj.job.Status = model.JobStatusRunning
		now := time.Now()
		tj.job.StartedAt = &now
		m.metrics.RecordJobStarted(tj.job.Type)
		jobID := tj.job.ID
		m.mu.Unlock()

		// The slot bounds how many dictionaries work at once, not how many
		// jobs exist.
		select {
		case m.slots <- struct{}{}:
		case <-m.stopChan:
			cancel()
			m.finish(tj, nil, context.Canceled, 0)
			continue
		}

		start := time.Now()
		result, err := tj.fn(ctx, func(current, total int, message string) {
			m.updateProgress(jobID, current, total, message)
		})
		took := time.Since(start)
		<-m.slots
		cancel()

		m.finish(tj, result, err, took)
	}
}

// finish records a job's outcome. A job whose context was cancelled, or
// that was moved to cancelling while it ran, ends as cancelled rather than
// failed.
func (m *Manager) finish(tj *trackedJob, result map[string]string, err error, took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	tj.job.CompletedAt = &now
	tj.cancel = nil

	switch {
	case err == nil && tj.job.Status != model.JobStatusCancelling:
		tj.job.Status = model.JobStatusCompleted
		tj.job.Result = result
		m.metrics.RecordJobFinished(tj.job.Type, tj.job.DictionaryName, model.JobStatusCompleted, took)
		log.Printf("Job %s completed in %v", tj.job.ID, took)
	case stderrors.Is(err, context.Canceled) || tj.job.Status == model.JobStatusCancelling:
		tj.job.Status = model.JobStatusCancelled
		m.metrics.RecordJobFinished(tj.job.Type, tj.job.DictionaryName, model.JobStatusCancelled, took)
		log.Printf("Job %s cancelled after %v", tj.job.ID, took)
	default:
		tj.job.Status = model.JobStatusFailed
		tj.job.Error = err.Error()
		m.metrics.RecordJobFinished(tj.job.Type, tj.job.DictionaryName, model.JobStatusFailed, took)
		log.Printf("Job %s failed after %v: %v", tj.job.ID, took, err)
	}
}

// CancelJob cancels a pending or running job. A pending job is removed
// from its dictionary's queue immediately; a running job is asked to stop
// through its context and ends as cancelled once its function returns.
func (m *Manager) CancelJob(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tj, exists := m.jobs[jobID]
	if !exists {
		return errors.NewJobNotFoundError(jobID)
	}

	switch tj.job.Status {
	case model.JobStatusPending:
		queue := m.queues[tj.job.DictionaryName]
		for i, queued := range queue {
			if queued == tj {
				m.queues[tj.job.DictionaryName] = append(queue[:i], queue[i+1:]...)
				break
			}
		}
		m.markCancelledWhileQueuedLocked(tj)
		log.Printf("Job %s cancelled while queued", jobID)
		return nil
	case model.JobStatusRunning:
		tj.job.Status = model.JobStatusCancelling
		tj.cancel()
		log.Printf("Job %s cancellation requested", jobID)
		return nil
	default:
		return errors.NewJobNotCancellableError(jobID, string(tj.job.Status))
	}
}

func (m *Manager) markCancelledWhileQueuedLocked(tj *trackedJob) {
	now := time.Now()
	tj.job.Status = model.JobStatusCancelled
	tj.job.CompletedAt = &now
	m.metrics.RecordJobCancelledWhileQueued(tj.job.Type, tj.job.DictionaryName)
}

// GetJob retrieves a job by ID.
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tj, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJobLocked(tj), nil
}

// ListJobs returns jobs for a dictionary, newest first, optionally filtered
// by status. An empty dictionary name matches every job.
func (m *Manager) ListJobs(dictionaryName string, status *model.JobStatus) []*model.Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*model.Job
	for _, tj := range m.jobs {
		if dictionaryName != "" && tj.job.DictionaryName != dictionaryName {
			continue
		}
		if status != nil && tj.job.Status != *status {
			continue
		}
		result = append(result, copyJobLocked(tj))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// QueueDepth returns how many jobs are waiting (not running) for the
// dictionary.
func (m *Manager) QueueDepth(dictionaryName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues[dictionaryName])
}

// updateProgress records a running job's progress.
func (m *Manager) updateProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tj, exists := m.jobs[jobID]
	if !exists {
		return
	}
	if tj.job.Progress == nil {
		tj.job.Progress = &model.JobProgress{}
	}
	tj.job.Progress.Current = current
	tj.job.Progress.Total = total
	tj.job.Progress.Message = message
}

// pruneFinishedLocked drops finished jobs older than maxAge. Callers must
// hold the manager lock.
func (m *Manager) pruneFinishedLocked(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)
	pruned := 0
	for jobID, tj := range m.jobs {
		if tj.job.CompletedAt != nil && tj.job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			pruned++
		}
	}
	if pruned > 0 {
		log.Printf("Pruned %d finished jobs", pruned)
	}
}

// PruneFinished drops finished jobs older than maxAge.
func (m *Manager) PruneFinished(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneFinishedLocked(maxAge)
}

// copyJobLocked returns a copy of the job record safe to hand to callers.
// Callers must hold the manager lock.
func copyJobLocked(tj *trackedJob) *model.Job {
	jobCopy := tj.job
	if tj.job.Progress != nil {
		progressCopy := *tj.job.Progress
		jobCopy.Progress = &progressCopy
	}
	if tj.job.Result != nil {
		resultCopy := make(map[string]string, len(tj.job.Result))
		for k, v := range tj.job.Result {
			resultCopy[k] = v
		}
		jobCopy.Result = resultCopy
	}
	return &jobCopy
}

// GetMetrics returns current job performance metrics
func (m *Manager) GetMetrics() JobMetricsData {
	return m.metrics.Snapshot()
}

// GetJobSuccessRate returns the overall job success rate
func (m *Manager) GetJobSuccessRate() float64 {
	return m.metrics.SuccessRate()
}

// GetCurrentWorkload returns the number of pending and running jobs
func (m *Manager) GetCurrentWorkload() int64 {
	return m.metrics.CurrentWorkload()
}
