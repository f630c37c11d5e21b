package jobs

import (
	"sync"
	"time"

	"github.com/gcbaptista/go-composer-engine/model"
)

// recentExecutionsKept bounds the per-type execution-time window used for
// averages, so a long-lived manager does not accumulate unbounded samples.
const recentExecutionsKept = 100

// JobMetricsData is a point-in-time metrics snapshot, safe for copying and
// JSON encoding.
type JobMetricsData struct {
	JobsCreated                int64                           `json:"jobs_created"`
	JobsCompleted              int64                           `json:"jobs_completed"`
	JobsFailed                 int64                           `json:"jobs_failed"`
	JobsCancelled              int64                           `json:"jobs_cancelled"`
	PendingJobs                int64                           `json:"pending_jobs"`
	RunningJobs                int64                           `json:"running_jobs"`
	AverageExecutionTime       time.Duration                   `json:"average_execution_time_ns"`
	AverageExecutionTimeByType map[model.JobType]time.Duration `json:"average_execution_time_by_type_ns"`
	JobsByDictionary           map[string]int64                `json:"jobs_by_dictionary"`
	LastUpdated                time.Time                       `json:"last_updated"`
}

// JobMetrics tracks job counts, per-dictionary activity, and execution
// times per job type over a sliding window of recent runs.
type JobMetrics struct {
	mu                 sync.Mutex
	created            int64
	completed          int64
	failed             int64
	cancelled          int64
	pending            int64
	running            int64
	totalExecutionTime time.Duration
	recentByType       map[model.JobType][]time.Duration
	byDictionary       map[string]int64
	lastUpdated        time.Time
}

// NewJobMetrics creates a new metrics collector
func NewJobMetrics() *JobMetrics {
	return &JobMetrics{
		recentByType: make(map[model.JobType][]time.Duration),
		byDictionary: make(map[string]int64),
		lastUpdated:  time.Now(),
	}
}

// RecordJobCreated counts a newly queued job against its dictionary
func (m *JobMetrics) RecordJobCreated(jobType model.JobType, dictionaryName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.created++
	m.pending++
	m.byDictionary[dictionaryName]++
	m.lastUpdated = time.Now()
}

// RecordJobStarted moves a job from pending to running
func (m *JobMetrics) RecordJobStarted(jobType model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending--
	m.running++
	m.lastUpdated = time.Now()
}

// RecordJobFinished records the outcome of a job that ran. Completed runs
// feed the per-type execution-time window.
func (m *JobMetrics) RecordJobFinished(jobType model.JobType, dictionaryName string, status model.JobStatus, executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.running--
	switch status {
	case model.JobStatusCompleted:
		m.completed++
		m.totalExecutionTime += executionTime
		recent := append(m.recentByType[jobType], executionTime)
		if len(recent) > recentExecutionsKept {
			recent = recent[1:]
		}
		m.recentByType[jobType] = recent
	case model.JobStatusFailed:
		m.failed++
	case model.JobStatusCancelled:
		m.cancelled++
	}
	m.lastUpdated = time.Now()
}

// RecordJobCancelledWhileQueued records a job cancelled before it ever ran
func (m *JobMetrics) RecordJobCancelledWhileQueued(jobType model.JobType, dictionaryName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending--
	m.cancelled++
	m.lastUpdated = time.Now()
}

// Snapshot returns a copy of current metrics, with averages computed from
// the per-type windows.
func (m *JobMetrics) Snapshot() JobMetricsData {
	m.mu.Lock()
	defer m.mu.Unlock()

	averagesByType := make(map[model.JobType]time.Duration, len(m.recentByType))
	for jobType, recent := range m.recentByType {
		averagesByType[jobType] = averageDuration(recent)
	}

	byDictionary := make(map[string]int64, len(m.byDictionary))
	for name, count := range m.byDictionary {
		byDictionary[name] = count
	}

	var average time.Duration
	if m.completed > 0 {
		average = m.totalExecutionTime / time.Duration(m.completed)
	}

	return JobMetricsData{
		JobsCreated:                m.created,
		JobsCompleted:              m.completed,
		JobsFailed:                 m.failed,
		JobsCancelled:              m.cancelled,
		PendingJobs:                m.pending,
		RunningJobs:                m.running,
		AverageExecutionTime:       average,
		AverageExecutionTimeByType: averagesByType,
		JobsByDictionary:           byDictionary,
		LastUpdated:                m.lastUpdated,
	}
}

// AverageExecutionTimeByType returns the average over the recent completed
// runs of one job type, 0 if none completed yet.
func (m *JobMetrics) AverageExecutionTimeByType(jobType model.JobType) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return averageDuration(m.recentByType[jobType])
}

// SuccessRate returns completed/(completed+failed), ignoring cancelled
// jobs; 1.0 when nothing has run yet.
func (m *JobMetrics) SuccessRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	finished := m.completed + m.failed
	if finished == 0 {
		return 1.0
	}
	return float64(m.completed) / float64(finished)
}

// CurrentWorkload returns the number of pending and running jobs
func (m *JobMetrics) CurrentWorkload() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending + m.running
}

func averageDuration(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, sample := range samples {
		total += sample
	}
	return total / time.Duration(len(samples))
}
