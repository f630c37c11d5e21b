package model

import (
	"time"
)

// JobStatus represents the status of a long-running job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusRunning    JobStatus = "running"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelling JobStatus = "cancelling"
	JobStatusCancelled  JobStatus = "cancelled"
)

// JobType represents the type of job being executed
type JobType string

const (
	JobTypeImportDictionary  JobType = "import_dictionary"
	JobTypePersistDictionary JobType = "persist_dictionary"
	JobTypeDeleteDictionary  JobType = "delete_dictionary"
)

// Job represents a long-running background operation against one
// dictionary. Result carries a summary the job function produced on
// success (e.g. the number of entries imported).
type Job struct {
	ID             string            `json:"id"`
	Type           JobType           `json:"type"`
	Status         JobStatus         `json:"status"`
	DictionaryName string            `json:"dictionary_name"`
	Progress       *JobProgress      `json:"progress,omitempty"`
	Result         map[string]string `json:"result,omitempty"`
	Error          string            `json:"error,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	StartedAt      *time.Time        `json:"started_at,omitempty"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// JobProgress tracks the progress of a job
type JobProgress struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
}

// GetProgressPercentage returns the progress as a percentage (0-100)
func (jp *JobProgress) GetProgressPercentage() float64 {
	if jp.Total == 0 {
		return 0
	}
	return float64(jp.Current) / float64(jp.Total) * 100
}
