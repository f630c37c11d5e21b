package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-composer-engine/internal/engine"
	apperrors "github.com/gcbaptista/go-composer-engine/internal/errors"
	"github.com/gcbaptista/go-composer-engine/model"
	"github.com/gcbaptista/go-composer-engine/services"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job management not supported by this engine"})
		return
	}

	job, err := jobManager.GetJob(jobID)
	if err != nil {
		SendJobNotFoundError(c, jobID)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CancelJobHandler handles requests to cancel a pending or running job.
// A pending job leaves its dictionary's queue immediately; a running job
// winds down through its context and ends as cancelled.
func (api *API) CancelJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job management not supported by this engine"})
		return
	}

	if err := jobManager.CancelJob(jobID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrJobNotFound):
			SendJobNotFoundError(c, jobID)
		case errors.Is(err, apperrors.ErrJobNotCancellable):
			SendError(c, http.StatusConflict, ErrorCodeJobNotCancellable,
				"Job '"+jobID+"' already finished: "+err.Error())
		default:
			SendInternalError(c, "job cancellation", err)
		}
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Cancellation requested for job '" + jobID + "'"})
}

// ListJobsHandler handles requests to list a dictionary's jobs, newest
// first, together with its current queue depth.
func (api *API) ListJobsHandler(c *gin.Context) {
	dictionaryName := c.Param("dictionaryName")
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job management not supported by this engine"})
		return
	}

	jobs := jobManager.ListJobs(dictionaryName, statusFilter)
	response := gin.H{
		"jobs":            jobs,
		"dictionary_name": dictionaryName,
		"total":           len(jobs),
	}
	if composerEngine, isEngine := api.engine.(*engine.Engine); isEngine {
		response["queued"] = composerEngine.JobManager().QueueDepth(dictionaryName)
	}
	c.JSON(http.StatusOK, response)
}

// GetJobMetricsHandler handles requests to get job performance metrics,
// including the per-type execution-time averages.
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	engineWithMetrics, ok := api.engine.(*engine.Engine)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job metrics not supported by this engine"})
		return
	}

	// Snapshot already carries the per-type and per-dictionary breakdowns.
	metrics := engineWithMetrics.GetJobMetrics()
	c.JSON(http.StatusOK, gin.H{
		"metrics":          metrics,
		"success_rate":     engineWithMetrics.GetJobSuccessRate(),
		"current_workload": engineWithMetrics.GetCurrentWorkload(),
	})
}
