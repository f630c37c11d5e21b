package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/gcbaptista/go-composer-engine/internal/errors"
	"github.com/gcbaptista/go-composer-engine/model"
	"github.com/gcbaptista/go-composer-engine/services"
)

// createDictionaryRequest is the body of a dictionary creation call.
type createDictionaryRequest struct {
	Name string `json:"name"`
}

// CreateDictionaryHandler handles requests to create a new dictionary
func (api *API) CreateDictionaryHandler(c *gin.Context) {
	var req createDictionaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateName("name", req.Name); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	if err := api.engine.CreateDictionary(req.Name); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDictionaryAlreadyExists):
			SendDictionaryExistsError(c, req.Name)
		case errors.Is(err, apperrors.ErrInvalidInput):
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		default:
			SendPersistenceError(c, "dictionary creation", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Dictionary '" + req.Name + "' created"})
}

// ListDictionariesHandler handles requests to list all dictionaries
func (api *API) ListDictionariesHandler(c *gin.Context) {
	dictionaries := api.engine.ListDictionaries()
	c.JSON(http.StatusOK, gin.H{
		"dictionaries": dictionaries,
		"total":        len(dictionaries),
	})
}

// GetDictionaryHandler handles requests to get dictionary stats
func (api *API) GetDictionaryHandler(c *gin.Context) {
	dictionaryName := c.Param("dictionaryName")

	stats, err := api.engine.GetDictionaryStats(dictionaryName)
	if err != nil {
		SendDictionaryNotFoundError(c, dictionaryName)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// DeleteDictionaryHandler handles requests to delete a dictionary
func (api *API) DeleteDictionaryHandler(c *gin.Context) {
	dictionaryName := c.Param("dictionaryName")

	if err := api.engine.DeleteDictionary(dictionaryName); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDictionaryNotFound):
			SendDictionaryNotFoundError(c, dictionaryName)
		case errors.Is(err, apperrors.ErrInvalidInput):
			SendError(c, http.StatusConflict, ErrorCodeInvalidRequest, err.Error())
		default:
			SendPersistenceError(c, "dictionary deletion", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dictionary '" + dictionaryName + "' deleted"})
}

// addEntriesRequest is the body of an add-entries call.
type addEntriesRequest struct {
	Entries []model.DictionaryEntry `json:"entries"`
}

// AddEntriesHandler handles requests to add dictionary entries
func (api *API) AddEntriesHandler(c *gin.Context) {
	dictionaryName := c.Param("dictionaryName")

	var req addEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateDictionaryEntries(req.Entries); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	added, err := api.engine.AddDictionaryEntries(dictionaryName, req.Entries)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDictionaryNotFound):
			SendDictionaryNotFoundError(c, dictionaryName)
		case errors.Is(err, apperrors.ErrInvalidInput):
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		default:
			SendPersistenceError(c, "entry addition", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Entries added",
		"added":   added,
	})
}

// ImportTSVHandler handles requests to import tab-separated dictionary data
// in the background. The request body is the raw TSV payload.
func (api *API) ImportTSVHandler(c *gin.Context) {
	dictionaryName := c.Param("dictionaryName")

	asyncImporter, ok := api.engine.(services.DictionaryManagerWithAsyncImport)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInvalidRequest,
			"Background imports not supported by this engine")
		return
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Failed to read request body: "+err.Error())
		return
	}
	if len(data) == 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Request body is empty")
		return
	}

	jobID, err := asyncImporter.ImportDictionaryTSVAsync(dictionaryName, data)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDictionaryNotFound):
			SendDictionaryNotFoundError(c, dictionaryName)
		default:
			SendJobExecutionError(c, "dictionary import", err)
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Import started",
		"job_id":  jobID,
	})
}

// PersistDictHandler handles requests to force a dictionary snapshot to disk
func (api *API) PersistDictHandler(c *gin.Context) {
	dictionaryName := c.Param("dictionaryName")

	if err := api.engine.PersistDictionary(dictionaryName); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDictionaryNotFound):
			SendDictionaryNotFoundError(c, dictionaryName)
		default:
			SendPersistenceError(c, "dictionary snapshot", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dictionary '" + dictionaryName + "' persisted"})
}
