package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-composer-engine/config"
	apperrors "github.com/gcbaptista/go-composer-engine/internal/errors"
	"github.com/gcbaptista/go-composer-engine/model"
	"github.com/gcbaptista/go-composer-engine/services"
)

// CreateComposerHandler handles requests to create a new composer session
func (api *API) CreateComposerHandler(c *gin.Context) {
	var settings config.ComposerSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateComposerSettings(&settings); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	if err := api.engine.CreateComposer(settings); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrComposerAlreadyExists):
			SendComposerExistsError(c, settings.Name)
		case errors.Is(err, apperrors.ErrDictionaryNotFound):
			SendDictionaryNotFoundError(c, settings.Dictionary)
		case errors.Is(err, apperrors.ErrInvalidInput):
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		default:
			SendInternalError(c, "composer creation", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Composer '" + settings.Name + "' created"})
}

// ListComposersHandler handles requests to list all composer sessions
func (api *API) ListComposersHandler(c *gin.Context) {
	composers := api.engine.ListComposers()
	c.JSON(http.StatusOK, gin.H{
		"composers": composers,
		"total":     len(composers),
	})
}

// GetComposerHandler handles requests to get a composer's current state
func (api *API) GetComposerHandler(c *gin.Context) {
	composerName := c.Param("composerName")

	composer, err := api.engine.GetComposer(composerName)
	if err != nil {
		SendComposerNotFoundError(c, composerName)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": composer.Settings(),
		"readings": composer.Readings(),
		"cursor":   composer.Cursor(),
	})
}

// DeleteComposerHandler handles requests to delete a composer session
func (api *API) DeleteComposerHandler(c *gin.Context) {
	composerName := c.Param("composerName")

	if err := api.engine.DeleteComposer(composerName); err != nil {
		SendComposerNotFoundError(c, composerName)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Composer '" + composerName + "' deleted"})
}

// insertReadingRequest is the body of an insert-reading call.
type insertReadingRequest struct {
	Reading string `json:"reading"`
}

// InsertReadingHandler handles requests to insert a reading at the cursor
func (api *API) InsertReadingHandler(c *gin.Context) {
	composerName := c.Param("composerName")

	composer, err := api.engine.GetComposer(composerName)
	if err != nil {
		SendComposerNotFoundError(c, composerName)
		return
	}

	var req insertReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if err := composer.InsertReading(req.Reading); err != nil {
		var unknown *apperrors.UnknownReadingError
		switch {
		case errors.As(err, &unknown):
			SendUnknownReadingError(c, unknown.Reading, unknown.Suggestions)
		case errors.Is(err, apperrors.ErrInvalidInput):
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		default:
			SendInternalError(c, "reading insertion", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"readings": composer.Readings(),
		"cursor":   composer.Cursor(),
	})
}

// DeleteReadingHandler handles requests to delete the reading before or
// after the cursor; ?direction=after selects the forward delete.
func (api *API) DeleteReadingHandler(c *gin.Context) {
	composerName := c.Param("composerName")

	composer, err := api.engine.GetComposer(composerName)
	if err != nil {
		SendComposerNotFoundError(c, composerName)
		return
	}

	direction := c.DefaultQuery("direction", "before")
	switch direction {
	case "before":
		err = composer.DeleteReadingBeforeCursor()
	case "after":
		err = composer.DeleteReadingAfterCursor()
	default:
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Direction must be 'before' or 'after'")
		return
	}

	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeNothingToDelete,
			"No reading to delete "+direction+" the cursor")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"readings": composer.Readings(),
		"cursor":   composer.Cursor(),
	})
}

// setCursorRequest is the body of a cursor move call.
type setCursorRequest struct {
	Cursor int `json:"cursor"`
}

// SetCursorHandler handles requests to move a composer's cursor
func (api *API) SetCursorHandler(c *gin.Context) {
	composerName := c.Param("composerName")

	composer, err := api.engine.GetComposer(composerName)
	if err != nil {
		SendComposerNotFoundError(c, composerName)
		return
	}

	var req setCursorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if err := composer.SetCursor(req.Cursor); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeCursorOutOfRange,
			"Cursor "+strconv.Itoa(req.Cursor)+" is out of range")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cursor": composer.Cursor()})
}

// ClearComposerHandler handles requests to empty a composer session
func (api *API) ClearComposerHandler(c *gin.Context) {
	composerName := c.Param("composerName")

	composer, err := api.engine.GetComposer(composerName)
	if err != nil {
		SendComposerNotFoundError(c, composerName)
		return
	}

	composer.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Composer '" + composerName + "' cleared"})
}

// WalkHandler handles requests to compute the most likely segmentation
func (api *API) WalkHandler(c *gin.Context) {
	composerName := c.Param("composerName")

	composer, err := api.engine.GetComposer(composerName)
	if err != nil {
		SendComposerNotFoundError(c, composerName)
		return
	}

	result := composer.Walk()

	api.analytics.TrackComposeEvent(model.ComposeEvent{
		ComposerName: composerName,
		ReadingCount: result.TotalReadings,
		Vertices:     result.Vertices,
		Edges:        result.Edges,
		ResponseTime: time.Duration(result.Took) * time.Microsecond,
	})

	c.JSON(http.StatusOK, result)
}

// CandidatesHandler handles requests to list candidates at a location
func (api *API) CandidatesHandler(c *gin.Context) {
	composerName := c.Param("composerName")

	composer, err := api.engine.GetComposer(composerName)
	if err != nil {
		SendComposerNotFoundError(c, composerName)
		return
	}

	location, err := strconv.Atoi(c.DefaultQuery("location", "0"))
	if err != nil || location < 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Location must be a non-negative integer")
		return
	}

	candidates := composer.CandidatesAt(location)
	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"location":   location,
		"total":      len(candidates),
	})
}

// OverrideHandler handles requests to pin or correct a candidate
func (api *API) OverrideHandler(c *gin.Context) {
	composerName := c.Param("composerName")

	composer, err := api.engine.GetComposer(composerName)
	if err != nil {
		SendComposerNotFoundError(c, composerName)
		return
	}

	var req services.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateOverrideRequest(&req); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	if err := composer.OverrideCandidate(req); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNothingOverridden):
			SendError(c, http.StatusUnprocessableEntity, ErrorCodeNothingOverridden,
				"No overlapping candidate matched value '"+req.Value+"'")
		case errors.Is(err, apperrors.ErrInvalidInput):
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		default:
			SendInternalError(c, "candidate override", err)
		}
		return
	}

	c.JSON(http.StatusOK, composer.Walk())
}
