package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-composer-engine/internal/engine"
	enginetesting "github.com/gcbaptista/go-composer-engine/internal/testing"
	"github.com/gcbaptista/go-composer-engine/model"
	"github.com/gcbaptista/go-composer-engine/services"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *engine.Engine) {
	t.Helper()
	eng := enginetesting.CreateTestEngine(t)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, eng, t.TempDir())
	return router, eng
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthCheckHandler(t *testing.T) {
	router, _ := setupTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestDictionaryHandlers(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("create dictionary", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/dictionaries", gin.H{"name": "mandarin"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate returns conflict", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/dictionaries", gin.H{"name": "mandarin"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/dictionaries", gin.H{"name": ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("add entries", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/dictionaries/mandarin/entries", gin.H{
			"entries": enginetesting.SampleDictionaryEntries(),
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(len(enginetesting.SampleDictionaryEntries())), decodeBody(t, w)["added"])
	})

	t.Run("entries for unknown dictionary", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/dictionaries/nope/entries", gin.H{
			"entries": []model.DictionaryEntry{{Reading: "a", Value: "b", Score: -1}},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty entries rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/dictionaries/mandarin/entries", gin.H{
			"entries": []model.DictionaryEntry{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get stats", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/dictionaries/mandarin", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "mandarin", body["name"])
		assert.Equal(t, float64(8), body["unigram_count"])
	})

	t.Run("list dictionaries", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/dictionaries", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), decodeBody(t, w)["total"])
	})

	t.Run("delete unknown", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/dictionaries/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestImportTSVHandler(t *testing.T) {
	router, eng := setupTestRouter(t)
	require.NoError(t, eng.CreateDictionary("mandarin"))

	t.Run("accepts import and reports a job", func(t *testing.T) {
		payload := "gao\t高\t-2.9\nke\t科\t-3.0"
		req := httptest.NewRequest(http.MethodPost, "/dictionaries/mandarin/import", bytes.NewReader([]byte(payload)))
		req.Header.Set("Content-Type", "text/tab-separated-values")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusAccepted, w.Code)

		jobID, ok := decodeBody(t, w)["job_id"].(string)
		require.True(t, ok, "job_id missing from response")

		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			job, err := eng.GetJob(jobID)
			require.NoError(t, err)
			if job.Status == model.JobStatusCompleted {
				return
			}
			require.NotEqual(t, model.JobStatusFailed, job.Status, "import job failed: %s", job.Error)
			time.Sleep(5 * time.Millisecond)
		}
		t.Fatal("import job never completed")
	})

	t.Run("cancelling a finished job conflicts", func(t *testing.T) {
		jobID, err := eng.ImportDictionaryTSVAsync("mandarin", []byte("ji\t技\t-3.1"))
		require.NoError(t, err)
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			job, err := eng.GetJob(jobID)
			require.NoError(t, err)
			if job.Status == model.JobStatusCompleted {
				break
			}
			time.Sleep(5 * time.Millisecond)
		}
		job, err := eng.GetJob(jobID)
		require.NoError(t, err)
		require.Equal(t, model.JobStatusCompleted, job.Status, "import job did not complete: %s", job.Error)

		w := doJSON(t, router, http.MethodPost, "/jobs/"+jobID+"/cancel", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("empty body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/dictionaries/mandarin/import", bytes.NewReader(nil))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown dictionary", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/dictionaries/nope/import", bytes.NewReader([]byte("gao\t高\t-2.9")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestComposerHandlers(t *testing.T) {
	router, eng := setupTestRouter(t)
	enginetesting.CreateTestDictionary(t, eng, "mandarin")

	t.Run("create composer", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/composers", gin.H{
			"name":       "desk",
			"dictionary": "mandarin",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate composer", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/composers", gin.H{
			"name":       "desk",
			"dictionary": "mandarin",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("composer over unknown dictionary", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/composers", gin.H{
			"name":       "other",
			"dictionary": "nope",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("insert readings", func(t *testing.T) {
		for _, reading := range []string{"gao", "ke", "ji"} {
			w := doJSON(t, router, http.MethodPost, "/composers/desk/readings", gin.H{"reading": reading})
			require.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("unknown reading returns suggestions", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/composers/desk/readings", gin.H{"reading": "gau"})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var apiErr APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, ErrorCodeUnknownReading, apiErr.Code)
		assert.NotEmpty(t, apiErr.Details)
	})

	t.Run("walk", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/composers/desk/walk", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var result services.ComposeResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, []string{"高科技"}, result.Values)
		assert.Equal(t, 3, result.TotalReadings)
	})

	t.Run("candidates", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/composers/desk/candidates?location=0", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		candidates := body["candidates"].([]interface{})
		first := candidates[0].(map[string]interface{})
		assert.Equal(t, "高科技", first["value"])
	})

	t.Run("override changes the walk", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/composers/desk/override", services.OverrideRequest{
			Location: 0,
			Value:    "高",
			Type:     services.OverrideTypeHighScore,
		})
		require.Equal(t, http.StatusOK, w.Code)
		var result services.ComposeResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, []string{"高", "科技"}, result.Values)
	})

	t.Run("override with no matching value", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/composers/desk/override", services.OverrideRequest{
			Location: 0,
			Value:    "missing",
			Type:     services.OverrideTypeHighScore,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("override with bad type", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/composers/desk/override", gin.H{
			"location": 0,
			"value":    "高",
			"type":     "nonsense",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cursor move and delete", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/composers/desk/cursor", gin.H{"cursor": 1})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodDelete, "/composers/desk/readings?direction=before", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(0), body["cursor"])

		w = doJSON(t, router, http.MethodDelete, "/composers/desk/readings?direction=before", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cursor out of range", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/composers/desk/cursor", gin.H{"cursor": 99})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get composer state", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/composers/desk", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.NotNil(t, body["settings"])
		assert.NotNil(t, body["readings"])
	})

	t.Run("clear and delete composer", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/composers/desk/clear", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodDelete, "/composers/desk", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/composers/desk", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestJobAndAnalyticsHandlers(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("unknown job", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/jobs/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("cancel unknown job", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/jobs/nope/cancel", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("job metrics", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/jobs/metrics", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Contains(t, body, "metrics")
		assert.Contains(t, body, "success_rate")
	})

	t.Run("analytics dashboard", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/analytics", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Contains(t, body, "total_walks_24h")
		assert.Contains(t, body, "system_health")
	})

	t.Run("request id echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "trace-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
	})
}
