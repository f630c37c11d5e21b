package engine

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/gcbaptista/go-composer-engine/internal/errors"
	"github.com/gcbaptista/go-composer-engine/internal/jobs"
	"github.com/gcbaptista/go-composer-engine/model"
)

// ImportDictionaryTSVAsync imports tab-separated dictionary data in the
// background and returns the tracking job ID. The job manager serializes
// imports per dictionary, so concurrent submissions against the same
// dictionary run in submission order instead of interleaving writes. The
// data is captured by value; callers may discard their buffer immediately.
func (e *Engine) ImportDictionaryTSVAsync(name string, data []byte) (string, error) {
	e.mu.RLock()
	instance, exists := e.dictionaries[name]
	e.mu.RUnlock()
	if !exists {
		return "", errors.NewDictionaryNotFoundError(name)
	}
	data = append([]byte(nil), data...)

	metadata := map[string]string{"bytes": strconv.Itoa(len(data))}
	return e.jobManager.Enqueue(model.JobTypeImportDictionary, name, metadata,
		func(ctx context.Context, progress jobs.ProgressFunc) (map[string]string, error) {
			progress(0, 2, "importing entries")
			imported, err := instance.langModel.ImportTSV(ctx, bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("import stopped after %d entries: %w", imported, err)
			}

			progress(1, 2, fmt.Sprintf("persisting %d entries", imported))
			if err := e.PersistDictionary(name); err != nil {
				return nil, fmt.Errorf("imported %d entries but persisting failed: %w", imported, err)
			}

			progress(2, 2, fmt.Sprintf("imported %d entries", imported))
			return map[string]string{"imported": strconv.Itoa(imported)}, nil
		})
}

// CancelJob cancels a pending or running background job.
func (e *Engine) CancelJob(jobID string) error {
	return e.jobManager.CancelJob(jobID)
}
