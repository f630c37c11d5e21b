package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/go-composer-engine/config"
	"github.com/gcbaptista/go-composer-engine/model"
	"github.com/gcbaptista/go-composer-engine/services"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
	}{
		{"valid name", "mandarin", true},
		{"empty name", "", false},
		{"leading whitespace", " mandarin", false},
		{"trailing whitespace", "mandarin ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateName("name", tt.input)
			assert.Equal(t, tt.wantValid, !result.HasErrors())
		})
	}
}

func TestValidateComposerSettings(t *testing.T) {
	t.Run("nil settings", func(t *testing.T) {
		result := ValidateComposerSettings(nil)
		assert.True(t, result.HasErrors())
	})

	t.Run("valid settings", func(t *testing.T) {
		settings := config.ComposerSettings{Name: "desk", Dictionary: "mandarin"}
		result := ValidateComposerSettings(&settings)
		assert.False(t, result.HasErrors())
	})

	t.Run("missing dictionary", func(t *testing.T) {
		settings := config.ComposerSettings{Name: "desk"}
		result := ValidateComposerSettings(&settings)
		assert.True(t, result.HasErrors())
	})
}

func TestValidateDictionaryEntries(t *testing.T) {
	t.Run("no entries", func(t *testing.T) {
		result := ValidateDictionaryEntries(nil)
		assert.True(t, result.HasErrors())
	})

	t.Run("valid entries", func(t *testing.T) {
		result := ValidateDictionaryEntries([]model.DictionaryEntry{
			{Reading: "gao", Value: "高", Score: -2.9},
		})
		assert.False(t, result.HasErrors())
	})

	t.Run("entry problems are per-field", func(t *testing.T) {
		result := ValidateDictionaryEntries([]model.DictionaryEntry{
			{Value: "高"},
			{Reading: "ke"},
		})
		assert.Len(t, result.Errors, 2)
	})
}

func TestValidateOverrideRequest(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := services.OverrideRequest{Location: 0, Value: "高", Type: services.OverrideTypeHighScore}
		result := ValidateOverrideRequest(&req)
		assert.False(t, result.HasErrors())
	})

	t.Run("missing value", func(t *testing.T) {
		req := services.OverrideRequest{Location: 0, Type: services.OverrideTypeHighScore}
		result := ValidateOverrideRequest(&req)
		assert.True(t, result.HasErrors())
	})

	t.Run("negative location", func(t *testing.T) {
		req := services.OverrideRequest{Location: -1, Value: "高", Type: services.OverrideTypeHighScore}
		result := ValidateOverrideRequest(&req)
		assert.True(t, result.HasErrors())
	})

	t.Run("bad type", func(t *testing.T) {
		req := services.OverrideRequest{Location: 0, Value: "高", Type: "nonsense"}
		result := ValidateOverrideRequest(&req)
		assert.True(t, result.HasErrors())
	})

	t.Run("nil request", func(t *testing.T) {
		result := ValidateOverrideRequest(nil)
		assert.True(t, result.HasErrors())
	})
}
