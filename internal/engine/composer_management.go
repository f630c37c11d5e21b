package engine

import (
	"sort"
	"strings"

	"github.com/gcbaptista/go-composer-engine/config"
	"github.com/gcbaptista/go-composer-engine/internal/errors"
	"github.com/gcbaptista/go-composer-engine/services"
)

// CreateComposer creates a new composer session over an existing dictionary.
func (e *Engine) CreateComposer(settings config.ComposerSettings) error {
	settings = settings.WithDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return errors.NewValidationError("settings", strings.Join(problems, "; "))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.composers[settings.Name]; exists {
		return errors.NewComposerAlreadyExistsError(settings.Name)
	}
	dictionary, exists := e.dictionaries[settings.Dictionary]
	if !exists {
		return errors.NewDictionaryNotFoundError(settings.Dictionary)
	}

	e.composers[settings.Name] = NewComposerInstance(settings, dictionary)
	return nil
}

// GetComposer retrieves a composer session by name.
func (e *Engine) GetComposer(name string) (services.ComposerAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.composers[name]
	if !exists {
		return nil, errors.NewComposerNotFoundError(name)
	}
	return instance, nil
}

// GetComposerSettings retrieves the settings for a composer session.
func (e *Engine) GetComposerSettings(name string) (config.ComposerSettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.composers[name]
	if !exists {
		return config.ComposerSettings{}, errors.NewComposerNotFoundError(name)
	}
	return instance.Settings(), nil
}

// DeleteComposer removes a composer session. The session holds no persisted
// state, so deletion is purely in-memory.
func (e *Engine) DeleteComposer(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.composers[name]; !exists {
		return errors.NewComposerNotFoundError(name)
	}
	delete(e.composers, name)
	return nil
}

// ListComposers returns the names of all composer sessions, sorted.
func (e *Engine) ListComposers() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.composers))
	for name := range e.composers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
