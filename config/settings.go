// Package config provides configuration structures for the composer engine.
// It defines composer settings and their validation.
package config

import "strings"

// DefaultReadingSeparator joins adjacent readings into combined-reading keys
// when a composer does not configure its own separator.
const DefaultReadingSeparator = "-"

// ComposerSettings contains the configuration for one composer session.
// Settings are fixed at creation time: the separator is baked into every
// combined reading stored in the lattice, so changing it on a live composer
// would desynchronize the grid from its dictionary keys.
type ComposerSettings struct {
	Name       string `json:"name"`                // Unique name for the composer session
	Dictionary string `json:"dictionary"`          // Name of the dictionary supplying candidates
	Separator  string `json:"separator,omitempty"` // Reading separator; defaults to "-"
}

// WithDefaults returns a copy with the default separator applied when none
// was configured.
func (settings ComposerSettings) WithDefaults() ComposerSettings {
	if settings.Separator == "" {
		settings.Separator = DefaultReadingSeparator
	}
	return settings
}

// Validate checks the settings for basic requirements and returns a list of
// human-readable problems, empty when the settings are usable.
func (settings *ComposerSettings) Validate() []string {
	var problems []string

	if strings.TrimSpace(settings.Name) == "" {
		problems = append(problems, "Composer name cannot be empty or whitespace-only")
	}
	if strings.TrimSpace(settings.Dictionary) == "" {
		problems = append(problems, "Dictionary name cannot be empty or whitespace-only")
	}
	if settings.Separator != "" && strings.TrimSpace(settings.Separator) == "" {
		problems = append(problems, "Separator cannot be whitespace-only")
	}

	return problems
}
