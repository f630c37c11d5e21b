package config

import "testing"

func TestWithDefaults(t *testing.T) {
	settings := ComposerSettings{Name: "desk", Dictionary: "mandarin"}
	withDefaults := settings.WithDefaults()
	if withDefaults.Separator != DefaultReadingSeparator {
		t.Errorf("Separator = %q, want %q", withDefaults.Separator, DefaultReadingSeparator)
	}

	custom := ComposerSettings{Name: "desk", Dictionary: "mandarin", Separator: "|"}
	if got := custom.WithDefaults().Separator; got != "|" {
		t.Errorf("Separator = %q, want |", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		settings     ComposerSettings
		wantProblems int
	}{
		{"valid", ComposerSettings{Name: "desk", Dictionary: "mandarin"}, 0},
		{"valid with separator", ComposerSettings{Name: "desk", Dictionary: "mandarin", Separator: "|"}, 0},
		{"empty name", ComposerSettings{Dictionary: "mandarin"}, 1},
		{"whitespace name", ComposerSettings{Name: "   ", Dictionary: "mandarin"}, 1},
		{"empty dictionary", ComposerSettings{Name: "desk"}, 1},
		{"whitespace separator", ComposerSettings{Name: "desk", Dictionary: "mandarin", Separator: "  "}, 1},
		{"everything wrong", ComposerSettings{Separator: " "}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := tt.settings.Validate()
			if len(problems) != tt.wantProblems {
				t.Errorf("Validate() returned %d problems (%v), want %d", len(problems), problems, tt.wantProblems)
			}
		})
	}
}
