package readings

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		separator string
		want      []string
	}{
		{"empty string", "", "-", []string{}},
		{"single reading", "gao", "-", []string{"gao"}},
		{"three readings", "gao-ke-ji", "-", []string{"gao", "ke", "ji"}},
		{"leading separator", "-gao-ke", "-", []string{"gao", "ke"}},
		{"trailing separator", "gao-ke-", "-", []string{"gao", "ke"}},
		{"doubled separator", "gao--ke", "-", []string{"gao", "ke"}},
		{"only separators", "---", "-", []string{}},
		{"custom separator", "gao|ke", "|", []string{"gao", "ke"}},
		{"empty separator keeps text whole", "gaoke", "", []string{"gaoke"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.input, tt.separator)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q, %q) = %v, want %v", tt.input, tt.separator, got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	if got := Join([]string{"gao", "ke", "ji"}, "-"); got != "gao-ke-ji" {
		t.Errorf("Join = %q, want gao-ke-ji", got)
	}
	if got := Join(nil, "-"); got != "" {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name      string
		reading   string
		separator string
		want      bool
	}{
		{"plain reading", "gao", "-", true},
		{"empty reading", "", "-", false},
		{"separator itself", "-", "-", false},
		{"embedded separator", "gao-ke", "-", false},
		{"empty separator", "gao", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.reading, tt.separator); got != tt.want {
				t.Errorf("IsValid(%q, %q) = %v, want %v", tt.reading, tt.separator, got, tt.want)
			}
		})
	}
}
