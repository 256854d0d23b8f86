package archive

import "testing"

func TestMatchAny(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		value    string
		want     bool
	}{
		{
			name:     "empty patterns returns false",
			patterns: []string{},
			value:    "anything",
			want:     false,
		},
		{
			name:     "nil patterns returns false",
			patterns: nil,
			value:    "anything",
			want:     false,
		},
		{
			name:     "single pattern match",
			patterns: []string{"eng-*"},
			value:    "eng-backend",
			want:     true,
		},
		{
			name:     "single pattern no match",
			patterns: []string{"eng-*"},
			value:    "marketing",
			want:     false,
		},
		{
			name:     "multiple patterns middle matches",
			patterns: []string{"eng-*", "ai-*", "marketing"},
			value:    "ai-team",
			want:     true,
		},
		{
			name:     "multiple patterns none match",
			patterns: []string{"eng-*", "ai-*", "marketing"},
			value:    "random",
			want:     false,
		},
		{
			name:     "case-insensitive match",
			patterns: []string{"ENG-*"},
			value:    "eng-backend",
			want:     true,
		},
		{
			name:     "question mark wildcard",
			patterns: []string{"team-?"},
			value:    "team-a",
			want:     true,
		},
		{
			name:     "invalid pattern matches nothing",
			patterns: []string{"[unclosed"},
			value:    "[unclosed",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchAny(tt.patterns, tt.value); got != tt.want {
				t.Errorf("matchAny(%v, %q) = %v, want %v", tt.patterns, tt.value, got, tt.want)
			}
		})
	}
}

func TestFilter_Match(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		value   string
		want    bool
	}{
		{
			name:  "no patterns admits everything",
			value: "general",
			want:  true,
		},
		{
			name:    "include match",
			include: []string{"eng-*"},
			value:   "eng-backend",
			want:    true,
		},
		{
			name:    "include miss",
			include: []string{"eng-*"},
			value:   "marketing",
			want:    false,
		},
		{
			name:    "exclude wins over include",
			include: []string{"eng-*"},
			exclude: []string{"*-archive"},
			value:   "eng-archive",
			want:    false,
		},
		{
			name:    "exclude without include",
			exclude: []string{"random"},
			value:   "random",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.include, tt.exclude)
			if got := f.Match(tt.value); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
