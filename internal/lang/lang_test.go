package lang

import (
	"testing"
)

func TestForTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		want   bool
	}{
		{"csharp", true},
		{"go", true},
		{"python", false},
		{"", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			got := ForTarget(tt.target) != nil
			if got != tt.want {
				t.Errorf("ForTarget(%q) registered = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestLanguagesRegistered(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"csharp", "go"} {
		l, ok := Languages[name]
		if !ok {
			t.Fatalf("%s language not registered", name)
		}
		if l.lang == nil {
			t.Errorf("%s language is nil", name)
		}
		if l.NewParser() == nil {
			t.Errorf("%s: NewParser returned nil", name)
		}
	}
}

func TestGetDeclQuery(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"csharp", "go"} {
		q, err := Languages[name].GetDeclQuery()
		if err != nil {
			t.Fatalf("%s: GetDeclQuery: %v", name, err)
		}
		if q == nil {
			t.Fatalf("%s: query is nil", name)
		}
	}
}

func TestPreludeLines(t *testing.T) {
	t.Parallel()

	if got := Languages["csharp"].PreludeLines(); got != 2 {
		t.Errorf("csharp PreludeLines = %d, want 2", got)
	}
	if got := Languages["go"].PreludeLines(); got != 0 {
		t.Errorf("go PreludeLines = %d, want 0", got)
	}
}
