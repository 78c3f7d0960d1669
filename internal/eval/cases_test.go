// ABOUTME: Tests for evaluation case loading
// ABOUTME: Covers id assignment, validation errors, and the sample case file
package eval

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCases(t *testing.T) {
	cases, err := LoadCases(filepath.Join("testdata", "cases.yaml"))
	if err != nil {
		t.Fatalf("LoadCases: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(cases))
	}
	if cases[0].ID != "tofu_price" || cases[1].ID != "case_2" {
		t.Errorf("ids = %q, %q", cases[0].ID, cases[1].ID)
	}
	if len(cases[1].ExpectedContext) != 2 || cases[0].ForbiddenAnswer[0] != "I don't know" {
		t.Errorf("unexpected case contents: %+v", cases)
	}
}

func TestParseCases_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "cases: []", "no cases"},
		{"missing question", "cases:\n  - id: a\n", "question is required"},
		{"duplicate id", "cases:\n  - id: a\n    question: x\n  - id: a\n    question: y\n", "duplicate"},
		{"malformed", "cases: [", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCases([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadCases_MissingFile(t *testing.T) {
	if _, err := LoadCases(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
