// ABOUTME: Evaluation case definitions loaded from YAML
// ABOUTME: Each case pairs a question with the context and answer text it should produce
package eval

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Case is a single retrieval and answer quality check
type Case struct {
	ID              string   `yaml:"id"`
	Question        string   `yaml:"question"`
	ExpectedContext []string `yaml:"expected_context"` // substrings the retrieved chunks must contain
	ExpectedAnswer  []string `yaml:"expected_answer"`  // substrings the answer must contain
	ForbiddenAnswer []string `yaml:"forbidden_answer"` // substrings the answer must not contain
}

type caseFile struct {
	Cases []Case `yaml:"cases"`
}

// LoadCases reads a case file. Cases without an id are numbered case_1, case_2...
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases file: %w", err)
	}
	return ParseCases(data)
}

// ParseCases decodes and validates case YAML
func ParseCases(data []byte) ([]Case, error) {
	var file caseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse cases: %w", err)
	}
	if len(file.Cases) == 0 {
		return nil, errors.New("cases file contains no cases")
	}

	seen := make(map[string]bool, len(file.Cases))
	for i := range file.Cases {
		c := &file.Cases[i]
		if strings.TrimSpace(c.Question) == "" {
			return nil, fmt.Errorf("case %d: question is required", i+1)
		}
		if c.ID == "" {
			c.ID = fmt.Sprintf("case_%d", i+1)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate case id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return file.Cases, nil
}
