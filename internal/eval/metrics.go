// ABOUTME: Deterministic faithfulness and context recall scoring
// ABOUTME: Compares answers and retrieved chunks against expected substrings
package eval

import (
	"fmt"
	"strings"
)

// PassThreshold is the minimum score both metrics need for a case to pass
const PassThreshold = 0.9

// Status values for a scored case
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// Faithfulness scores an answer against required and forbidden text (0.0-1.0).
// Matching is case-insensitive.
func Faithfulness(answer string, expected, forbidden []string) (float64, string) {
	missing := missingFrom(answer, expected)
	found := presentIn(answer, forbidden)

	switch {
	case len(missing) == 0 && len(found) == 0:
		return 1.0, "answer matches expectations"
	case len(missing) > 0 && len(found) > 0:
		return 0.0, fmt.Sprintf("missing expected text: %v, forbidden text found: %v", missing, found)
	case len(missing) > 0:
		return 0.5, fmt.Sprintf("missing expected text: %v", missing)
	default:
		return 0.5, fmt.Sprintf("forbidden text found: %v", found)
	}
}

// ContextRecall is the fraction of expected items present in the retrieved chunks
func ContextRecall(retrieved, expected []string) (float64, string) {
	if len(expected) == 0 {
		return 1.0, "no context expectations"
	}

	missing := missingFrom(strings.Join(retrieved, " "), expected)
	recall := float64(len(expected)-len(missing)) / float64(len(expected))
	if len(missing) == 0 {
		return 1.0, "all expected context retrieved"
	}
	return recall, fmt.Sprintf("recall %.2f, missing: %v", recall, missing)
}

// Score evaluates one case against its answer and retrieved context
func Score(c Case, answer string, retrieved []string) Result {
	faithfulness, faithfulnessDetail := Faithfulness(answer, c.ExpectedAnswer, c.ForbiddenAnswer)
	recall, recallDetail := ContextRecall(retrieved, c.ExpectedContext)

	status := StatusFail
	if faithfulness >= PassThreshold && recall >= PassThreshold {
		status = StatusPass
	}

	return Result{
		CaseID:             c.ID,
		Question:           c.Question,
		Answer:             answer,
		FaithfulnessScore:  faithfulness,
		ContextRecallScore: recall,
		OverallScore:       (faithfulness + recall) / 2,
		Status:             status,
		Details: map[string]string{
			"faithfulness": faithfulnessDetail,
			"recall":       recallDetail,
		},
	}
}

func missingFrom(text string, items []string) []string {
	upper := strings.ToUpper(text)
	var missing []string
	for _, item := range items {
		if !strings.Contains(upper, strings.ToUpper(item)) {
			missing = append(missing, item)
		}
	}
	return missing
}

func presentIn(text string, items []string) []string {
	upper := strings.ToUpper(text)
	var found []string
	for _, item := range items {
		if strings.Contains(upper, strings.ToUpper(item)) {
			found = append(found, item)
		}
	}
	return found
}
