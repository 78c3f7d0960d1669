// ABOUTME: Runs evaluation cases through the chat service and collects scores
// ABOUTME: Every case gets a fresh session so earlier answers cannot leak into later ones
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harper/menuchat/internal/chat"
	"github.com/harper/menuchat/internal/logger"
)

// Result is the outcome of one case
type Result struct {
	CaseID             string            `json:"case_id"`
	Question           string            `json:"question"`
	Answer             string            `json:"answer"`
	FaithfulnessScore  float64           `json:"faithfulness"`
	ContextRecallScore float64           `json:"context_recall"`
	OverallScore       float64           `json:"overall"`
	Status             string            `json:"status"`
	Details            map[string]string `json:"details,omitempty"`
	ErrorMessage       string            `json:"error,omitempty"`
}

// Report summarizes a run
type Report struct {
	Timestamp string   `json:"timestamp"`
	Total     int      `json:"total_cases"`
	Passed    int      `json:"passed"`
	Failed    int      `json:"failed"`
	Results   []Result `json:"results"`
}

// Runner executes cases against a chat service
type Runner struct {
	service *chat.Service
	logger  *log.Logger
}

// NewRunner creates a runner
func NewRunner(service *chat.Service, l *log.Logger) *Runner {
	if l == nil {
		l = logger.Discard()
	}
	return &Runner{service: service, logger: l}
}

// RunCase answers a single case. Answer failures are recorded on the result.
func (r *Runner) RunCase(ctx context.Context, c Case) Result {
	answer, err := r.service.Ask(ctx, chat.NewSession(), c.Question)
	if err != nil {
		r.logger.Warn("case failed", "case", c.ID, "error", err)
		return Result{CaseID: c.ID, Question: c.Question, Status: StatusFail, ErrorMessage: err.Error()}
	}

	retrieved := make([]string, 0, len(answer.Sources))
	for _, src := range answer.Sources {
		retrieved = append(retrieved, src.Content)
	}

	result := Score(c, answer.Text, retrieved)
	r.logger.Debug("case scored", "case", c.ID, "status", result.Status, "overall", result.OverallScore)
	return result
}

// Run executes every case in order and builds the report.
// It stops early only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, cases []Case) (*Report, error) {
	report := &Report{
		Timestamp: time.Now().Format(time.RFC3339),
		Results:   make([]Result, 0, len(cases)),
	}

	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := r.RunCase(ctx, c)
		report.Results = append(report.Results, result)
		if result.Status == StatusPass {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	report.Total = len(report.Results)
	return report, nil
}

// WriteJSON saves the report to path
func (rep *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
