// ABOUTME: CLI command to score retrieval and answer quality against YAML cases
// ABOUTME: Reports faithfulness and context recall per case and exits non-zero on failures
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/menuchat/internal/eval"
)

var (
	evalCases  string
	evalOutput string
)

// NewEvalCmd creates the eval command
func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate answers against expected results",
		Long: `Evaluate retrieval and answer quality against a YAML case file.

Each case asks one question in a fresh session and scores:
  faithfulness    expected_answer text present, forbidden_answer absent
  context recall  share of expected_context found in retrieved chunks

A case passes when both scores are at least 0.9.

Case file format:
  cases:
    - id: tofu_price
      question: How much is the Spicy Tofu?
      expected_context: ["Spicy Tofu"]
      expected_answer: ["$9.00"]
      forbidden_answer: ["I don't know"]

Examples:
  menuchat eval --cases eval_cases.yaml
  menuchat eval --cases eval_cases.yaml --output results.json`,
		Args: cobra.NoArgs,
		RunE: runEval,
	}

	cmd.Flags().StringVar(&evalCases, "cases", "eval_cases.yaml", "Path to the YAML case file")
	cmd.Flags().StringVarP(&evalOutput, "output", "o", "", "Write the JSON report to this file")

	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	cases, err := eval.LoadCases(evalCases)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l := newLogger(cfg)

	a, err := newAssistant(cfg, l)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := eval.NewRunner(a.service, l).Run(ctx, cases)
	if err != nil {
		return err
	}

	if evalOutput != "" {
		if err := report.WriteJSON(evalOutput); err != nil {
			return err
		}
		l.Info("report written", "file", evalOutput)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", data)
	} else if !quiet {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "CASE\tFAITHFULNESS\tRECALL\tOVERALL\tSTATUS\n")
		fmt.Fprintf(w, "----\t------------\t------\t-------\t------\n")
		for _, r := range report.Results {
			fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%s\n",
				truncate(r.CaseID, 30), r.FaithfulnessScore, r.ContextRecallScore, r.OverallScore, r.Status)
		}
		w.Flush()
		fmt.Fprintf(out, "\nTotal: %d  Passed: %d  Failed: %d\n", report.Total, report.Passed, report.Failed)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d case(s) failed", report.Failed, report.Total)
	}
	return nil
}
