// Package core has core logic for coverage aggregation, test reporting,
// test sequencing and environment setup.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/internal/outwriter"
	"github.com/dreamscape/testkit/schema"
)

// ExecutorFunc defines the function signature for executing the report commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// ExecuteCoverage generates the coverage reports, prints the per-service table and
// records the run in the history store.
// It serves as the main entry point for the 'coverage' command.
func ExecuteCoverage(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	report, err := RunCoverage(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if shouldSuppressOutput(ctx) {
		return nil
	}
	ow := outwriter.NewOutWriter()
	if err := ow.PrintCoverageSummary(report, cfg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ow.Progress(), "Report completed in %v. History backend: %s\n", time.Since(start).Round(time.Millisecond), cfg.HistoryBackend)
	return nil
}

// ExecuteTestReport generates the test reports, prints the inventory table and
// records the run in the history store.
// It serves as the main entry point for the 'report' command.
func ExecuteTestReport(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	report, err := RunTestReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if shouldSuppressOutput(ctx) {
		return nil
	}
	return outwriter.NewOutWriter().PrintTestSummary(report, cfg)
}

// ExecuteSequence prints the given test paths in execution order, one per line.
// With no paths, test files are discovered under the workspace root.
func ExecuteSequence(ctx context.Context, cfg *contract.Config, paths []string) error {
	ordered, err := GetSequenceResults(cfg, paths)
	if err != nil {
		return err
	}
	if shouldSuppressOutput(ctx) {
		return nil
	}
	for _, t := range ordered {
		if _, err := fmt.Fprintln(os.Stdout, t.Path); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteSetup prepares the workspace for a test run.
// It serves as the main entry point for the 'setup' command.
func ExecuteSetup(ctx context.Context, cfg *contract.Config) error {
	_, err := SetupEnvironment(ctx, cfg)
	return err
}

// RunCoverage generates the coverage reports and records the run. A history
// failure is logged and does not fail the run.
func RunCoverage(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (*schema.CoverageReport, error) {
	report, err := GenerateCoverageReport(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if store := historyStore(mgr); store != nil {
		if runID, err := store.RecordCoverageRun(report); err != nil {
			contract.LogWarn("Could not record coverage run", err)
		} else {
			_, _ = fmt.Fprintf(newOutWriter(ctx).Progress(), "🗄️ Recorded coverage run #%d\n", runID)
		}
	}
	return report, nil
}

// RunTestReport generates the test reports and records the run. A history
// failure is logged and does not fail the run.
func RunTestReport(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (*schema.TestReport, error) {
	report, err := GenerateTestReport(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if store := historyStore(mgr); store != nil {
		if runID, err := store.RecordTestRun(report); err != nil {
			contract.LogWarn("Could not record test run", err)
		} else {
			_, _ = fmt.Fprintf(newOutWriter(ctx).Progress(), "🗄️ Recorded test run #%d\n", runID)
		}
	}
	return report, nil
}

// GetSequenceResults orders paths, or the discovered test files when paths is empty,
// with the configured priority list.
func GetSequenceResults(cfg *contract.Config, paths []string) ([]schema.TestDescriptor, error) {
	tests := schema.DescriptorsFromPaths(paths)
	if len(paths) == 0 {
		discovered, err := DiscoverTests(cfg.WorkspaceRoot, cfg.TestPatterns)
		if err != nil {
			return nil, err
		}
		tests = discovered
	}
	return SortTests(tests, cfg.Priority), nil
}

func historyStore(mgr contract.HistoryManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

func newOutWriter(ctx context.Context) *outwriter.OutWriter {
	if shouldSuppressOutput(ctx) {
		return outwriter.NewQuietOutWriter()
	}
	return outwriter.NewOutWriter()
}

func writeIndentedJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
