package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/JackSam678/Stress/internal/metrics"
)

// PrintReport outputs a human-readable summary report.
func PrintReport(w io.Writer, runID string, stats metrics.Stats) {
	fmt.Fprintln(w, "\n--- Load Test Results ---")
	if runID != "" {
		fmt.Fprintf(w, "Run ID:            %s\n", runID)
	}
	fmt.Fprintf(w, "Completed:         %d\n", stats.Total)
	fmt.Fprintf(w, "Successful:        %d\n", stats.Successes)
	fmt.Fprintf(w, "Failed:            %d\n", stats.Failures)
	fmt.Fprintf(w, "Duration:          %s\n", stats.Duration)
	fmt.Fprintf(w, "Requests/sec:      %.2f\n", stats.RequestsPerSec)

	fmt.Fprintln(w, "\nLatency:")
	fmt.Fprintf(w, "  Min:             %s\n", stats.MinLatency)
	fmt.Fprintf(w, "  Max:             %s\n", stats.MaxLatency)
	fmt.Fprintf(w, "  Mean:            %s\n", stats.MeanLatency)
	fmt.Fprintf(w, "  P50:             %s\n", stats.P50Latency)
	fmt.Fprintf(w, "  P90:             %s\n", stats.P90Latency)
	fmt.Fprintf(w, "  P99:             %s\n", stats.P99Latency)

	fmt.Fprintln(w, "\nStatus Codes:")
	statusRows := metrics.FlattenStatusCounts(stats.StatusCounts)
	if len(statusRows) == 0 {
		fmt.Fprintln(w, "  None")
	}
	for _, row := range statusRows {
		fmt.Fprintf(w, "  HTTP %d: %d\n", row.Code, row.Count)
	}

	if len(stats.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		for _, row := range metrics.FlattenErrorCounts(stats.Errors) {
			fmt.Fprintf(w, "  %s: %d\n", metrics.DisplayKind(row.Kind), row.Count)
		}
	}
}

type jsonReport struct {
	RunID string `json:"run_id,omitempty"`
	metrics.Stats
}

// PrintJSONReport outputs a JSON-formatted report.
func PrintJSONReport(w io.Writer, runID string, stats metrics.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{RunID: runID, Stats: stats})
}
