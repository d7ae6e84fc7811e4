// Package main provides a performance benchmarking tool for the castdash CLI.
// It measures how long each dashboard panel takes against a datamart, running
// every panel multiple times per output format, treating the first successful run
// as cold and averaging the rest as warm, and saves the timings as CSV.
//
// Prerequisites:
// - castdash binary installed and available in PATH
//
// Usage: go run benchmark/main.go [datamart-file]
//
//	datamart-file: Optional SQLite datamart. When omitted, a temporary datamart is
//	migrated and seeded with the demo portfolio. CASTDASH_DB_* environment
//	variables take precedence, so a production datamart can be benchmarked too.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the timings of one panel in one output format.
type BenchmarkResult struct {
	Panel    string
	Output   string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Datamart string
	Timeout  time.Duration
	Runs     int
	Outputs  []string
	Panels   [][]string
}

func main() {
	if len(os.Args) > 2 {
		fmt.Printf("Usage: %s [datamart-file]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		Timeout: 2 * time.Minute,
		Runs:    5,
		Outputs: []string{"text", "json"},
		Panels: [][]string{
			{"portfolio"},
			{"risk"},
			{"apps", "--limit", "1000"},
			{"tech"},
			{"architecture"},
			{"security"},
			{"performance"},
			{"applications"},
			{"trends", "health", "--months", "12"},
			{"trends", "quality", "--months", "12"},
			{"overview"},
			{"app", "health", "1"},
			{"app", "violations", "1"},
			{"app", "iso", "1"},
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) == 2 {
		config.Datamart = os.Args[1]
	} else {
		dir, err := os.MkdirTemp("", "castdash-benchmark-*")
		if err != nil {
			fmt.Printf("Failed to create temp dir: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = os.RemoveAll(dir) }()

		config.Datamart = filepath.Join(dir, "datamart.db")
		if err := prepareDatamart(config); err != nil {
			fmt.Printf("Failed to prepare datamart: %v\n", err)
			os.Exit(1)
		}
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results, config.Outputs)
}

// checkPrerequisites verifies that the castdash binary exists
func checkPrerequisites() error {
	if _, err := exec.LookPath("castdash"); err != nil {
		return fmt.Errorf("castdash binary not found in PATH")
	}
	return nil
}

// prepareDatamart migrates and seeds the SQLite datamart
func prepareDatamart(config BenchmarkConfig) error {
	fmt.Printf("Seeding demo datamart at %s\n", config.Datamart)
	for _, args := range [][]string{{"datamart", "migrate"}, {"datamart", "seed"}} {
		cmd := castdashCommand(config, args...)
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("castdash %s: %w\nOutput: %s", strings.Join(args, " "), err, string(output))
		}
	}
	return nil
}

// castdashCommand builds a castdash invocation against the benchmark datamart
func castdashCommand(config BenchmarkConfig, args ...string) *exec.Cmd {
	cmd := exec.Command("castdash", args...)
	cmd.Env = append([]string{
		"CASTDASH_DB_BACKEND=sqlite",
		"CASTDASH_DB_CONNECT=" + config.Datamart,
		"CASTDASH_COLOR=no",
	}, os.Environ()...)
	return cmd
}

// runBenchmarks executes every panel in every output format
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d panels, %d outputs, %d runs, %v timeout\n",
		len(config.Panels), len(config.Outputs), config.Runs, config.Timeout)

	for _, panel := range config.Panels {
		name := strings.Join(panel, " ")
		for _, output := range config.Outputs {
			cold, warm := runBenchmark(config, panel, output)
			fmt.Printf("  %-28s %-5s cold: %s, warm: %s\n", name, output, cold, warm)
			results = append(results, BenchmarkResult{
				Panel:    name,
				Output:   output,
				ColdTime: cold,
				WarmTime: warm,
			})
		}
	}

	return results
}

// runBenchmark runs one panel config.Runs times and returns the cold time and the warm average
func runBenchmark(config BenchmarkConfig, panel []string, output string) (coldTime, warmAvg string) {
	args := append(append([]string{}, panel...), "--output", output)

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()
		cmd := castdashCommand(config, args...)

		done := make(chan bool)
		var stdout []byte
		var cmdErr error

		go func() {
			stdout, cmdErr = cmd.Output()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(stdout, output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) == 0 {
		return "FAILED", "FAILED"
	}
	coldTime = fmt.Sprintf("%.3fs", times[0])
	if len(times) == 1 {
		return coldTime, "-"
	}
	var sum float64
	for _, t := range times[1:] {
		sum += t
	}
	return coldTime, fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
}

// isSuccess checks if command output indicates a rendered panel
func isSuccess(stdout []byte, output string) bool {
	if output == "json" {
		return json.Valid(stdout)
	}
	return strings.Contains(string(stdout), "Panel computed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/castdash_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"panel", "output", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Panel, result.Output, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the warm averages grouped by output format
func printSummary(results []BenchmarkResult, outputs []string) {
	fmt.Printf("Benchmark complete\n")
	for _, output := range outputs {
		fmt.Printf("Output %s:\n", output)
		for _, result := range results {
			if result.Output == output {
				fmt.Printf("  %-28s: Cold: %s, Warm: %s\n", result.Panel, result.ColdTime, result.WarmTime)
			}
		}
	}
}
