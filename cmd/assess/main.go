// Offline assessment tool for running the readiness pipeline over local
// text files without a server.
//
// Usage:
//
//	go run cmd/assess/main.go -name "QPay Solutions" docs/profile.txt docs/aml-policy.txt
//
// This tool:
//  1. Reads plain-text documents from the given paths
//  2. Runs extraction, gap analysis, scoring, and recommendations
//  3. Prints the full assessment result as JSON on stdout
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/regtech-labs/finregx/internal/pipeline"
)

func main() {
	name := flag.String("name", "", "Startup name for the report")
	pretty := flag.Bool("pretty", true, "Indent the JSON output")
	summary := flag.Bool("summary", false, "Print a human-readable summary to stderr")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: assess [-name \"Startup Inc\"] file.txt [file2.txt ...]")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	documents := make(map[string]string, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: cannot read %s: %v\n", path, err)
			os.Exit(1)
		}
		documents[filepath.Base(path)] = string(content)
	}

	startupName := *name
	if startupName == "" {
		startupName = "unnamed-startup"
	}

	processor := pipeline.NewProcessor(nil, nil, 0)
	result := processor.Process(context.Background(), &pipeline.Input{
		TenantID:     "cli",
		AssessmentID: uuid.New().String(),
		StartupName:  startupName,
		TraceID:      uuid.New().String(),
		Documents:    documents,
		StartTime:    time.Now(),
	})

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: cannot encode result: %v\n", err)
		os.Exit(1)
	}

	if *summary {
		fmt.Fprintf(os.Stderr, "\n%s — %.2f%% ready (%s)\n",
			startupName, result.Score.OverallScore, result.Score.ReadinessLevel)
		fmt.Fprintf(os.Stderr, "Gaps: %d total (%d high, %d medium, %d low)\n",
			result.Score.TotalGaps,
			result.Score.HighSeverityGaps,
			result.Score.MediumSeverityGaps,
			result.Score.LowSeverityGaps,
		)
		for _, gap := range result.Gaps {
			fmt.Fprintf(os.Stderr, "  [%s] %s: %s\n", gap.Severity, gap.GapID, gap.Description)
		}
	}
}
