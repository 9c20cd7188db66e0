// Command timetablegen runs the timetable generator core against a JSON
// world snapshot and prints or exports the resulting schedule.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-scheduler/internal/cpsat/ortools"
	"github.com/noah-isme/campus-scheduler/internal/domain"
	"github.com/noah-isme/campus-scheduler/internal/planning"
	"github.com/noah-isme/campus-scheduler/internal/worldio"
	"github.com/noah-isme/campus-scheduler/pkg/export"
	"github.com/noah-isme/campus-scheduler/pkg/storage"
)

var (
	inFile     = "world.json"
	outFile    = "schedule.json"
	format     = "json"
	timeLimit  = planning.DefaultTimeLimit
	workers    = planning.DefaultWorkers
	exportsDir = "./exports"
)

func main() {
	root := &cobra.Command{
		Use:   "timetablegen",
		Short: "University timetable generator",
		Long:  "Validates a campus world snapshot and generates a conflict-free weekly schedule via CP-SAT.",
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "generate a schedule from a world snapshot",
		Run:   runGenerate,
	}
	generate.Flags().StringVar(&inFile, "in", inFile, "input JSON world snapshot")
	generate.Flags().StringVar(&outFile, "out", outFile, "output file name (json is written at this path; csv/pdf under --exports-dir)")
	generate.Flags().StringVar(&format, "format", format, "output format: json, csv or pdf")
	generate.Flags().DurationVar(&timeLimit, "time-limit", timeLimit, "solver wall-clock budget")
	generate.Flags().IntVar(&workers, "workers", workers, "solver parallel search workers")
	generate.Flags().StringVar(&exportsDir, "exports-dir", exportsDir, "directory csv/pdf exports are written under")
	root.AddCommand(generate)

	if err := root.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck
	sugar := zapLogger.Sugar()

	world, err := worldio.ReadFile(inFile)
	if err != nil {
		sugar.Fatalw("failed to read world snapshot", "file", inFile, "error", err)
	}

	engine := ortools.New()
	ctx, cancel := context.WithTimeout(context.Background(), timeLimit+5*time.Second)
	defer cancel()

	start := time.Now()
	entries, err := planning.Generate(ctx, engine, world, planning.Options{
		TimeLimit: timeLimit,
		Workers:   workers,
	})
	if err != nil {
		sugar.Fatalw("schedule generation failed", "error", err)
	}
	sugar.Infow("schedule generated", "sessions", len(entries), "elapsed", time.Since(start))

	switch format {
	case "json":
		if err := worldio.WriteFile(outFile, world, entries); err != nil {
			sugar.Fatalw("failed to write schedule", "error", err)
		}
	case "csv", "pdf":
		if err := writeRendered(entries); err != nil {
			sugar.Fatalw("failed to export schedule", "error", err)
		}
	default:
		sugar.Fatalw("unknown format", "format", format)
	}

	fmt.Printf("generated %d sessions\n", len(entries))
}

// writeRendered renders the schedule as CSV or PDF and saves it under
// exportsDir via the local filesystem store.
func writeRendered(entries []domain.ScheduleEntry) error {
	store, err := storage.NewLocalStorage(exportsDir)
	if err != nil {
		return err
	}

	dataset := export.ScheduleDataset(entries)

	switch format {
	case "csv":
		body, err := export.NewCSVExporter().Render(dataset)
		if err != nil {
			return err
		}
		_, err = store.Save(outFile, body)
		return err
	case "pdf":
		body, err := export.NewPDFExporter().Render(dataset, "Weekly timetable")
		if err != nil {
			return err
		}
		_, err = store.Save(outFile, body)
		return err
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
