// Command importer ingests a directory of curriculum documents (PDF or
// plain text) into the relational catalog: text extraction, hierarchical
// segmentation, topic and keyword classification, idempotent persistence.
// It is intended to be run offline, not as part of a serving path.
//
// Flags:
//
//	--dir      directory of source files to import (required)
//	--lessons  use the UNIT/LESSON/SESSION segmenter with focus tagging
//	--dry-run  extract and segment without writing to DB
//
// Exit codes: 0 = success, 1 = error or any failed file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/edustack/curriculum-backend/internal/adapter/postgres"
	"github.com/edustack/curriculum-backend/internal/adapter/postgres/curriculum"
	"github.com/edustack/curriculum-backend/internal/app"
	"github.com/edustack/curriculum-backend/internal/batch"
	"github.com/edustack/curriculum-backend/internal/config"
	"github.com/edustack/curriculum-backend/internal/domain"
	"github.com/edustack/curriculum-backend/internal/importer"
)

// Compile-time interface assertion.
var (
	_ importer.Repo      = (*curriculum.Repo)(nil)
	_ importer.TxManager = (*curriculum.Repo)(nil)
)

func main() {
	dirFlag := flag.String("dir", "", "directory of source files to import")
	lessonsFlag := flag.Bool("lessons", false, "use the lesson-oriented segmenter")
	dryRunFlag := flag.Bool("dry-run", false, "extract and segment without writing to DB")
	flag.Parse()

	if *dirFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting importer", slog.String("version", app.BuildVersion()))

	// 30-minute context timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	opts := batch.Options{Lessons: *lessonsFlag, DryRun: *dryRunFlag}

	var driver *batch.Driver
	if *dryRunFlag {
		driver = batch.New(logger, cfg.Pipeline, nil, opts)
	} else {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		repo := curriculum.New(pool, postgres.NewTxManager(pool))
		driver = batch.New(logger, cfg.Pipeline, importer.New(logger, repo, repo), opts)
	}

	report, err := driver.Run(ctx, *dirFlag)
	if err != nil {
		logger.Error("batch import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	printReport(report, *dryRunFlag)

	if report.HasFailures() {
		os.Exit(1)
	}
}

// printReport writes a colored per-file summary to stdout.
func printReport(report *batch.Report, dryRun bool) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if dryRun {
		fmt.Println(bold("Dry run: no rows were written."))
	}

	for _, f := range report.Files {
		switch f.Status {
		case domain.ImportStatusImported:
			fmt.Printf("%s  %-40s sections=%d topics=%d keywords=%d (%s)\n",
				green("OK  "), f.Filename, f.Sections, f.Topics, f.Keywords,
				f.Duration.Round(time.Millisecond))
		case domain.ImportStatusSkipped:
			fmt.Printf("%s  %-40s already imported\n", yellow("SKIP"), f.Filename)
		default:
			fmt.Printf("%s  %-40s %v\n", red("FAIL"), f.Filename, f.Err)
		}
	}

	fmt.Printf("\n%s imported=%d skipped=%d failed=%d\n",
		bold("Total:"), report.Imported, report.Skipped, report.Failed)
}
