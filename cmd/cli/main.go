package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/wadjakorntonsri/linkboard/pkg/app"
	"github.com/wadjakorntonsri/linkboard/pkg/config"
	"github.com/wadjakorntonsri/linkboard/pkg/logging"
)

const usage = "expected 'export' or 'import' subcommands"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	flags := pflag.NewFlagSet(os.Args[1], pflag.ExitOnError)
	flags.StringVar(&cfg.StoreDriver, "driver", cfg.StoreDriver, "document store: sqlite or badger")
	flags.StringVar(&cfg.DatabaseURL, "db", cfg.DatabaseURL, "SQLite or libsql URL")
	flags.StringVar(&cfg.BadgerPath, "badger-path", cfg.BadgerPath, "BadgerDB directory")
	file := flags.StringP("file", "f", "", "JSON file to import")

	// Logs go to stderr so export output stays clean
	log := logging.NewWithOutput(cfg.LogLevel, false, os.Stderr)

	switch os.Args[1] {
	case "export":
		_ = flags.Parse(os.Args[2:])
	case "import":
		_ = flags.Parse(os.Args[2:])
		if *file == "" {
			flags.PrintDefaults()
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	repo, err := app.OpenRepository(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	if os.Args[1] == "export" {
		if err := doExport(ctx, repo, os.Stdout); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		return
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer f.Close()

	res, err := doImport(ctx, repo, f, log)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.WithFields(logrus.Fields{
		"domains": res.Domains,
		"links":   res.Links,
		"skipped": res.Skipped,
	}).Info("Import finished")
}
