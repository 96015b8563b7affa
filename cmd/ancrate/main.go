// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command ancrate converts notes from a local notes-app store into a
// Markdown file. It is a single-shot tool: it reads, decodes, and writes,
// then exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sakrist/ancrate/internal/config"
	"github.com/sakrist/ancrate/internal/metrics"
	"github.com/sakrist/ancrate/pkg/ancrate"
	"github.com/sakrist/ancrate/pkg/log"
)

func main() {
	var (
		storePath   = flag.String("store", "", "path to the notes store (required)")
		limit       = flag.Int("limit", 50, "maximum number of notes to convert")
		outPath     = flag.String("out", "", "output file path (default: stdout)")
		configPath  = flag.String("config", "", "optional JSON config file")
		logLevel    = flag.String("loglevel", "info", "log level: debug, info, notice, warn, err, crit")
		logDate     = flag.Bool("logdate", false, "prefix log lines with date/time")
		metricsAddr = flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
		validate    = flag.Bool("validate", false, "validate -config against the schema, then exit")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("could not load .env: %v", err)
	}

	config.Init(*configPath)
	applyFlagOverrides(*storePath, *limit, *outPath, *logLevel, *logDate, *metricsAddr)
	if *validate {
		config.Keys.Validate = true
	}

	log.SetLogLevel(config.Keys.LogLevel)
	log.SetLogDateTime(config.Keys.LogDate)

	if config.Keys.Validate {
		log.Info("config OK")
		return
	}

	if config.Keys.Store == "" {
		log.Fatal("missing required -store flag (or \"store\" in -config)")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if config.Keys.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, config.Keys.MetricsAddr); err != nil {
				log.Errorf("metrics server: %v", err)
			}
		}()
	}

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

// applyFlagOverrides layers explicitly-set flags over whatever Init loaded
// from -config, so a config file supplies defaults and flags win.
func applyFlagOverrides(store string, limit int, out, logLevel string, logDate bool, metricsAddr string) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "store":
			config.Keys.Store = store
		case "limit":
			config.Keys.Limit = limit
		case "out":
			config.Keys.Out = out
		case "loglevel":
			config.Keys.LogLevel = logLevel
		case "logdate":
			config.Keys.LogDate = logDate
		case "metrics-addr":
			config.Keys.MetricsAddr = metricsAddr
		}
	})
}

// run opens the store, decodes every row ListNotes yields, and writes the
// combined Markdown to the configured output.
func run(ctx context.Context) error {
	keys := config.Keys

	store, err := ancrate.OpenStore(keys.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	rows, errs := store.ListNotes(ctx, keys.Limit)

	var notes []ancrate.NoteForMarkdown
	for row := range rows {
		metrics.NotesRead.Inc()

		doc, fallback := ancrate.DecodeNote(row)
		if doc != nil {
			metrics.DecodeOutcomes.WithLabelValues("ok").Inc()
			metrics.ChecklistItemsExtracted.Add(float64(len(ancrate.ExtractChecklists(doc))))
		} else {
			metrics.DecodeOutcomes.WithLabelValues("fallback").Inc()
		}

		notes = append(notes, ancrate.NoteForMarkdown{
			Title:    row.Title,
			Document: doc,
			Fallback: fallback,
		})
	}

	if err := <-errs; err != nil {
		return fmt.Errorf("list notes: %w", err)
	}

	output := ancrate.ToMarkdown(notes)
	return writeOutput(keys.Out, output)
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := fmt.Fprintln(os.Stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content+"\n"), 0o644)
}
