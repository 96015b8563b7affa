// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics exposes the optional Prometheus counters for a single
// ancrate run: notes read, decode outcomes, and checklist items extracted.
// It is deliberately thin — a counter surface, not a replacement for the
// out-of-scope UI.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakrist/ancrate/pkg/log"
)

var (
	NotesRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ancrate_notes_read_total",
		Help: "Number of note rows read from the source store.",
	})

	DecodeOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ancrate_decode_outcomes_total",
		Help: "Protobuf decode outcomes by result kind.",
	}, []string{"outcome"})

	ChecklistItemsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ancrate_checklist_items_extracted_total",
		Help: "Total checklist items extracted across all decoded notes.",
	})
)

// Serve starts a /metrics HTTP server on addr and blocks until ctx is
// canceled. It is only started when the caller passes a non-empty
// -metrics-addr; a run with no flag set never touches the network.
func Serve(ctx context.Context, addr string) error {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("metrics: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
