// Package main implements the entry point for the signaltriage daemon.
// It wires the triage pipeline to a sample feed, exposes Prometheus
// metrics, and optionally publishes structured events to NATS.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360/signaltriage/classifier"
	"github.com/c360/signaltriage/config"
	"github.com/c360/signaltriage/ingest"
	"github.com/c360/signaltriage/metric"
	"github.com/c360/signaltriage/pipeline"
	"github.com/c360/signaltriage/voidsink"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "signaltriage"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to JSON configuration file")
	validateOnly := flag.Bool("validate", false, "validate configuration and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", appName, Version)
		return nil
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if *validateOnly {
		slog.Info("Configuration is valid")
		return nil
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("Starting signaltriage",
		"version", Version,
		"noise_source", cfg.Classifier.NoiseSource,
		"ingest_mode", cfg.Ingest.Mode)

	var nc *nats.Conn
	if cfg.NATS.Enabled {
		conn, err := nats.Connect(cfg.NATS.URL,
			nats.Name(appName),
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second))
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		nc = conn
		defer nc.Close()
		logger.Info("Connected to NATS", "url", cfg.NATS.URL)
	}

	registry := metric.NewRegistry()

	p, err := pipeline.New(pipeline.Config{
		Name: appName,
		Classifier: classifier.Config{
			FlashThreshold:   cfg.Classifier.FlashThreshold,
			EncodeConfidence: cfg.Classifier.EncodeConfidence,
			ImmuneCriteria:   cfg.Classifier.ImmuneCriteria,
			ImmuneWindow:     cfg.Classifier.ImmuneWindow(),
		},
		Void: voidsink.Config{
			VoidThreshold: cfg.Void.Threshold,
			Sink:          io.Discard,
		},
		NoiseSource:  cfg.Classifier.NoiseSource,
		EventSubject: cfg.NATS.EventSubject,
	}, nc, logger, registry)
	if err != nil {
		return err
	}

	worker, err := ingest.NewWorker(ingest.Config{
		Mode:     cfg.Ingest.Mode,
		Subject:  cfg.Ingest.Subject,
		Interval: cfg.Ingest.Interval(),
	}, p, nc, logger, registry)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := worker.Start(ctx); err != nil {
		return err
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(
			registry.PrometheusRegistry(),
			promhttp.HandlerOpts{},
		))
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("Metrics endpoint listening", "addr", cfg.Metrics.ListenAddr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down", "signal", sig.String())

	cancel()
	if err := worker.Stop(5 * time.Second); err != nil {
		logger.Error("Worker shutdown failed", "error", err)
	}

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown failed", "error", err)
		}
	}

	snap := p.Snapshot()
	logger.Info("Final sink metrics",
		"bytes_routed", snap.BytesRouted,
		"retained_patterns", snap.RetainedPatterns,
		"signal_extractions", snap.SignalExtractions,
		"entropy_reduction", snap.EntropyReduction,
		"preservation_efficiency", snap.PreservationEfficiency,
		"trauma_voided", snap.TraumaVoided)

	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
