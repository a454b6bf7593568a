// ============================================
// Air-Quality Ingest Load Generator
//
// Posts fabricated sensor readings to an ingestion endpoint at a target
// aggregate rate for a bounded duration, with a configurable share of
// out-of-bounds (anomalous) values.
//
// Usage:
//   loadgen -duration 30 -rate 50 -anomaly-chance 10 -endpoint http://localhost:8000/api/v1/air_quality/ingest
// ============================================

package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abozten/air-quality-platform/internal/loadgen"
)

func main() {
	duration := flag.Int("duration", 30, "test duration in seconds")
	rate := flag.Float64("rate", 50.0, "aggregate target rate in requests per second")
	anomaly := flag.Int("anomaly-chance", 10, "per-parameter anomaly probability in percent (0-100)")
	endpoint := flag.String("endpoint", "http://localhost:8000/api/v1/air_quality/ingest", "ingestion endpoint URL")
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent workers")
	recordMode := flag.String("record-mode", "all", "parameters per record: all | single")
	coordMode := flag.String("coord-mode", "grid", "coordinate source: grid | random")
	step := flag.Float64("step", 0.45, "grid step in degrees (grid mode)")
	noProgress := flag.Bool("no-progress", false, "disable the progress bar")
	metricsAddr := flag.String("metrics-addr", "", "optional listen address for a Prometheus /metrics endpoint")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var progress io.Writer
	if !*noProgress {
		progress = os.Stdout
	}

	cfg := loadgen.Config{
		Duration:       time.Duration(*duration) * time.Second,
		Rate:           *rate,
		AnomalyPercent: *anomaly,
		Endpoint:       *endpoint,
		Workers:        *workers,
		RecordMode:     loadgen.RecordMode(*recordMode),
		CoordMode:      loadgen.CoordMode(*coordMode),
		GridStep:       *step,
		Progress:       progress,
	}

	runner, err := loadgen.NewRunner(cfg)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(loadgen.Collectors()...)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	logger.Info("starting load test",
		zap.Int("duration_s", *duration),
		zap.Float64("rate", *rate),
		zap.Int("anomaly_pct", *anomaly),
		zap.Int("workers", *workers),
		zap.String("record_mode", *recordMode),
		zap.String("coord_mode", *coordMode),
		zap.String("endpoint", *endpoint),
	)
	if cfg.CoordMode == loadgen.CoordGrid {
		logger.Info("built coordinate grid", zap.Int("points", runner.GridSize()))
	}

	sum, err := runner.Run()
	if err != nil {
		logger.Fatal("run aborted", zap.Error(err))
	}

	fmt.Printf("Finished: sent %d requests in %d seconds.\n", sum.Requests, int(sum.Elapsed.Seconds()))
}
