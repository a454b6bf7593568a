// Package loadgen drives synthetic air-quality traffic against an ingestion
// endpoint: a fixed pool of workers, each pacing itself to hit a share of the
// global target rate, generating randomized readings with controllable
// anomaly injection.
package loadgen

import (
	"fmt"
	"io"
	"net/url"
	"time"
)

// RecordMode selects how many parameters each generated record carries.
type RecordMode string

const (
	// RecordAll puts every parameter from the table into each record.
	RecordAll RecordMode = "all"
	// RecordSingle puts one uniformly chosen parameter into each record.
	RecordSingle RecordMode = "single"
)

// CoordMode selects where coordinates come from.
type CoordMode string

const (
	// CoordGrid cycles each worker through its slice of a precomputed lattice.
	CoordGrid CoordMode = "grid"
	// CoordRandom samples a fresh coordinate from the bounding box per request.
	CoordRandom CoordMode = "random"
)

// Config is the immutable run configuration, shared read-only by all workers.
type Config struct {
	Duration       time.Duration
	Rate           float64 // aggregate target, requests per second
	AnomalyPercent int     // 0..100
	Endpoint       string
	Workers        int
	RecordMode     RecordMode
	CoordMode      CoordMode
	GridStep       float64 // degrees, grid mode only

	// Progress receives the textual progress bar; nil disables it.
	Progress io.Writer
}

// Validate rejects configurations that would misbehave mid-run. Called before
// any worker starts so a bad run never partially executes.
func (c Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", c.Duration)
	}
	if c.Rate <= 0 {
		return fmt.Errorf("rate must be positive, got %g", c.Rate)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.AnomalyPercent < 0 || c.AnomalyPercent > 100 {
		return fmt.Errorf("anomaly chance must be in [0,100], got %d", c.AnomalyPercent)
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an absolute http(s) URL, got %q", c.Endpoint)
	}
	switch c.RecordMode {
	case RecordAll, RecordSingle:
	default:
		return fmt.Errorf("record mode must be %q or %q, got %q", RecordAll, RecordSingle, c.RecordMode)
	}
	switch c.CoordMode {
	case CoordGrid, CoordRandom:
	default:
		return fmt.Errorf("coord mode must be %q or %q, got %q", CoordGrid, CoordRandom, c.CoordMode)
	}
	if c.CoordMode == CoordGrid && c.GridStep <= 0 {
		return fmt.Errorf("grid step must be positive, got %g", c.GridStep)
	}
	return nil
}

// PacingInterval converts the aggregate target rate into the fixed delay each
// of the workers sleeps after a send: workers/rate seconds, so that N workers
// each doing rate/N req/s add up to the target.
//
// Pacing is open loop. The sleep does not shrink to absorb send latency, so
// actual throughput falls below target once latency exceeds the interval.
// That is a known limitation of the tool, not something callers should
// compensate for.
func PacingInterval(rate float64, workers int) time.Duration {
	return time.Duration(float64(workers) / rate * float64(time.Second))
}
