package loadgen

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abozten/air-quality-platform/internal/airdata"
)

// Summary is the final report of a completed run.
type Summary struct {
	Requests uint64
	Elapsed  time.Duration
}

// Runner owns the run: it builds the coordinate model once, partitions it
// across workers, starts them against a shared deadline and joins everything
// before reporting.
type Runner struct {
	cfg  Config
	grid []airdata.Coordinate
	gen  *Generator
}

func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{cfg: cfg, gen: NewGenerator(cfg.RecordMode, cfg.AnomalyPercent)}
	if cfg.CoordMode == CoordGrid {
		r.grid = airdata.BuildGrid(airdata.Europe, cfg.GridStep)
	}
	return r, nil
}

// GridSize reports how many lattice points the run cycles through; zero in
// random coordinate mode.
func (r *Runner) GridSize() int {
	return len(r.grid)
}

// PartitionGrid splits n grid points into contiguous, non-overlapping slices,
// one per worker. All slices are the same size except the last, which takes
// the remainder.
func PartitionGrid(n, workers int) []WorkAssignment {
	per := n / workers
	out := make([]WorkAssignment, workers)
	for i := range out {
		start := i * per
		end := start + per
		if i == workers-1 {
			end = n
		}
		out[i] = WorkAssignment{Index: i, Start: start, End: end}
	}
	return out
}

// Run executes the configured load test and blocks until every worker and the
// progress reporter have finished, so the returned counters are never stale.
func (r *Runner) Run() (Summary, error) {
	var assigns []WorkAssignment
	if r.cfg.CoordMode == CoordGrid {
		if len(r.grid) < r.cfg.Workers {
			return Summary{}, fmt.Errorf("grid has %d points for %d workers; lower -workers or -step", len(r.grid), r.cfg.Workers)
		}
		assigns = PartitionGrid(len(r.grid), r.cfg.Workers)
	} else {
		assigns = make([]WorkAssignment, r.cfg.Workers)
		for i := range assigns {
			assigns[i] = WorkAssignment{Index: i}
		}
	}

	interval := PacingInterval(r.cfg.Rate, r.cfg.Workers)
	start := time.Now()
	deadline := start.Add(r.cfg.Duration)

	var sent atomic.Uint64
	var wg sync.WaitGroup
	wg.Add(len(assigns))
	for _, a := range assigns {
		w := &worker{
			assign:   a,
			cfg:      r.cfg,
			grid:     r.grid,
			gen:      r.gen,
			client:   newHTTPClient(),
			interval: interval,
			deadline: deadline,
			sent:     &sent,
		}
		go w.run(&wg)
	}

	var reporter sync.WaitGroup
	if r.cfg.Progress != nil {
		reporter.Add(1)
		go func() {
			defer reporter.Done()
			renderProgress(r.cfg.Progress, r.cfg.Duration, start, deadline)
		}()
	}

	wg.Wait()
	reporter.Wait()

	return Summary{Requests: sent.Load(), Elapsed: time.Since(start)}, nil
}

// renderProgress redraws a fixed-width proportional bar once a second until
// the deadline, then prints the final 100% line.
func renderProgress(w io.Writer, total time.Duration, start, deadline time.Time) {
	const width = 50
	for time.Now().Before(deadline) {
		frac := math.Min(1, time.Since(start).Seconds()/total.Seconds())
		pos := int(width * frac)
		fmt.Fprintf(w, "\r[%s%s] %.1f%%", strings.Repeat("=", pos), strings.Repeat(" ", width-pos), frac*100)
		time.Sleep(time.Second)
	}
	fmt.Fprintf(w, "\r[%s] 100.0%%\n", strings.Repeat("=", width))
}
