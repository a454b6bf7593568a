package loadgen

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/abozten/air-quality-platform/internal/airdata"
)

var json = jsoniter.ConfigFastest

const (
	connectTimeout = 5 * time.Second
	requestTimeout = 10 * time.Second
)

// WorkAssignment binds a worker to its disjoint slice [Start, End) of the
// coordinate grid. Start and End are zero in random coordinate mode.
type WorkAssignment struct {
	Index int
	Start int
	End   int
}

type worker struct {
	assign   WorkAssignment
	cfg      Config
	grid     []airdata.Coordinate
	gen      *Generator
	client   *http.Client
	interval time.Duration
	deadline time.Time
	sent     *atomic.Uint64
}

// newHTTPClient builds the persistent send handle a worker reuses across all
// its requests. Keep-alive amortizes connection setup over the run.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext:         (&net.Dialer{Timeout: connectTimeout}).DialContext,
			MaxIdleConnsPerHost: 2,
		},
		Timeout: requestTimeout,
	}
}

// run is the worker loop: pick a coordinate, generate a record, send it,
// count it, sleep. The wall-clock deadline checked at the top of the loop is
// the only stop signal; an in-flight send is allowed to finish or time out on
// its own.
func (w *worker) run(wg *sync.WaitGroup) {
	defer wg.Done()
	defer w.client.CloseIdleConnections()

	rng := newWorkerRand(w.assign.Index)
	idx := w.assign.Start

	for time.Now().Before(w.deadline) {
		var coord airdata.Coordinate
		if w.cfg.CoordMode == CoordRandom {
			coord = airdata.Anatolia.Random(rng)
		} else {
			// Cycle through the assigned slice; the grid is replayed, not exhausted.
			if idx >= w.assign.End {
				idx = w.assign.Start
			}
			coord = w.grid[idx]
			idx++
		}

		w.send(w.gen.Generate(coord, rng))
		w.sent.Add(1)
		RequestsTotal.Inc()
		time.Sleep(w.interval)
	}
}

// send posts one record and discards the response. Network errors, timeouts
// and non-2xx statuses are all swallowed: the tool measures offered load, not
// delivery, so a failed send counts the same as a delivered one.
func (w *worker) send(rec airdata.Reading) {
	body, err := json.Marshal(rec)
	if err != nil {
		return
	}
	start := time.Now()
	resp, err := w.client.Post(w.cfg.Endpoint, "application/json", bytes.NewReader(body))
	SendDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
