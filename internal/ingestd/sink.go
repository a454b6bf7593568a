package ingestd

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/abozten/air-quality-platform/internal/airdata"
)

const (
	sinkBufferSize = 100_000
	sinkWorkers    = 4
	batchSize      = 500
	flushInterval  = 300 * time.Millisecond
)

const readingColumns = 7

// Sink persists accepted readings to Postgres. Writes go through a buffered
// channel into batch workers that flush on size or on a ticker, so the ingest
// handler never waits on the database.
type Sink struct {
	db  *sql.DB
	ch  chan airdata.Reading
	log *zap.Logger
	wg  sync.WaitGroup
}

func OpenSink(dsn string, log *zap.Logger) (*Sink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Sink{db: db, ch: make(chan airdata.Reading, sinkBufferSize), log: log}
	s.wg.Add(sinkWorkers)
	for i := 0; i < sinkWorkers; i++ {
		go s.worker(i)
	}
	return s, nil
}

// Enqueue hands a reading to the batch workers. Drops it when the buffer is
// full: the sink must never apply backpressure to ingest.
func (s *Sink) Enqueue(r airdata.Reading) {
	select {
	case s.ch <- r:
	default:
	}
}

// Close flushes outstanding batches and releases the database.
func (s *Sink) Close() error {
	close(s.ch)
	s.wg.Wait()
	return s.db.Close()
}

func (s *Sink) worker(id int) {
	defer s.wg.Done()

	batch := make([]airdata.Reading, 0, batchSize)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		query, args := buildBulkInsert(batch)
		if _, err := s.db.Exec(query, args...); err != nil {
			s.log.Error("bulk insert failed", zap.Int("worker", id), zap.Int("batch", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case r, ok := <-s.ch:
			if !ok {
				flush()
				return
			}
			batch = append(batch, r)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func buildBulkInsert(batch []airdata.Reading) (string, []any) {
	values := make([]string, 0, len(batch))
	args := make([]any, 0, len(batch)*readingColumns)

	for i, r := range batch {
		base := i * readingColumns
		values = append(values, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, r.Latitude, r.Longitude, r.Pm25, r.Pm10, r.No2, r.So2, r.O3)
	}

	query := "INSERT INTO air_quality_readings (latitude, longitude, pm25, pm10, no2, so2, o3) VALUES " +
		strings.Join(values, ",")
	return query, args
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS air_quality_readings (
		id BIGSERIAL PRIMARY KEY,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		pm25 DOUBLE PRECISION,
		pm10 DOUBLE PRECISION,
		no2 DOUBLE PRECISION,
		so2 DOUBLE PRECISION,
		o3 DOUBLE PRECISION,
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
