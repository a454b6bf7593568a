// ============================================
// Air-Quality Development Ingest Sink
//
// Accepts the load generator's POSTs, counts them, optionally persists them
// to Postgres in bulk batches, and broadcasts detected anomalies on /ws.
//
// Config comes from the environment (.env supported), flags override:
//   INGESTD_ADDR  listen address        (default :8000)
//   POSTGRES_DSN  optional postgres DSN (persistence off when empty)
// ============================================

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/abozten/air-quality-platform/internal/ingestd"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("INGESTD_ADDR", ":8000"), "listen address")
	dsn := flag.String("dsn", os.Getenv("POSTGRES_DSN"), "optional postgres DSN for persisting readings")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var sink *ingestd.Sink
	if *dsn != "" {
		sink, err = ingestd.OpenSink(*dsn, logger)
		if err != nil {
			logger.Fatal("open sink", zap.Error(err))
		}
	}

	srv := ingestd.New(logger, sink)
	app := srv.App()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("ingestd listening", zap.String("addr", *addr), zap.Bool("persistence", sink != nil))
	if err := app.Listen(*addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}

	if sink != nil {
		if err := sink.Close(); err != nil {
			logger.Error("close sink", zap.Error(err))
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
