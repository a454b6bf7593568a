// Package ingestd is the development ingestion sink the load generator is
// pointed at: it accepts readings, counts them, optionally persists them to
// Postgres in bulk batches, and broadcasts detected anomalies to websocket
// subscribers.
package ingestd

import (
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/abozten/air-quality-platform/internal/airdata"
)

var json = jsoniter.ConfigFastest

type Server struct {
	log       *zap.Logger
	sink      *Sink // nil when persistence is disabled
	hub       *Hub
	detector  *Detector
	accepted  atomic.Int64
	anomalies atomic.Int64
	started   time.Time
}

func New(log *zap.Logger, sink *Sink) *Server {
	return &Server{
		log:      log,
		sink:     sink,
		hub:      NewHub(),
		detector: NewDetector(airdata.Parameters),
		started:  time.Now(),
	}
}

// App wires the fiber application and starts the feed hub.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/stats", s.handleStats)
	app.Post("/api/v1/air_quality/ingest", s.handleIngest)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(s.handleFeed))

	go s.hub.Run()
	return app
}

func (s *Server) handleIngest(c *fiber.Ctx) error {
	var r airdata.Reading
	if err := json.Unmarshal(c.Body(), &r); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed payload"})
	}
	if r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "coordinates out of range"})
	}

	s.accepted.Add(1)
	if s.sink != nil {
		s.sink.Enqueue(r)
	}

	for _, a := range s.detector.Detect(r) {
		s.anomalies.Add(1)
		s.log.Warn("anomaly detected",
			zap.String("parameter", a.Parameter),
			zap.Float64("value", a.Value),
			zap.Float64("latitude", a.Latitude),
			zap.Float64("longitude", a.Longitude),
		)
		if msg, err := json.Marshal(a); err == nil {
			s.hub.Broadcast(msg)
		}
	}

	return c.SendStatus(fiber.StatusAccepted)
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"accepted":       s.accepted.Load(),
		"anomalies":      s.anomalies.Load(),
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	})
}

// handleFeed parks a subscriber on the hub until its connection drops. The
// read loop only exists to notice the close.
func (s *Server) handleFeed(c *websocket.Conn) {
	s.hub.Register(c)
	defer s.hub.Unregister(c)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
