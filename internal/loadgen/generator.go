package loadgen

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/abozten/air-quality-platform/internal/airdata"
)

// Generator produces one reading per call, drawing each included parameter
// from its normal range or, with the configured probability, from its
// anomaly range.
type Generator struct {
	params  []airdata.ParameterSpec
	mode    RecordMode
	anomaly int
}

// NewGenerator builds a generator over the fixed parameter table.
// anomalyPercent is clamped to [0,100]: values at or above 100 make every
// draw anomalous, values at or below 0 none.
func NewGenerator(mode RecordMode, anomalyPercent int) *Generator {
	if anomalyPercent < 0 {
		anomalyPercent = 0
	}
	if anomalyPercent > 100 {
		anomalyPercent = 100
	}
	return &Generator{params: airdata.Parameters, mode: mode, anomaly: anomalyPercent}
}

// Generate builds one record at the given coordinate. rng must be owned by
// the calling worker; the generator itself holds no mutable state.
func (g *Generator) Generate(coord airdata.Coordinate, rng *rand.Rand) airdata.Reading {
	r := airdata.Reading{Latitude: coord.Latitude, Longitude: coord.Longitude}
	if g.mode == RecordSingle {
		p := g.params[rng.Intn(len(g.params))]
		r.SetParameter(p.Name, g.sample(p, rng))
		return r
	}
	for _, p := range g.params {
		r.SetParameter(p.Name, g.sample(p, rng))
	}
	return r
}

func (g *Generator) sample(p airdata.ParameterSpec, rng *rand.Rand) float64 {
	if rng.Intn(100) < g.anomaly {
		return p.AnomalyMin + rng.Float64()*(p.AnomalyMax-p.AnomalyMin)
	}
	return p.NormalMin + rng.Float64()*(p.NormalMax-p.NormalMin)
}

// newWorkerRand seeds an independent generator per worker so value generation
// never contends on shared RNG state. Entropy comes from crypto/rand, mixed
// with the worker index; the clock is only a fallback.
func newWorkerRand(index int) *rand.Rand {
	seed := time.Now().UnixNano()
	var b [8]byte
	if _, err := crand.Read(b[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return rand.New(rand.NewSource(seed ^ int64(index)<<1))
}
