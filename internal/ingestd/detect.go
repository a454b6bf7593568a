package ingestd

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abozten/air-quality-platform/internal/airdata"
)

// Detector flags readings whose values exceed a parameter's hazardous
// threshold (the ceiling of its normal range).
type Detector struct {
	params []airdata.ParameterSpec
}

func NewDetector(params []airdata.ParameterSpec) *Detector {
	return &Detector{params: params}
}

// Detect returns one anomaly event per parameter present in the reading and
// above its threshold.
func (d *Detector) Detect(r airdata.Reading) []airdata.Anomaly {
	var out []airdata.Anomaly
	for _, p := range d.params {
		v, ok := r.Parameter(p.Name)
		if !ok || v <= p.NormalMax {
			continue
		}
		out = append(out, airdata.Anomaly{
			ID:          "anomaly_" + uuid.NewString(),
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Timestamp:   time.Now().UTC(),
			Parameter:   p.Name,
			Value:       v,
			Description: fmt.Sprintf("%s value %.1f exceeds hazardous threshold (%.1f)", p.Name, v, p.NormalMax),
		})
	}
	return out
}
