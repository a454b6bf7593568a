package airdata

import "time"

// Reading is one observation on the wire: a flat JSON object with the
// coordinate and whichever pollutant values the record carries. Absent
// parameters stay nil and are omitted from the serialized form.
type Reading struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Pm25      *float64 `json:"pm25,omitempty"`
	Pm10      *float64 `json:"pm10,omitempty"`
	No2       *float64 `json:"no2,omitempty"`
	So2       *float64 `json:"so2,omitempty"`
	O3        *float64 `json:"o3,omitempty"`
}

// SetParameter stores v under the named parameter. Unknown names are ignored.
func (r *Reading) SetParameter(name string, v float64) {
	switch name {
	case "pm25":
		r.Pm25 = &v
	case "pm10":
		r.Pm10 = &v
	case "no2":
		r.No2 = &v
	case "so2":
		r.So2 = &v
	case "o3":
		r.O3 = &v
	}
}

// Parameter returns the named parameter's value and whether it is present.
func (r *Reading) Parameter(name string) (float64, bool) {
	var p *float64
	switch name {
	case "pm25":
		p = r.Pm25
	case "pm10":
		p = r.Pm10
	case "no2":
		p = r.No2
	case "so2":
		p = r.So2
	case "o3":
		p = r.O3
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Anomaly is a detected out-of-bounds reading, broadcast to feed subscribers.
type Anomaly struct {
	ID          string    `json:"id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Timestamp   time.Time `json:"timestamp"`
	Parameter   string    `json:"parameter"`
	Value       float64   `json:"value"`
	Description string    `json:"description"`
}
