package ingestd_test

import (
	"testing"

	"github.com/abozten/air-quality-platform/internal/airdata"
	"github.com/abozten/air-quality-platform/internal/ingestd"
)

func TestDetectFlagsHazardousValues(t *testing.T) {
	d := ingestd.NewDetector(airdata.Parameters)

	r := airdata.Reading{Latitude: 41.0, Longitude: 29.0}
	r.SetParameter("pm25", 300.0) // above pm25 ceiling of 80
	r.SetParameter("no2", 50.0)   // within normal range

	got := d.Detect(r)
	if len(got) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(got))
	}
	a := got[0]
	if a.Parameter != "pm25" || a.Value != 300.0 {
		t.Errorf("unexpected anomaly %+v", a)
	}
	if a.Latitude != r.Latitude || a.Longitude != r.Longitude {
		t.Errorf("anomaly lost the reading's coordinate: %+v", a)
	}
	if a.Description == "" || a.ID == "" {
		t.Errorf("anomaly missing id or description: %+v", a)
	}
}

func TestDetectIgnoresNormalAndAbsentValues(t *testing.T) {
	d := ingestd.NewDetector(airdata.Parameters)

	r := airdata.Reading{Latitude: 41.0, Longitude: 29.0}
	r.SetParameter("so2", 5.0)

	if got := d.Detect(r); len(got) != 0 {
		t.Errorf("expected no anomalies, got %d", len(got))
	}
}

func TestDetectReportsEachParameter(t *testing.T) {
	d := ingestd.NewDetector(airdata.Parameters)

	r := airdata.Reading{}
	r.SetParameter("pm25", 400.0)
	r.SetParameter("o3", 300.0)

	got := d.Detect(r)
	if len(got) != 2 {
		t.Fatalf("expected 2 anomalies, got %d", len(got))
	}
}
