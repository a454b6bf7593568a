package airdata_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/abozten/air-quality-platform/internal/airdata"
)

func TestBuildGridDeterministic(t *testing.T) {
	a := airdata.BuildGrid(airdata.Europe, 0.45)
	b := airdata.BuildGrid(airdata.Europe, 0.45)

	if len(a) == 0 {
		t.Fatal("expected a non-empty grid")
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two builds of the same grid differ")
	}
}

func TestBuildGridRowMajorOrder(t *testing.T) {
	box := airdata.BoundingBox{LatMin: 0, LatMax: 1, LonMin: 0, LonMax: 1}
	grid := airdata.BuildGrid(box, 0.5)

	// lat 0, 0.5, 1 x lon 0, 0.5, 1
	if len(grid) != 9 {
		t.Fatalf("expected 9 points, got %d", len(grid))
	}
	if grid[0] != (airdata.Coordinate{Latitude: 0, Longitude: 0}) {
		t.Errorf("unexpected first point: %+v", grid[0])
	}
	// Longitude advances before latitude does.
	if grid[1].Latitude != 0 || grid[1].Longitude != 0.5 {
		t.Errorf("expected (0, 0.5) second, got %+v", grid[1])
	}
	if grid[3].Latitude != 0.5 || grid[3].Longitude != 0 {
		t.Errorf("expected row wrap to (0.5, 0), got %+v", grid[3])
	}
}

func TestBuildGridStaysInBox(t *testing.T) {
	grid := airdata.BuildGrid(airdata.Europe, 0.45)
	const eps = 1e-9
	for _, c := range grid {
		if c.Latitude < airdata.Europe.LatMin-eps || c.Latitude > airdata.Europe.LatMax+eps {
			t.Fatalf("latitude %v outside box", c.Latitude)
		}
		if c.Longitude < airdata.Europe.LonMin-eps || c.Longitude > airdata.Europe.LonMax+eps {
			t.Fatalf("longitude %v outside box", c.Longitude)
		}
	}
}

func TestBuildGridRejectsBadStep(t *testing.T) {
	if got := airdata.BuildGrid(airdata.Europe, 0); got != nil {
		t.Errorf("expected nil grid for zero step, got %d points", len(got))
	}
	if got := airdata.BuildGrid(airdata.Europe, -1); got != nil {
		t.Errorf("expected nil grid for negative step, got %d points", len(got))
	}
}

func TestBoundingBoxRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		c := airdata.Anatolia.Random(rng)
		if c.Latitude < airdata.Anatolia.LatMin || c.Latitude > airdata.Anatolia.LatMax {
			t.Fatalf("latitude %v outside box", c.Latitude)
		}
		if c.Longitude < airdata.Anatolia.LonMin || c.Longitude > airdata.Anatolia.LonMax {
			t.Fatalf("longitude %v outside box", c.Longitude)
		}
	}
}

func TestParameterRangesDisjoint(t *testing.T) {
	for _, p := range airdata.Parameters {
		if p.NormalMin > p.NormalMax {
			t.Errorf("%s: inverted normal range", p.Name)
		}
		if p.AnomalyMin > p.AnomalyMax {
			t.Errorf("%s: inverted anomaly range", p.Name)
		}
		if p.AnomalyMin <= p.NormalMax {
			t.Errorf("%s: anomaly range overlaps normal range", p.Name)
		}
	}
}

func TestReadingParameterRoundTrip(t *testing.T) {
	var r airdata.Reading
	if _, ok := r.Parameter("pm25"); ok {
		t.Error("empty reading should carry no pm25")
	}

	r.SetParameter("pm25", 42.5)
	v, ok := r.Parameter("pm25")
	if !ok || v != 42.5 {
		t.Errorf("expected pm25=42.5, got %v (present=%v)", v, ok)
	}

	r.SetParameter("bogus", 1) // ignored
	if _, ok := r.Parameter("bogus"); ok {
		t.Error("unknown parameter should never be present")
	}
}
