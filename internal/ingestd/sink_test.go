package ingestd

import (
	"strings"
	"testing"

	"github.com/abozten/air-quality-platform/internal/airdata"
)

func TestBuildBulkInsert(t *testing.T) {
	v := 42.5
	batch := []airdata.Reading{
		{Latitude: 48.85, Longitude: 2.35, Pm25: &v},
		{Latitude: 41.0, Longitude: 29.0},
	}

	query, args := buildBulkInsert(batch)

	if !strings.HasPrefix(query, "INSERT INTO air_quality_readings") {
		t.Errorf("unexpected query prefix: %s", query)
	}
	if !strings.Contains(query, "($1,$2,$3,$4,$5,$6,$7),($8,$9,$10,$11,$12,$13,$14)") {
		t.Errorf("unexpected placeholder groups: %s", query)
	}
	if len(args) != 2*readingColumns {
		t.Fatalf("expected %d args, got %d", 2*readingColumns, len(args))
	}
	if args[0] != 48.85 || args[1] != 2.35 {
		t.Errorf("first reading's coordinate misplaced: %v %v", args[0], args[1])
	}
	if args[2] != &v {
		t.Error("pm25 pointer not passed through")
	}
	// Absent parameters travel as nil pointers and land as SQL NULLs.
	if p, ok := args[9].(*float64); !ok || p != nil {
		t.Errorf("expected nil *float64 for absent pm25, got %#v", args[9])
	}
}
