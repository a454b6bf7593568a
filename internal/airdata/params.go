package airdata

// ParameterSpec describes one measured pollutant: the band normal readings
// fall into and the out-of-bounds band used for injected anomalies. The two
// bands never overlap, so any value can be classified by range membership.
type ParameterSpec struct {
	Name       string
	NormalMin  float64
	NormalMax  float64
	AnomalyMin float64
	AnomalyMax float64
}

func (p ParameterSpec) InNormal(v float64) bool {
	return v >= p.NormalMin && v <= p.NormalMax
}

func (p ParameterSpec) InAnomaly(v float64) bool {
	return v >= p.AnomalyMin && v <= p.AnomalyMax
}

// Parameters is the fixed measurement table. Order defines field order in
// serialized records. Shared read-only across all workers.
var Parameters = []ParameterSpec{
	{Name: "pm25", NormalMin: 5.0, NormalMax: 80.0, AnomalyMin: 250.1, AnomalyMax: 500.0},
	{Name: "pm10", NormalMin: 10.0, NormalMax: 150.0, AnomalyMin: 420.1, AnomalyMax: 800.0},
	{Name: "no2", NormalMin: 10.0, NormalMax: 100.0, AnomalyMin: 200.1, AnomalyMax: 400.0},
	{Name: "so2", NormalMin: 1.0, NormalMax: 20.0, AnomalyMin: 50.1, AnomalyMax: 150.0},
	{Name: "o3", NormalMin: 20.0, NormalMax: 180.0, AnomalyMin: 240.1, AnomalyMax: 400.0},
}
