package vitals

import "fmt"

// Field names a validated reading value
type Field string

// Fields reported by range validation
const (
	FieldSystolic    Field = "systolic"
	FieldDiastolic   Field = "diastolic"
	FieldPulse       Field = "pulse_bpm"
	FieldSpO2        Field = "spo2"
	FieldWeight      Field = "weight_kg"
	FieldTemperature Field = "temperature_c"
)

// Range is an inclusive plausibility band
type Range struct {
	Min  float64
	Max  float64
	Unit string
}

// Contains reports whether v is inside the band
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// ranges encodes clinical plausibility bounds, edit with care
var ranges = map[Field]Range{
	FieldSystolic:    {Min: 70, Max: 200, Unit: "mmHg"},
	FieldDiastolic:   {Min: 40, Max: 130, Unit: "mmHg"},
	FieldPulse:       {Min: 40, Max: 200, Unit: "bpm"},
	FieldSpO2:        {Min: 0, Max: 100, Unit: "%"},
	FieldWeight:      {Min: 20, Max: 300, Unit: "kg"},
	FieldTemperature: {Min: 30, Max: 45, Unit: "°C"},
}

// labels used in out of range messages
var labels = map[Field]string{
	FieldSystolic:    "systolic pressure",
	FieldDiastolic:   "diastolic pressure",
	FieldPulse:       "pulse",
	FieldSpO2:        "oxygen saturation",
	FieldWeight:      "weight",
	FieldTemperature: "temperature",
}

// RangeError reports the first value outside its band
type RangeError struct {
	Field Field
	Value float64
	Range Range
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %s and %s %s",
		labels[e.Field], FormatNumber(e.Range.Min), FormatNumber(e.Range.Max), e.Range.Unit)
}

// Validate checks every value present on r, in field order, and returns the first violation
func Validate(r Reading) *RangeError {
	type check struct {
		f Field
		v *float64
	}
	var checks []check
	add := func(f Field, v *int) {
		if v != nil {
			fv := float64(*v)
			checks = append(checks, check{f: f, v: &fv})
		}
	}

	switch r.Type {
	case BloodPressure:
		add(FieldSystolic, r.Systolic)
		add(FieldDiastolic, r.Diastolic)
		add(FieldPulse, r.PulseBPM)
	case OxygenSaturation:
		add(FieldSpO2, r.SpO2)
		add(FieldPulse, r.PulseBPM)
	case Weight:
		checks = append(checks, check{f: FieldWeight, v: r.WeightKg})
	case Temperature:
		checks = append(checks, check{f: FieldTemperature, v: r.TemperatureC})
	}

	for _, c := range checks {
		if c.v == nil {
			continue
		}
		band := ranges[c.f]
		if !band.Contains(*c.v) {
			return &RangeError{Field: c.f, Value: *c.v, Range: band}
		}
	}
	return nil
}
