// Package vitals holds measurement kinds, numeric extraction per kind and
// the clinical plausibility table readings are checked against
package vitals

import (
	"fmt"
	"regexp"
	"strconv"
)

// Type is the measurement kind, values match the measurement.type column
type Type string

const (
	// BloodPressure is systolic/diastolic with optional pulse
	BloodPressure Type = "bp"
	// OxygenSaturation is SpO2 with optional pulse
	OxygenSaturation Type = "spo2"
	// Weight is body weight in kilograms
	Weight Type = "weight"
	// Temperature is body temperature in degrees Celsius
	Temperature Type = "temperature"
)

// Types lists every supported kind in detection order
func Types() []Type { return []Type{BloodPressure, OxygenSaturation, Weight, Temperature} }

// ParseType maps a stored kind name to a Type
func ParseType(s string) (Type, bool) {
	for _, t := range Types() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Reading carries the values extracted for one measurement
// only the fields relevant to Type are set
type Reading struct {
	Type         Type     `json:"type"`
	Systolic     *int     `json:"systolic,omitempty"`
	Diastolic    *int     `json:"diastolic,omitempty"`
	PulseBPM     *int     `json:"pulse_bpm,omitempty"`
	SpO2         *int     `json:"spo2,omitempty"`
	WeightKg     *float64 `json:"weight_kg,omitempty"`
	TemperatureC *float64 `json:"temperature_c,omitempty"`
}

var (
	reInts        = regexp.MustCompile(`\b(\d{2,3})\b`)
	reWeight      = regexp.MustCompile(`\b(\d{2,3}(?:\.\d{1,2})?)\b`)
	reTemperature = regexp.MustCompile(`\b(\d{2}(?:\.\d)?)\b`)
	reDecimal     = regexp.MustCompile(`(\d),(\d)`)
)

// missing values messages per kind
var missing = map[Type]string{
	BloodPressure:    "blood pressure values not found (two numbers expected)",
	OxygenSaturation: "oxygen saturation value not found",
	Weight:           "weight value not found",
	Temperature:      "temperature value not found",
}

// ExtractError reports that text did not hold the numbers a kind needs
type ExtractError struct {
	Type Type
}

func (e *ExtractError) Error() string {
	if m, ok := missing[e.Type]; ok {
		return m
	}
	return fmt.Sprintf("unsupported measurement type %q", string(e.Type))
}

// Extract pulls the values for t out of text
// blood pressure needs two integers, an optional third is the pulse
// oxygen saturation needs one integer, an optional second is the pulse
// weight and temperature take the first decimal that fits their pattern
// decimal commas are read as decimal points
func Extract(t Type, text string) (Reading, error) {
	text = reDecimal.ReplaceAllString(text, "$1.$2")
	r := Reading{Type: t}

	switch t {
	case BloodPressure:
		nums := ints(text)
		if len(nums) < 2 {
			return Reading{}, &ExtractError{Type: t}
		}
		r.Systolic, r.Diastolic = &nums[0], &nums[1]
		if len(nums) >= 3 {
			r.PulseBPM = &nums[2]
		}
	case OxygenSaturation:
		nums := ints(text)
		if len(nums) < 1 {
			return Reading{}, &ExtractError{Type: t}
		}
		r.SpO2 = &nums[0]
		if len(nums) >= 2 {
			r.PulseBPM = &nums[1]
		}
	case Weight:
		v, ok := firstFloat(reWeight, text)
		if !ok {
			return Reading{}, &ExtractError{Type: t}
		}
		r.WeightKg = &v
	case Temperature:
		v, ok := firstFloat(reTemperature, text)
		if !ok {
			return Reading{}, &ExtractError{Type: t}
		}
		r.TemperatureC = &v
	default:
		return Reading{}, &ExtractError{Type: t}
	}
	return r, nil
}

func ints(text string) []int {
	m := reInts.FindAllStringSubmatch(text, -1)
	out := make([]int, 0, len(m))
	for _, g := range m {
		n, err := strconv.Atoi(g[1])
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

func firstFloat(re *regexp.Regexp, text string) (float64, bool) {
	g := re.FindStringSubmatch(text)
	if g == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(g[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
