package confirm

import (
	"testing"

	"residences/internal/core/vitals"

	"golang.org/x/text/language"
)

func ip(v int) *int { return &v }

func fp(v float64) *float64 { return &v }

func TestLocale(t *testing.T) {
	cases := map[string]language.Tag{
		"":                language.English,
		"en":              language.English,
		"es":              language.Spanish,
		"es-ES":           language.Spanish,
		"es-MX,es;q=0.9":  language.Spanish,
		"fr":              language.English,
		"not a language!": language.English,
	}
	for in, want := range cases {
		if got := Locale(in); got != want {
			t.Fatalf("Locale(%q) = %v want %v", in, got, want)
		}
	}
}

func TestTask(t *testing.T) {
	cases := []struct {
		locale, status string
		has            bool
		want           string
	}{
		{"en", "Completed", true, "Assign resident Juan Pérez the task Bath with status Completed?"},
		{"en", "Completed", false, "Assign resident Juan Pérez the task Bath?"},
		{"en", "", true, "Assign resident Juan Pérez the task Bath?"},
		{"es", "Completed", true, "¿Quieres asignarle al residente Juan Pérez la tarea Bath con el estado Completed?"},
		{"es", "", false, "¿Quieres asignarle al residente Juan Pérez la tarea Bath?"},
	}
	for _, c := range cases {
		got := New(c.locale).Task("Juan Pérez", "Bath", c.status, c.has)
		if got != c.want {
			t.Fatalf("%s: got %q want %q", c.locale, got, c.want)
		}
	}
}

func TestMeasurement(t *testing.T) {
	cases := []struct {
		locale string
		r      vitals.Reading
		want   string
	}{
		{"en", vitals.Reading{Type: vitals.BloodPressure, Systolic: ip(120), Diastolic: ip(80)},
			"Record blood pressure 120/80 mmHg for Juan Pérez?"},
		{"en", vitals.Reading{Type: vitals.BloodPressure, Systolic: ip(120), Diastolic: ip(80), PulseBPM: ip(72)},
			"Record blood pressure 120/80 mmHg, pulse 72 bpm for Juan Pérez?"},
		{"en", vitals.Reading{Type: vitals.OxygenSaturation, SpO2: ip(97)},
			"Record oxygen saturation 97% for Juan Pérez?"},
		{"en", vitals.Reading{Type: vitals.OxygenSaturation, SpO2: ip(97), PulseBPM: ip(65)},
			"Record oxygen saturation 97%, pulse 65 bpm for Juan Pérez?"},
		{"en", vitals.Reading{Type: vitals.Weight, WeightKg: fp(72.5)},
			"Record weight 72.5 kg for Juan Pérez?"},
		{"en", vitals.Reading{Type: vitals.Temperature, TemperatureC: fp(36)},
			"Record temperature 36 °C for Juan Pérez?"},
		{"es", vitals.Reading{Type: vitals.BloodPressure, Systolic: ip(130), Diastolic: ip(85), PulseBPM: ip(70)},
			"¿Registrar presión arterial 130/85 mmHg, pulso 70 lpm para Juan Pérez?"},
		{"es", vitals.Reading{Type: vitals.Temperature, TemperatureC: fp(37.2)},
			"¿Registrar temperatura 37.2 °C para Juan Pérez?"},
		{"en", vitals.Reading{Type: vitals.Weight},
			"Record measurement for Juan Pérez?"},
	}
	for _, c := range cases {
		got := New(c.locale).Measurement("Juan Pérez", c.r)
		if got != c.want {
			t.Fatalf("got %q want %q", got, c.want)
		}
	}
}

func TestNew_DefaultsToEnglish(t *testing.T) {
	if tag := New("").Tag(); tag != language.English {
		t.Fatalf("tag = %v want en", tag)
	}
}
