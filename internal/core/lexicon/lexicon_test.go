package lexicon

import (
	"testing"

	"residences/internal/core/vitals"
	kit "residences/internal/platform/testkit"
)

func TestLoad_Embedded(t *testing.T) {
	l, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Version != 1 {
		t.Fatalf("version = %d want 1", l.Version)
	}
	if len(l.Measurements) != 4 {
		t.Fatalf("expected 4 measurement rules, got %d", len(l.Measurements))
	}
	for _, w := range []string{"completado", "Completado", "HECHO", "pendiente"} {
		if !l.IsStatus(w) {
			t.Fatalf("expected %q to be a status word", w)
		}
	}
	for _, w := range []string{"planeta", "río", "luna", "baño"} {
		if l.IsStatus(w) {
			t.Fatalf("%q must not be a status word", w)
		}
	}
	if !l.IsNameMarker("De") || !l.IsNameMarker("of") {
		t.Fatal("expected de and of to be name markers")
	}
}

func TestDetectType_FirstMatchWins(t *testing.T) {
	l := MustLoad()
	cases := []struct {
		text string
		want vitals.Type
	}{
		{"Tensión de Juan Pérez 120 80", vitals.BloodPressure},
		{"presión arterial de Ana 130 85", vitals.BloodPressure},
		{"Saturación de oxígeno de Juan Pérez 98", vitals.OxygenSaturation},
		{"Peso de Pedro López 75 kilos", vitals.Weight},
		{"Temperatura de Ana Martínez 36.5", vitals.Temperature},
		{"oxygen saturation of John Smith 95", vitals.OxygenSaturation},
	}
	for _, tc := range cases {
		got, ok := l.DetectType(tc.text)
		if !ok || got != tc.want {
			t.Fatalf("DetectType(%q) = %q,%v want %q", tc.text, got, ok, tc.want)
		}
	}
	if _, ok := l.DetectType("Juan Pérez baño"); ok {
		t.Fatal("expected no measurement type")
	}
}

func TestWithStatusKeywords_Replaces(t *testing.T) {
	base := MustLoad()
	l := base.WithStatusKeywords([]string{"Bien", "mal", "bien"})
	if !l.IsStatus("bien") || !l.IsStatus("MAL") {
		t.Fatal("override words must be status words")
	}
	if l.IsStatus("completado") {
		t.Fatal("override must replace the default set")
	}
	if got := l.StatusKeywords(); len(got) != 2 {
		t.Fatalf("expected duplicates collapsed, got %v", got)
	}
	if !base.IsStatus("completado") {
		t.Fatal("base lexicon must be untouched")
	}
	if base.WithStatusKeywords(nil) != base {
		t.Fatal("empty override should return the receiver")
	}
}

func TestParse_Errors(t *testing.T) {
	bad := []struct {
		name string
		doc  string
		msg  string
	}{
		{"yaml", "status_keywords: [", "parse yaml"},
		{"markers", "version: 1\nstatus_keywords: [hecho]\n", "name_markers"},
		{"type", "name_markers: [de]\nmeasurements:\n  - type: glucose\n    keywords: [azúcar]\n", "unknown type"},
		{"keywords", "name_markers: [de]\nmeasurements:\n  - type: bp\n    keywords: []\n", "no keywords"},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			kit.MustContain(t, err.Error(), tc.msg)
		})
	}
}
