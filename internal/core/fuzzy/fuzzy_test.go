package fuzzy

import (
	"math"
	"reflect"
	"testing"
)

type resident struct {
	ID   int
	Name string
}

func name(r resident) string { return r.Name }

func TestScore_Table(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"", "", 100},
		{"abc", "", 0},
		{"Juan Pérez", "juan pérez", 100},
		{"JUAN", "juan", 100},
		{"María Garcia", "María García", 200.0 * 11 / 24},
		{"María Garcia", "María Gracia", 200.0 * 11 / 24},
		{"abcd", "abxy", 50},
	}
	for _, c := range cases {
		got := Score(c.a, c.b)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("Score(%q,%q) = %v want %v", c.a, c.b, got, c.want)
		}
		if rev := Score(c.b, c.a); math.Abs(rev-got) > 1e-9 {
			t.Fatalf("Score not symmetric for %q,%q", c.a, c.b)
		}
	}
}

func TestResolve_NotFoundBelowCutoff(t *testing.T) {
	dir := []resident{{1, "Juan Pérez"}, {2, "Ana Ruiz"}}
	res := Resolve("Zacarías Bermúdez", dir, name, Options{})
	if res.Kind != NotFound {
		t.Fatalf("kind = %v want not_found", res.Kind)
	}
	if res := Resolve("Juan", nil, name, Options{}); res.Kind != NotFound {
		t.Fatalf("empty directory must be not_found, got %v", res.Kind)
	}
}

func TestResolve_ClearLead(t *testing.T) {
	dir := []resident{{1, "Ana Ruiz"}, {2, "Juan Pérez"}, {3, "Pedro López"}}
	res := Resolve("juan perez", dir, name, Options{})
	if res.Kind != Resolved {
		t.Fatalf("kind = %v want resolved", res.Kind)
	}
	if res.Best.Item.ID != 2 {
		t.Fatalf("best = %+v want id 2", res.Best)
	}
	if res.Options != nil {
		t.Fatalf("resolved must not carry options, got %v", res.Options)
	}
}

func TestResolve_NearTieIsAmbiguous(t *testing.T) {
	dir := []resident{{1, "María García"}, {2, "María Gracia"}, {3, "Juan Pérez"}}
	res := Resolve("María Garcia", dir, name, Options{})
	if res.Kind != Ambiguous {
		t.Fatalf("kind = %v want ambiguous", res.Kind)
	}
	want := []string{"María García", "María Gracia"}
	if got := Labels(res.Options); !reflect.DeepEqual(got, want) {
		t.Fatalf("options = %v want %v", got, want)
	}
}

func TestResolve_DuplicateLabelsStayDistinct(t *testing.T) {
	dir := []resident{{1, "Ana Ruiz"}, {2, "Ana Ruiz"}}
	res := Resolve("Ana Ruiz", dir, name, Options{})
	if res.Kind != Ambiguous || len(res.Options) != 2 {
		t.Fatalf("expected two ambiguous options, got %+v", res)
	}
	if res.Options[0].Item.ID != 1 || res.Options[1].Item.ID != 2 {
		t.Fatalf("ties must keep directory order, got %+v", res.Options)
	}
}

func TestResolve_OptionsCapped(t *testing.T) {
	var dir []resident
	for i := 0; i < 8; i++ {
		dir = append(dir, resident{ID: i, Name: "Carmen"})
	}
	res := Resolve("Carmen", dir, name, Options{})
	if res.Kind != Ambiguous {
		t.Fatalf("kind = %v want ambiguous", res.Kind)
	}
	if len(res.Options) != DefaultMaxOptions {
		t.Fatalf("options = %d want %d", len(res.Options), DefaultMaxOptions)
	}
	for i, o := range res.Options {
		if o.Item.ID != i {
			t.Fatalf("option %d has id %d", i, o.Item.ID)
		}
	}
}

func TestResolve_CustomOptions(t *testing.T) {
	dir := []resident{{1, "María García"}, {2, "María Gracia"}}
	res := Resolve("María Garcia", dir, name, Options{Cutoff: 95})
	if res.Kind != NotFound {
		t.Fatalf("kind = %v want not_found with a strict cutoff", res.Kind)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	dir := []resident{{1, "María García"}, {2, "María Gracia"}, {3, "Mario Garcés"}, {4, "Marta García"}}
	a := Resolve("Maria Garcia", dir, name, Options{})
	b := Resolve("Maria Garcia", dir, name, Options{})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated resolution differs:\n%+v\n%+v", a, b)
	}
}

func TestRank_OrdersBestFirst(t *testing.T) {
	dir := []resident{{1, "Juana Pérez"}, {2, "Juan Pérez"}, {3, "Zoe"}}
	got := Rank("Juan Pérez", dir, name, DefaultCutoff)
	if len(got) != 2 {
		t.Fatalf("expected 2 ranked, got %d", len(got))
	}
	if got[0].Item.ID != 2 || got[0].Score != 100 {
		t.Fatalf("unexpected first %+v", got[0])
	}
	if got[1].Score >= got[0].Score {
		t.Fatalf("not ordered: %+v", got)
	}
}

func TestKind_String(t *testing.T) {
	if NotFound.String() != "not_found" || Resolved.String() != "resolved" || Ambiguous.String() != "ambiguous" {
		t.Fatal("unexpected kind names")
	}
}
