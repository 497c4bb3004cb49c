package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_FORMAT", " json ")
	c := New().Prefix("LOG_")
	if got := c.Get("FORMAT", "console"); got != "json" {
		t.Fatalf("Get = %q want json", got)
	}
	if got := c.Get("MISSING", "console"); got != "console" {
		t.Fatalf("Get default = %q want console", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("B_")
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"", false, false},
		{"1", false, true},
		{"YES", false, true},
		{"true", false, true},
		{"no", true, false},
		{"0", true, false},
	}
	for _, tc := range cases {
		t.Setenv("B_FLAG", tc.val)
		if got := c.GetBool("FLAG", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, %v) = %v want %v", tc.val, tc.def, got, tc.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("N_")
	cases := map[string]int{"": 7, "12": 12, " 3 ": 3, "x": 7, "-2": 7}
	for val, want := range cases {
		t.Setenv("N_COUNT", val)
		if got := c.GetInt("COUNT", 7); got != want {
			t.Fatalf("GetInt(%q) = %d want %d", val, got, want)
		}
	}
}
