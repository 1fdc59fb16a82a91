package warehouse

import (
	"testing"
	"time"
)

// ─── DottedQuad ───────────────────────────────────────────────────────────────

func TestDottedQuad(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.0.0.0"},
		{"255", "0.0.0.255"},
		{"256", "0.0.1.0"},
		{"87540", "0.1.85.244"},
		{"4294967295", "255.255.255.255"},
		{"10.0.0.1", "10.0.0.1"},   // already dotted, pass through
		{"not-an-ip", "not-an-ip"}, // unparseable, pass through
	}
	for _, tc := range cases {
		if got := DottedQuad(tc.in); got != tc.want {
			t.Errorf("DottedQuad(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// ─── AddUTM ───────────────────────────────────────────────────────────────────

func TestAddUTM(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{
			"https://example.com/landing",
			"https://example.com/landing?utm_source=NEWSLETTER&utm_medium=Email&utm_campaign=Q3",
		},
		{
			"https://example.com/landing?ref=1",
			"https://example.com/landing?ref=1&utm_source=NEWSLETTER&utm_medium=Email&utm_campaign=Q3",
		},
	}
	for _, tc := range cases {
		if got := AddUTM(tc.in); got != tc.want {
			t.Errorf("AddUTM(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// ─── round4 / parseClickTime ──────────────────────────────────────────────────

func TestRound4(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.12344, 0.1234},
		{0.12345, 0.1235},
		{0.99999, 1},
		{1, 1},
	}
	for _, tc := range cases {
		if got := round4(tc.in); got != tc.want {
			t.Errorf("round4(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseClickTime(t *testing.T) {
	got := parseClickTime("2017-11-07 09:30:38")
	if !got.Valid {
		t.Fatal("valid timestamp parsed as NULL")
	}
	want := time.Date(2017, 11, 7, 9, 30, 38, 0, time.UTC)
	if !got.Time.Equal(want) {
		t.Errorf("parseClickTime = %v, want %v", got.Time, want)
	}

	if parseClickTime("").Valid {
		t.Error("empty timestamp should be NULL")
	}
	if parseClickTime("2017-11-07T09:30:38Z").Valid {
		t.Error("wrong layout should be NULL, not misparsed")
	}
}

// ─── Loader filler determinism ────────────────────────────────────────────────

func TestDirtyEmail_MostlyClean(t *testing.T) {
	l := NewLoader(nil, 42)
	clean := 0
	for i := 0; i < 1000; i++ {
		if l.dirtyEmail("user@example.com") == "user@example.com" {
			clean++
		}
	}
	// ~90% of emails should pass through untouched.
	if clean < 800 || clean == 1000 {
		t.Errorf("dirtyEmail left %d/1000 untouched, want most but not all", clean)
	}
}

func TestNewLoader_Reproducible(t *testing.T) {
	a := NewLoader(nil, 7)
	b := NewLoader(nil, 7)
	for i := 0; i < 20; i++ {
		if x, y := a.rng.Int63(), b.rng.Int63(); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
		if x, y := a.faker.Company(), b.faker.Company(); x != y {
			t.Fatalf("faker draw %d differs: %q vs %q", i, x, y)
		}
	}
}
