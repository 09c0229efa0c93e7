package monthkey

import (
	"testing"
	"time"
)

func TestValid(t *testing.T) {
	for _, s := range []string{"2024-01", "1999-12", "2030-06"} {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "2024", "2024-13", "2024-00", "2024-1", "jan-2024", "2024-01-15"} {
		if Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}

func TestBounds(t *testing.T) {
	start, end, err := Bounds("2024-02")
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if got := start.Format(time.RFC3339); got != "2024-02-01T00:00:00Z" {
		t.Errorf("start = %s", got)
	}
	if got := end.Format(time.RFC3339); got != "2024-03-01T00:00:00Z" {
		t.Errorf("end = %s", got)
	}
}

func TestIndex(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		month string
		want  int
	}{
		{"2024-01", 1},
		{"2024-02", 2},
		{"2024-03", 3}, // the 6-month plan scenario: month 3 of the subscription
		{"2024-12", 12},
		{"2025-01", 13},
		{"2023-11", 1}, // before the start date clamps to 1
	}
	for _, c := range cases {
		got, err := Index(start, c.month)
		if err != nil {
			t.Fatalf("Index(%s): %v", c.month, err)
		}
		if got != c.want {
			t.Errorf("Index(%s) = %d, want %d", c.month, got, c.want)
		}
	}
	if _, err := Index(start, "bogus"); err == nil {
		t.Error("Index with malformed month: want error")
	}
}
