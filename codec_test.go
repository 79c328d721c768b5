package reporttemplar

import "testing"

func TestSecondsFromText(t *testing.T) {
	cases := map[string]float64{
		"1:02:03":   3723,
		"45:00":     2700,
		"1:30,5":    90.5,
		"1:30.5":    90.5,
		"90":        90,
		"12,5":      12.5,
		"":          0,
		"abc":       0,
		"1:2:3:4":   0,
		"x:10":      0,
		" 0:59,9 ":  59.9,
	}
	for in, want := range cases {
		if got := secondsFromText(in); got != want {
			t.Fatalf("secondsFromText(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTextFromSeconds(t *testing.T) {
	cases := map[float64]string{
		90:      "1:30",
		59.96:   "1:00",
		3723:    "1:02:03",
		3599.96: "1:00:00",
		90.5:    "1:30,5",
		5:       "0:05",
		0:       "",
		-3:      "",
	}
	for in, want := range cases {
		if got := textFromSeconds(in); got != want {
			t.Fatalf("textFromSeconds(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestSecondsRoundTrip(t *testing.T) {
	for tenths := 0; tenths < 40000; tenths += 7 {
		s := float64(tenths) / 10
		got := secondsFromText(textFromSeconds(s))
		if d := got - s; d > 0.05 || d < -0.05 {
			t.Fatalf("round trip %v -> %q -> %v", s, textFromSeconds(s), got)
		}
	}
}

func TestNumberFromText(t *testing.T) {
	if v, ok := numberFromText("12,5"); !ok || v != 12.5 {
		t.Fatalf("12,5 => %v ok=%v", v, ok)
	}
	if v, ok := numberFromText("1 000"); !ok || v != 1000 {
		t.Fatalf("1 000 => %v ok=%v", v, ok)
	}
	if _, ok := numberFromText("двенадцать"); ok {
		t.Fatalf("expected failure")
	}
	if _, ok := numberFromText(""); ok {
		t.Fatalf("expected failure on empty")
	}
}

func TestDistanceKmFromText(t *testing.T) {
	cases := map[string]float64{
		"10":      10,
		"10000":   10,
		"10 km":   10,
		"10км":    10,
		"400m":    0.4,
		"400 м":   0.4,
		"1,5 КМ":  1.5,
		"2000 km": 2000,
		"":        0,
		"-5":      0,
		"далеко":  0,
	}
	for in, want := range cases {
		if got := distanceKmFromText(in); got != want {
			t.Fatalf("distanceKmFromText(%q) = %v, want %v", in, got, want)
		}
	}
}
