package orient

import (
	"math"
	"testing"
)

func TestTrueThicknessEndpoints(t *testing.T) {
	if got := TrueThicknessFromAlpha(10, 90); math.Abs(got-10) > angleTol {
		t.Fatalf("TrueThicknessFromAlpha(10, 90) = %v, want 10", got)
	}
	if got := TrueThicknessFromAlpha(10, 30); math.Abs(got-5) > angleTol {
		t.Fatalf("TrueThicknessFromAlpha(10, 30) = %v, want 5", got)
	}
	if got := TrueThicknessFromAlpha(10, 0); math.Abs(got) > angleTol {
		t.Fatalf("TrueThicknessFromAlpha(10, 0) = %v, want 0", got)
	}
}

func TestTrueThicknessMonotonic(t *testing.T) {
	const length = 42.5
	prev := -1.0
	for a := 0.0; a <= 90; a++ {
		tt := TrueThicknessFromAlpha(length, a)
		if tt < prev {
			t.Fatalf("true thickness decreased at alpha=%v: %v < %v", a, tt, prev)
		}
		prev = tt
	}
	if math.Abs(prev-length) > angleTol {
		t.Fatalf("true thickness at alpha=90 is %v, want %v", prev, length)
	}
}

func TestGramMeters(t *testing.T) {
	if got := GramMeters(5, 2); math.Abs(got-10) > angleTol {
		t.Fatalf("GramMeters(5, 2) = %v, want 10", got)
	}
	if got := GramMeters(0, 7); got != 0 {
		t.Fatalf("GramMeters(0, 7) = %v, want 0", got)
	}
}

func TestRateIntercept(t *testing.T) {
	cases := []struct {
		alpha float64
		want  InterceptQuality
	}{
		{85, QualityHigh},
		{70.1, QualityHigh},
		{70, QualityModerate},
		{45, QualityModerate},
		{40, QualityLow},
		{10, QualityLow},
	}
	for _, c := range cases {
		got, note := RateIntercept(c.alpha)
		if got != c.want {
			t.Fatalf("RateIntercept(%v) = %v, want %v", c.alpha, got, c.want)
		}
		if note == "" {
			t.Fatalf("RateIntercept(%v): empty note", c.alpha)
		}
	}
}
