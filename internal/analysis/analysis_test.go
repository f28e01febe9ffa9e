package analysis

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.N != 8 || s.Mean != 5 || s.StdDev != 2 || s.Min != 2 || s.Max != 9 {
		t.Errorf("unexpected summary %+v", s)
	}
	if empty := Summarize(nil); empty.N != 0 || empty.Mean != 0 {
		t.Errorf("expected zero summary, got %+v", empty)
	}
}

func TestPowerSpectrumRemovesMean(t *testing.T) {
	ps := PowerSpectrum([]float64{3, 3, 3, 3, 3, 3, 3, 3})
	if len(ps) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(ps))
	}
	for k, v := range ps {
		if v > 1e-9 {
			t.Errorf("bin %d: expected 0 for a constant series, got %v", k, v)
		}
	}
}

func TestDominantPeriod(t *testing.T) {
	const fps = 60
	values := make([]float64, 300)
	for i := range values {
		// 30 frames per cycle
		values[i] = 40 + 10*math.Sin(2*math.Pi*float64(i)/30)
	}
	period, ok := DominantPeriod(values, fps)
	if !ok {
		t.Fatal("expected a period")
	}
	if math.Abs(period-0.5) > 1e-9 {
		t.Errorf("expected 0.5s, got %v", period)
	}
}

func TestDominantPeriodFlat(t *testing.T) {
	if _, ok := DominantPeriod([]float64{1, 1, 1, 1, 1, 1}, 60); ok {
		t.Error("flat series has no period")
	}
	if _, ok := DominantPeriod([]float64{1, 2}, 60); ok {
		t.Error("short series has no period")
	}
}
