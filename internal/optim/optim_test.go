package optim

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestGridSearch(t *testing.T) {
	g := NewGridSearch([]string{"x", "y"}, [][]float64{{-1, 0, 1, 2}, {3, 4, 5}})
	objective := func(_ context.Context, p map[string]float64) (float64, error) {
		return math.Abs(p["x"]-1) + math.Abs(p["y"]-4), nil
	}

	best, score, err := g.Search(context.Background(), objective)
	if err != nil {
		t.Fatal(err)
	}
	if best["x"] != 1 || best["y"] != 4 || score != 0 {
		t.Errorf("expected x=1 y=4 score 0, got %v score %v", best, score)
	}
	if g.Evaluated() != 12 {
		t.Errorf("expected 12 combinations, got %d", g.Evaluated())
	}
}

func TestGridSearchSkipsFailures(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3}})
	objective := func(_ context.Context, p map[string]float64) (float64, error) {
		if p["x"] == 1 {
			return 0, errors.New("invalid")
		}
		return p["x"], nil
	}
	best, score, err := g.Search(context.Background(), objective)
	if err != nil {
		t.Fatal(err)
	}
	if best["x"] != 2 || score != 2 {
		t.Errorf("expected x=2, got %v", best)
	}

	all := func(context.Context, map[string]float64) (float64, error) { return 0, errors.New("no") }
	if _, _, err := g.Search(context.Background(), all); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch([]string{"x"}, [][]float64{{1, 2}})
	_, _, err := g.Search(ctx, func(context.Context, map[string]float64) (float64, error) { return 0, nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in     string
		name   string
		values []float64
		ok     bool
	}{
		{"max_distance=100,150,200", "max_distance", []float64{100, 150, 200}, true},
		{"max_speed=0:1:5", "max_speed", []float64{0, 0.25, 0.5, 0.75, 1}, true},
		{"wide_count=80:80:1", "wide_count", []float64{80}, true},
		{"max_speed", "", nil, false},
		{"max_speed=a,b", "", nil, false},
		{"max_speed=0:1:0", "", nil, false},
	}
	for _, tt := range tests {
		name, values, err := ParseRange(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("%q: unexpected error state %v", tt.in, err)
			continue
		}
		if !tt.ok {
			continue
		}
		if name != tt.name || len(values) != len(tt.values) {
			t.Errorf("%q: got %s %v", tt.in, name, values)
			continue
		}
		for i := range values {
			if math.Abs(values[i]-tt.values[i]) > 1e-12 {
				t.Errorf("%q: value %d expected %v, got %v", tt.in, i, tt.values[i], values[i])
			}
		}
	}
}
