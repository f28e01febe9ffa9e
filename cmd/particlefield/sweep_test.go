package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/san-kum/particlefield/internal/logging"
)

func sweepCommand(t *testing.T, ranges []string, args ...string) *bytes.Buffer {
	t.Helper()
	cmd := testCommand(t, args...)
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)

	logger = logging.Discard()
	sweepRanges, sweepFrames, metricName, target = ranges, 5, "connections", 10
	if err := runSweep(cmd, []string{"particles"}); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	return &out
}

func TestRunSweep(t *testing.T) {
	out := sweepCommand(t, []string{"min_distance=60,120", "max_speed=0.1:0.3:3"}, "--width", "640", "--height", "480")

	got := out.String()
	if !strings.Contains(got, "evaluated 6 combinations of min_distance, max_speed") {
		t.Errorf("unexpected summary:\n%s", got)
	}
	for _, want := range []string{"best (|connections - 10|", "  max_speed: ", "  min_distance: "} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunSweepErrors(t *testing.T) {
	cmd := testCommand(t)
	cmd.SetContext(context.Background())
	logger = logging.Discard()
	sweepFrames, metricName = 5, "connections"

	tests := []struct {
		name   string
		ranges []string
	}{
		{"no ranges", nil},
		{"bad range", []string{"min_distance"}},
		{"unknown param", []string{"gravity=1,2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sweepRanges = tt.ranges
			if err := runSweep(cmd, []string{"particles"}); err == nil {
				t.Error("expected an error")
			}
		})
	}

	sweepRanges, metricName = []string{"min_distance=60"}, "nope"
	if err := runSweep(cmd, []string{"particles"}); err == nil {
		t.Error("expected an error for an unknown metric")
	}
}
