package optim

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange reads "name=v1,v2,v3" or "name=lo:hi:steps" into a parameter
// name and its candidate values.
func ParseRange(s string) (string, []float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok || name == "" || raw == "" {
		return "", nil, fmt.Errorf("range %q: want name=v1,v2 or name=lo:hi:steps", s)
	}

	if parts := strings.Split(raw, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		steps, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || steps < 1 {
			return "", nil, fmt.Errorf("range %q: bad lo:hi:steps", s)
		}
		if steps == 1 {
			return name, []float64{lo}, nil
		}
		values := make([]float64, steps)
		for i := range values {
			values[i] = lo + (hi-lo)*float64(i)/float64(steps-1)
		}
		return name, values, nil
	}

	fields := strings.Split(raw, ",")
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("range %q: %w", s, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}
