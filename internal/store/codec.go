package store

import (
	"fmt"
	"strconv"
	"strings"
)

// One value per column, space separated. The same codec is used when the
// streams are read back for plots and replays.

func FormatFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

func ParseFloats(line string) ([]float64, error) {
	fields := strings.Fields(line)
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("store: column %d: %w", i, err)
		}
		vals[i] = v
	}
	return vals, nil
}

func FormatInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func ParseInts(line string) ([]int, error) {
	fields := strings.Fields(line)
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("store: column %d: %w", i, err)
		}
		vals[i] = v
	}
	return vals, nil
}
