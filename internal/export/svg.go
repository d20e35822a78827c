// Package export converts field snapshots to standalone SVG documents.
package export

import (
	"fmt"
	"strings"
)

// RowToSVG draws one field snapshot as an SVG polyline with circles on the
// particle cells. Values are scaled so the row's peak amplitude spans the
// vertical half of the image.
func RowToSVG(row []float64, positions []int, width, height int) string {
	if len(row) < 2 {
		return ""
	}

	scale := 0.0
	for _, v := range row {
		a := v
		if a < 0 {
			a = -a
		}
		if a > scale {
			scale = a
		}
	}
	if scale == 0 {
		scale = 1
	}

	x := func(i int) float64 { return float64(i) / float64(len(row)-1) * float64(width) }
	y := func(v float64) float64 { return float64(height)/2 - v/scale*float64(height)*0.45 }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00ff00" stroke-width="1.5" d="M`,
		width, height, width, height))

	for i, v := range row {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x(i), y(v)))
			continue
		}
		sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x(i), y(v)))
	}
	sb.WriteString("\"/>\n")

	for _, p := range positions {
		if p < 0 || p >= len(row) {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="#ff4444"/>
`, x(p), y(row[p])))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
