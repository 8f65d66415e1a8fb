package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Series is one named curve sampled at the sweep offsets.
type Series struct {
	Name   string
	Values []float64
}

// SeriesToSVG plots a single series against its sweep offsets.
func SeriesToSVG(offsets, values []float64, width, height int, strokeColor string) string {
	return SeriesSetToSVG(offsets, []Series{{Values: values}}, width, height, strokeColor, strokeColor)
}

// SeriesSetToSVG plots several series on shared axes. Stroke colours are
// blended from first to last.
func SeriesSetToSVG(offsets []float64, set []Series, width, height int, first, last string) string {
	if len(offsets) < 2 || len(set) == 0 {
		return ""
	}

	minX, maxX := offsets[0], offsets[len(offsets)-1]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range set {
		for _, v := range s.Values {
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
		}
	}
	if math.IsInf(minY, 1) {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	colors := Palette(first, last, len(set))
	for i, s := range set {
		n := min(len(s.Values), len(offsets))
		if n < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5"`, colors[i]))
		if s.Name != "" {
			sb.WriteString(fmt.Sprintf(` data-series="%s"`, html.EscapeString(s.Name)))
		}
		sb.WriteString(` d="M`)
		for j := 0; j < n; j++ {
			x := (offsets[j] - minX) / rangeX * float64(width)
			y := float64(height) - (s.Values[j]-minY)/rangeY*float64(height)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// Palette spreads n colours between two hex endpoints in Lab space.
// Unparseable endpoints fall back to white.
func Palette(first, last string, n int) []string {
	a, err := colorful.Hex(first)
	if err != nil {
		a = colorful.Color{R: 1, G: 1, B: 1}
	}
	b, err := colorful.Hex(last)
	if err != nil {
		b = colorful.Color{R: 1, G: 1, B: 1}
	}

	out := make([]string, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = a.BlendLab(b, t).Clamped().Hex()
	}
	return out
}
