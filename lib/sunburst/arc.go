package sunburst

import (
	"math"
	"strconv"
	"strings"
)

const epsilon = 1e-9

// ArcPath returns SVG path data for the annular sector covered by s,
// centered on the origin.
func ArcPath(s *Segment) string {
	return annulus(s.X0, s.X1, s.Y0, s.Y1)
}

func annulus(a0, a1, r0, r1 float64) string {
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	span := a1 - a0
	if span < 0 {
		a0, a1 = a1, a0
		span = -span
	}

	var b strings.Builder
	if span >= 2*math.Pi-epsilon {
		// A single arc command cannot close a circle; split each ring in two.
		mid := a0 + math.Pi
		moveTo(&b, r1, a0)
		arcTo(&b, r1, mid, false, true)
		arcTo(&b, r1, a0, false, true)
		if r0 > epsilon {
			moveTo(&b, r0, a0)
			arcTo(&b, r0, mid, false, false)
			arcTo(&b, r0, a0, false, false)
		}
		b.WriteString("Z")
		return b.String()
	}

	large := span > math.Pi
	moveTo(&b, r1, a0)
	arcTo(&b, r1, a1, large, true)
	if r0 > epsilon {
		lineTo(&b, r0, a1)
		arcTo(&b, r0, a0, large, false)
	} else {
		b.WriteString("L0,0")
	}
	b.WriteString("Z")
	return b.String()
}

// polar converts a clockwise-from-north angle to canvas coordinates.
func polar(r, a float64) (float64, float64) {
	return r * math.Sin(a), -r * math.Cos(a)
}

func moveTo(b *strings.Builder, r, a float64) {
	x, y := polar(r, a)
	b.WriteString("M")
	b.WriteString(num(x))
	b.WriteString(",")
	b.WriteString(num(y))
}

func lineTo(b *strings.Builder, r, a float64) {
	x, y := polar(r, a)
	b.WriteString("L")
	b.WriteString(num(x))
	b.WriteString(",")
	b.WriteString(num(y))
}

func arcTo(b *strings.Builder, r, a float64, large, clockwise bool) {
	x, y := polar(r, a)
	b.WriteString("A")
	b.WriteString(num(r))
	b.WriteString(",")
	b.WriteString(num(r))
	b.WriteString(",0,")
	b.WriteString(flag(large))
	b.WriteString(",")
	b.WriteString(flag(clockwise))
	b.WriteString(",")
	b.WriteString(num(x))
	b.WriteString(",")
	b.WriteString(num(y))
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
