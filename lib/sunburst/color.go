package sunburst

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// darker is the per-step channel factor; brightening divides by it.
const darker = 0.7

// RGB is an sRGB color with unclamped float channels.
type RGB struct {
	R, G, B float64
}

// ParseHex parses "#rgb" or "#rrggbb".
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{
		R: float64(v >> 16 & 0xff),
		G: float64(v >> 8 & 0xff),
		B: float64(v & 0xff),
	}, nil
}

// Brighter scales every channel by (1/0.7)^k.
func (c RGB) Brighter(k float64) RGB {
	f := math.Pow(1/darker, k)
	return RGB{c.R * f, c.G * f, c.B * f}
}

// Hex formats c as "#rrggbb", rounding and clamping each channel.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

func clamp(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// Palette is an ordinal color scale. Keys outside the domain are appended to
// it on first use and take the next color, cycling through the range.
// A Palette is not safe for concurrent use; Render builds one per chart.
type Palette struct {
	domain []string
	index  map[string]int
	colors []string
}

// NewPalette pairs domain keys with colors in order.
func NewPalette(domain, colors []string) *Palette {
	p := &Palette{index: make(map[string]int), colors: colors}
	for _, key := range domain {
		p.add(key)
	}
	return p
}

func (p *Palette) add(key string) int {
	if i, ok := p.index[key]; ok {
		return i
	}
	i := len(p.domain)
	p.domain = append(p.domain, key)
	p.index[key] = i
	return i
}

// Color returns the color assigned to key.
func (p *Palette) Color(key string) string {
	if len(p.colors) == 0 {
		return ""
	}
	return p.colors[p.add(key)%len(p.colors)]
}

// Domain returns the keys seen so far in assignment order.
func (p *Palette) Domain() []string {
	return append([]string(nil), p.domain...)
}
