package sunburst

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/icco/sunburst/lib/dataset"
	"github.com/icco/sunburst/lib/hierarchy"
)

// LeafBrightness is how much lighter genre wedges are than their season.
const LeafBrightness = 0.5

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("sunburst: no plays to draw")

//go:embed chart.svg.tmpl
var svgSource string

var svgTemplate = template.Must(template.New("chart").Parse(svgSource))

// Options controls the canvas and colors of a chart.
type Options struct {
	Width       int
	Height      int
	CenterLabel string
	// Domain and Colors form the ordinal season palette.
	Domain []string
	Colors []string
}

// DefaultOptions returns the 700x700 seasonal chart.
func DefaultOptions() Options {
	domain := make([]string, len(dataset.Seasons))
	for i, s := range dataset.Seasons {
		domain[i] = string(s)
	}
	return Options{
		Width:       700,
		Height:      700,
		CenterLabel: dataset.CenterLabel,
		Domain:      domain,
		Colors:      []string{"#4A90E2", "#7ED321", "#F5A623", "#D0021B"},
	}
}

// Wedge is one drawn arc.
type Wedge struct {
	Label   string
	Name    string
	Tooltip string
	Path    string
	Fill    string
	Depth   int
	Value   int64
}

// Label is a rotated season caption.
type Label struct {
	Text      string
	Transform string
	Anchor    string
}

// Chart is the drawable form of a laid-out hierarchy.
type Chart struct {
	Width   int
	Height  int
	CenterX float64
	CenterY float64
	Wedges  []Wedge
	Labels  []Label
	Center  string
}

// Render lays root out on the canvas described by opts and resolves colors,
// labels and tooltips for every non-root node.
func Render(root *hierarchy.Node, opts Options) (*Chart, error) {
	if root == nil || root.Sum() <= 0 {
		return nil, ErrEmpty
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("sunburst: invalid canvas %dx%d", opts.Width, opts.Height)
	}

	palette := NewPalette(opts.Domain, opts.Colors)
	top := Layout(root, float64(opts.Width), float64(opts.Height))
	p := message.NewPrinter(language.English)

	chart := &Chart{
		Width:   opts.Width,
		Height:  opts.Height,
		CenterX: float64(opts.Width) / 2,
		CenterY: float64(opts.Height) / 2,
		Center:  opts.CenterLabel,
	}

	for _, s := range top.Descendants() {
		if s.Depth == 0 {
			continue
		}
		fill, err := wedgeFill(s, palette)
		if err != nil {
			return nil, err
		}
		chart.Wedges = append(chart.Wedges, Wedge{
			Label:   wedgeLabel(s),
			Name:    s.Node.Name,
			Tooltip: Tooltip(p, s.Node.Name, s.Value),
			Path:    ArcPath(s),
			Fill:    fill,
			Depth:   s.Depth,
			Value:   s.Value,
		})
		if s.Depth == 1 {
			chart.Labels = append(chart.Labels, seasonLabel(s))
		}
	}
	return chart, nil
}

func wedgeFill(s *Segment, palette *Palette) (string, error) {
	if s.Depth == 1 {
		return palette.Color(s.Node.Name), nil
	}
	season := s
	for season.Depth > 1 {
		season = season.Parent
	}
	base, err := ParseHex(palette.Color(season.Node.Name))
	if err != nil {
		return "", err
	}
	return base.Brighter(LeafBrightness).Hex(), nil
}

func wedgeLabel(s *Segment) string {
	if s.Depth == 1 {
		return s.Node.Name
	}
	return s.Parent.Node.Name + "-" + s.Node.Name
}

// Tooltip formats the hover text for a wedge: the escaped node name, a line
// break, and the play count with thousands separators. A zero count leaves
// the number blank.
func Tooltip(p *message.Printer, name string, plays int64) string {
	count := ""
	if plays != 0 {
		count = p.Sprintf("%d", plays)
	}
	return html.EscapeString(name) + "<br/>" + count + " plays"
}

// seasonLabel rotates the caption onto the band midpoint and flips it past
// the halfway angle so the text stays upright.
func seasonLabel(s *Segment) Label {
	deg := s.MidAngle() * 180 / math.Pi
	flip := 0
	anchor := "start"
	if s.MidAngle() >= math.Pi {
		flip = 180
		anchor = "end"
	}
	return Label{
		Text:      s.Node.Name,
		Transform: fmt.Sprintf("rotate(%s) translate(%s,0) rotate(%d)", num(deg-90), num(s.MidRadius()), flip),
		Anchor:    anchor,
	}
}

// SVG renders the chart as inline SVG markup.
func (c *Chart) SVG() (template.HTML, error) {
	var buf bytes.Buffer
	if err := svgTemplate.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("execute svg template: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// WriteSVG writes a standalone SVG document.
func (c *Chart) WriteSVG(w io.Writer) error {
	svg, err := c.SVG()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"); err != nil {
		return err
	}
	_, err = io.WriteString(w, string(svg))
	return err
}
