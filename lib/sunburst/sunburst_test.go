package sunburst

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/icco/sunburst/lib/dataset"
	"github.com/icco/sunburst/lib/hierarchy"
)

func defaultChart(t *testing.T) *Chart {
	t.Helper()
	root := hierarchy.Build(dataset.Name, dataset.Records())
	chart, err := Render(root, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return chart
}

func findWedge(t *testing.T, c *Chart, label string) Wedge {
	t.Helper()
	for _, w := range c.Wedges {
		if w.Label == label {
			return w
		}
	}
	t.Fatalf("no wedge labelled %q", label)
	return Wedge{}
}

func TestLayoutSpansAndBands(t *testing.T) {
	root := hierarchy.Build(dataset.Name, dataset.Records())
	top := Layout(root, 700, 700)

	if top.X0 != 0 || top.X1 != 2*math.Pi {
		t.Fatalf("root span: [%v, %v)", top.X0, top.X1)
	}
	total := float64(root.Sum())
	prev := 0.0
	for _, season := range top.Children {
		if math.Abs(season.X0-prev) > 1e-9 {
			t.Fatalf("%s does not start where its sibling ended", season.Node.Name)
		}
		want := 2 * math.Pi * float64(season.Value) / total
		if math.Abs((season.X1-season.X0)-want) > 1e-9 {
			t.Fatalf("%s span %v want %v", season.Node.Name, season.X1-season.X0, want)
		}
		if season.Y0 != 350.0/3 || season.Y1 != 700.0/3 {
			t.Fatalf("%s band [%v, %v)", season.Node.Name, season.Y0, season.Y1)
		}
		for _, leaf := range season.Children {
			if leaf.X0 < season.X0-1e-9 || leaf.X1 > season.X1+1e-9 {
				t.Fatalf("%s/%s escapes its parent", season.Node.Name, leaf.Node.Name)
			}
			if math.Abs(leaf.Y1-350) > 1e-9 {
				t.Fatalf("leaf outer radius %v", leaf.Y1)
			}
		}
		prev = season.X1
	}
	if prev != 2*math.Pi {
		t.Fatalf("seasons end at %v", prev)
	}
}

func TestLayoutZeroValue(t *testing.T) {
	root := hierarchy.Build("Music", []dataset.Record{
		{Season: dataset.Winter, Genre: "Pop", Count: 0},
		{Season: dataset.Summer, Genre: "Pop", Count: 10},
	})
	top := Layout(root, 100, 100)
	winter := top.Children[0]
	if winter.X1-winter.X0 != 0 {
		t.Fatalf("zero-valued season should have no span, got %v", winter.X1-winter.X0)
	}
	if top.Children[1].X1-top.Children[1].X0 != 2*math.Pi {
		t.Fatal("non-zero season should take the full circle")
	}
}

func TestLayoutLastChildClosesParent(t *testing.T) {
	records := []dataset.Record{
		{Season: dataset.Winter, Genre: "Pop", Count: 1},
		{Season: dataset.Winter, Genre: "Rock", Count: 1},
		{Season: dataset.Winter, Genre: "Jazz", Count: 1},
		{Season: dataset.Spring, Genre: "Pop", Count: 7},
		{Season: dataset.Spring, Genre: "Rock", Count: 3},
		{Season: dataset.Summer, Genre: "Pop", Count: 11},
	}
	for _, root := range []*hierarchy.Node{
		hierarchy.Build(dataset.Name, dataset.Records()),
		hierarchy.Build(dataset.Name, records),
	} {
		for _, s := range Layout(root, 700, 700).Descendants() {
			n := len(s.Children)
			if n == 0 {
				continue
			}
			if last := s.Children[n-1]; last.X1 != s.X1 {
				t.Fatalf("%s: last child ends at %v, parent at %v", s.Node.Name, last.X1, s.X1)
			}
		}
	}
}

func TestDescendantsBreadthFirst(t *testing.T) {
	root := hierarchy.Build(dataset.Name, dataset.Records())
	all := Layout(root, 700, 700).Descendants()
	if len(all) != 1+4+40 {
		t.Fatalf("got %d segments", len(all))
	}
	for i := 1; i <= 4; i++ {
		if all[i].Depth != 1 {
			t.Fatalf("segment %d has depth %d", i, all[i].Depth)
		}
	}
}

func TestArcPath(t *testing.T) {
	tests := []struct {
		name           string
		a0, a1, r0, r1 float64
		want           string
	}{
		{
			name: "quarter",
			a0:   0, a1: math.Pi / 2, r0: 50, r1: 100,
			want: "M0,-100A100,100,0,0,1,100,0L50,0A50,50,0,0,0,0,-50Z",
		},
		{
			name: "large arc",
			a0:   0, a1: 3 * math.Pi / 2, r0: 50, r1: 100,
			want: "M0,-100A100,100,0,1,1,-100,0L-50,0A50,50,0,1,0,0,-50Z",
		},
		{
			name: "pie slice",
			a0:   0, a1: math.Pi / 2, r0: 0, r1: 10,
			want: "M0,-10A10,10,0,0,1,10,0L0,0Z",
		},
		{
			name: "full ring",
			a0:   0, a1: 2 * math.Pi, r0: 5, r1: 10,
			want: "M0,-10A10,10,0,0,1,0,10A10,10,0,0,1,0,-10M0,-5A5,5,0,0,0,0,5A5,5,0,0,0,0,-5Z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArcPath(&Segment{X0: tt.a0, X1: tt.a1, Y0: tt.r0, Y1: tt.r1})
			if got != tt.want {
				t.Fatalf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestBrighter(t *testing.T) {
	c, err := ParseHex("#4A90E2")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if got := c.Hex(); got != "#4a90e2" {
		t.Fatalf("round trip: %s", got)
	}
	if got := c.Brighter(0.5).Hex(); got != "#58acff" {
		t.Fatalf("brighter: got %s", got)
	}
	if _, err := ParseHex("blue"); err == nil {
		t.Fatal("expected error for non-hex color")
	}
	if c, err := ParseHex("#fff"); err != nil || c.Hex() != "#ffffff" {
		t.Fatalf("short form: %v %v", c, err)
	}
}

func TestPaletteImplicitDomain(t *testing.T) {
	p := NewPalette([]string{"Winter", "Spring"}, []string{"#a", "#b", "#c"})
	if p.Color("Spring") != "#b" {
		t.Fatal("Spring should map to the second color")
	}
	if p.Color("Monsoon") != "#c" || p.Color("Dry") != "#a" {
		t.Fatal("unknown keys should extend the domain and cycle the range")
	}
	if p.Color("Monsoon") != "#c" {
		t.Fatal("assignment must be stable")
	}
	if d := p.Domain(); strings.Join(d, ",") != "Winter,Spring,Monsoon,Dry" {
		t.Fatalf("domain %v", d)
	}
}

func TestRenderTooltipAndLabel(t *testing.T) {
	chart := defaultChart(t)

	w := findWedge(t, chart, "Winter-Pop")
	if w.Tooltip != "Pop<br/>85,214 plays" {
		t.Fatalf("tooltip %q", w.Tooltip)
	}
	if w.Depth != 2 || w.Value != 85214 {
		t.Fatalf("unexpected wedge %+v", w)
	}

	s := findWedge(t, chart, "Summer")
	if s.Tooltip != "Summer<br/>576,478 plays" {
		t.Fatalf("season tooltip %q", s.Tooltip)
	}
	if len(chart.Wedges) != 44 {
		t.Fatalf("expected 44 wedges, got %d", len(chart.Wedges))
	}
}

func TestRenderColors(t *testing.T) {
	chart := defaultChart(t)
	if w := findWedge(t, chart, "Winter"); w.Fill != "#4A90E2" {
		t.Fatalf("Winter fill %s", w.Fill)
	}
	if w := findWedge(t, chart, "Fall"); w.Fill != "#D0021B" {
		t.Fatalf("Fall fill %s", w.Fill)
	}
	if w := findWedge(t, chart, "Winter-Jazz"); w.Fill != "#58acff" {
		t.Fatalf("Winter leaf fill %s", w.Fill)
	}
}

func TestRenderSeasonLabelsStayUpright(t *testing.T) {
	chart := defaultChart(t)
	if len(chart.Labels) != 4 {
		t.Fatalf("expected 4 labels, got %d", len(chart.Labels))
	}
	// Fall and Spring sit on the right half, Summer and Winter on the left.
	want := map[string]string{"Fall": "start", "Spring": "start", "Summer": "end", "Winter": "end"}
	for _, l := range chart.Labels {
		if l.Anchor != want[l.Text] {
			t.Fatalf("%s anchor %s want %s", l.Text, l.Anchor, want[l.Text])
		}
		flipped := strings.HasSuffix(l.Transform, "rotate(180)")
		if flipped != (l.Anchor == "end") {
			t.Fatalf("%s transform %q does not match anchor %s", l.Text, l.Transform, l.Anchor)
		}
		if !strings.Contains(l.Transform, "translate(175,0)") {
			t.Fatalf("%s not on the band midpoint: %q", l.Text, l.Transform)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	if _, err := Render(hierarchy.Build("Music", nil), DefaultOptions()); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	root := hierarchy.Build(dataset.Name, dataset.Records())
	if _, err := Render(root, Options{Width: 0, Height: 10}); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestWriteSVG(t *testing.T) {
	chart := defaultChart(t)
	var buf bytes.Buffer
	if err := chart.WriteSVG(&buf); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`width="700" height="700"`,
		`transform="translate(350,350)"`,
		`data-label="Winter-Pop"`,
		`data-tooltip="Pop&lt;br/&gt;85,214 plays"`,
		`>2024</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q", want)
		}
	}
	if n := strings.Count(out, "<path "); n != 44 {
		t.Fatalf("expected 44 paths, got %d", n)
	}
}

func TestTooltipEscapesName(t *testing.T) {
	p := message.NewPrinter(language.English)
	if got := Tooltip(p, "R&B", 1234567); got != "R&amp;B<br/>1,234,567 plays" {
		t.Fatalf("got %q", got)
	}
}

func TestTooltipZeroPlays(t *testing.T) {
	p := message.NewPrinter(language.English)
	if got := Tooltip(p, "Jazz", 0); got != "Jazz<br/> plays" {
		t.Fatalf("got %q", got)
	}
}
