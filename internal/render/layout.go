package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/nicupavel/hf-propagation-eink/internal/hamqsl"
)

// Layout baselines, designed for a 480-high canvas. Everything below is
// scaled by height/BaselineHeight before drawing.
const (
	marginX = 10

	titleY    = 34
	titleSize = 26
	subY      = 58
	subSize   = 14

	gridSize  = 16
	gridRow0Y = 96
	gridRowH  = 30

	separatorY = 205

	sectionY     = 232
	sectionSize  = 16
	colHeaderY   = 260
	colHeaderSz  = 14
	bandRow0Y    = 288
	bandRowH     = 28
	bandSize     = 16
	dayColRight  = 300
	nightColRight = 420

	vhfColX    = 460
	vhfRow0Y   = 260
	vhfRowH    = 24
	vhfSize    = 13
	vhfValGap  = 8
	footerY    = 462
	footerSize = 14
	footerGap  = 18

	boxPadX = 5
	boxPadY = 3
)

var gridCols = [3]float64{10, 280, 550}

type engine struct {
	s     Surface
	cfg   Config
	theme Theme
	scale float64
}

// Draw renders the record onto s per cfg. It issues every drawing
// command synchronously and never fails for a well-formed record.
func Draw(s Surface, rec hamqsl.SolarRecord, cfg Config) {
	cfg = cfg.normalized()
	e := &engine{
		s:     s,
		cfg:   cfg,
		theme: themeFor(cfg),
		scale: float64(cfg.Height) / BaselineHeight,
	}

	e.drawBackground()
	e.drawTitle(rec)
	e.drawMetricsGrid(rec)
	e.drawSeparator()
	e.drawBandTable(rec)
	e.drawVHFList(rec)
	e.drawFooter(rec)
}

// PNG renders the record and encodes it as PNG bytes.
func PNG(rec hamqsl.SolarRecord, cfg Config) ([]byte, error) {
	cfg = cfg.normalized()
	c := newCanvas(cfg.Width, cfg.Height)
	Draw(c, rec, cfg)
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// px scales a baseline coordinate to the output resolution, rounded to
// the nearest integer pixel.
func (e *engine) px(v float64) float64 {
	return math.Round(v * e.scale)
}

func (e *engine) drawBackground() {
	e.s.SetColor(e.theme.Background)
	e.s.FillRect(0, 0, float64(e.cfg.Width), float64(e.cfg.Height))
}

func (e *engine) drawTitle(rec hamqsl.SolarRecord) {
	e.s.SetFont(e.px(titleSize), true)
	e.s.SetColor(e.theme.Text)
	e.s.Text("Solar-Terrestrial Data", e.px(marginX), e.px(titleY))

	e.s.SetFont(e.px(subSize), false)
	e.s.SetColor(e.theme.Label)
	e.s.Text(fmt.Sprintf("Updated: %s · %s", rec.Updated, rec.Source), e.px(marginX), e.px(subY))
}

func (e *engine) drawMetricsGrid(rec hamqsl.SolarRecord) {
	cells := []struct {
		label     string
		value     string
		highlight bool
	}{
		{"SFI", rec.SolarFlux.String(), true},
		{"Sunspots", rec.Sunspots.String(), true},
		{"X-Ray", rec.XRay, false},
		{"K-Index", rec.KIndex.String(), false},
		{"Proton Flux", rec.ProtonFlux.String(), false},
		{"Helium Line", rec.HeliumLine.String(), false},
		{"Solar Wind", rec.SolarWind.String(), false},
		{"Mag Field", rec.MagneticField.String(), false},
		{"Geomag Field", rec.GeomagField, false},
		{"Sig Noise", rec.SignalNoise, false},
		{"Aurora", rec.Aurora.String(), false},
		{"Aur Lat", rec.LatDegree.String(), false},
	}

	size := e.px(gridSize)
	for i, cell := range cells {
		x := e.px(gridCols[i%3])
		y := e.px(gridRow0Y + float64(i/3)*gridRowH)

		label := cell.label + ": "
		e.s.SetFont(size, false)
		e.s.SetColor(e.theme.Label)
		e.s.Text(label, x, y)
		vx := x + e.s.TextWidth(label)

		e.s.SetFont(size, true)
		if cell.highlight {
			e.boxedText(cell.value, vx, y, size)
			continue
		}
		e.s.SetColor(e.theme.Text)
		e.s.Text(cell.value, vx, y)
	}
}

// boxedText draws s over a filled highlight rectangle sized to the
// measured text width. The font must already be set.
func (e *engine) boxedText(s string, x, y, size float64) {
	w := e.s.TextWidth(s)
	padX := e.px(boxPadX)
	padY := e.px(boxPadY)

	e.s.SetColor(e.theme.HighlightFill)
	e.s.FillRect(x-padX, y-size-padY, w+2*padX, size+2*padY)
	e.s.SetColor(e.theme.HighlightInk)
	e.s.Text(s, x, y)
}

func (e *engine) drawSeparator() {
	lw := e.px(1)
	if lw < 1 {
		lw = 1
	}
	e.s.SetColor(e.theme.Label)
	e.s.Line(e.px(marginX), e.px(separatorY), float64(e.cfg.Width)-e.px(marginX), e.px(separatorY), lw)
}

func (e *engine) drawBandTable(rec hamqsl.SolarRecord) {
	e.s.SetFont(e.px(sectionSize), true)
	e.s.SetColor(e.theme.Text)
	e.s.Text("HF Conditions", e.px(marginX), e.px(sectionY))

	e.s.SetFont(e.px(colHeaderSz), false)
	e.s.SetColor(e.theme.Label)
	e.textRight("Day", e.px(dayColRight), e.px(colHeaderY))
	e.textRight("Night", e.px(nightColRight), e.px(colHeaderY))

	for i, band := range rec.Conditions.Names() {
		y := e.px(bandRow0Y + float64(i)*bandRowH)

		e.s.SetFont(e.px(bandSize), false)
		e.s.SetColor(e.theme.Label)
		e.s.Text(band, e.px(marginX), y)

		e.drawCondition(rec.Conditions.Get(band, "day"), e.px(dayColRight), y)
		e.drawCondition(rec.Conditions.Get(band, "night"), e.px(nightColRight), y)
	}
}

// drawCondition renders a condition right-aligned to rightEdge,
// color-coded, with a highlight box when it classifies as good.
func (e *engine) drawCondition(condition string, rightEdge, y float64) {
	if condition == "" {
		condition = hamqsl.NA
	}

	size := e.px(bandSize)
	e.s.SetFont(size, true)
	x := rightEdge - e.s.TextWidth(condition)

	if e.theme.Colorized && Classify(condition) == ClassGood {
		e.boxedText(condition, x, y, size)
		return
	}

	e.s.SetColor(e.theme.conditionColor(condition))
	e.s.Text(condition, x, y)
}

func (e *engine) drawVHFList(rec hamqsl.SolarRecord) {
	e.s.SetFont(e.px(sectionSize), true)
	e.s.SetColor(e.theme.Text)
	e.s.Text("VHF Conditions", e.px(vhfColX), e.px(sectionY))

	row := 0
	for _, name := range rec.VHFConditions.Names() {
		for _, loc := range rec.VHFConditions.Keys(name) {
			y := e.px(vhfRow0Y + float64(row)*vhfRowH)
			row++

			label := vhfLabel(name, loc)
			e.s.SetFont(e.px(vhfSize), false)
			e.s.SetColor(e.theme.Label)
			e.s.Text(label, e.px(vhfColX), y)
			vx := e.px(vhfColX) + e.s.TextWidth(label) + e.px(vhfValGap)

			condition := strings.TrimSpace(rec.VHFConditions.Get(name, loc))
			e.s.SetFont(e.px(vhfSize), true)
			e.s.SetColor(e.theme.conditionColor(condition))
			e.s.Text(condition, vx, y)
		}
	}
}

func vhfLabel(name, location string) string {
	loc := strings.ReplaceAll(location, "_", " ")
	return fmt.Sprintf("%s %s:", name, loc)
}

func (e *engine) drawFooter(rec hamqsl.SolarRecord) {
	segments := [][2]string{
		{"MUF: ", rec.MUF},
		{"Norm: ", rec.Normalization.String()},
		{"A-Index: ", rec.AIndex.String()},
		{"E-Flux: ", rec.ElectonFlux.String()},
	}

	size := e.px(footerSize)
	x := e.px(marginX)
	y := e.px(footerY)
	for _, seg := range segments {
		e.s.SetFont(size, false)
		e.s.SetColor(e.theme.Label)
		e.s.Text(seg[0], x, y)
		x += e.s.TextWidth(seg[0])

		e.s.SetFont(size, true)
		e.s.SetColor(e.theme.Text)
		e.s.Text(seg[1], x, y)
		x += e.s.TextWidth(seg[1]) + e.px(footerGap)
	}
}

func (e *engine) textRight(s string, rightEdge, y float64) {
	e.s.Text(s, rightEdge-e.s.TextWidth(s), y)
}
