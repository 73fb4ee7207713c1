package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/nicupavel/hf-propagation-eink/internal/hamqsl"
)

// recorder captures drawing commands so layout geometry and colors can be
// asserted without rasterizing. Text width is a linear function of font
// size, mirroring the font-dependence of real measurement.
type recorder struct {
	seq      int
	fontSize float64
	bold     bool
	col      color.Color

	texts []textOp
	rects []rectOp
}

type textOp struct {
	seq  int
	s    string
	x, y float64
	size float64
	col  color.Color
}

type rectOp struct {
	seq        int
	x, y, w, h float64
	col        color.Color
}

func (r *recorder) SetFont(size float64, bold bool) {
	r.fontSize = size
	r.bold = bold
}

func (r *recorder) SetColor(c color.Color) { r.col = c }

func (r *recorder) TextWidth(s string) float64 {
	return float64(len(s)) * r.fontSize * 0.6
}

func (r *recorder) Text(s string, x, y float64) {
	r.seq++
	r.texts = append(r.texts, textOp{seq: r.seq, s: s, x: x, y: y, size: r.fontSize, col: r.col})
}

func (r *recorder) FillRect(x, y, w, h float64) {
	r.seq++
	r.rects = append(r.rects, rectOp{seq: r.seq, x: x, y: y, w: w, h: h, col: r.col})
}

func (r *recorder) Line(x1, y1, x2, y2, width float64) {}

func (r *recorder) findText(s string) (textOp, bool) {
	for _, op := range r.texts {
		if op.s == s {
			return op, true
		}
	}
	return textOp{}, false
}

// rectBefore returns the most recent rect drawn before the given text.
func (r *recorder) rectBefore(t textOp) (rectOp, bool) {
	var best rectOp
	found := false
	for _, op := range r.rects {
		if op.seq < t.seq && (!found || op.seq > best.seq) {
			best = op
			found = true
		}
	}
	return best, found
}

func testRecord() hamqsl.SolarRecord {
	rec := hamqsl.SolarRecord{
		Source:      "N0NBH",
		Updated:     "26 Aug 2026 1230 GMT",
		SolarFlux:   hamqsl.IntValue{V: 120, Present: true},
		Sunspots:    hamqsl.IntValue{V: 45, Present: true},
		AIndex:      hamqsl.IntValue{V: 5, Present: true},
		KIndex:      hamqsl.IntValue{V: 2, Present: true},
		XRay:        "B1.2",
		GeomagField: "INACTIVE",
		SignalNoise: "S0-S1",
		MUF:         "18.11",
		KIndexNT:    hamqsl.NA,
		FoF2:        "5.875",
		MUFFactor:   "3.08",
	}
	rec.Conditions.Set("80m-40m", "day", "Good")
	rec.Conditions.Set("80m-40m", "night", "Fair")
	rec.Conditions.Set("30m-20m", "day", "Poor")
	rec.Conditions.Set("30m-20m", "night", "Band Closed")
	rec.VHFConditions.Set("vhf-aurora", "northern_hemi", "Band Closed")
	rec.VHFConditions.Set("E-Skip", "europe", "High MUF")
	return rec
}

func TestDoublingHeightDoublesAllPositions(t *testing.T) {
	rec := testRecord()

	base := &recorder{}
	Draw(base, rec, Config{Mode: 1, Width: 800, Height: 480})

	scaled := &recorder{}
	Draw(scaled, rec, Config{Mode: 1, Width: 1600, Height: 960})

	if len(base.texts) != len(scaled.texts) {
		t.Fatalf("text op count differs: %d vs %d", len(base.texts), len(scaled.texts))
	}
	for i := range base.texts {
		b, s := base.texts[i], scaled.texts[i]
		if s.y != 2*b.y {
			t.Errorf("text %q: y %v at 960 should be double %v at 480", b.s, s.y, b.y)
		}
		if s.size != 2*b.size {
			t.Errorf("text %q: font %v at 960 should be double %v at 480", b.s, s.size, b.size)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		condition string
		want      ConditionClass
	}{
		{"Good", ClassGood},
		{"good", ClassGood},
		{"Good, Mid Lat Aur", ClassGood},
		{"MID LAT AUR", ClassGood},
		{"Fair", ClassFair},
		{"FAIR", ClassFair},
		{"Poor", ClassPoor},
		{"Poor/Closed", ClassPoor},
		{"Band Closed", ClassPoor},
		{"High MUF", ClassDefault},
		{"", ClassDefault},
		{"N/A", ClassDefault},
	}
	for _, tc := range cases {
		if got := Classify(tc.condition); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.condition, got, tc.want)
		}
	}
}

func TestThemePrecedence(t *testing.T) {
	// blackAndWhite overrides invert, invert overrides normal.
	bw := themeFor(Config{Mode: 1, Invert: 1, BlackAndWhite: true})
	if bw.Background != (color.RGBA{255, 255, 255, 255}) || bw.Colorized {
		t.Errorf("blackAndWhite theme = %+v, want white background and no colorizing", bw)
	}

	inv := themeFor(Config{Mode: 1, Invert: 1})
	if inv.Background != (color.RGBA{255, 255, 255, 255}) || !inv.Colorized {
		t.Errorf("invert theme = %+v, want white background with colorizing", inv)
	}

	norm := themeFor(Config{Mode: 1})
	if norm.Background != (color.RGBA{0, 0, 0, 255}) || !norm.Colorized {
		t.Errorf("normal theme = %+v, want black background with colorizing", norm)
	}
}

func TestBlackAndWhiteUsesSingleInk(t *testing.T) {
	rec := testRecord()
	r := &recorder{}
	Draw(r, rec, Config{Mode: 1, BlackAndWhite: true, Width: 800, Height: 480})

	ink := color.RGBA{0, 0, 0, 255}
	for _, s := range []string{"Good", "Fair", "Poor", "Band Closed", "High MUF"} {
		op, ok := r.findText(s)
		if !ok {
			t.Fatalf("condition %q was not drawn", s)
		}
		if op.col != ink {
			t.Errorf("condition %q drawn in %v, want single ink %v", s, op.col, ink)
		}
	}
}

func TestModeZeroSuppressesConditionColors(t *testing.T) {
	rec := testRecord()
	r := &recorder{}
	Draw(r, rec, Config{Mode: 0, Width: 800, Height: 480})

	good, _ := r.findText("Good")
	fair, _ := r.findText("Fair")
	if good.col != fair.col {
		t.Errorf("mode 0 should not color-code: Good=%v Fair=%v", good.col, fair.col)
	}
	if good.col != normalPalette.Text {
		t.Errorf("mode 0 condition color = %v, want default text color", good.col)
	}
}

func TestHighlightScenario(t *testing.T) {
	rec := testRecord()
	r := &recorder{}
	Draw(r, rec, DefaultConfig())

	theme := themeFor(DefaultConfig())

	// SFI value gets a highlight box sized around the measured text.
	sfi, ok := r.findText("120")
	if !ok {
		t.Fatal("SFI value 120 was not drawn")
	}
	if sfi.col != theme.HighlightInk {
		t.Errorf("SFI drawn in %v, want highlight ink %v", sfi.col, theme.HighlightInk)
	}
	box, ok := r.rectBefore(sfi)
	if !ok {
		t.Fatal("no highlight box behind SFI value")
	}
	if box.col != theme.HighlightFill {
		t.Errorf("SFI box fill = %v, want %v", box.col, theme.HighlightFill)
	}
	w := float64(len("120")) * sfi.size * 0.6
	if box.x > sfi.x || box.x+box.w < sfi.x+w {
		t.Errorf("SFI box [%v,%v] does not cover text [%v,%v]", box.x, box.x+box.w, sfi.x, sfi.x+w)
	}

	// The good band condition also gets a highlight box.
	good, ok := r.findText("Good")
	if !ok {
		t.Fatal("Good condition was not drawn")
	}
	if good.col != theme.HighlightInk {
		t.Errorf("Good drawn in %v, want highlight ink %v", good.col, theme.HighlightInk)
	}
	if _, ok := r.rectBefore(good); !ok {
		t.Error("no highlight box behind Good condition")
	}

	// Fair renders in the fair color, right-aligned to the night column.
	fair, ok := r.findText("Fair")
	if !ok {
		t.Fatal("Fair condition was not drawn")
	}
	if fair.col != theme.Fair {
		t.Errorf("Fair drawn in %v, want %v", fair.col, theme.Fair)
	}
	fw := float64(len("Fair")) * fair.size * 0.6
	if got := fair.x + fw; math.Abs(got-float64(nightColRight)) > 1e-6 {
		t.Errorf("Fair right edge = %v, want night column %v", got, float64(nightColRight))
	}
}

func TestFooterSegmentsChain(t *testing.T) {
	rec := testRecord()
	r := &recorder{}
	Draw(r, rec, DefaultConfig())

	mufLabel, ok := r.findText("MUF: ")
	if !ok {
		t.Fatal("MUF label was not drawn")
	}
	mufValue, ok := r.findText("18.11")
	if !ok {
		t.Fatal("MUF value was not drawn")
	}

	lw := float64(len("MUF: ")) * mufLabel.size * 0.6
	if mufValue.x != mufLabel.x+lw {
		t.Errorf("MUF value x = %v, want label end %v", mufValue.x, mufLabel.x+lw)
	}
	if mufValue.y != mufLabel.y {
		t.Errorf("footer segments should share a baseline: %v vs %v", mufValue.y, mufLabel.y)
	}
}

func TestConfigClampsDimensions(t *testing.T) {
	cfg := Config{Mode: 1, Width: 10, Height: 1000000}.normalized()
	if cfg.Width != minDimension {
		t.Errorf("width = %d, want clamped %d", cfg.Width, minDimension)
	}
	if cfg.Height != maxDimension {
		t.Errorf("height = %d, want clamped %d", cfg.Height, maxDimension)
	}
}
