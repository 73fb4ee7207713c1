package render

import (
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Surface is the drawing target the layout engine issues commands to.
// Text is drawn with its baseline at y; TextWidth is only meaningful for
// the font most recently set with SetFont.
type Surface interface {
	SetFont(size float64, bold bool)
	SetColor(c color.Color)
	TextWidth(s string) float64
	Text(s string, x, y float64)
	FillRect(x, y, w, h float64)
	Line(x1, y1, x2, y2, width float64)
}

var (
	fontOnce    sync.Once
	regularFont *sfnt.Font
	boldFont    *sfnt.Font
	fontErr     error
)

func loadFonts() (*sfnt.Font, *sfnt.Font, error) {
	fontOnce.Do(func() {
		regularFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	})
	return regularFont, boldFont, fontErr
}

type faceKey struct {
	size float64
	bold bool
}

// canvas adapts a gg context to the Surface interface and caches the
// font faces it builds.
type canvas struct {
	dc    *gg.Context
	faces map[faceKey]font.Face
	err   error
}

func newCanvas(width, height int) *canvas {
	return &canvas{
		dc:    gg.NewContext(width, height),
		faces: make(map[faceKey]font.Face),
	}
}

func (c *canvas) SetFont(size float64, bold bool) {
	key := faceKey{size: size, bold: bold}
	if face, ok := c.faces[key]; ok {
		c.dc.SetFontFace(face)
		return
	}

	regular, boldTTF, err := loadFonts()
	if err != nil {
		c.fail(err)
		return
	}
	src := regular
	if bold {
		src = boldTTF
	}

	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		c.fail(err)
		return
	}

	c.faces[key] = face
	c.dc.SetFontFace(face)
}

func (c *canvas) SetColor(col color.Color) {
	c.dc.SetColor(col)
}

func (c *canvas) TextWidth(s string) float64 {
	w, _ := c.dc.MeasureString(s)
	return w
}

func (c *canvas) Text(s string, x, y float64) {
	c.dc.DrawString(s, x, y)
}

func (c *canvas) FillRect(x, y, w, h float64) {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

func (c *canvas) Line(x1, y1, x2, y2, width float64) {
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

func (c *canvas) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Err returns the first drawing error, if any.
func (c *canvas) Err() error {
	return c.err
}

// Image returns the rendered raster.
func (c *canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the raster as PNG.
func (c *canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}
