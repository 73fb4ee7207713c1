package render

// BaselineHeight is the canvas height every layout coordinate is designed
// against. Rendering at any other height scales all geometry by
// height/BaselineHeight.
const BaselineHeight = 480

const (
	minDimension = 64
	maxDimension = 4096
)

// Config carries the per-request rendering options. It is built once per
// request and never shared between requests.
type Config struct {
	// Mode 0 disables condition color-coding, 1 enables it.
	Mode int
	// Invert 1 selects the light palette.
	Invert int
	// BlackAndWhite overrides both Mode and Invert: light background,
	// single ink color, black/white highlight boxes.
	BlackAndWhite bool
	Width         int
	Height        int
}

// DefaultConfig returns the documented defaults: colored dark theme at
// 800x480.
func DefaultConfig() Config {
	return Config{Mode: 1, Invert: 0, Width: 800, Height: BaselineHeight}
}

// normalized clamps dimensions so a hostile query cannot request an
// absurd canvas.
func (c Config) normalized() Config {
	if c.Width < minDimension {
		c.Width = minDimension
	}
	if c.Width > maxDimension {
		c.Width = maxDimension
	}
	if c.Height < minDimension {
		c.Height = minDimension
	}
	if c.Height > maxDimension {
		c.Height = maxDimension
	}
	return c
}
