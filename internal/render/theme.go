package render

import (
	"image/color"
	"strings"
)

// ConditionClass buckets a feed condition string for color-coding.
type ConditionClass int

const (
	ClassDefault ConditionClass = iota
	ClassGood
	ClassFair
	ClassPoor
)

// Classify matches a condition string against the known buckets,
// case-insensitive, first match wins: good ("good", "mid lat aur"),
// fair ("fair"), poor ("poor", "closed").
func Classify(condition string) ConditionClass {
	c := strings.ToLower(condition)
	switch {
	case strings.Contains(c, "good"), strings.Contains(c, "mid lat aur"):
		return ClassGood
	case strings.Contains(c, "fair"):
		return ClassFair
	case strings.Contains(c, "poor"), strings.Contains(c, "closed"):
		return ClassPoor
	default:
		return ClassDefault
	}
}

// Theme carries the resolved palette for one render.
type Theme struct {
	Background color.Color
	Text       color.Color
	Label      color.Color
	Good       color.Color
	Fair       color.Color
	Poor       color.Color

	HighlightFill color.Color
	HighlightInk  color.Color

	// Colorized reports whether condition color-coding (and the good
	// condition highlight) is active.
	Colorized bool
}

var (
	normalPalette = Theme{
		Background: color.RGBA{0, 0, 0, 255},
		Text:       color.RGBA{255, 255, 255, 255},
		Label:      color.RGBA{160, 160, 160, 255},
		Good:       color.RGBA{0, 200, 83, 255},
		Fair:       color.RGBA{255, 171, 0, 255},
		Poor:       color.RGBA{213, 0, 0, 255},
	}

	invertPalette = Theme{
		Background: color.RGBA{255, 255, 255, 255},
		Text:       color.RGBA{0, 0, 0, 255},
		Label:      color.RGBA{90, 90, 90, 255},
		Good:       color.RGBA{0, 120, 40, 255},
		Fair:       color.RGBA{180, 120, 0, 255},
		Poor:       color.RGBA{160, 0, 0, 255},
	}
)

// themeFor resolves the palette and highlight pair for a render config.
// Precedence: blackAndWhite over invert over the normal default; mode 0
// keeps the palette but suppresses condition colors.
func themeFor(cfg Config) Theme {
	if cfg.BlackAndWhite {
		black := color.RGBA{0, 0, 0, 255}
		white := color.RGBA{255, 255, 255, 255}
		return Theme{
			Background:    white,
			Text:          black,
			Label:         black,
			Good:          black,
			Fair:          black,
			Poor:          black,
			HighlightFill: black,
			HighlightInk:  white,
			Colorized:     false,
		}
	}

	t := normalPalette
	if cfg.Invert == 1 {
		t = invertPalette
	}

	if cfg.Mode == 0 {
		t.Colorized = false
		t.HighlightFill = color.RGBA{128, 128, 128, 255}
		t.HighlightInk = color.RGBA{255, 255, 255, 255}
	} else {
		t.Colorized = true
		t.HighlightFill = t.Text
		t.HighlightInk = t.Background
	}

	return t
}

// conditionColor picks the text color for a condition string under t.
func (t Theme) conditionColor(condition string) color.Color {
	if !t.Colorized {
		return t.Text
	}
	switch Classify(condition) {
	case ClassGood:
		return t.Good
	case ClassFair:
		return t.Fair
	case ClassPoor:
		return t.Poor
	default:
		return t.Text
	}
}
