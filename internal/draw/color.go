package draw

import "strconv"

// ColorReset clears all text attributes.
const ColorReset = "\033[0m"

// Color is an index into the canvas palette. The zero value is an empty pixel.
type Color uint8

// Palette entries.
const (
	ColorNone Color = iota
	ColorWhite
	ColorRed
	ColorPurple
	ColorGreen
	ColorYellow
	ColorCyan
	ColorCoral
	ColorStar
	colorCount
)

// rgb is a 24-bit color.
type rgb struct{ r, g, b uint8 }

var palette = [colorCount]rgb{
	ColorNone:   {0, 0, 0},
	ColorWhite:  {255, 255, 255},
	ColorRed:    {235, 64, 52},
	ColorPurple: {176, 96, 255},
	ColorGreen:  {96, 220, 96},
	ColorYellow: {250, 220, 60},
	ColorCyan:   {80, 220, 230},
	ColorCoral:  {241, 79, 80},
	ColorStar:   {90, 90, 110},
}

// fgSeq and bgSeq hold the precomputed truecolor sequences for each palette entry.
var fgSeq, bgSeq [colorCount]string

func init() {
	for i, c := range palette {
		rgbStr := strconv.Itoa(int(c.r)) + ";" + strconv.Itoa(int(c.g)) + ";" + strconv.Itoa(int(c.b)) + "m"
		fgSeq[i] = "\033[38;2;" + rgbStr
		bgSeq[i] = "\033[48;2;" + rgbStr
	}
}

// Foreground returns the escape sequence selecting c as foreground color.
func (c Color) Foreground() string {
	if c >= colorCount {
		return ""
	}
	return fgSeq[c]
}

// Background returns the escape sequence selecting c as background color.
func (c Color) Background() string {
	if c >= colorCount {
		return ""
	}
	return bgSeq[c]
}
