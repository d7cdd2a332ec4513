package md2rich

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Raster rendering constants. Go Mono is bundled so raster output does not
// depend on system fonts.
const (
	rasterDPI     = 144 // 2x for crisp display on high-density screens
	rasterPadding = 8
)

var (
	gomonoOnce sync.Once
	gomonoFont *opentype.Font
	gomonoErr  error
)

// monoFace builds a Go Mono face at the given point size.
func monoFace(size float64) (font.Face, error) {
	gomonoOnce.Do(func() {
		gomonoFont, gomonoErr = opentype.Parse(gomono.TTF)
	})
	if gomonoErr != nil {
		return nil, fmt.Errorf("parsing bundled font: %w", gomonoErr)
	}
	return opentype.NewFace(gomonoFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     rasterDPI,
		Hinting: font.HintingFull,
	})
}

// ASCIIToPNG rasterizes ASCII art to a PNG payload using the bundled
// fixed-pitch Go Mono face. Like ASCIIToSVG, the canvas is sized from the
// glyph advance times the longest line so spacing is preserved exactly.
func ASCIIToPNG(text string, style StyleOptions) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDiagram
	}
	style = normalizeStyle(style)

	face, err := monoFace(style.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	maxLen := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > maxLen {
			maxLen = n
		}
	}

	advance, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, fmt.Errorf("%w: missing glyph metrics", ErrPNGEncode)
	}
	metrics := face.Metrics()
	lineH := metrics.Height.Ceil()

	width := advance.Mul(fixed.I(maxLen)).Ceil() + 2*rasterPadding
	height := lineH*len(lines) + 2*rasterPadding

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(rasterPadding, rasterPadding+metrics.Ascent.Ceil()+i*lineH)
		drawer.DrawString(line)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPNGEncode, err)
	}
	return buf.Bytes(), nil
}
