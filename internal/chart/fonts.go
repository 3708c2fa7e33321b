// fonts.go - Font loading with an embedded fallback. Uses the bundled Go
// Regular face when no custom TTF is supplied or when loading it fails.
package chart

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontManager parses a font once and hands out faces at requested sizes.
type FontManager struct {
	parsed *opentype.Font
}

// NewFontManager loads the font at customPath, or the embedded Go font when
// the path is empty or unreadable.
func NewFontManager(customPath string) (*FontManager, error) {
	var data []byte
	if customPath != "" {
		var err error
		data, err = os.ReadFile(customPath)
		if err != nil {
			fmt.Printf("[!] Could not load font %q, using default: %v\n", customPath, err)
			data = nil
		}
	}
	if data == nil {
		data = goregular.TTF
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FontManager{parsed: parsed}, nil
}

// Face returns a rendering face at the given point size.
func (fm *FontManager) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(fm.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}
