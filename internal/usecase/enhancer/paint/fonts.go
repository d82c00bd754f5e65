package paint

import (
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const builtinFontKey = "builtin:goregular"

// FontCache loads and caches parsed TrueType fonts. It is owned by the caller
// and passed into render calls; there is no package-level font state.
type FontCache struct {
	dir   string
	fonts *gocache.Cache
}

func NewFontCache(dir string) *FontCache {
	return &FontCache{
		dir:   dir,
		fonts: gocache.New(gocache.NoExpiration, 0),
	}
}

// Face resolves a font face at the given point size. Candidates are tried in
// order: name in the managed font directory, name as a path on its own,
// fallback in the managed directory, fallback as a path, and finally the
// embedded Go Regular font. The first candidate that parses wins.
func (c *FontCache) Face(name, fallback string, size float64) font.Face {
	if size <= 0 {
		size = 12
	}

	for _, candidate := range c.candidates(name, fallback) {
		if f, err := c.load(candidate); err == nil {
			return newFace(f, size)
		}
	}

	return newFace(c.builtin(), size)
}

func (c *FontCache) candidates(name, fallback string) []string {
	var paths []string
	for _, n := range []string{name, fallback} {
		if n == "" {
			continue
		}
		if c.dir != "" {
			paths = append(paths, filepath.Join(c.dir, n))
		}
		paths = append(paths, n)
	}
	return paths
}

func (c *FontCache) load(path string) (*truetype.Font, error) {
	if cached, ok := c.fonts.Get(path); ok {
		return cached.(*truetype.Font), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}

	c.fonts.Set(path, f, gocache.NoExpiration)
	return f, nil
}

func (c *FontCache) builtin() *truetype.Font {
	if cached, ok := c.fonts.Get(builtinFontKey); ok {
		return cached.(*truetype.Font)
	}

	// goregular ships with the toolchain and always parses.
	f, _ := truetype.Parse(goregular.TTF)
	c.fonts.Set(builtinFontKey, f, gocache.NoExpiration)
	return f
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// MeasureText returns the exact glyph bounding box of text in the given face,
// not an advance-width estimate.
func MeasureText(face font.Face, text string) (int, int) {
	bounds, _ := font.BoundString(face, text)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}
