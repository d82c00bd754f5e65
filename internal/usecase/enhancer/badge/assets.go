package badge

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	gocache "github.com/patrickmn/go-cache"
)

// AssetCache loads badge asset images (codec logos, rating source logos) from
// a directory and caches the decoded results for the life of the process. It
// is owned by the caller, like FontCache.
type AssetCache struct {
	dir    string
	images *gocache.Cache
}

func NewAssetCache(dir string) *AssetCache {
	return &AssetCache{
		dir:    dir,
		images: gocache.New(gocache.NoExpiration, 0),
	}
}

func (a *AssetCache) load(path string) (image.Image, error) {
	if cached, ok := a.images.Get(path); ok {
		return cached.(image.Image), nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}

	a.images.Set(path, img, gocache.NoExpiration)
	return img, nil
}

// Resolve maps a display key to an asset file. Strategies in order: exact
// mapping match, longest-substring mapping match, case-insensitive filename
// match, then a best-effort prefix match on the key's leading token. Returns
// false when nothing resolves.
func (a *AssetCache) Resolve(key string, mapping map[string]string, dirOverride string) (string, bool) {
	dir := a.dir
	if dirOverride != "" {
		dir = dirOverride
	}
	if key == "" || dir == "" {
		return "", false
	}

	if name, ok := mapping[key]; ok {
		if p := existing(dir, name); p != "" {
			return p, true
		}
	}

	if p := a.substringMatch(key, mapping, dir); p != "" {
		return p, true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	lowerKey := strings.ToLower(key)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		stem := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if stem == lowerKey {
			return filepath.Join(dir, e.Name()), true
		}
	}

	token := strings.ToLower(leadingToken(key))
	if token != "" {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			stem := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
			if strings.HasPrefix(stem, token) || strings.HasPrefix(token, stem) {
				return filepath.Join(dir, e.Name()), true
			}
		}
	}

	return "", false
}

// substringMatch picks the mapping entry whose key is the longest substring
// of the lookup key, so "DTS-HD MA" prefers a "DTS-HD" mapping over "DTS".
func (a *AssetCache) substringMatch(key string, mapping map[string]string, dir string) string {
	lowerKey := strings.ToLower(key)

	var bestPath string
	bestLen := 0
	for mapKey, name := range mapping {
		if len(mapKey) <= bestLen || !strings.Contains(lowerKey, strings.ToLower(mapKey)) {
			continue
		}
		if p := existing(dir, name); p != "" {
			bestPath = p
			bestLen = len(mapKey)
		}
	}
	return bestPath
}

func existing(dir, name string) string {
	p := filepath.Join(dir, name)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func leadingToken(key string) string {
	fields := strings.FieldsFunc(key, func(r rune) bool {
		return r == ' ' || r == '-' || r == '.' || r == '_'
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
