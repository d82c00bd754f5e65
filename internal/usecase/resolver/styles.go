package resolver

import "poster-badger/internal/domain"

// SettingsStyles is a StyleLookup over the raw per-type settings maps a task
// carries. Normalization of the mixed key schema happens once, here, via
// domain.StyleFromSettings. The asset directory from service configuration is
// filled in when the settings name none.
type SettingsStyles struct {
	overrides map[domain.BadgeType]map[string]interface{}
	assetDir  string
}

func NewSettingsStyles(overrides map[domain.BadgeType]map[string]interface{}, assetDir string) *SettingsStyles {
	return &SettingsStyles{
		overrides: overrides,
		assetDir:  assetDir,
	}
}

func (s *SettingsStyles) StyleFor(t domain.BadgeType) (domain.BadgeStyle, bool) {
	style := domain.StyleFromSettings(t, s.overrides[t])
	if style.Image.Dir == "" {
		style.Image.Dir = s.assetDir
	}
	// Defaults are already folded in, so this lookup always answers.
	return style, true
}
