package enhancer

import (
	"context"

	"poster-badger/internal/domain"
)

// ContentResolver turns a badge type into display content. A nil content
// with a nil error means the badge type has nothing to show and is skipped.
// Resolvers are constructed per poster with the media identity already bound.
type ContentResolver interface {
	Resolve(ctx context.Context, t domain.BadgeType) (*domain.BadgeContent, error)
}

// StyleLookup supplies the style for a badge type. A false return means
// nothing is persisted for the type and the built-in default is used.
type StyleLookup interface {
	StyleFor(t domain.BadgeType) (domain.BadgeStyle, bool)
}
