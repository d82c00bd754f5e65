package enhancer

import "errors"

var (
	ErrPosterUnreadable = errors.New("poster cannot be opened or decoded")
	ErrNoAssetMatched   = errors.New("no asset matched and text fallback is disabled")
)
