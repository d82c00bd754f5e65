package poster

import "errors"

var (
	ErrInvalidFileFormat = errors.New("invalid file format")
	ErrFileTooLarge      = errors.New("file too large")
	ErrNoBadgeTypes      = errors.New("at least one badge type is required")
	ErrUnknownBadgeType  = errors.New("unknown badge type")
)
