package domain

import (
	"path/filepath"
	"strings"
	"time"
)

type Poster struct {
	ID               string
	OriginalFilename string
	OriginalSize     int64
	MimeType         string
	Status           PosterStatus
	OriginalPath     string
	EnhancedPath     string
	Bucket           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type PosterStatus string

const (
	StatusUploaded  PosterStatus = "uploaded"
	StatusEnhancing PosterStatus = "enhancing"
	StatusCompleted PosterStatus = "completed"
	StatusFailed    PosterStatus = "failed"
	StatusDeleted   PosterStatus = "deleted"
)

const (
	BucketPosters = "posters"

	PathPrefixOriginal = "original/"
	PathPrefixEnhanced = "enhanced/"
)

const DefaultMaxUploadSize = 32 << 20

// ContentTypeForPath maps a poster filename extension to its MIME type.
func ContentTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	case ".tiff", ".tif":
		return "image/tiff"
	default:
		return "image/jpeg"
	}
}
