package domain

// MediaInfo is the media identity a content resolver works from. The engine
// itself never inspects it; only resolvers do.
type MediaInfo struct {
	Title      string       `json:"title"`
	AudioCodec string       `json:"audio_codec"`
	Resolution string       `json:"resolution"`
	Awards     string       `json:"awards"`
	Reviews    []ReviewItem `json:"reviews"`
}

// EnhanceTask is one unit of work for the worker: a poster plus the ordered
// badge types to composite onto it. Settings carries optional per-type style
// overrides in the raw persisted schema.
type EnhanceTask struct {
	ID           string                               `json:"id"`
	PosterID     string                               `json:"poster_id"`
	OriginalPath string                               `json:"original_path"`
	Bucket       string                               `json:"bucket"`
	BadgeTypes   []BadgeType                          `json:"badge_types"`
	Media        MediaInfo                            `json:"media"`
	Settings     map[BadgeType]map[string]interface{} `json:"settings,omitempty"`
}

type EnhanceResult struct {
	ID           string        `json:"id"`
	PosterID     string        `json:"poster_id"`
	Status       PosterStatus  `json:"status"`
	EnhancedPath string        `json:"enhanced_path,omitempty"`
	Results      []BadgeResult `json:"results,omitempty"`
	Error        string        `json:"error,omitempty"`
}
