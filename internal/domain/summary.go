package domain

// Summary aggregates a result set for reporting.
type Summary struct {
	Total         int            `json:"total"`
	ByCategory    map[string]int `json:"by_category"`
	ByTier        map[string]int `json:"by_tier"`
	ByAuthority   map[string]int `json:"by_authority"`
	ByContentType map[string]int `json:"by_content_type"`
	ByTimeBracket map[int]int    `json:"by_time_bracket"`
	AverageScore  float64        `json:"average_score"`
}
