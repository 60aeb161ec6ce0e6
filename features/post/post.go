package post

import "socialpulse/pipeline/internal/enrich"

// Post is one page post as fetched from the Graph API, carrying its embedded
// comment stream. Posts are immutable once fetched; enrichment produces an
// Enriched value instead of mutating the fetched state.
type Post struct {
	ID           string `json:"id"`
	Message      string `json:"message"`
	CreatedTime  string `json:"created_time"`
	PermalinkURL string `json:"permalink_url"`

	Likes struct {
		Summary struct {
			TotalCount int `json:"total_count"`
		} `json:"summary"`
	} `json:"likes"`

	Comments struct {
		Data    []CommentData `json:"data"`
		Summary struct {
			TotalCount int `json:"total_count"`
		} `json:"summary"`
	} `json:"comments"`
}

// CommentData is a comment as embedded in its parent post, before flattening.
type CommentData struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	CreatedTime string `json:"created_time"`
}

// Enriched is a post plus its derived classification and insight fields.
type Enriched struct {
	Post
	Categorization    enrich.Categorization
	Impressions       float64
	ImpressionsUnique float64
}
