package comment

import (
	"strings"

	"socialpulse/pipeline/features/post"
	"socialpulse/pipeline/internal/enrich"
)

// Comment is a standalone comment record after flattening, tagged with the id
// of the post it was embedded in.
type Comment struct {
	ID          string
	PostID      string
	Message     string
	CreatedTime string
}

// Enriched is a comment plus both derived classifications.
type Enriched struct {
	Comment
	Sentiment      enrich.Sentiment
	Categorization enrich.Categorization
}

// Flatten extracts embedded comments from their parent posts in parent order,
// then child order within each parent. Comments with an empty or
// whitespace-only message carry no signal and are dropped here, before dedup
// and enrichment.
func Flatten(posts []post.Post) []Comment {
	var out []Comment
	for _, p := range posts {
		for _, c := range p.Comments.Data {
			if strings.TrimSpace(c.Message) == "" {
				continue
			}
			out = append(out, Comment{
				ID:          c.ID,
				PostID:      p.ID,
				Message:     c.Message,
				CreatedTime: c.CreatedTime,
			})
		}
	}
	return out
}
