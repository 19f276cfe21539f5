// Package news holds the article, comment and poll shapes shared by the
// pipeline stages and the store.
package news

import "time"

// Sentiment label values. Thresholds applied at ±0.05 on the compound score.
const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

// Sentiment provenance tags. Degraded results are still successful results;
// callers can only tell the paths apart through this field.
const (
	SentimentFromComments = "comments"
	SentimentFromHeadline = "headline"
	SentimentFallback     = "fallback"
)

// SentimentBreakdown is the positive/neutral/negative percentage triple.
// Values are non-negative and always sum to exactly 100.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Article is one normalized news entry. A fetcher creates it, the filter,
// dedup and sentiment stages refine it, the store persists it keyed by URL.
type Article struct {
	ID          string    `json:"id"`
	Headline    string    `json:"headline"`
	Summary     string    `json:"summary"`
	SourceName  string    `json:"source_name"`
	SourceSlug  string    `json:"source_slug"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	ImageURL    string    `json:"image_url,omitempty"`
	Teams       []string  `json:"teams"`

	SentimentScore     *float64            `json:"sentiment_score,omitempty"`
	SentimentLabel     string              `json:"sentiment_label,omitempty"`
	SentimentBreakdown *SentimentBreakdown `json:"sentiment_breakdown,omitempty"`
	SentimentSource    string              `json:"sentiment_source,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// HasTeam reports whether the article was classified under the given team id.
func (a *Article) HasTeam(id string) bool {
	for _, t := range a.Teams {
		if t == id {
			return true
		}
	}
	return false
}

// Comment is one short social text attached to an article URL.
type Comment struct {
	ArticleURL string    `json:"article_url"`
	Author     string    `json:"author"`
	Text       string    `json:"text"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// PollOption is one answer with its running vote counter.
type PollOption struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// Poll is a question with an ordered option list. Votes are recorded per
// (poll id, voter key), at most one vote per voter.
type Poll struct {
	ID        string       `json:"id"`
	Question  string       `json:"question"`
	Options   []PollOption `json:"options"`
	Active    bool         `json:"active"`
	CreatedAt time.Time    `json:"created_at"`
}
