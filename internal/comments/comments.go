// Package comments looks up short social texts about a story. The lookup is
// a best-effort external capability: quota, auth and network problems
// degrade to an empty result instead of failing the pipeline.
package comments

import (
	"context"
	"strings"

	"github.com/adam-cott/nba7/internal/news"
)

// Source finds comments for a free-text query.
type Source interface {
	Search(ctx context.Context, query string) ([]news.Comment, error)
}

var queryStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "as": true,
	"with": true, "is": true, "are": true, "his": true, "her": true,
	"after": true, "before": true, "over": true, "vs": true,
}

// SearchTerms reduces a headline to a short search query: the first few
// significant words, punctuation stripped.
func SearchTerms(headline string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = 4
	}
	var terms []string
	for _, w := range strings.Fields(headline) {
		w = strings.Trim(w, ".,:;!?'\"()[]")
		if w == "" || queryStopWords[strings.ToLower(w)] {
			continue
		}
		terms = append(terms, w)
		if len(terms) == maxWords {
			break
		}
	}
	return strings.Join(terms, " ")
}
