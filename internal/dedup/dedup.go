// Package dedup collapses articles that report the same underlying story.
//
// Two signals drive the decision: Jaccard similarity over stemmed content
// words (higher recall, noisy, so it carries a high threshold) and overlap
// of capitalized headline tokens, a proxy for player and team names (low
// recall but precise — two shared names almost always mean the same story).
// Either signal alone merges a pair, but only inside a publication time
// window; stories half a day apart are never the same story no matter how
// the text reads.
package dedup

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/adam-cott/nba7/internal/news"
)

const (
	// Window bounds pair comparisons. Articles further apart than this are
	// never merged, which also keeps recurring phrases ("injury report")
	// from chaining unrelated days together.
	Window = 12 * time.Hour

	// SimilarityThreshold is the minimum Jaccard similarity of the stemmed
	// word-sets for a merge.
	SimilarityThreshold = 0.45

	// SharedEntityMin is the minimum count of shared headline entities for
	// a merge.
	SharedEntityMin = 2
)

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"of": true, "in": true, "on": true, "at": true, "to": true, "for": true,
	"with": true, "as": true, "by": true, "from": true, "is": true,
	"are": true, "was": true, "were": true, "be": true, "been": true,
	"has": true, "have": true, "had": true, "he": true, "she": true,
	"it": true, "its": true, "his": true, "her": true, "their": true,
	"this": true, "that": true, "after": true, "before": true, "over": true,
	"vs": true, "not": true, "no": true, "will": true, "would": true,
	"up": true, "out": true, "about": true, "into": true, "against": true,
	"new": true, "says": true, "say": true, "report": true, "reports": true,
}

// suffixes stripped by the lightweight stemmer, longest first. Only one
// suffix is removed and only when a stem of at least three characters
// remains.
var stemSuffixes = []string{
	"ments", "ment", "tions", "tion", "ings", "ing", "edly", "ed", "es", "s",
}

type signature struct {
	words     map[string]bool
	entities  map[string]bool
	published time.Time
}

// Deduplicate returns the surviving articles sorted by publication time
// descending. Within each duplicate group the newest article survives.
// Running the result through Deduplicate again changes nothing.
func Deduplicate(articles []news.Article) []news.Article {
	sigs := make([]signature, len(articles))
	for i, a := range articles {
		sigs[i] = signature{
			words:     ContentWords(a.Headline + " " + a.Summary),
			entities:  EntityWords(a.Headline),
			published: a.PublishedAt,
		}
	}

	removed := make([]bool, len(articles))
	for i := 0; i < len(articles); i++ {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(articles); j++ {
			if removed[i] {
				break
			}
			if removed[j] {
				continue
			}
			if !sameStory(sigs[i], sigs[j]) {
				continue
			}
			// Older loses, newer survives.
			if sigs[i].published.After(sigs[j].published) {
				removed[j] = true
			} else {
				removed[i] = true
			}
		}
	}

	survivors := make([]news.Article, 0, len(articles))
	for i, a := range articles {
		if !removed[i] {
			survivors = append(survivors, a)
		}
	}
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].PublishedAt.After(survivors[j].PublishedAt)
	})
	return survivors
}

func sameStory(a, b signature) bool {
	gap := a.published.Sub(b.published)
	if gap < 0 {
		gap = -gap
	}
	if gap > Window {
		return false
	}
	if Jaccard(a.words, b.words) >= SimilarityThreshold {
		return true
	}
	return sharedCount(a.entities, b.entities) >= SharedEntityMin
}

// Jaccard is |intersection| / |union| of two sets, 0 when both are empty.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := sharedCount(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func sharedCount(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

// ContentWords lowercases the text, strips non-alphanumerics, drops stop
// words and single-character tokens, and stems what remains.
func ContentWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range tokenize(strings.ToLower(text)) {
		if len(w) <= 1 || stopWords[w] {
			continue
		}
		words[Stem(w)] = true
	}
	return words
}

// EntityWords collects headline tokens that start with an uppercase letter
// and are not stop words, lowercased for comparison.
func EntityWords(headline string) map[string]bool {
	entities := make(map[string]bool)
	for _, w := range strings.Fields(headline) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w == "" {
			continue
		}
		first := []rune(w)[0]
		if !unicode.IsUpper(first) {
			continue
		}
		lower := strings.ToLower(w)
		if len(lower) <= 1 || stopWords[lower] {
			continue
		}
		entities[lower] = true
	}
	return entities
}

// Stem strips one common suffix when a stem of at least three characters
// remains. Crude on purpose: it only has to make plural and inflected forms
// of the same word collide, not be linguistically right.
func Stem(word string) string {
	for _, suf := range stemSuffixes {
		if strings.HasSuffix(word, suf) && len(word)-len(suf) >= 3 {
			return word[:len(word)-len(suf)]
		}
	}
	return word
}

func tokenize(text string) []string {
	runes := make([]rune, 0, len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			runes = append(runes, r)
		} else {
			runes = append(runes, ' ')
		}
	}
	return strings.Fields(string(runes))
}
