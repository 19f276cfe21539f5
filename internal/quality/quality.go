// Package quality scores how desirable an article is relative to duplicate
// coverage of the same story. The score is a heuristic scalar, not a
// probability; it flavors logging and display and breaks ties, nothing more.
package quality

import (
	"strings"
	"time"
	"unicode"

	"github.com/adam-cott/nba7/internal/news"
)

const summaryLengthCap = 200

// SourceBonus rewards sources that tend to produce the more thorough
// writeup of a shared story. Unknown slugs score the baseline 0.
var SourceBonus = map[string]int{
	"espn-nba":  25,
	"cbs-nba":   15,
	"slam-wire": 10,
	"yahoo-nba": 0,
}

var clickbaitPhrases = []string{
	"you won't believe",
	"you wont believe",
	"what happened next",
	"the real reason",
	"shocking",
	"jaw-dropping",
	"goes viral",
	"breaks the internet",
	"must see",
	"number one reason",
}

// Acronyms that are legitimately all-caps in NBA headlines.
var capsAllowList = map[string]bool{
	"NBA":  true,
	"WNBA": true,
	"ESPN": true,
	"MVP":  true,
	"DPOY": true,
	"ROY":  true,
	"NCAA": true,
	"USA":  true,
	"PPG":  true,
	"APG":  true,
	"RPG":  true,
	"ACL":  true,
	"MCL":  true,
	"TNT":  true,
	"ABC":  true,
}

// Rule is one independently testable scoring rule.
type Rule struct {
	Name   string
	Points func(a news.Article, now time.Time) int
}

// Rules is the full additive model, in evaluation order.
var Rules = []Rule{
	{Name: "summary_detail", Points: summaryDetail},
	{Name: "source_reputation", Points: sourceReputation},
	{Name: "clickbait_headline", Points: clickbaitHeadline},
	{Name: "exclamation_spam", Points: exclamationSpam},
	{Name: "caps_shouting", Points: capsShouting},
	{Name: "fresh_story", Points: freshStory},
}

// Score sums every rule's contribution for the article at the given time.
func Score(a news.Article, now time.Time) int {
	total := 0
	for _, r := range Rules {
		total += r.Points(a, now)
	}
	return total
}

func summaryDetail(a news.Article, _ time.Time) int {
	n := len(a.Summary)
	if n > summaryLengthCap {
		n = summaryLengthCap
	}
	return n
}

func sourceReputation(a news.Article, _ time.Time) int {
	return SourceBonus[a.SourceSlug]
}

func clickbaitHeadline(a news.Article, _ time.Time) int {
	headline := strings.ToLower(a.Headline)
	for _, phrase := range clickbaitPhrases {
		if strings.Contains(headline, phrase) {
			return -150
		}
	}
	return 0
}

func exclamationSpam(a news.Article, _ time.Time) int {
	count := strings.Count(a.Headline, "!")
	if count <= 1 {
		return 0
	}
	return -50 * count
}

// capsShouting penalizes headlines yelling in all caps. A single caps word
// is tolerated; past that every qualifying word counts.
func capsShouting(a news.Article, _ time.Time) int {
	count := 0
	for _, word := range strings.Fields(a.Headline) {
		trimmed := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if isShoutedWord(trimmed) {
			count++
		}
	}
	if count <= 1 {
		return 0
	}
	return -30 * count
}

func isShoutedWord(word string) bool {
	if len(word) <= 2 || capsAllowList[word] {
		return false
	}
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func freshStory(a news.Article, now time.Time) int {
	if now.Sub(a.PublishedAt) < time.Hour {
		return 20
	}
	return 0
}
