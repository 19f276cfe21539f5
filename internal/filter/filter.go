// Package filter rejects feed items that are not NBA coverage or that exist
// to push betting and promo content.
package filter

import (
	"strings"

	"github.com/adam-cott/nba7/internal/news"
)

// Non-NBA sections that share a domain with the basketball feeds. A URL
// containing one of these segments is rejected regardless of its title.
var offTopicPathSegments = []string{
	"/nfl/",
	"/mlb/",
	"/nhl/",
	"/college-football/",
	"/mens-college-basketball/",
	"/womens-college-basketball/",
	"/soccer/",
	"/wnba/",
	"/golf/",
	"/tennis/",
	"/boxing/",
	"/mma/",
	"/racing/",
	"/olympics/",
}

// Deny-list phrases for other sports and events. Phrases are kept multi-word
// and specific so legitimate NBA analysis is never caught ("betting odds"
// rather than a bare "odds").
var offTopicKeywords = []string{
	"nfl draft",
	"super bowl",
	"world series",
	"stanley cup",
	"college football",
	"march madness bracket",
	"premier league",
	"champions league",
	"grand slam",
	"ufc fight",
	"formula 1",
	"nascar cup",
	"home run derby",
	"heisman trophy",
}

// Gambling and promotional deny-list: sportsbook brands, promo terminology,
// wagering terms.
var promoKeywords = []string{
	"draftkings",
	"fanduel",
	"betmgm",
	"caesars sportsbook",
	"bet365",
	"pointsbet",
	"sportsbook",
	"promo code",
	"bonus bets",
	"best bets",
	"betting odds",
	"betting preview",
	"player props",
	"prop bets",
	"parlay",
	"point spread",
	"moneyline",
	"over/under",
	"how to bet",
	"odds boost",
}

// IsIrrelevant reports whether the article is off-topic for NBA coverage:
// either its URL points into another sport's section, or its title+summary
// carries an other-sport phrase.
func IsIrrelevant(a news.Article) bool {
	link := strings.ToLower(a.URL)
	for _, seg := range offTopicPathSegments {
		if strings.Contains(link, seg) {
			return true
		}
	}
	return containsAny(a.Headline+" "+a.Summary, offTopicKeywords)
}

// IsPromotional reports whether the article's title+summary hits the
// gambling/promo deny-list.
func IsPromotional(a news.Article) bool {
	return containsAny(a.Headline+" "+a.Summary, promoKeywords)
}

func containsAny(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
