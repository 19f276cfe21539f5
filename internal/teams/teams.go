// Package teams maps free text to NBA team identifiers via keyword lookup.
package teams

import "strings"

// Team is one registry entry. ID is the tricode used everywhere else.
type Team struct {
	ID       string
	Name     string
	Keywords []string
}

// Registry is the fixed list of all 30 teams. Keywords are matched as
// lowercase substrings, so short nicknames ("cavs") also hit inside longer
// words ("cavaliers"). That looseness is deliberate.
var Registry = []Team{
	{ID: "ATL", Name: "Atlanta Hawks", Keywords: []string{"hawks", "atlanta"}},
	{ID: "BOS", Name: "Boston Celtics", Keywords: []string{"celtics", "boston"}},
	{ID: "BKN", Name: "Brooklyn Nets", Keywords: []string{"nets", "brooklyn"}},
	{ID: "CHA", Name: "Charlotte Hornets", Keywords: []string{"hornets", "charlotte"}},
	{ID: "CHI", Name: "Chicago Bulls", Keywords: []string{"bulls", "chicago"}},
	{ID: "CLE", Name: "Cleveland Cavaliers", Keywords: []string{"cavs", "cavaliers", "cleveland"}},
	{ID: "DAL", Name: "Dallas Mavericks", Keywords: []string{"mavs", "mavericks", "dallas"}},
	{ID: "DEN", Name: "Denver Nuggets", Keywords: []string{"nuggets", "denver"}},
	{ID: "DET", Name: "Detroit Pistons", Keywords: []string{"pistons", "detroit"}},
	{ID: "GSW", Name: "Golden State Warriors", Keywords: []string{"warriors", "golden state", "dubs"}},
	{ID: "HOU", Name: "Houston Rockets", Keywords: []string{"rockets", "houston"}},
	{ID: "IND", Name: "Indiana Pacers", Keywords: []string{"pacers", "indiana"}},
	{ID: "LAC", Name: "LA Clippers", Keywords: []string{"clippers"}},
	{ID: "LAL", Name: "Los Angeles Lakers", Keywords: []string{"lakers"}},
	{ID: "MEM", Name: "Memphis Grizzlies", Keywords: []string{"grizzlies", "memphis"}},
	{ID: "MIA", Name: "Miami Heat", Keywords: []string{"miami heat", "heat culture", "miami"}},
	{ID: "MIL", Name: "Milwaukee Bucks", Keywords: []string{"bucks", "milwaukee"}},
	{ID: "MIN", Name: "Minnesota Timberwolves", Keywords: []string{"timberwolves", "wolves", "minnesota"}},
	{ID: "NOP", Name: "New Orleans Pelicans", Keywords: []string{"pelicans", "new orleans"}},
	{ID: "NYK", Name: "New York Knicks", Keywords: []string{"knicks"}},
	{ID: "OKC", Name: "Oklahoma City Thunder", Keywords: []string{"thunder", "oklahoma city", "okc"}},
	{ID: "ORL", Name: "Orlando Magic", Keywords: []string{"orlando magic", "magic", "orlando"}},
	{ID: "PHI", Name: "Philadelphia 76ers", Keywords: []string{"76ers", "sixers", "philadelphia"}},
	{ID: "PHX", Name: "Phoenix Suns", Keywords: []string{"suns", "phoenix"}},
	{ID: "POR", Name: "Portland Trail Blazers", Keywords: []string{"blazers", "portland"}},
	{ID: "SAC", Name: "Sacramento Kings", Keywords: []string{"sacramento kings", "kings", "sacramento"}},
	{ID: "SAS", Name: "San Antonio Spurs", Keywords: []string{"spurs", "san antonio"}},
	{ID: "TOR", Name: "Toronto Raptors", Keywords: []string{"raptors", "toronto"}},
	{ID: "UTA", Name: "Utah Jazz", Keywords: []string{"utah jazz", "jazz", "utah"}},
	{ID: "WAS", Name: "Washington Wizards", Keywords: []string{"wizards", "washington"}},
}

// IsKnown reports whether id is a registry identifier.
func IsKnown(id string) bool {
	for _, t := range Registry {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Match returns the set of team ids whose keyword list hits anywhere in the
// combined headline and body text. Each team stops at its first matching
// keyword; all teams are evaluated independently, so an article can match
// zero, one or many teams.
func Match(headline, body string) []string {
	text := strings.ToLower(headline + " " + body)

	var ids []string
	for _, team := range Registry {
		for _, kw := range team.Keywords {
			if strings.Contains(text, kw) {
				ids = append(ids, team.ID)
				break
			}
		}
	}
	return ids
}
