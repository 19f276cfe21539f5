package dedup

import (
	"testing"
	"time"

	"github.com/adam-cott/nba7/internal/news"
)

var base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func article(url, headline, summary string, published time.Time) news.Article {
	return news.Article{
		URL:         url,
		Headline:    headline,
		Summary:     summary,
		PublishedAt: published,
	}
}

func urls(articles []news.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.URL)
	}
	return out
}

func TestIdenticalStoriesMerge(t *testing.T) {
	got := Deduplicate([]news.Article{
		article("a", "Lakers trade for veteran center", "", base),
		article("b", "Lakers trade for veteran center", "", base.Add(30*time.Minute)),
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 survivor, got %v", urls(got))
	}
	if got[0].URL != "b" {
		t.Errorf("newer article must survive, got %s", got[0].URL)
	}
}

func TestWindowBoundary(t *testing.T) {
	headline := "Lakers trade for veteran center"

	outside := Deduplicate([]news.Article{
		article("a", headline, "", base),
		article("b", headline, "", base.Add(Window+time.Second)),
	})
	if len(outside) != 2 {
		t.Errorf("pair outside the window must not merge, got %v", urls(outside))
	}

	inside := Deduplicate([]news.Article{
		article("a", headline, "", base),
		article("b", headline, "", base.Add(Window-time.Minute)),
	})
	if len(inside) != 1 {
		t.Errorf("pair inside the window must merge, got %v", urls(inside))
	}
}

func TestSharedEntitiesMergeDespiteLowSimilarity(t *testing.T) {
	a := article("a", "Nikola Jokic and Jamal Murray lead Denver past Phoenix", "", base)
	b := article("b", "Jokic, Murray combine for 70 in rout", "", base.Add(time.Hour))

	if sim := Jaccard(ContentWords(a.Headline), ContentWords(b.Headline)); sim >= SimilarityThreshold {
		t.Fatalf("test premise broken: similarity %.2f already above threshold", sim)
	}

	got := Deduplicate([]news.Article{a, b})
	if len(got) != 1 {
		t.Fatalf("two shared names must merge the pair, got %v", urls(got))
	}
	if got[0].URL != "b" {
		t.Errorf("newer article must survive, got %s", got[0].URL)
	}
}

func TestEmptyWordSetsNeverMerge(t *testing.T) {
	// Headlines made of stop words only produce empty signatures; an empty
	// signature must never look similar to another empty signature.
	got := Deduplicate([]news.Article{
		article("a", "It is on", "", base),
		article("b", "He was at", "", base.Add(time.Minute)),
	})
	if len(got) != 2 {
		t.Errorf("empty word-sets must not merge, got %v", urls(got))
	}
}

func TestNewestOfGroupSurvives(t *testing.T) {
	headline := "Warriors sign guard to two-way deal"
	got := Deduplicate([]news.Article{
		article("a", headline, "", base),
		article("b", headline, "", base.Add(30*time.Minute)),
		article("c", headline, "", base.Add(45*time.Minute)),
	})
	if len(got) != 1 || got[0].URL != "c" {
		t.Errorf("expected only the newest to survive, got %v", urls(got))
	}
}

func TestMixedBatch(t *testing.T) {
	got := Deduplicate([]news.Article{
		article("dup-old", "Celtics rout Bucks in Boston", "", base),
		article("dup-new", "Celtics rout Bucks in Boston", "", base.Add(30*time.Minute)),
		article("other", "Draft lottery date announced by league office", "", base.Add(11*time.Hour)),
	})
	want := []string{"other", "dup-new"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, urls(got))
	}
	for i, u := range want {
		if got[i].URL != u {
			t.Errorf("survivor %d: expected %s, got %s", i, u, got[i].URL)
		}
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	in := []news.Article{
		article("a", "Celtics rout Bucks in Boston", "", base),
		article("b", "Celtics rout Bucks in Boston", "", base.Add(time.Hour)),
		article("c", "Suns fire head coach", "", base.Add(2*time.Hour)),
	}
	once := Deduplicate(in)
	twice := Deduplicate(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed the result: %v vs %v", urls(once), urls(twice))
	}
	for i := range once {
		if once[i].URL != twice[i].URL {
			t.Errorf("second pass reordered survivors: %v vs %v", urls(once), urls(twice))
		}
	}
}

func TestInputOrderDoesNotChangeSurvivors(t *testing.T) {
	in := []news.Article{
		article("a", "Celtics rout Bucks in Boston", "", base),
		article("b", "Celtics rout Bucks in Boston", "", base.Add(time.Hour)),
		article("c", "Suns fire head coach", "", base.Add(2*time.Hour)),
	}
	reversed := []news.Article{in[2], in[1], in[0]}

	forward := urls(Deduplicate(in))
	backward := urls(Deduplicate(reversed))
	if len(forward) != len(backward) {
		t.Fatalf("survivor count differs: %v vs %v", forward, backward)
	}
	for i := range forward {
		if forward[i] != backward[i] {
			t.Errorf("survivors differ by input order: %v vs %v", forward, backward)
		}
	}
}

func TestSurvivorsSortedNewestFirst(t *testing.T) {
	got := Deduplicate([]news.Article{
		article("a", "Suns fire head coach", "", base),
		article("b", "Draft lottery date announced", "", base.Add(2*time.Hour)),
		article("c", "Knicks extend forward", "", base.Add(time.Hour)),
	})
	for i := 1; i < len(got); i++ {
		if got[i].PublishedAt.After(got[i-1].PublishedAt) {
			t.Fatalf("not sorted newest first: %v", urls(got))
		}
	}
}

func TestStem(t *testing.T) {
	cases := map[string]string{
		"trades":   "trad",
		"passes":   "pass",
		"scoring":  "scor",
		"payments": "pay",
		"news":     "new",
		"is":       "is",
		"ring":     "ring",
	}
	for in, want := range cases {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEntityWords(t *testing.T) {
	got := EntityWords("The Lakers beat Boston as LeBron James scores 40")
	for _, want := range []string{"lakers", "boston", "lebron", "james"} {
		if !got[want] {
			t.Errorf("expected entity %q in %v", want, got)
		}
	}
	if got["the"] {
		t.Error("stop word must not become an entity")
	}
	if got["beat"] || got["scores"] {
		t.Error("lowercase words must not become entities")
	}
}
