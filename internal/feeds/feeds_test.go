package feeds

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/adam-cott/nba7/internal/config"
)

var testSource = config.Source{Name: "ESPN NBA", Slug: "espn-nba", URL: "https://example.com/rss"}

func TestNormalize(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	published := now.Add(-2 * time.Hour)

	item := &gofeed.Item{
		Title:           "  Lakers rally past Warriors  ",
		Description:     "<p>LeBron James scored <b>40</b> in the comeback.</p>",
		Link:            "https://example.com/story",
		PublishedParsed: &published,
	}

	got := normalize(item, testSource, now)

	if got.ID == "" {
		t.Error("expected a generated id")
	}
	if got.Headline != "Lakers rally past Warriors" {
		t.Errorf("headline = %q", got.Headline)
	}
	if got.Summary != "LeBron James scored 40 in the comeback." {
		t.Errorf("summary = %q", got.Summary)
	}
	if got.SourceSlug != "espn-nba" || got.SourceName != "ESPN NBA" {
		t.Errorf("source fields = %q/%q", got.SourceSlug, got.SourceName)
	}
	if !got.PublishedAt.Equal(published) {
		t.Errorf("published = %v, want %v", got.PublishedAt, published)
	}
	if len(got.Teams) == 0 {
		t.Error("expected team classification from the headline")
	}
}

func TestNormalizeFallbacks(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	got := normalize(&gofeed.Item{}, testSource, now)

	if got.Headline != "Untitled" {
		t.Errorf("headline fallback = %q", got.Headline)
	}
	if got.Summary != "" {
		t.Errorf("summary = %q, want empty", got.Summary)
	}
	if !got.PublishedAt.Equal(now) {
		t.Errorf("published fallback = %v, want fetch time", got.PublishedAt)
	}
}

func TestNormalizeSummaryTruncated(t *testing.T) {
	long := strings.Repeat("word ", 200)
	got := normalize(&gofeed.Item{Title: "t", Description: long}, testSource, time.Now())

	if n := len([]rune(got.Summary)); n != summaryMaxRunes {
		t.Errorf("summary length = %d, want %d", n, summaryMaxRunes)
	}
	if !strings.HasSuffix(got.Summary, "...") {
		t.Error("truncated summary must end with ellipsis")
	}
}

func TestImageFromItemPriority(t *testing.T) {
	withFeedImage := &gofeed.Item{
		Image: &gofeed.Image{URL: "https://img.example.com/feed.jpg"},
		Enclosures: []*gofeed.Enclosure{
			{URL: "https://img.example.com/enclosure.jpg", Type: "image/jpeg"},
		},
	}
	if got := imageFromItem(withFeedImage); got != "https://img.example.com/feed.jpg" {
		t.Errorf("feed image must win, got %q", got)
	}

	withEnclosure := &gofeed.Item{
		Enclosures: []*gofeed.Enclosure{
			{URL: "https://example.com/audio.mp3", Type: "audio/mpeg"},
			{URL: "https://img.example.com/enclosure.jpg", Type: "image/jpeg"},
		},
	}
	if got := imageFromItem(withEnclosure); got != "https://img.example.com/enclosure.jpg" {
		t.Errorf("expected the image enclosure, got %q", got)
	}

	withMedia := &gofeed.Item{
		Extensions: ext.Extensions{
			"media": {
				"thumbnail": []ext.Extension{
					{Attrs: map[string]string{"url": "https://img.example.com/thumb.jpg"}},
				},
			},
		},
	}
	if got := imageFromItem(withMedia); got != "https://img.example.com/thumb.jpg" {
		t.Errorf("expected the media thumbnail, got %q", got)
	}

	withInlineImg := &gofeed.Item{
		Content: `<p>Recap.</p><img src="https://img.example.com/inline.jpg" alt="">`,
	}
	if got := imageFromItem(withInlineImg); got != "https://img.example.com/inline.jpg" {
		t.Errorf("expected the inline image, got %q", got)
	}

	if got := imageFromItem(&gofeed.Item{}); got != "" {
		t.Errorf("expected empty image, got %q", got)
	}
}

func TestStripHTML(t *testing.T) {
	in := "<p>Hello   <b>world</b></p>\n<div>again</div>"
	if got := stripHTML(in); got != "Hello world again" {
		t.Errorf("stripHTML = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("abcdefghij", 8); got != "abcde..." {
		t.Errorf("truncate = %q", got)
	}
}
