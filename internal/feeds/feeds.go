// Package feeds retrieves raw items from the configured RSS sources and
// normalizes them into the common article shape.
package feeds

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/adam-cott/nba7/internal/config"
	"github.com/adam-cott/nba7/internal/news"
	"github.com/adam-cott/nba7/internal/retry"
	"github.com/adam-cott/nba7/internal/teams"
)

const (
	summaryMaxRunes  = 500
	headlineFallback = "Untitled"
)

// Fetcher pulls and normalizes all configured sources.
type Fetcher struct {
	parser   *gofeed.Parser
	enricher *ImageEnricher
}

func NewFetcher(ogTimeout time.Duration) *Fetcher {
	return &Fetcher{
		parser:   gofeed.NewParser(),
		enricher: NewImageEnricher(ogTimeout),
	}
}

// FetchAll retrieves every source concurrently. A failing source is logged
// and contributes nothing; it never fails the batch. Articles missing an
// image get a best-effort og:image enrichment pass before returning.
func (f *Fetcher) FetchAll(ctx context.Context, sources []config.Source) []news.Article {
	var (
		mu  sync.Mutex
		all []news.Article
		wg  sync.WaitGroup
	)

	for _, src := range sources {
		wg.Add(1)
		go func(src config.Source) {
			defer wg.Done()
			articles, err := f.fetchSource(ctx, src)
			if err != nil {
				log.Printf("feed %s unavailable: %v", src.Slug, err)
				return
			}
			log.Printf("loaded %d items from %s", len(articles), src.Slug)
			mu.Lock()
			all = append(all, articles...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	f.enricher.Enrich(ctx, all)
	return all
}

func (f *Fetcher) fetchSource(ctx context.Context, src config.Source) ([]news.Article, error) {
	var feed *gofeed.Feed
	err := retry.Do(ctx, retry.Config{MaxAttempts: 2, Delay: time.Second}, func() error {
		var parseErr error
		feed, parseErr = f.parser.ParseURLWithContext(src.URL, ctx)
		return parseErr
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	articles := make([]news.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		articles = append(articles, normalize(item, src, now))
	}
	return articles, nil
}

// normalize maps one raw feed entry to the common article shape. Every
// field has a fallback so a sparse feed still yields a usable record.
func normalize(item *gofeed.Item, src config.Source, now time.Time) news.Article {
	headline := strings.TrimSpace(item.Title)
	if headline == "" {
		headline = headlineFallback
	}

	snippet := item.Description
	if snippet == "" {
		snippet = item.Content
	}
	summary := truncate(stripHTML(snippet), summaryMaxRunes)

	published := now
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	return news.Article{
		ID:          uuid.NewString(),
		Headline:    headline,
		Summary:     summary,
		SourceName:  src.Name,
		SourceSlug:  src.Slug,
		URL:         item.Link,
		PublishedAt: published,
		ImageURL:    imageFromItem(item),
		Teams:       teams.Match(headline, summary),
	}
}

var imgTagPattern = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)

// imageFromItem tries the feed's image fields in priority order, then scans
// the raw entry markup for an image reference. Empty when nothing is found.
func imageFromItem(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	if media, ok := item.Extensions["media"]; ok {
		for _, key := range []string{"content", "thumbnail"} {
			for _, ext := range media[key] {
				if u := ext.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}
	if m := imgTagPattern.FindStringSubmatch(item.Content + " " + item.Description); m != nil {
		return m[1]
	}
	return ""
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
