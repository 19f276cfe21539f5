// Package app sequences the pipeline: fetch, filter, dedup, sentiment,
// cache write. It is the only package that talks to every collaborator.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adam-cott/nba7/internal/cache"
	"github.com/adam-cott/nba7/internal/comments"
	"github.com/adam-cott/nba7/internal/config"
	"github.com/adam-cott/nba7/internal/dedup"
	"github.com/adam-cott/nba7/internal/filter"
	"github.com/adam-cott/nba7/internal/logger"
	"github.com/adam-cott/nba7/internal/metrics"
	"github.com/adam-cott/nba7/internal/news"
	"github.com/adam-cott/nba7/internal/quality"
	"github.com/adam-cott/nba7/internal/ratelimit"
	"github.com/adam-cott/nba7/internal/sentiment"
	"github.com/adam-cott/nba7/internal/store"
)

// FeedFetcher retrieves and normalizes all configured sources.
type FeedFetcher interface {
	FetchAll(ctx context.Context, sources []config.Source) []news.Article
}

// NewsResult is what the query surface returns for a news read.
type NewsResult struct {
	Items       []news.Article `json:"items"`
	Cached      bool           `json:"cached"`
	LastUpdated time.Time      `json:"lastUpdated"`
	Total       int            `json:"total"`
}

type App struct {
	cfg      *config.Config
	sources  []config.Source
	fetcher  FeedFetcher
	store    store.Store
	fallback *cache.NewsCache
	analyzer *sentiment.Analyzer
	comments comments.Source
	limiter  *ratelimit.CommentLimiter
	log      *slog.Logger
}

func New(cfg *config.Config, sources []config.Source, fetcher FeedFetcher, st store.Store, analyzer *sentiment.Analyzer, commentSrc comments.Source) *App {
	return &App{
		cfg:      cfg,
		sources:  sources,
		fetcher:  fetcher,
		store:    st,
		fallback: cache.New(cfg.NewsTTL, nil),
		analyzer: analyzer,
		comments: commentSrc,
		limiter:  ratelimit.NewCommentLimiter(cfg.CommentDelay, cfg.CommentDailyLimit),
		log:      logger.With("app"),
	}
}

// GetNews serves the read path. Fresh enough cached data wins unless the
// caller forces a refresh; a refresh that cannot be persisted is still
// returned to the caller.
func (a *App) GetNews(ctx context.Context, teamFilter string, forceRefresh bool) (NewsResult, error) {
	if !forceRefresh {
		if result, ok := a.readCached(ctx, teamFilter); ok {
			metrics.Global.IncrementCacheHits()
			return result, nil
		}
		metrics.Global.IncrementCacheMisses()
	}

	items := a.refresh(ctx)

	if a.store.Configured() {
		if err := a.store.UpsertNews(ctx, items); err != nil {
			// The freshly computed batch is still good; only persistence failed.
			a.log.Error("persisting news batch failed", "error", err)
		}
	}
	a.fallback.Put(items)

	now := time.Now()
	for i := range items {
		items[i].CreatedAt = now
	}

	filtered := filterByTeam(items, teamFilter)
	return NewsResult{
		Items:       filtered,
		Cached:      false,
		LastUpdated: now,
		Total:       len(filtered),
	}, nil
}

// readCached returns stored data when it is younger than the news TTL.
// A store read failure is treated as a stale cache, never as a hard error.
func (a *App) readCached(ctx context.Context, teamFilter string) (NewsResult, bool) {
	if a.store.Configured() {
		items, err := a.store.ReadNews(ctx, a.cfg.NewsLimit)
		if err != nil {
			a.log.Warn("cache read failed, refreshing", "error", err)
			return NewsResult{}, false
		}
		if len(items) == 0 {
			return NewsResult{}, false
		}
		newest := items[0].CreatedAt
		for _, it := range items {
			if it.CreatedAt.After(newest) {
				newest = it.CreatedAt
			}
		}
		if time.Since(newest) > a.cfg.NewsTTL {
			return NewsResult{}, false
		}
		filtered := filterByTeam(items, teamFilter)
		return NewsResult{
			Items:       filtered,
			Cached:      true,
			LastUpdated: newest,
			Total:       len(filtered),
		}, true
	}

	items, fetchedAt, ok := a.fallback.Get()
	if !ok {
		return NewsResult{}, false
	}
	filtered := filterByTeam(items, teamFilter)
	return NewsResult{
		Items:       filtered,
		Cached:      true,
		LastUpdated: fetchedAt,
		Total:       len(filtered),
	}, true
}

// refresh runs the full pipeline. Individual source and enrichment failures
// are already isolated below this point, so refresh itself cannot fail
// short of a programming error.
func (a *App) refresh(ctx context.Context) []news.Article {
	started := time.Now()
	defer func() {
		metrics.Global.RecordRefresh(time.Since(started))
	}()

	raw := a.fetcher.FetchAll(ctx, a.sources)
	metrics.Global.AddFetched(len(raw))

	kept := make([]news.Article, 0, len(raw))
	for _, article := range raw {
		if filter.IsIrrelevant(article) || filter.IsPromotional(article) {
			continue
		}
		kept = append(kept, article)
	}
	metrics.Global.AddFiltered(len(raw) - len(kept))

	deduped := dedup.Deduplicate(kept)
	metrics.Global.AddDuplicates(len(kept) - len(deduped))
	a.log.Info("pipeline refresh",
		"fetched", len(raw), "kept", len(kept), "unique", len(deduped))

	now := time.Now()
	for i := range deduped {
		a.annotateSentiment(ctx, &deduped[i])
		a.log.Debug("scored article",
			"headline", deduped[i].Headline,
			"quality", quality.Score(deduped[i], now),
			"sentiment", deduped[i].SentimentLabel)
	}
	return deduped
}

// annotateSentiment attaches a sentiment verdict to the article. Comment
// texts are preferred; with none usable the headline is scored directly,
// and a scorer failure yields the neutral default. The provenance tag is
// the only place this degradation is visible.
func (a *App) annotateSentiment(ctx context.Context, article *news.Article) {
	texts := a.commentTexts(ctx, article)

	var (
		result sentiment.Result
		source string
		err    error
	)
	if len(texts) > 0 {
		result, err = a.analyzer.ScoreTexts(texts)
		source = news.SentimentFromComments
	} else {
		result, err = a.analyzer.ScoreText(article.Headline + ". " + article.Summary)
		source = news.SentimentFromHeadline
	}
	if err != nil {
		a.log.Warn("sentiment scoring failed", "url", article.URL, "error", err)
		metrics.Global.IncrementSentimentFallbacks()
		result = sentiment.Fallback()
		source = news.SentimentFallback
	}

	score := result.Compound
	article.SentimentScore = &score
	article.SentimentLabel = result.Label
	breakdown := result.Breakdown
	article.SentimentBreakdown = &breakdown
	article.SentimentSource = source
}

// commentTexts returns usable comment bodies for the article: cached ones
// first, then a rate-limited search against the external comment source.
// Every failure path returns nil, which sends the caller down the headline
// fallback.
func (a *App) commentTexts(ctx context.Context, article *news.Article) []string {
	cached, err := a.store.ReadComments(ctx, article.URL)
	if err != nil {
		a.log.Warn("comment cache read failed", "url", article.URL, "error", err)
	}
	if len(cached) > 0 {
		return commentBodies(cached)
	}

	if a.comments == nil {
		return nil
	}
	if err := a.limiter.Acquire(ctx); err != nil {
		a.log.Warn("comment lookup throttled", "error", err)
		return nil
	}

	query := comments.SearchTerms(article.Headline, 4)
	found, err := a.comments.Search(ctx, query)
	if err != nil {
		a.log.Warn("comment search failed", "query", query, "error", err)
		return nil
	}
	if len(found) == 0 {
		return nil
	}

	for i := range found {
		found[i].ArticleURL = article.URL
	}
	if err := a.store.ReplaceComments(ctx, article.URL, found); err != nil {
		a.log.Warn("comment cache write failed", "url", article.URL, "error", err)
	}
	return commentBodies(found)
}

func commentBodies(cs []news.Comment) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Text)
	}
	return out
}

func filterByTeam(items []news.Article, teamID string) []news.Article {
	if teamID == "" {
		return items
	}
	out := make([]news.Article, 0, len(items))
	for _, it := range items {
		if it.HasTeam(teamID) {
			out = append(out, it)
		}
	}
	return out
}

// GetPolls lists active polls.
func (a *App) GetPolls(ctx context.Context) ([]news.Poll, error) {
	polls, err := a.store.ReadPolls(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("reading polls: %w", err)
	}
	return polls, nil
}

// Vote records one response and bumps the chosen option's counter. The
// store enforces the one-vote-per-voter constraint.
func (a *App) Vote(ctx context.Context, pollID, voterKey string, optionIndex int) (news.Poll, error) {
	polls, err := a.store.ReadPolls(ctx, false)
	if err != nil {
		return news.Poll{}, fmt.Errorf("reading polls: %w", err)
	}

	var poll *news.Poll
	for i := range polls {
		if polls[i].ID == pollID {
			poll = &polls[i]
			break
		}
	}
	if poll == nil {
		return news.Poll{}, store.ErrPollNotFound
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return news.Poll{}, store.ErrInvalidOption
	}

	if err := a.store.InsertVote(ctx, pollID, voterKey, optionIndex); err != nil {
		return news.Poll{}, err
	}

	poll.Options[optionIndex].Votes++
	if err := a.store.UpdatePollOptions(ctx, pollID, poll.Options); err != nil {
		return news.Poll{}, fmt.Errorf("updating poll counters: %w", err)
	}
	metrics.Global.IncrementVotes()
	return *poll, nil
}
