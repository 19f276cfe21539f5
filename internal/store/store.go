// Package store persists articles, polls, votes and cached comments. The
// Postgres implementation is the real backend; the memory implementation is
// the degraded mode used when no database is configured.
package store

import (
	"context"
	"errors"

	"github.com/adam-cott/nba7/internal/news"
)

var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrInvalidOption = errors.New("invalid poll option")
	ErrAlreadyVoted  = errors.New("voter already responded to this poll")
)

// Store is the narrow cache collaborator the pipeline talks to.
type Store interface {
	// Configured reports whether an external backend is attached. When
	// false, callers use the in-process fallback for news freshness.
	Configured() bool

	ReadNews(ctx context.Context, limit int) ([]news.Article, error)
	UpsertNews(ctx context.Context, articles []news.Article) error

	ReadPolls(ctx context.Context, activeOnly bool) ([]news.Poll, error)
	UpdatePollOptions(ctx context.Context, pollID string, options []news.PollOption) error
	InsertVote(ctx context.Context, pollID, voterKey string, optionIndex int) error

	ReadComments(ctx context.Context, articleURL string) ([]news.Comment, error)
	ReplaceComments(ctx context.Context, articleURL string, comments []news.Comment) error
}
