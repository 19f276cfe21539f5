package store

import (
	"context"
	"sync"
	"time"

	"github.com/adam-cott/nba7/internal/news"
)

// Memory is the degraded in-process backend used when no database is
// configured. Polls and votes live in maps; comments are not retained.
type Memory struct {
	mu       sync.Mutex
	articles []news.Article
	polls    map[string]*news.Poll
	votes    map[string]map[string]int // poll id -> voter key -> option index
}

func NewMemory() *Memory {
	return &Memory{
		polls: make(map[string]*news.Poll),
		votes: make(map[string]map[string]int),
	}
}

func (m *Memory) Configured() bool { return false }

func (m *Memory) ReadNews(_ context.Context, limit int) ([]news.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.articles)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]news.Article, n)
	copy(out, m.articles[:n])
	return out, nil
}

func (m *Memory) UpsertNews(_ context.Context, articles []news.Article) error {
	now := time.Now()
	batch := make([]news.Article, len(articles))
	copy(batch, articles)
	for i := range batch {
		batch[i].CreatedAt = now
	}

	m.mu.Lock()
	m.articles = batch
	m.mu.Unlock()
	return nil
}

// SeedPoll installs a poll. Not part of the Store interface; used at boot
// and in tests when no database holds the polls.
func (m *Memory) SeedPoll(poll news.Poll) {
	m.mu.Lock()
	copied := poll
	copied.Options = append([]news.PollOption(nil), poll.Options...)
	m.polls[poll.ID] = &copied
	m.mu.Unlock()
}

func (m *Memory) ReadPolls(_ context.Context, activeOnly bool) ([]news.Poll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]news.Poll, 0, len(m.polls))
	for _, p := range m.polls {
		if activeOnly && !p.Active {
			continue
		}
		copied := *p
		copied.Options = append([]news.PollOption(nil), p.Options...)
		out = append(out, copied)
	}
	return out, nil
}

func (m *Memory) UpdatePollOptions(_ context.Context, pollID string, options []news.PollOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	poll, ok := m.polls[pollID]
	if !ok {
		return ErrPollNotFound
	}
	poll.Options = append([]news.PollOption(nil), options...)
	return nil
}

func (m *Memory) InsertVote(_ context.Context, pollID, voterKey string, optionIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.polls[pollID]; !ok {
		return ErrPollNotFound
	}
	voters := m.votes[pollID]
	if voters == nil {
		voters = make(map[string]int)
		m.votes[pollID] = voters
	}
	if _, voted := voters[voterKey]; voted {
		return ErrAlreadyVoted
	}
	voters[voterKey] = optionIndex
	return nil
}

func (m *Memory) ReadComments(_ context.Context, _ string) ([]news.Comment, error) {
	return nil, nil
}

func (m *Memory) ReplaceComments(_ context.Context, _ string, _ []news.Comment) error {
	return nil
}
