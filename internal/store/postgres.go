package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/adam-cott/nba7/internal/news"
)

// Postgres is the external store backend.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(connectionString string) (*Postgres, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return p, nil
}

func (p *Postgres) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id TEXT NOT NULL,
		headline TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		source_name TEXT NOT NULL,
		source_slug TEXT NOT NULL,
		url TEXT PRIMARY KEY,
		published_at TIMESTAMPTZ NOT NULL,
		image_url TEXT,
		teams TEXT[] NOT NULL DEFAULT '{}',
		sentiment_score DOUBLE PRECISION,
		sentiment_label TEXT,
		sentiment_positive INTEGER,
		sentiment_neutral INTEGER,
		sentiment_negative INTEGER,
		sentiment_source TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC);
	CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at);

	CREATE TABLE IF NOT EXISTS polls (
		id TEXT PRIMARY KEY,
		question TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS poll_options (
		poll_id TEXT NOT NULL REFERENCES polls(id),
		idx INTEGER NOT NULL,
		text TEXT NOT NULL,
		votes INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (poll_id, idx)
	);

	CREATE TABLE IF NOT EXISTS poll_votes (
		poll_id TEXT NOT NULL REFERENCES polls(id),
		voter_key TEXT NOT NULL,
		option_index INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (poll_id, voter_key)
	);

	CREATE TABLE IF NOT EXISTS article_comments (
		article_url TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_article_comments_url ON article_comments(article_url);
	`
	_, err := p.db.Exec(schema)
	return err
}

func (p *Postgres) Configured() bool { return true }

func (p *Postgres) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *Postgres) ReadNews(ctx context.Context, limit int) ([]news.Article, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT id, headline, summary, source_name, source_slug, url,
		       published_at, image_url, teams,
		       sentiment_score, sentiment_label,
		       sentiment_positive, sentiment_neutral, sentiment_negative,
		       sentiment_source, created_at
		FROM articles
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("reading news: %w", err)
	}
	defer rows.Close()

	var articles []news.Article
	for rows.Next() {
		var (
			a        news.Article
			imageURL sql.NullString
			score    sql.NullFloat64
			label    sql.NullString
			pos      sql.NullInt64
			neu      sql.NullInt64
			neg      sql.NullInt64
			src      sql.NullString
		)
		err := rows.Scan(
			&a.ID, &a.Headline, &a.Summary, &a.SourceName, &a.SourceSlug, &a.URL,
			&a.PublishedAt, &imageURL, pq.Array(&a.Teams),
			&score, &label, &pos, &neu, &neg, &src, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		a.ImageURL = imageURL.String
		if score.Valid {
			v := score.Float64
			a.SentimentScore = &v
		}
		a.SentimentLabel = label.String
		if pos.Valid && neu.Valid && neg.Valid {
			a.SentimentBreakdown = &news.SentimentBreakdown{
				Positive: int(pos.Int64),
				Neutral:  int(neu.Int64),
				Negative: int(neg.Int64),
			}
		}
		a.SentimentSource = src.String
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (p *Postgres) UpsertNews(ctx context.Context, articles []news.Article) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (
			id, headline, summary, source_name, source_slug, url,
			published_at, image_url, teams,
			sentiment_score, sentiment_label,
			sentiment_positive, sentiment_neutral, sentiment_negative,
			sentiment_source, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		ON CONFLICT (url) DO UPDATE SET
			headline = EXCLUDED.headline,
			summary = EXCLUDED.summary,
			image_url = EXCLUDED.image_url,
			teams = EXCLUDED.teams,
			sentiment_score = EXCLUDED.sentiment_score,
			sentiment_label = EXCLUDED.sentiment_label,
			sentiment_positive = EXCLUDED.sentiment_positive,
			sentiment_neutral = EXCLUDED.sentiment_neutral,
			sentiment_negative = EXCLUDED.sentiment_negative,
			sentiment_source = EXCLUDED.sentiment_source,
			created_at = NOW()
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range articles {
		var score sql.NullFloat64
		if a.SentimentScore != nil {
			score = sql.NullFloat64{Float64: *a.SentimentScore, Valid: true}
		}
		var pos, neu, neg sql.NullInt64
		if b := a.SentimentBreakdown; b != nil {
			pos = sql.NullInt64{Int64: int64(b.Positive), Valid: true}
			neu = sql.NullInt64{Int64: int64(b.Neutral), Valid: true}
			neg = sql.NullInt64{Int64: int64(b.Negative), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			a.ID, a.Headline, a.Summary, a.SourceName, a.SourceSlug, a.URL,
			a.PublishedAt, nullString(a.ImageURL), pq.Array(a.Teams),
			score, nullString(a.SentimentLabel), pos, neu, neg,
			nullString(a.SentimentSource),
		)
		if err != nil {
			return fmt.Errorf("upserting article %s: %w", a.URL, err)
		}
	}
	return tx.Commit()
}

func (p *Postgres) ReadPolls(ctx context.Context, activeOnly bool) ([]news.Poll, error) {
	query := `SELECT id, question, active, created_at FROM polls`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reading polls: %w", err)
	}
	defer rows.Close()

	var polls []news.Poll
	for rows.Next() {
		var poll news.Poll
		if err := rows.Scan(&poll.ID, &poll.Question, &poll.Active, &poll.CreatedAt); err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range polls {
		options, err := p.readPollOptions(ctx, polls[i].ID)
		if err != nil {
			return nil, err
		}
		polls[i].Options = options
	}
	return polls, nil
}

func (p *Postgres) readPollOptions(ctx context.Context, pollID string) ([]news.PollOption, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT text, votes FROM poll_options WHERE poll_id = $1 ORDER BY idx
	`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []news.PollOption
	for rows.Next() {
		var opt news.PollOption
		if err := rows.Scan(&opt.Text, &opt.Votes); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func (p *Postgres) UpdatePollOptions(ctx context.Context, pollID string, options []news.PollOption) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, opt := range options {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO poll_options (poll_id, idx, text, votes)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (poll_id, idx) DO UPDATE SET
				text = EXCLUDED.text,
				votes = EXCLUDED.votes
		`, pollID, i, opt.Text, opt.Votes)
		if err != nil {
			return fmt.Errorf("updating option %d of poll %s: %w", i, pollID, err)
		}
	}
	return tx.Commit()
}

// InsertVote relies on the (poll_id, voter_key) primary key to enforce
// at-most-one vote per voter per poll.
func (p *Postgres) InsertVote(ctx context.Context, pollID, voterKey string, optionIndex int) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO poll_votes (poll_id, voter_key, option_index)
		VALUES ($1, $2, $3)
	`, pollID, voterKey, optionIndex)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrAlreadyVoted
		}
		return fmt.Errorf("inserting vote: %w", err)
	}
	return nil
}

func (p *Postgres) ReadComments(ctx context.Context, articleURL string) ([]news.Comment, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT article_url, author, body, score, created_at
		FROM article_comments
		WHERE article_url = $1
		ORDER BY score DESC
	`, articleURL)
	if err != nil {
		return nil, fmt.Errorf("reading comments: %w", err)
	}
	defer rows.Close()

	var out []news.Comment
	for rows.Next() {
		var c news.Comment
		if err := rows.Scan(&c.ArticleURL, &c.Author, &c.Text, &c.Score, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) ReplaceComments(ctx context.Context, articleURL string, comments []news.Comment) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM article_comments WHERE article_url = $1`, articleURL); err != nil {
		return err
	}
	for _, c := range comments {
		created := c.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO article_comments (article_url, author, body, score, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, articleURL, c.Author, c.Text, c.Score, created)
		if err != nil {
			return fmt.Errorf("inserting comment: %w", err)
		}
	}
	return tx.Commit()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
