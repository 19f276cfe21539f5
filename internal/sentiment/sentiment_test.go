package sentiment

import (
	"errors"
	"testing"

	"github.com/adam-cott/nba7/internal/news"
)

type stubScorer struct {
	scores map[string]float64
	err    error
}

func (s stubScorer) Score(text string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[text], nil
}

func TestLabelThresholds(t *testing.T) {
	cases := []struct {
		compound float64
		want     string
	}{
		{0.05, news.LabelPositive},
		{0.8, news.LabelPositive},
		{-0.05, news.LabelNegative},
		{-0.8, news.LabelNegative},
		{0.049, news.LabelNeutral},
		{-0.049, news.LabelNeutral},
		{0, news.LabelNeutral},
	}
	for _, tc := range cases {
		if got := Label(tc.compound); got != tc.want {
			t.Errorf("Label(%v) = %s, want %s", tc.compound, got, tc.want)
		}
	}
}

func TestScoreTextsBreakdownFromLabelCounts(t *testing.T) {
	an := NewAnalyzer(stubScorer{scores: map[string]float64{
		"great game": 0.8, "love this team": 0.6, "awful loss": -0.9,
	}})

	got, err := an.ScoreTexts([]string{"great game", "love this team", "awful loss"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != news.LabelPositive {
		t.Errorf("label = %s, want positive", got.Label)
	}
	want := news.SentimentBreakdown{Positive: 67, Neutral: 0, Negative: 33}
	if got.Breakdown != want {
		t.Errorf("breakdown = %+v, want %+v", got.Breakdown, want)
	}
}

func TestScoreTextsLabelFromAverageNotMajority(t *testing.T) {
	// Two mildly negative comments, one strongly positive. The label follows
	// the average compound; the breakdown still reports the label counts.
	an := NewAnalyzer(stubScorer{scores: map[string]float64{
		"a": 0.9, "b": -0.06, "c": -0.06,
	}})

	got, err := an.ScoreTexts([]string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != news.LabelPositive {
		t.Errorf("label = %s, want positive from average", got.Label)
	}
	want := news.SentimentBreakdown{Positive: 33, Neutral: 0, Negative: 67}
	if got.Breakdown != want {
		t.Errorf("breakdown = %+v, want %+v", got.Breakdown, want)
	}
}

func TestScoreTextsAllBlank(t *testing.T) {
	an := NewAnalyzer(stubScorer{})

	got, err := an.ScoreTexts([]string{"", "   ", "\n"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != news.LabelNeutral || got.Compound != 0 {
		t.Errorf("blank input must yield a zero neutral result, got %+v", got)
	}
	want := news.SentimentBreakdown{Neutral: 100}
	if got.Breakdown != want {
		t.Errorf("breakdown = %+v, want %+v", got.Breakdown, want)
	}
}

func TestScoreTextsPropagatesScorerError(t *testing.T) {
	scorerErr := errors.New("lexicon unavailable")
	an := NewAnalyzer(stubScorer{err: scorerErr})

	if _, err := an.ScoreTexts([]string{"anything"}); !errors.Is(err, scorerErr) {
		t.Errorf("expected scorer error to surface, got %v", err)
	}
	if _, err := an.ScoreText("anything"); !errors.Is(err, scorerErr) {
		t.Errorf("expected scorer error to surface, got %v", err)
	}
}

func TestScoreTextSyntheticBreakdown(t *testing.T) {
	cases := []struct {
		compound float64
		label    string
		want     news.SentimentBreakdown
	}{
		{0, news.LabelNeutral, news.SentimentBreakdown{Positive: 25, Neutral: 50, Negative: 25}},
		{1, news.LabelPositive, news.SentimentBreakdown{Positive: 100, Neutral: 0, Negative: 0}},
		{-1, news.LabelNegative, news.SentimentBreakdown{Positive: 0, Neutral: 0, Negative: 100}},
	}
	for _, tc := range cases {
		an := NewAnalyzer(stubScorer{scores: map[string]float64{"headline": tc.compound}})
		got, err := an.ScoreText("headline")
		if err != nil {
			t.Fatal(err)
		}
		if got.Label != tc.label {
			t.Errorf("compound %v: label = %s, want %s", tc.compound, got.Label, tc.label)
		}
		if got.Breakdown != tc.want {
			t.Errorf("compound %v: breakdown = %+v, want %+v", tc.compound, got.Breakdown, tc.want)
		}
	}
}

func TestScoreTextMonotonicAndComplete(t *testing.T) {
	prevPositive := -1
	for c := -1.0; c <= 1.0; c += 0.1 {
		an := NewAnalyzer(stubScorer{scores: map[string]float64{"h": c}})
		got, err := an.ScoreText("h")
		if err != nil {
			t.Fatal(err)
		}
		b := got.Breakdown
		if b.Positive+b.Neutral+b.Negative != 100 {
			t.Fatalf("compound %.1f: breakdown %+v does not sum to 100", c, b)
		}
		if b.Positive < 0 || b.Neutral < 0 || b.Negative < 0 {
			t.Fatalf("compound %.1f: negative share in %+v", c, b)
		}
		if b.Positive < prevPositive {
			t.Errorf("positive share must not shrink as the score rises: %.1f -> %d", c, b.Positive)
		}
		prevPositive = b.Positive
	}
}

func TestRoundBreakdownAlwaysSums(t *testing.T) {
	for i := 0; i <= 100; i++ {
		for j := 0; j <= 100-i; j++ {
			pos := float64(i) + 0.3333
			neu := float64(j) + 0.3333
			neg := 100 - pos - neu
			if neg < 0 {
				continue
			}
			b := RoundBreakdown(pos, neu, neg)
			if b.Positive+b.Neutral+b.Negative != 100 {
				t.Fatalf("RoundBreakdown(%v, %v, %v) = %+v, sum != 100", pos, neu, neg, b)
			}
		}
	}
}

func TestRoundBreakdownRemainderOnLargest(t *testing.T) {
	got := RoundBreakdown(33.3333, 33.3333, 33.3334)
	want := news.SentimentBreakdown{Positive: 34, Neutral: 33, Negative: 33}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFallback(t *testing.T) {
	got := Fallback()
	if got.Label != news.LabelNeutral || got.Compound != 0 {
		t.Errorf("fallback must be neutral and zero, got %+v", got)
	}
	if sum := got.Breakdown.Positive + got.Breakdown.Neutral + got.Breakdown.Negative; sum != 100 {
		t.Errorf("fallback breakdown sums to %d, want 100", sum)
	}
}
