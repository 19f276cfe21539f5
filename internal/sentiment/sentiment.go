// Package sentiment turns short texts into a label, a compound score and a
// percentage breakdown that always sums to exactly 100.
package sentiment

import (
	"math"
	"strings"

	"github.com/adam-cott/nba7/internal/news"
)

// Label cutoffs on the compound score.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// TextPolarityScorer is the pluggable text → compound score capability.
// Implementations return a value in [-1, 1].
type TextPolarityScorer interface {
	Score(text string) (float64, error)
}

// Result is one sentiment verdict. Breakdown values sum to exactly 100.
type Result struct {
	Label     string
	Compound  float64
	Breakdown news.SentimentBreakdown
}

// Analyzer aggregates scorer output over one or many texts.
type Analyzer struct {
	scorer TextPolarityScorer
}

func NewAnalyzer(scorer TextPolarityScorer) *Analyzer {
	return &Analyzer{scorer: scorer}
}

// Label maps a compound score to its label.
func Label(compound float64) string {
	switch {
	case compound >= positiveThreshold:
		return news.LabelPositive
	case compound <= negativeThreshold:
		return news.LabelNegative
	default:
		return news.LabelNeutral
	}
}

// Fallback is the documented safe default when the scoring capability
// itself fails: neutral, zero score, an even three-way split.
func Fallback() Result {
	return Result{
		Label:     news.LabelNeutral,
		Compound:  0,
		Breakdown: news.SentimentBreakdown{Positive: 33, Neutral: 34, Negative: 33},
	}
}

// ScoreTexts scores each text independently and aggregates. The overall
// label comes from the average of the per-text compound scores, not from a
// majority vote of labels; the breakdown is the label-count distribution
// normalized to 100. An empty or all-blank input yields a neutral result
// with a 100% neutral breakdown, not an error.
func (an *Analyzer) ScoreTexts(texts []string) (Result, error) {
	var usable []string
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return Result{
			Label:     news.LabelNeutral,
			Breakdown: news.SentimentBreakdown{Neutral: 100},
		}, nil
	}

	var sum float64
	var posCount, neuCount, negCount int
	for _, t := range usable {
		compound, err := an.scorer.Score(t)
		if err != nil {
			return Result{}, err
		}
		sum += compound
		switch Label(compound) {
		case news.LabelPositive:
			posCount++
		case news.LabelNegative:
			negCount++
		default:
			neuCount++
		}
	}

	total := float64(len(usable))
	avg := sum / total
	return Result{
		Label:    Label(avg),
		Compound: avg,
		Breakdown: RoundBreakdown(
			float64(posCount)/total*100,
			float64(neuCount)/total*100,
			float64(negCount)/total*100,
		),
	}, nil
}

// ScoreText scores a single text (the headline-only path). With no comment
// distribution to report, the breakdown is synthesized from the compound
// score through a monotonic mapping: the positive share grows with the
// score, the negative share shrinks, and the neutral share peaks at zero.
func (an *Analyzer) ScoreText(text string) (Result, error) {
	compound, err := an.scorer.Score(text)
	if err != nil {
		return Result{}, err
	}

	lean := (1 + compound) / 2
	neutralShare := (1 - math.Abs(compound)) / 2
	return Result{
		Label:    Label(compound),
		Compound: compound,
		Breakdown: RoundBreakdown(
			(1-neutralShare)*lean*100,
			neutralShare*100,
			(1-neutralShare)*(1-lean)*100,
		),
	}, nil
}

// RoundBreakdown rounds each raw percentage independently, then settles any
// remainder on the largest of the three so the output sums to exactly 100.
// Every emitted breakdown passes through here.
func RoundBreakdown(pos, neu, neg float64) news.SentimentBreakdown {
	rounded := [3]int{
		int(math.Round(pos)),
		int(math.Round(neu)),
		int(math.Round(neg)),
	}

	sum := rounded[0] + rounded[1] + rounded[2]
	if diff := 100 - sum; diff != 0 {
		largest := 0
		for i := 1; i < 3; i++ {
			if rounded[i] > rounded[largest] {
				largest = i
			}
		}
		rounded[largest] += diff
	}

	return news.SentimentBreakdown{
		Positive: rounded[0],
		Neutral:  rounded[1],
		Negative: rounded[2],
	}
}
