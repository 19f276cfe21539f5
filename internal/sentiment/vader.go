package sentiment

import "github.com/jonreiter/govader"

// VaderScorer backs TextPolarityScorer with the VADER lexicon analyzer.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *VaderScorer) Score(text string) (float64, error) {
	return s.analyzer.PolarityScores(text).Compound, nil
}
