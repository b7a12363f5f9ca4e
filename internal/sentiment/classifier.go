// Package sentiment provides a small lexicon-based polarity classifier.
// It stands in for an external classification service and satisfies the
// same contract: text in, one of three labels out, never an error.
package sentiment

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/Sudisha-pv/feedback-service/internal/domain"
)

// Polarity thresholds. Scores above positiveThreshold classify as
// positive, below negativeThreshold as negative, everything else neutral.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// lexicon maps lowercase words to polarity in [-1, 1].
var lexicon = map[string]float64{
	"amazing":       0.9,
	"awesome":       0.9,
	"excellent":     0.9,
	"fantastic":     0.9,
	"perfect":       0.9,
	"love":          0.8,
	"loved":         0.8,
	"great":         0.8,
	"wonderful":     0.8,
	"best":          0.8,
	"good":          0.6,
	"helpful":       0.6,
	"nice":          0.5,
	"easy":          0.4,
	"fast":          0.4,
	"useful":        0.4,
	"fine":          0.2,
	"okay":          0.1,
	"ok":            0.1,
	"slow":          -0.3,
	"confusing":     -0.4,
	"difficult":     -0.4,
	"expensive":     -0.4,
	"bad":           -0.6,
	"poor":          -0.6,
	"buggy":         -0.6,
	"broken":        -0.7,
	"useless":       -0.7,
	"disappointing": -0.7,
	"hate":          -0.8,
	"hated":         -0.8,
	"awful":         -0.9,
	"horrible":      -0.9,
	"terrible":      -0.9,
	"worst":         -0.9,
}

// negations flip the polarity of the following lexicon word.
var negations = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"nothing": true,
	"don't":   true,
	"doesn't": true,
	"didn't":  true,
	"isn't":   true,
	"wasn't":  true,
	"won't":   true,
	"can't":   true,
}

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify labels text as positive, negative, or neutral. It never fails:
// blank text, unknown vocabulary, and internal panics all yield neutral.
func (c *Classifier) Classify(text string) (label domain.Sentiment) {
	label = domain.SentimentNeutral

	defer func() {
		if r := recover(); r != nil {
			slog.Error("sentiment classification panicked", "panic", r)
			label = domain.SentimentNeutral
		}
	}()

	if strings.TrimSpace(text) == "" {
		return label
	}

	words := tokenize(text)

	var sum float64
	var matched int
	negate := false

	for _, word := range words {
		if negations[word] {
			negate = true
			continue
		}

		polarity, ok := lexicon[word]
		if ok {
			if negate {
				polarity = -polarity
			}
			sum += polarity
			matched++
		}
		negate = false
	}

	if matched == 0 {
		return label
	}

	score := sum / float64(matched)
	switch {
	case score > positiveThreshold:
		label = domain.SentimentPositive
	case score < negativeThreshold:
		label = domain.SentimentNegative
	}
	return label
}

// tokenize lowercases and splits on anything that is not a letter, digit,
// or apostrophe (apostrophes keep contractions like "don't" intact).
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
