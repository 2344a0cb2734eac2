// Package sentiment analyses emotional tone: lexicon-based polarity and
// subjectivity, keyword-driven emotion scores and modifier-based intensity.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"

	"github.com/textlens/text-analysis-platform/internal/textproc"
	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

// Label thresholds on polarity.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

var emotionKeywords = map[string][]string{
	"joy":      {"happy", "joy", "excited", "wonderful", "amazing", "fantastic", "great", "excellent", "love", "perfect"},
	"sadness":  {"sad", "depressed", "unhappy", "disappointed", "terrible", "awful", "horrible", "hate", "worst", "miserable"},
	"anger":    {"angry", "furious", "annoyed", "irritated", "mad", "frustrated", "outraged", "livid", "rage", "disgusted"},
	"fear":     {"afraid", "scared", "worried", "anxious", "nervous", "terrified", "frightened", "panic", "concern", "stress"},
	"surprise": {"surprised", "shocked", "amazed", "astonished", "unexpected", "sudden", "wow", "incredible", "unbelievable"},
	"disgust":  {"disgusting", "revolting", "sick", "gross", "awful", "repulsive", "horrible", "nasty", "terrible"},
}

var (
	intensifiers = map[string]bool{
		"very": true, "extremely": true, "really": true, "quite": true, "so": true,
		"too": true, "incredibly": true, "absolutely": true, "totally": true,
	}
	diminishers = map[string]bool{
		"slightly": true, "somewhat": true, "rather": true, "fairly": true, "pretty": true,
	}
	diminisherPhrases = []string{"kind of", "sort of", "a bit"}
)

// emotionPatterns are word-boundary matchers compiled once per keyword.
var emotionPatterns = func() map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(emotionKeywords))
	for emotion, keywords := range emotionKeywords {
		patterns := make([]*regexp.Regexp, len(keywords))
		for i, kw := range keywords {
			patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
		out[emotion] = patterns
	}
	return out
}()

// SentenceSentiment is the per-sentence breakdown of a document.
type SentenceSentiment struct {
	Text         string  `json:"text"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Sentiment    string  `json:"sentiment"`
}

// Intensity describes how strongly the text modifies its emotion words.
type Intensity struct {
	Level        string  `json:"level"`
	Intensifiers int     `json:"intensifiers"`
	Diminishers  int     `json:"diminishers"`
	Ratio        float64 `json:"ratio"`
}

// Result is the full sentiment analysis of one document.
type Result struct {
	Sentiment        string              `json:"sentiment"`
	Polarity         float64             `json:"polarity"`
	Subjectivity     float64             `json:"subjectivity"`
	Confidence       float64             `json:"confidence"`
	EmotionScores    map[string]float64  `json:"emotion_scores"`
	Intensity        Intensity           `json:"intensity"`
	SentenceAnalysis []SentenceSentiment `json:"sentence_analysis"`
	TextLength       int                 `json:"text_length"`
	WordCount        int                 `json:"word_count"`
	SentenceCount    int                 `json:"sentence_count"`
}

// Analyzer performs lexicon-based sentiment analysis. Safe for concurrent
// use.
type Analyzer struct {
	norm *textproc.Normalizer
}

// New creates an Analyzer over the given normalizer.
func New(norm *textproc.Normalizer) *Analyzer {
	return &Analyzer{norm: norm}
}

// polaritySubjectivity scores text with the valence lexicon. Polarity is the
// compound score in [-1,1]; subjectivity is the proportion of text carrying
// any valence at all.
func polaritySubjectivity(text string) (float64, float64) {
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	score := sentitext.PolarityScore(parsed)
	return score.Compound, score.Positive + score.Negative
}

func label(polarity float64) string {
	switch {
	case polarity > positiveThreshold:
		return "Positive"
	case polarity < negativeThreshold:
		return "Negative"
	default:
		return "Neutral"
	}
}

// Analyze scores the whole document and each sentence. Confidence is the
// absolute polarity.
func (a *Analyzer) Analyze(text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.New(apperrors.ErrInputTooShort, "text is empty")
	}

	polarity, subjectivity := polaritySubjectivity(text)

	sentences := a.norm.Sentences(text)
	sentenceAnalysis := make([]SentenceSentiment, len(sentences))
	for i, sent := range sentences {
		p, s := polaritySubjectivity(sent)
		sentenceAnalysis[i] = SentenceSentiment{
			Text:         sent,
			Polarity:     p,
			Subjectivity: s,
			Sentiment:    label(p),
		}
	}

	return &Result{
		Sentiment:        label(polarity),
		Polarity:         polarity,
		Subjectivity:     subjectivity,
		Confidence:       abs(polarity),
		EmotionScores:    AnalyzeEmotions(text),
		Intensity:        AnalyzeIntensity(text),
		SentenceAnalysis: sentenceAnalysis,
		TextLength:       len(text),
		WordCount:        len(strings.Fields(text)),
		SentenceCount:    len(sentenceAnalysis),
	}, nil
}

// AnalyzeEmotions counts word-boundary keyword hits per emotion, normalised
// by the document's word count.
func AnalyzeEmotions(text string) map[string]float64 {
	lower := strings.ToLower(text)
	wordCount := len(strings.Fields(text))

	scores := make(map[string]float64, len(emotionPatterns))
	for emotion, patterns := range emotionPatterns {
		hits := 0
		for _, re := range patterns {
			hits += len(re.FindAllStringIndex(lower, -1))
		}
		if wordCount > 0 {
			scores[emotion] = float64(hits) / float64(wordCount)
		} else {
			scores[emotion] = 0
		}
	}
	return scores
}

// AnalyzeIntensity classifies the balance of intensifying versus diminishing
// modifiers. With no modifiers the ratio is neutral 0.5, which lands in
// Medium.
func AnalyzeIntensity(text string) Intensity {
	lower := strings.ToLower(text)

	intensifierCount := 0
	diminisherCount := 0
	for _, word := range strings.Fields(lower) {
		if intensifiers[word] {
			intensifierCount++
		}
		if diminishers[word] {
			diminisherCount++
		}
	}
	for _, phrase := range diminisherPhrases {
		diminisherCount += strings.Count(lower, phrase)
	}

	ratio := 0.5
	if total := intensifierCount + diminisherCount; total > 0 {
		ratio = float64(intensifierCount) / float64(total)
	}

	level := "Low"
	switch {
	case ratio > 0.7:
		level = "High"
	case ratio > 0.4:
		level = "Medium"
	}

	return Intensity{
		Level:        level,
		Intensifiers: intensifierCount,
		Diminishers:  diminisherCount,
		Ratio:        ratio,
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
