// Package export renders analysis results as downloadable artifacts with
// fixed filenames, and validates uploaded documents.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"mime"
	"sort"
	"strconv"
	"strings"

	"github.com/textlens/text-analysis-platform/internal/entity"
	"github.com/textlens/text-analysis-platform/internal/qa"
	"github.com/textlens/text-analysis-platform/internal/sentiment"
	"github.com/textlens/text-analysis-platform/internal/summarizer"
	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

// Artifact is a rendered download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

const (
	textPlain = "text/plain; charset=utf-8"
	textCSV   = "text/csv; charset=utf-8"
)

// ValidateUpload checks that an uploaded document is plain text.
func ValidateUpload(contentType string) error {
	if contentType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "text/plain" {
		return apperrors.Newf(apperrors.ErrUnsupportedMedia,
			"only text/plain uploads are accepted, got %q", contentType)
	}
	return nil
}

// Entities renders an extraction result as extracted_entities.txt.
func Entities(result *entity.Result) Artifact {
	var b strings.Builder
	b.WriteString("Extracted Entities\n")
	b.WriteString("==================\n\n")
	fmt.Fprintf(&b, "Total entities: %d\n", result.TotalEntities)
	fmt.Fprintf(&b, "Text length: %d\n", result.TextLength)
	fmt.Fprintf(&b, "Method: %s\n\n", result.Method)

	for _, category := range entity.Categories {
		matches := result.Entities[category]
		if len(matches) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s (%d):\n", category, len(matches))
		for _, m := range matches {
			fmt.Fprintf(&b, "  - %s (confidence %.1f, %s)\n", m.Text, m.Confidence, m.Source)
		}
		b.WriteString("\n")
	}

	if len(result.MostCommon) > 0 {
		b.WriteString("Most common entities:\n")
		for _, ec := range result.MostCommon {
			fmt.Fprintf(&b, "  %s: %d\n", ec.Text, ec.Count)
		}
	}

	return Artifact{Filename: "extracted_entities.txt", ContentType: textPlain, Data: []byte(b.String())}
}

// CustomEntities renders custom pattern matches as custom_entities.txt.
func CustomEntities(matches map[string][]string) Artifact {
	names := make([]string, 0, len(matches))
	for name := range matches {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Custom Entity Extraction\n")
	b.WriteString("========================\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "%s (%d):\n", name, len(matches[name]))
		for _, m := range matches[name] {
			fmt.Fprintf(&b, "  - %s\n", m)
		}
		b.WriteString("\n")
	}

	return Artifact{Filename: "custom_entities.txt", ContentType: textPlain, Data: []byte(b.String())}
}

// BatchEntities renders a batch extraction as batch_entity_results.txt.
func BatchEntities(result *entity.BatchResult) Artifact {
	var b strings.Builder
	b.WriteString("Batch Entity Extraction\n")
	b.WriteString("=======================\n\n")
	fmt.Fprintf(&b, "Texts processed: %d\n", result.TotalTexts)
	fmt.Fprintf(&b, "Total entities: %d\n", result.TotalEntities)
	fmt.Fprintf(&b, "Average per text: %.2f\n\n", result.AveragePerText)

	for _, item := range result.Items {
		fmt.Fprintf(&b, "Text %d: %s\n", item.TextID, item.Preview)
		if item.Error != "" {
			fmt.Fprintf(&b, "  error: %s\n\n", item.Error)
			continue
		}
		fmt.Fprintf(&b, "  entities: %d\n", item.TotalEntities)
		for _, category := range entity.Categories {
			if count := item.EntityCounts[category]; count > 0 {
				fmt.Fprintf(&b, "  %s: %d\n", category, count)
			}
		}
		b.WriteString("\n")
	}

	return Artifact{Filename: "batch_entity_results.txt", ContentType: textPlain, Data: []byte(b.String())}
}

// Relationships renders inferred relationships as entity_relationships.txt.
func Relationships(result *entity.RelationshipResult) Artifact {
	var b strings.Builder
	b.WriteString("Entity Relationships\n")
	b.WriteString("====================\n\n")
	fmt.Fprintf(&b, "Relationships found: %d\n", result.Count)
	if len(result.Types) > 0 {
		fmt.Fprintf(&b, "Types: %s\n", strings.Join(result.Types, ", "))
	}
	b.WriteString("\n")
	for _, rel := range result.Relationships {
		fmt.Fprintf(&b, "%s --[%s]--> %s\n", rel.Entity1, rel.Relation, rel.Entity2)
	}

	return Artifact{Filename: "entity_relationships.txt", ContentType: textPlain, Data: []byte(b.String())}
}

// Summary renders an extractive summary as summary.txt.
func Summary(result *summarizer.ExtractiveResult) Artifact {
	var b strings.Builder
	b.WriteString("Summary\n")
	b.WriteString("=======\n\n")
	b.WriteString(result.Summary)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Sentences selected: %d of %d\n", result.SentencesSelected, result.OriginalSentences)
	fmt.Fprintf(&b, "Compression ratio: %.2f\n", result.CompressionRatio)
	if result.Note != "" {
		fmt.Fprintf(&b, "Note: %s\n", result.Note)
	}

	return Artifact{Filename: "summary.txt", ContentType: textPlain, Data: []byte(b.String())}
}

// Bullets renders bullet points as bullet_points.txt.
func Bullets(result *summarizer.BulletResult) Artifact {
	var b strings.Builder
	b.WriteString("Key Points\n")
	b.WriteString("==========\n\n")
	for _, point := range result.BulletPoints {
		b.WriteString(point)
		b.WriteString("\n")
	}

	return Artifact{Filename: "bullet_points.txt", ContentType: textPlain, Data: []byte(b.String())}
}

// Keywords renders keywords and phrases as keywords_and_phrases.txt.
func Keywords(result *summarizer.KeywordResult) Artifact {
	var b strings.Builder
	b.WriteString("Keywords and Key Phrases\n")
	b.WriteString("========================\n\n")
	b.WriteString("Keywords:\n")
	for _, kw := range result.Keywords {
		fmt.Fprintf(&b, "  - %s\n", kw)
	}
	b.WriteString("\nKey phrases:\n")
	for _, phrase := range result.KeyPhrases {
		fmt.Fprintf(&b, "  - %s\n", phrase)
	}
	fmt.Fprintf(&b, "\nUnique words: %d\n", result.TotalUniqueWords)

	return Artifact{Filename: "keywords_and_phrases.txt", ContentType: textPlain, Data: []byte(b.String())}
}

// QAResults renders a multi-question run as qa_results.txt.
func QAResults(result *qa.MultiResult) Artifact {
	var b strings.Builder
	b.WriteString("Question & Answer Results\n")
	b.WriteString("=========================\n\n")
	fmt.Fprintf(&b, "Questions answered: %d of %d\n", result.SuccessfulAnswers, result.TotalQuestions)
	fmt.Fprintf(&b, "Average confidence: %.2f\n\n", result.AverageConfidence)
	for _, qr := range result.Results {
		fmt.Fprintf(&b, "Q%d (%s): %s\n", qr.QuestionID, qr.QuestionType, qr.Question)
		fmt.Fprintf(&b, "A: %s\n", qr.Answer)
		fmt.Fprintf(&b, "Confidence: %.2f\n\n", qr.Confidence)
	}

	return Artifact{Filename: "qa_results.txt", ContentType: textPlain, Data: []byte(b.String())}
}

// GeneratedQuestions renders generated questions as generated_questions.txt.
func GeneratedQuestions(result *qa.GenerateResult) Artifact {
	var b strings.Builder
	b.WriteString("Generated Questions\n")
	b.WriteString("===================\n\n")
	for i, question := range result.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, question)
	}
	fmt.Fprintf(&b, "\nContext: %d sentences, %d proper nouns, %d noun phrases, %d years\n",
		result.Analysis.Sentences, result.Analysis.ProperNouns,
		result.Analysis.NounPhrases, result.Analysis.YearsFound)

	return Artifact{Filename: "generated_questions.txt", ContentType: textPlain, Data: []byte(b.String())}
}

// SentimentCSV renders a batch sentiment run as sentiment_analysis_results.csv.
func SentimentCSV(result *sentiment.BatchResult) (Artifact, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"text_id", "sentiment", "polarity", "subjectivity", "confidence", "intensity", "error"}
	if err := w.Write(header); err != nil {
		return Artifact{}, fmt.Errorf("writing csv header: %w", err)
	}

	for _, item := range result.Items {
		row := []string{strconv.Itoa(item.TextID), "", "", "", "", "", ""}
		if item.Error != "" {
			row[6] = item.Error
		} else if item.Result != nil {
			row[1] = item.Result.Sentiment
			row[2] = strconv.FormatFloat(item.Result.Polarity, 'f', 4, 64)
			row[3] = strconv.FormatFloat(item.Result.Subjectivity, 'f', 4, 64)
			row[4] = strconv.FormatFloat(item.Result.Confidence, 'f', 4, 64)
			row[5] = item.Result.Intensity.Level
		}
		if err := w.Write(row); err != nil {
			return Artifact{}, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return Artifact{}, fmt.Errorf("flushing csv: %w", err)
	}

	return Artifact{
		Filename:    "sentiment_analysis_results.csv",
		ContentType: textCSV,
		Data:        buf.Bytes(),
	}, nil
}
