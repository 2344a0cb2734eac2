package benchmark

import (
	"fmt"
	"strings"
	"testing"

	"github.com/textlens/text-analysis-platform/internal/textproc"
)

func BenchmarkSentenceSplit(b *testing.B) {
	norm := textproc.NewNormalizer()
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				sentences := norm.Sentences(text)
				_ = sentences
			}
		})
	}
}

func BenchmarkContentWords(b *testing.B) {
	norm := textproc.NewNormalizer()
	text := sampleTexts["long"]
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		words := norm.ContentWords(text)
		_ = words
	}
}

func BenchmarkWordFrequencies(b *testing.B) {
	norm := textproc.NewNormalizer()
	sizes := []int{100, 1000, 10000}
	base := "extractive summarization ranks sentences by content word frequency "
	for _, size := range sizes {
		text := strings.Repeat(base, size/len(base)+1)[:size]
		b.Run(fmt.Sprintf("bytes_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				table := norm.WordFrequencies(text)
				_ = table
			}
		})
	}
}

// BenchmarkNounPhrases measures the chunker path used for entity
// extraction fallback.
func BenchmarkNounPhrases(b *testing.B) {
	norm := textproc.NewNormalizer()
	text := sampleTexts["medium"]
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		phrases := norm.NounPhrases(text)
		_ = phrases
	}
}

func BenchmarkTokensParallel(b *testing.B) {
	norm := textproc.NewNormalizer()
	text := sampleTexts["medium"]
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			tokens := norm.Tokens(text)
			_ = tokens
		}
	})
}
