package textproc

// FrequencyTable maps content words to frequencies normalised into [0,1] by
// the maximum raw count. When non-empty, its maximum value is exactly 1.0.
type FrequencyTable map[string]float64

// WordFrequencies computes the max-normalised frequency table for text.
// Only alphabetic non-stop-word tokens count; an empty table means the
// document has no qualifying tokens and all downstream scores are zero.
func (n *Normalizer) WordFrequencies(text string) FrequencyTable {
	counts := make(map[string]int)
	max := 0
	for _, w := range n.ContentWords(text) {
		counts[w]++
		if counts[w] > max {
			max = counts[w]
		}
	}
	table := make(FrequencyTable, len(counts))
	if max == 0 {
		return table
	}
	for w, c := range counts {
		table[w] = float64(c) / float64(max)
	}
	return table
}

// ScoreSentences scores each sentence by the sum of its qualifying tokens'
// table values divided by the number of qualifying tokens. Sentences with no
// qualifying tokens score zero. The result maps sentence index to score.
func (n *Normalizer) ScoreSentences(sentences []string, table FrequencyTable) map[int]float64 {
	scores := make(map[int]float64, len(sentences))
	for i, sentence := range sentences {
		words := n.ContentWords(sentence)
		if len(words) == 0 {
			scores[i] = 0
			continue
		}
		var sum float64
		for _, w := range words {
			if v, ok := table[w]; ok {
				sum += v
			}
		}
		scores[i] = sum / float64(len(words))
	}
	return scores
}
