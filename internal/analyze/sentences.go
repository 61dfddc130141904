package analyze

import "strings"

// sentenceDelimiters are the only characters treated as sentence boundaries
const sentenceDelimiters = ".!?"

// expandToSentence widens a [start, end) match span to the enclosing
// sentence. Backward: the character after the nearest preceding delimiter,
// or the start of the text. Forward: the position after the nearest
// following delimiter, or the end of the text.
func expandToSentence(text string, start, end int) (int, int) {
	s := start
	for s > 0 && !strings.ContainsRune(sentenceDelimiters, rune(text[s-1])) {
		s--
	}

	e := end
	for e < len(text) && !strings.ContainsRune(sentenceDelimiters, rune(text[e])) {
		e++
	}
	if e < len(text) {
		e++ // include the delimiter itself
	}

	// Skip leading whitespace so offsets point at sentence text
	for s < e && (text[s] == ' ' || text[s] == '\t' || text[s] == '\n' || text[s] == '\r') {
		s++
	}

	return s, e
}

// splitSentences splits text into sentences on ./!/? delimiters
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if strings.ContainsRune(sentenceDelimiters, r) {
			sentence := strings.TrimSpace(current.String())
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}

	if rest := strings.TrimSpace(current.String()); rest != "" {
		sentences = append(sentences, rest)
	}

	return sentences
}

// averageSentenceWords returns the mean word count per sentence, or 0 when
// the text has no sentences.
func averageSentenceWords(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return 0
	}

	total := 0
	for _, s := range sentences {
		total += len(strings.Fields(s))
	}

	return float64(total) / float64(len(sentences))
}

// CountWords returns the number of whitespace-separated words in text
func CountWords(text string) int {
	return len(strings.Fields(text))
}
