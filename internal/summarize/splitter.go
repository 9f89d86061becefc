// Package summarize implements the document-to-summary pipeline: size-aware
// chunking of oversized text, generation calls, and output formatting.
package summarize

import "strings"

// unitChars approximates how many characters one generation-model input
// unit covers. This is a rough heuristic, not an exact token count.
const unitChars = 4

// Splitter cuts oversized text into bounded, sentence-aligned chunks.
type Splitter struct{}

// NewSplitter creates a new splitter.
func NewSplitter() *Splitter {
	return &Splitter{}
}

// Split breaks text into ordered chunks of at most maxUnits units each,
// where a unit is approximated as unitChars characters. Text within the
// budget is returned as a single chunk. Oversized text is segmented into
// sentences and packed into ceil(len/budget) chunks against an even
// per-chunk target, recomputed over the remaining text so chunk sizes stay
// balanced; the final chunk absorbs the remainder. A single sentence
// longer than the target is never force-split: it lands whole in its own
// chunk and the overflow is tolerated.
//
// Concatenating the returned chunks reproduces text exactly.
func (s *Splitter) Split(text string, maxUnits int) []string {
	budget := maxUnits * unitChars
	if budget <= 0 || len(text) <= budget {
		return []string{text}
	}

	sentences := splitSentences(text)
	numChunks := (len(text) + budget - 1) / budget

	chunks := make([]string, 0, numChunks)
	var current strings.Builder
	remaining := len(text)

	for _, sentence := range sentences {
		if len(chunks) < numChunks-1 && current.Len() > 0 {
			target := remaining / (numChunks - len(chunks))
			if current.Len()+len(sentence) > target {
				chunks = append(chunks, current.String())
				remaining -= current.Len()
				current.Reset()
			}
		}
		current.WriteString(sentence)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// splitSentences segments text at sentence terminators (., !, ?) followed
// by whitespace. Each sentence keeps the whitespace that follows its
// terminator, so the concatenation of all sentences reproduces the input
// byte for byte.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(text); i++ {
		if !isTerminator(text[i]) {
			continue
		}

		end := i + 1
		for end < len(text) && isSpace(text[end]) {
			end++
		}
		if end == i+1 {
			// Terminator not followed by whitespace ("3.14", "e.g.x")
			// is not a sentence boundary.
			continue
		}

		sentences = append(sentences, text[start:end])
		start = end
		i = end - 1
	}

	if start < len(text) {
		sentences = append(sentences, text[start:])
	}

	return sentences
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
