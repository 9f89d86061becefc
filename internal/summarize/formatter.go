package summarize

import (
	"regexp"
	"strings"
)

// paragraphSoftCap is the approximate maximum paragraph length, in
// characters, used when re-flowing summary text. Fixed deliberately; it is
// not tuned to any model tokenizer.
const paragraphSoftCap = 200

var (
	bulletPrefixRe   = regexp.MustCompile(`(?m)^[ \t]*(?:[-*•][ \t]+)+`)
	numberedPrefixRe = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+`)
	letteredPrefixRe = regexp.MustCompile(`(?m)^[ \t]*[A-Za-z][.)][ \t]+`)
	blankLineRunRe   = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
	whitespaceRunRe  = regexp.MustCompile(`\s+`)
)

// Formatter normalizes raw generated summaries into flowing paragraphs.
type Formatter struct{}

// NewFormatter creates a new formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format strips list and bold markup from a raw summary and re-flows the
// remaining text into paragraphs. The result contains no bullet, numbered,
// or lettered list markers and no bold markup; paragraph boundaries sit
// only at sentence boundaries. Format is pure, deterministic, and
// idempotent on already-clean text.
func (f *Formatter) Format(raw string) string {
	cleaned := f.clean(raw)
	if cleaned == "" {
		return ""
	}
	return f.reflow(cleaned)
}

// clean strips list markers at line starts, bold markup, and runs of
// blank lines.
func (f *Formatter) clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "**", "")
	text = bulletPrefixRe.ReplaceAllString(text, "")
	text = numberedPrefixRe.ReplaceAllString(text, "")
	text = letteredPrefixRe.ReplaceAllString(text, "")
	text = blankLineRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// reflow splits cleaned text into sentences and greedily packs them into
// paragraphs against the soft cap: a paragraph closes once adding the next
// sentence would push it past the cap, provided it already has content, so
// a sentence longer than the cap stands alone. Sentences are joined with a
// single period terminator and paragraphs with a blank line.
func (f *Formatter) reflow(text string) string {
	cores := sentenceCores(text)
	if len(cores) == 0 {
		return ""
	}

	var paragraphs []string
	var current []string
	currentLen := 0

	for _, core := range cores {
		added := len(core)
		if len(current) > 0 {
			added += 2 // ". " joiner
		}

		if currentLen+added > paragraphSoftCap && len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, ". ")+".")
			current = current[:0]
			currentLen = 0
			added = len(core)
		}

		current = append(current, core)
		currentLen += added
	}

	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, ". ")+".")
	}

	return strings.Join(paragraphs, "\n\n")
}

// sentenceCores returns each sentence of text stripped of surrounding
// whitespace and trailing terminators, with internal whitespace runs
// collapsed to single spaces.
func sentenceCores(text string) []string {
	var cores []string
	for _, sentence := range splitSentences(text) {
		core := strings.TrimSpace(sentence)
		core = strings.TrimRight(core, ".!?")
		core = strings.TrimSpace(core)
		core = whitespaceRunRe.ReplaceAllString(core, " ")
		if core != "" {
			cores = append(cores, core)
		}
	}
	return cores
}
