package llm

import (
	"fmt"
	"strings"
)

// PromptPlaceholder is the token in a prompt template that gets replaced
// with the text payload. Every template carries it exactly once.
const PromptPlaceholder = "{{document}}"

// Prompts holds the three generation templates used by the summarization
// engine. Each is a plain template string, not code; length targets are
// baked into the string when the set is built.
type Prompts struct {
	Document string // single-shot summary of a whole document
	Chunk    string // intermediate summary of one chunk
	Final    string // recombination of chunk summaries
}

// DefaultPrompts renders the built-in templates with the given length
// targets, in characters.
func DefaultPrompts(maxLength, chunkMaxLength int) Prompts {
	return Prompts{
		Document: documentPrompt(maxLength),
		Chunk:    chunkPrompt(chunkMaxLength),
		Final:    finalPrompt(maxLength),
	}
}

// Validate checks that every template carries exactly one placeholder.
func (p Prompts) Validate() error {
	for name, tmpl := range map[string]string{
		"document": p.Document,
		"chunk":    p.Chunk,
		"final":    p.Final,
	} {
		if n := strings.Count(tmpl, PromptPlaceholder); n != 1 {
			return fmt.Errorf("%s template must contain %s exactly once, found %d", name, PromptPlaceholder, n)
		}
	}
	return nil
}

// Render substitutes the text payload into a template. This is a single
// literal replacement of the placeholder.
func Render(template, payload string) string {
	return strings.Replace(template, PromptPlaceholder, payload, 1)
}

// documentPrompt builds the single-shot summarization prompt.
func documentPrompt(maxLength int) string {
	return fmt.Sprintf(`Write a concise summary of the following document in %d characters or less.
Capture the main points and essential details. Provide only the summary, with no preamble, headings, or commentary.

Document:

%s`, maxLength, PromptPlaceholder)
}

// chunkPrompt builds the per-chunk summarization prompt used on the
// hierarchical path.
func chunkPrompt(maxLength int) string {
	return fmt.Sprintf(`The following text is one section of a longer document. Summarise this section in %d characters or less, preserving every key fact, name, and figure so the section summaries can later be combined. Provide only the summary, with no preamble or commentary.

Section:

%s`, maxLength, PromptPlaceholder)
}

// finalPrompt builds the recombination prompt applied to the concatenated
// chunk summaries.
func finalPrompt(maxLength int) string {
	return fmt.Sprintf(`The following are summaries of consecutive sections of a single document. Combine them into one coherent summary of the whole document in %d characters or less. Provide only the summary, with no preamble or commentary.

Section summaries:

%s`, maxLength, PromptPlaceholder)
}
