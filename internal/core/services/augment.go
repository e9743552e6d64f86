package services

import (
	"fmt"
	"strings"

	"github.com/bookwise-labs/bookwise-cli/internal/core/domain"
	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// AbstentionPhrase is the fixed phrase the model is instructed to use
// when the supplied passages do not contain the answer.
const AbstentionPhrase = "I'm not sure"

// defaultAugmentPreamble opens the grounding prompt. The placeholder is
// the verbatim question.
const defaultAugmentPreamble = "Here are some documents that might help answer the question: %s"

// defaultAugmentInstruction closes the grounding prompt.
const defaultAugmentInstruction = "Please provide an answer based only on the provided documents. " +
	"If the answer is not found in the documents, respond with '" + AbstentionPhrase + "'. " +
	"Please provide the answer in simple language understood by everyday reader"

// Augmenter composes the grounding prompt from a query and the
// retrieved passages.
type Augmenter struct {
	promptStore driven.PromptStore
}

// NewAugmenter creates a new augmenter. The prompt store is optional;
// when nil the embedded default prompts are used.
func NewAugmenter(promptStore driven.PromptStore) *Augmenter {
	return &Augmenter{promptStore: promptStore}
}

// Augment builds the grounding prompt: preamble with the verbatim
// query, a labelled section containing each passage separated by a
// blank line, and the closing instruction mandating abstention when the
// passages do not contain the answer. Empty passages are legal; the
// resulting prompt will typically elicit the abstention response.
func (a *Augmenter) Augment(query string, passages []domain.RetrievedPassage) string {
	preamble := a.loadPrompt(driven.PromptAugmentPreamble, defaultAugmentPreamble)
	instruction := a.loadPrompt(driven.PromptAugmentInstruction, defaultAugmentInstruction)

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}

	var b strings.Builder
	fmt.Fprintf(&b, preamble, query)
	b.WriteString("\n\nRelevant Documents:\n")
	b.WriteString(strings.Join(texts, "\n\n"))
	b.WriteString("\n\n")
	b.WriteString(instruction)
	return b.String()
}

// loadPrompt loads a template from the store, falling back to the
// embedded default on absence or error.
func (a *Augmenter) loadPrompt(name, fallback string) string {
	if a.promptStore == nil {
		return fallback
	}
	prompt, err := a.promptStore.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	return prompt
}
