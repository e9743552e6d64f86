package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptQASystem is the system message sent with every question.
	// This prompt has no format placeholders.
	PromptQASystem = "qa_system"

	// PromptAugmentPreamble opens the grounding prompt. The template
	// expects a %s placeholder for the verbatim question.
	PromptAugmentPreamble = "augment_preamble"

	// PromptAugmentInstruction closes the grounding prompt and mandates
	// the fixed abstention phrase. No format placeholders.
	PromptAugmentInstruction = "augment_instruction"

	// PromptSummarise wraps the full passage text for the one-pass
	// whole-book summary. The template expects a %s placeholder for
	// the concatenated passages.
	PromptSummarise = "summarise"
)
