package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bookwise-labs/bookwise-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore serves prompt templates from user-editable files on
// disk, falling back to the embedded defaults when a file is missing
// or unreadable. The directory and default files are written lazily on
// first Load, never in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	seedOnce  sync.Once
	seedErr   error
}

// defaultPrompts are the embedded templates. They answer Load when no
// file exists and seed the prompt files written on first use.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptQASystem: `You are a helpful assistant who is expert at translating history books into understandable language.`,

	driven.PromptAugmentPreamble: `Here are some documents that might help answer the question: %s`,

	driven.PromptAugmentInstruction: `Please provide an answer based only on the provided documents. If the answer is not found in the documents, respond with 'I'm not sure'. Please provide the answer in simple language understood by everyday reader`,

	driven.PromptSummarise: `Write a concise summary of the following:


"%s"


CONCISE SUMMARY:`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.bookwise/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".bookwise", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name. The first call
// seeds the prompt directory with the default files; later calls are
// served from the cache. A missing or unreadable file falls back to
// the embedded default.
func (s *PromptStore) Load(name string) (string, error) {
	s.seedOnce.Do(s.seedDir)
	if s.seedErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.seedErr)
	}

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	// Read outside the lock; file I/O must not block cached loads.
	prompt, err := s.readPromptFile(name)
	if err != nil {
		if fallback, ok := defaultPrompts[name]; ok {
			return fallback, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		// A concurrent Load won the race; keep its value.
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// seedDir creates the prompt directory and writes any default file
// that does not exist yet. User edits are never overwritten.
func (s *PromptStore) seedDir() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.seedErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.seedErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.writeReadme(); err != nil {
		s.seedErr = err
	}
}

// readPromptFile reads a prompt from disk.
func (s *PromptStore) readPromptFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// writeReadme explains the prompt files for anyone browsing the
// directory.
func (s *PromptStore) writeReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Bookwise Prompts

This directory contains customisable prompts used by Bookwise's LLM features.

## Files

- ` + "`qa_system.txt`" + ` - System message framing every question
- ` + "`augment_preamble.txt`" + ` - Opens the grounding prompt with the question
- ` + "`augment_instruction.txt`" + ` - Closes the grounding prompt, mandates abstention
- ` + "`summarise.txt`" + ` - Wraps the full book text for the one-pass summary

## Customisation

Edit any file to customise LLM behaviour. Changes take effect on the next
command.

## Format Placeholders

Some prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the question or book text)

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
