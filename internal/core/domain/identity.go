package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeKey derives a canonical, filesystem-safe key from free text.
// Every character outside [A-Za-z] is stripped and the remainder is
// lowercased. The function is pure and idempotent: normalising an
// already-normalised key is a no-op.
func NormalizeKey(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		} else if r >= 'A' && r <= 'Z' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// DocumentIdentity is the normalised (title, author) pair that addresses
// a persisted index. Two raw inputs that normalise to the same keys are
// the same document.
type DocumentIdentity struct {
	// TitleKey is the normalised book title.
	TitleKey string

	// AuthorKey is the normalised author name.
	AuthorKey string
}

// NewIdentity derives a DocumentIdentity from raw title and author text.
// Returns ErrInvalidInput when either component normalises to the empty
// string, since an empty key cannot address a storage location.
func NewIdentity(title, author string) (DocumentIdentity, error) {
	id := DocumentIdentity{
		TitleKey:  NormalizeKey(title),
		AuthorKey: NormalizeKey(author),
	}
	if id.TitleKey == "" {
		return DocumentIdentity{}, fmt.Errorf("%w: title %q normalises to an empty key", ErrInvalidInput, title)
	}
	if id.AuthorKey == "" {
		return DocumentIdentity{}, fmt.Errorf("%w: author %q normalises to an empty key", ErrInvalidInput, author)
	}
	return id, nil
}

// StorageKey returns the single token used to name the identity's
// storage location, e.g. "warandpeacebytolstoy".
func (id DocumentIdentity) StorageKey() string {
	return id.TitleKey + "by" + id.AuthorKey
}

// IsZero reports whether the identity is unset.
func (id DocumentIdentity) IsZero() bool {
	return id.TitleKey == "" && id.AuthorKey == ""
}

// String returns a human-readable representation.
func (id DocumentIdentity) String() string {
	return id.TitleKey + " by " + id.AuthorKey
}

// LibraryRecord is the flat per-document settings record persisted after
// a successful index build or confirmed reuse. It lets a later session
// resume without re-deriving the identity from raw text.
type LibraryRecord struct {
	// Book is the title as the user typed it.
	Book string `toml:"book"`

	// Author is the author as the user typed it.
	Author string `toml:"author"`

	// BookKey is the normalised title key.
	BookKey string `toml:"book_clean"`

	// AuthorKey is the normalised author key.
	AuthorKey string `toml:"author_clean"`
}

// Identity reconstructs the DocumentIdentity from the stored keys.
func (r LibraryRecord) Identity() DocumentIdentity {
	return DocumentIdentity{TitleKey: r.BookKey, AuthorKey: r.AuthorKey}
}
