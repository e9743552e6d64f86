package domain

// SessionState is the explicit state object for one end-to-end session.
// It replaces ambient globals: the top-level flow owns it and passes it
// into each operation. Created on the first visit to an identity and
// discarded wholesale on identity switch.
type SessionState struct {
	// Identity is the active document identity.
	Identity DocumentIdentity

	// Conversation is the question/answer log for this identity.
	Conversation *Conversation

	// Summary is the whole-book summary, set once Summarised is true.
	Summary string

	// Indexed is true once an index exists for the identity.
	Indexed bool

	// Summarised is true once a whole-book summary has been produced.
	Summarised bool
}

// NewSessionState creates a fresh session for the identity.
func NewSessionState(identity DocumentIdentity) *SessionState {
	return &SessionState{
		Identity:     identity,
		Conversation: NewConversation(identity),
	}
}

// SwitchTo changes the active identity. Switching to a different
// identity discards the conversation, the summary and all flags so that
// turns from two documents are never mixed. Switching to the same
// identity is a no-op.
func (s *SessionState) SwitchTo(identity DocumentIdentity) {
	if s.Identity == identity {
		return
	}
	s.Identity = identity
	s.Conversation = NewConversation(identity)
	s.Summary = ""
	s.Indexed = false
	s.Summarised = false
}
