package domain

// Turn is a single question and its answer within a conversation.
type Turn struct {
	// Question is the user's question, verbatim.
	Question string

	// Answer is the model's answer, verbatim.
	Answer string
}

// Conversation is the append-only ordered log of turns for one document
// identity and one session. It is owned exclusively by the session flow
// and never persisted to durable storage.
type Conversation struct {
	identity DocumentIdentity
	turns    []Turn
}

// NewConversation creates an empty conversation scoped to the identity.
func NewConversation(identity DocumentIdentity) *Conversation {
	return &Conversation{identity: identity}
}

// Identity returns the document identity this conversation is scoped to.
func (c *Conversation) Identity() DocumentIdentity {
	return c.identity
}

// Append records a completed turn. Turns are never deleted, reordered
// or deduplicated.
func (c *Conversation) Append(question, answer string) {
	c.turns = append(c.turns, Turn{Question: question, Answer: answer})
}

// Turns returns the turns in insertion order. The returned slice is a
// copy; mutating it does not affect the conversation.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of recorded turns.
func (c *Conversation) Len() int {
	return len(c.turns)
}
