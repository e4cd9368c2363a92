package entity

import "fmt"

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Blob is inline binary content, typically a screenshot.
type Blob struct {
	MIMEType string
	Data     []byte
}

// ToolResult is one executed intent reported back to the service: status
// fields plus an optional fresh screenshot.
type ToolResult struct {
	Name       string
	Response   map[string]any
	Screenshot *Blob
}

// Part is one piece of a message. Exactly one field is set.
type Part struct {
	Text     string
	Thought  bool
	Blob     *Blob
	Call     *Intent
	Response *ToolResult
}

type Message struct {
	Role  Role
	Parts []Part
}

// Conversation is the append-only record of a run: task input, model
// output, and tool results, in the strict user/model alternation the
// reasoning service requires. Entries are never reordered or removed.
type Conversation struct {
	messages []Message
}

func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds a message, enforcing the alternation invariant: the first
// message is from the user and roles alternate from there.
func (c *Conversation) Append(m Message) error {
	if len(c.messages) == 0 {
		if m.Role != RoleUser {
			return fmt.Errorf("conversation must start with a %s message, got %s", RoleUser, m.Role)
		}
		c.messages = append(c.messages, m)
		return nil
	}
	last := c.messages[len(c.messages)-1].Role
	if m.Role == last {
		return fmt.Errorf("conversation roles must alternate, got %s after %s", m.Role, last)
	}
	c.messages = append(c.messages, m)
	return nil
}

// Messages returns a snapshot of the history for a service call.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int {
	return len(c.messages)
}
