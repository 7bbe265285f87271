// internal/questionnaire/transcript.go
package questionnaire

import "github.com/google/uuid"

type Role string

const (
	RoleBot  Role = "bot"
	RoleUser Role = "user"
)

// Message is one transcript entry. Transcripts are display-only.
type Message struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Text string `json:"text"`
}

func newMessage(role Role, text string) Message {
	return Message{ID: uuid.NewString(), Role: role, Text: text}
}

// Texts flattens a transcript to role-prefixed lines, ignoring message ids.
func Texts(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = string(m.Role) + ": " + m.Text
	}
	return out
}
