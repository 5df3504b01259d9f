package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// RenderableAttachment is what the transcript keeps for display: a kind, an
// optional display name and a local data URL. Payload bytes live here only in
// encoded form; nothing in the transcript is ever re-sent to the model.
type RenderableAttachment struct {
	Kind AttachmentKind `json:"kind"`
	Name string         `json:"name,omitempty"`
	URL  string         `json:"url,omitempty"`
}

// TranscriptEntry is one exchanged message. Entries are immutable once
// appended; ordering is append order.
type TranscriptEntry struct {
	ID          string                 `json:"id"`
	Role        Role                   `json:"role"`
	Text        string                 `json:"text"`
	Timestamp   time.Time              `json:"timestamp"`
	Attachments []RenderableAttachment `json:"attachments,omitempty"`
}
