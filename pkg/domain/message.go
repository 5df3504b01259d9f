package domain

// ComposedMessage is the unit submitted to the conversation service: free
// text plus at most one attachment.
type ComposedMessage struct {
	Text       string
	Attachment *Attachment
}

func (m ComposedMessage) IsEmpty() bool {
	return m.Text == "" && m.Attachment == nil
}

type PartKind string

const (
	PartKindText       PartKind = "text"
	PartKindBlob       PartKind = "blob"
	PartKindToolResult PartKind = "tool_result"
)

// Part is one element of a multi-part message submitted on a session turn,
// kept provider-neutral so the conversation service can be tested against a
// recording fake.
type Part struct {
	Kind       PartKind
	Text       string
	MIMEType   string
	Data       []byte
	ToolResult *ToolResult
}

func TextPart(text string) Part {
	return Part{Kind: PartKindText, Text: text}
}

func BlobPart(mimeType string, data []byte) Part {
	return Part{Kind: PartKindBlob, MIMEType: mimeType, Data: data}
}

func ToolResultPart(result ToolResult) Part {
	return Part{Kind: PartKindToolResult, ToolResult: &result}
}

// ToolInvocation is a capability request emitted by the model mid-turn.
type ToolInvocation struct {
	Name string
	ID   string
	Args map[string]any
}

// PromptArg extracts the string "prompt" argument of an invocation; non-string
// values are not expected but tolerated as empty.
func (t ToolInvocation) PromptArg() string {
	if s, ok := t.Args["prompt"].(string); ok {
		return s
	}
	return ""
}

// ToolResult reports the outcome of a capability invocation back to the model
// on the same session turn. It carries an outcome line, never payload bytes.
type ToolResult struct {
	InvocationID string
	Name         string
	Outcome      string
	OK           bool
}

// ModelResponse is one submission's result: the model's text, if any, and any
// capability invocations it requested.
type ModelResponse struct {
	Text        string
	Invocations []ToolInvocation
}

type ImagePayload struct {
	MIMEType string
	Data     []byte
}

// Reply is the final outcome of one conversation turn.
type Reply struct {
	Text   string
	Images []ImagePayload
}
