package composer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/darta-hq/darta-assistant/pkg/domain"
)

// Default instruction texts used when an attachment is sent without any text.
const (
	defaultAudioPrompt = "Please transcribe this audio and confirm the details."
	defaultImagePrompt = "Please analyze this image for business data (receipt, stock, or sale) and extract the details."
)

func defaultDocumentPrompt(name string) string {
	return fmt.Sprintf("Please analyze this document (%s) and extract insights about sales, expenses, or stock.", name)
}

// Composer holds the in-progress outgoing message: free text plus at most one
// staged attachment. Image, audio and document are mutually exclusive; staging
// a new attachment discards whatever was staged before.
type Composer struct {
	mu     sync.Mutex
	text   string
	staged *domain.Attachment
}

func New() *Composer {
	return &Composer{}
}

// StageAttachment atomically replaces any previously staged attachment.
func (c *Composer) StageAttachment(a *domain.Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staged = a
}

// ClearStaged discards the staged attachment, if any.
func (c *Composer) ClearStaged() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staged = nil
}

func (c *Composer) Staged() *domain.Attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.staged
}

func (c *Composer) SetText(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = s
}

func (c *Composer) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// CanSend reports whether the composer holds anything worth sending: trimmed
// text, or a staged attachment. The in-flight guard is the caller's sending
// flag, not the composer's concern.
func (c *Composer) CanSend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.TrimSpace(c.text) != "" || c.staged != nil
}

// BuildOutgoing snapshots the composed message and resets the composer to
// empty, regardless of what happens to the send afterwards. When an
// attachment is staged without text, the default instruction for its kind is
// synthesized.
func (c *Composer) BuildOutgoing() domain.ComposedMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	text := strings.TrimSpace(c.text)
	staged := c.staged

	c.text = ""
	c.staged = nil

	if text == "" && staged != nil {
		switch staged.Kind {
		case domain.AttachmentKindAudio:
			text = defaultAudioPrompt
		case domain.AttachmentKindImage:
			text = defaultImagePrompt
		case domain.AttachmentKindDocument:
			name := staged.DisplayName
			if name == "" {
				name = "Document"
			}
			text = defaultDocumentPrompt(name)
		}
	}

	return domain.ComposedMessage{Text: text, Attachment: staged}
}
