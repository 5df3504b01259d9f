package composer

import (
	"strings"
	"testing"

	"github.com/darta-hq/darta-assistant/pkg/domain"
)

func imageAttachment() *domain.Attachment {
	return &domain.Attachment{Kind: domain.AttachmentKindImage, MIMEType: "image/jpeg", Data: []byte{1}}
}

func audioAttachment() *domain.Attachment {
	return &domain.Attachment{Kind: domain.AttachmentKindAudio, MIMEType: "audio/ogg", Data: []byte{2}}
}

func documentAttachment(name string) *domain.Attachment {
	return &domain.Attachment{Kind: domain.AttachmentKindDocument, MIMEType: "text/csv", Text: "a,b", DisplayName: name}
}

func TestStagingIsMutuallyExclusive(t *testing.T) {
	kinds := map[string]*domain.Attachment{
		"image":    imageAttachment(),
		"audio":    audioAttachment(),
		"document": documentAttachment("sales.csv"),
	}

	for firstName, first := range kinds {
		for secondName, second := range kinds {
			if firstName == secondName {
				continue
			}

			c := New()
			c.StageAttachment(first)
			c.StageAttachment(second)

			staged := c.Staged()
			if staged != second {
				t.Errorf("staging %s then %s: staged = %v, want the %s", firstName, secondName, staged, secondName)
			}
		}
	}
}

func TestBuildOutgoingDefaults(t *testing.T) {
	tests := []struct {
		name       string
		attachment *domain.Attachment
		wantText   string
	}{
		{
			name:       "audio",
			attachment: audioAttachment(),
			wantText:   "Please transcribe this audio and confirm the details.",
		},
		{
			name:       "image",
			attachment: imageAttachment(),
			wantText:   "Please analyze this image for business data (receipt, stock, or sale) and extract the details.",
		},
		{
			name:       "document",
			attachment: documentAttachment("sales.csv"),
			wantText:   "Please analyze this document (sales.csv) and extract insights about sales, expenses, or stock.",
		},
		{
			name:       "document without name",
			attachment: documentAttachment(""),
			wantText:   "Please analyze this document (Document) and extract insights about sales, expenses, or stock.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.StageAttachment(tt.attachment)

			msg := c.BuildOutgoing()

			if msg.Text != tt.wantText {
				t.Errorf("text = %q, want %q", msg.Text, tt.wantText)
			}
			if msg.Attachment != tt.attachment {
				t.Errorf("attachment = %v, want the staged one", msg.Attachment)
			}
		})
	}
}

func TestBuildOutgoingKeepsUserText(t *testing.T) {
	c := New()
	c.SetText("  what were my sales today?  ")
	c.StageAttachment(imageAttachment())

	msg := c.BuildOutgoing()

	if msg.Text != "what were my sales today?" {
		t.Errorf("text = %q, want the trimmed user text", msg.Text)
	}
}

func TestBuildOutgoingResetsComposer(t *testing.T) {
	c := New()
	c.SetText("hello")
	c.StageAttachment(imageAttachment())

	c.BuildOutgoing()

	if c.Text() != "" || c.Staged() != nil || c.CanSend() {
		t.Errorf("composer not reset: text=%q staged=%v canSend=%v", c.Text(), c.Staged(), c.CanSend())
	}
}

func TestCanSend(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		attachment *domain.Attachment
		want       bool
	}{
		{"empty", "", nil, false},
		{"whitespace only", "   \t\n", nil, false},
		{"text only", "hi", nil, true},
		{"attachment only", "", imageAttachment(), true},
		{"both", "hi", imageAttachment(), true},
		{"whitespace with attachment", "  ", audioAttachment(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.SetText(tt.text)
			if tt.attachment != nil {
				c.StageAttachment(tt.attachment)
			}

			if got := c.CanSend(); got != tt.want {
				t.Errorf("CanSend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClearStaged(t *testing.T) {
	c := New()
	c.StageAttachment(documentAttachment("x.csv"))
	c.ClearStaged()

	if c.Staged() != nil {
		t.Error("staged attachment survived ClearStaged")
	}
}

func TestDefaultDocumentPromptMentionsName(t *testing.T) {
	got := defaultDocumentPrompt("stock-list.pdf")
	if !strings.Contains(got, "stock-list.pdf") {
		t.Errorf("prompt %q does not mention the document name", got)
	}
}
