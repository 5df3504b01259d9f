package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/darta-hq/darta-assistant/pkg/attachment"
	"github.com/darta-hq/darta-assistant/pkg/domain"
	"github.com/darta-hq/darta-assistant/pkg/repository"
)

type fakeConversation struct {
	sent  []domain.ComposedMessage
	reply domain.Reply
	block chan struct{}
}

func (f *fakeConversation) Send(ctx context.Context, msg domain.ComposedMessage) domain.Reply {
	f.sent = append(f.sent, msg)
	if f.block != nil {
		<-f.block
	}
	return f.reply
}

type fakeStream struct {
	chunks [][]byte
	out    chan []byte
}

func (f *fakeStream) MIMEType() string { return "audio/ogg" }

func (f *fakeStream) Close() error {
	f.out = make(chan []byte, len(f.chunks))
	for _, c := range f.chunks {
		f.out <- c
	}
	close(f.out)
	return nil
}

func (f *fakeStream) Chunks() <-chan []byte {
	if f.out == nil {
		empty := make(chan []byte)
		close(empty)
		return empty
	}
	return f.out
}

type fakeDevice struct {
	stream *fakeStream
	err    error
}

func (f *fakeDevice) Acquire(ctx context.Context) (attachment.CaptureStream, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stream, nil
}

func newController(conv *fakeConversation, device *fakeDevice) *Controller {
	if device == nil {
		device = &fakeDevice{stream: &fakeStream{}}
	}
	return NewController(conv, repository.NewTranscriptRepository(), attachment.NewRecorder(device))
}

func TestControllerSeedsWelcomeEntry(t *testing.T) {
	c := newController(&fakeConversation{}, nil)

	entries := c.Transcript()
	if len(entries) != 1 {
		t.Fatalf("transcript len = %d, want the welcome entry", len(entries))
	}
	if entries[0].Role != domain.RoleAssistant || entries[0].Text != domain.WelcomeMessage {
		t.Errorf("first entry = %+v, want the assistant welcome", entries[0])
	}
}

func TestControllerSendImageWithoutText(t *testing.T) {
	conv := &fakeConversation{reply: domain.Reply{Text: "That receipt shows 3 items for 12,000 UGX."}}
	c := newController(conv, nil)

	if err := c.StageImage("receipt.jpg", "image/jpeg", []byte{0xFF, 0xD8}); err != nil {
		t.Fatalf("StageImage: %v", err)
	}
	if err := c.Send(context.Background()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	entries := c.Transcript()
	if len(entries) != 3 {
		t.Fatalf("transcript len = %d, want welcome + user + assistant", len(entries))
	}

	user := entries[1]
	if user.Role != domain.RoleUser {
		t.Errorf("role = %q, want user", user.Role)
	}
	if !strings.Contains(user.Text, "analyze this image for business data") {
		t.Errorf("user text = %q, want the image default prompt", user.Text)
	}
	if len(user.Attachments) != 1 || user.Attachments[0].Kind != domain.AttachmentKindImage {
		t.Fatalf("user attachments = %+v, want one image", user.Attachments)
	}
	if !strings.HasPrefix(user.Attachments[0].URL, "data:image/jpeg;base64,") {
		t.Errorf("attachment URL %q is not the original data reference", user.Attachments[0].URL)
	}

	if len(conv.sent) != 1 || conv.sent[0].Attachment == nil {
		t.Fatalf("conversation received %+v, want the composed message with attachment", conv.sent)
	}

	assistant := entries[2]
	if assistant.Role != domain.RoleAssistant || assistant.Text != conv.reply.Text {
		t.Errorf("assistant entry = %+v", assistant)
	}
	if c.IsSending() {
		t.Error("sending flag stuck after Send resolved")
	}
}

func TestControllerStagingReplacesPriorAttachment(t *testing.T) {
	conv := &fakeConversation{reply: domain.Reply{Text: "ok"}}
	c := newController(conv, nil)

	if err := c.StageImage("receipt.jpg", "image/jpeg", []byte{1}); err != nil {
		t.Fatalf("StageImage: %v", err)
	}
	if err := c.StageDocument("sales.csv", "text/csv", []byte("a,b")); err != nil {
		t.Fatalf("StageDocument: %v", err)
	}
	if err := c.Send(context.Background()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(conv.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(conv.sent))
	}
	a := conv.sent[0].Attachment
	if a == nil || a.Kind != domain.AttachmentKindDocument || a.DisplayName != "sales.csv" {
		t.Errorf("attachment = %+v, want only the document", a)
	}
}

func TestControllerUnsupportedDocumentLeavesStagedUntouched(t *testing.T) {
	conv := &fakeConversation{reply: domain.Reply{Text: "ok"}}
	c := newController(conv, nil)

	if err := c.StageImage("receipt.jpg", "image/jpeg", []byte{1}); err != nil {
		t.Fatalf("StageImage: %v", err)
	}
	if err := c.StageDocument("report.docx", "application/msword", []byte{1}); !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if err := c.Send(context.Background()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	a := conv.sent[0].Attachment
	if a == nil || a.Kind != domain.AttachmentKindImage {
		t.Errorf("attachment = %+v, want the earlier image to survive the failed staging", a)
	}
}

func TestControllerSendEmptyIsNoOp(t *testing.T) {
	conv := &fakeConversation{}
	c := newController(conv, nil)

	if err := c.Send(context.Background()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(conv.sent) != 0 {
		t.Error("empty send must not reach the conversation")
	}
	if len(c.Transcript()) != 1 {
		t.Error("empty send must not append transcript entries")
	}
}

func TestControllerRejectsConcurrentSend(t *testing.T) {
	conv := &fakeConversation{block: make(chan struct{}), reply: domain.Reply{Text: "done"}}
	c := newController(conv, nil)
	c.SetText("first")

	done := make(chan error)
	go func() {
		done <- c.Send(context.Background())
	}()

	for !c.IsSending() {
		time.Sleep(time.Millisecond)
	}

	c.SetText("second")
	if err := c.Send(context.Background()); !errors.Is(err, domain.ErrSendInFlight) {
		t.Errorf("err = %v, want ErrSendInFlight", err)
	}

	close(conv.block)
	if err := <-done; err != nil {
		t.Fatalf("first send: %v", err)
	}
}

func TestControllerRecordingFlow(t *testing.T) {
	conv := &fakeConversation{reply: domain.Reply{Text: "I heard: 5 bags of sugar sold."}}
	device := &fakeDevice{stream: &fakeStream{chunks: [][]byte{[]byte("audio-"), []byte("payload")}}}
	c := newController(conv, device)

	if err := c.StartRecording(context.Background()); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	if !c.IsRecording() {
		t.Error("IsRecording = false while recording")
	}
	if err := c.StopRecording(); err != nil {
		t.Fatalf("StopRecording: %v", err)
	}
	if err := c.Send(context.Background()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	msg := conv.sent[0]
	if !strings.Contains(msg.Text, "transcribe this audio") {
		t.Errorf("text = %q, want the audio default prompt", msg.Text)
	}
	if msg.Attachment == nil || msg.Attachment.Kind != domain.AttachmentKindAudio {
		t.Fatalf("attachment = %+v, want audio", msg.Attachment)
	}
	if string(msg.Attachment.Data) != "audio-payload" {
		t.Errorf("payload = %q", msg.Attachment.Data)
	}
}

func TestControllerRecordingDeviceDenied(t *testing.T) {
	c := newController(&fakeConversation{}, &fakeDevice{err: errors.New("denied")})

	if err := c.StartRecording(context.Background()); !errors.Is(err, domain.ErrDeviceUnavailable) {
		t.Errorf("err = %v, want ErrDeviceUnavailable", err)
	}
}

func TestControllerDegradedModeReply(t *testing.T) {
	conv := &fakeConversation{reply: domain.Reply{Text: domain.DegradedModeReply}}
	c := newController(conv, nil)

	c.SetText("hello")
	if err := c.Send(context.Background()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	entries := c.Transcript()
	last := entries[len(entries)-1]
	if last.Text != domain.DegradedModeReply {
		t.Errorf("last entry = %q, want the degraded-mode message", last.Text)
	}
}
