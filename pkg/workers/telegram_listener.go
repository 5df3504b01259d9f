package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/darta-hq/darta-assistant/pkg/domain"
	"github.com/darta-hq/darta-assistant/pkg/logger"
)

type ChatController interface {
	SetText(s string)
	StageImage(name, mimeType string, data []byte) error
	StageAudio(mimeType string, data []byte)
	StageDocument(name, mimeType string, data []byte) error
	SendForReply(ctx context.Context) (domain.Reply, error)
}

type TelegramClient interface {
	GetUpdates() tgbotapi.UpdatesChannel
	SendText(ctx context.Context, chatID int64, text string)
	SendImage(ctx context.Context, chatID int64, image domain.ImagePayload)
	StartTyping(ctx context.Context, chatID int64)
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// telegramListener drives the shared conversation session from the owner's
// Telegram chat. Updates are processed one at a time: the session allows a
// single send in flight, so there is nothing to gain from fanning out.
type telegramListener struct {
	client      TelegramClient
	controller  ChatController
	ownerChatID int64
}

func NewTelegramListener(client TelegramClient, controller ChatController, ownerChatID int64) (*telegramListener, error) {
	if ownerChatID == 0 {
		return nil, fmt.Errorf("owner chat id is required")
	}
	return &telegramListener{
		client:      client,
		controller:  controller,
		ownerChatID: ownerChatID,
	}, nil
}

func (t *telegramListener) Name() string { return "telegram_listener" }

func (t *telegramListener) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", t.Name(), "ownerChatID", t.ownerChatID)
	defer slog.Info("Worker stopped", "name", t.Name())

	updates := t.client.GetUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			t.processUpdate(ctx, &update)
		}
	}
}

func (t *telegramListener) processUpdate(ctx context.Context, update *tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	ctx = logger.ContextWithRequestID(ctx, fmt.Sprintf("tg-%d", update.UpdateID))

	// Single-owner channel: anything else is ignored, not answered.
	if msg.Chat.ID != t.ownerChatID {
		slog.WarnContext(ctx, "Ignoring update from foreign chat", "chatID", msg.Chat.ID)
		return
	}

	slog.InfoContext(ctx, "Processing update", "chatID", msg.Chat.ID, "messageID", msg.MessageID)

	t.client.StartTyping(ctx, msg.Chat.ID)

	if err := t.stageAttachment(ctx, msg); err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			t.client.SendText(ctx, msg.Chat.ID, "Please upload a PDF, CSV, or text file.")
			return
		}
		slog.ErrorContext(ctx, "Staging attachment", logger.Err(err))
		t.client.SendText(ctx, msg.Chat.ID, domain.ApologeticReply)
		return
	}

	t.controller.SetText(messageText(msg))

	reply, err := t.controller.SendForReply(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSendInFlight) {
			t.client.SendText(ctx, msg.Chat.ID, "One moment, I'm still working on your last message.")
			return
		}
		slog.ErrorContext(ctx, "Sending message", logger.Err(err))
		return
	}

	if reply.Text != "" {
		t.client.SendText(ctx, msg.Chat.ID, reply.Text)
	}
	for _, image := range reply.Images {
		t.client.SendImage(ctx, msg.Chat.ID, image)
	}
}

// stageAttachment maps one Telegram message to at most one staged attachment:
// photo, voice note, audio file, or document.
func (t *telegramListener) stageAttachment(ctx context.Context, msg *tgbotapi.Message) error {
	switch {
	case len(msg.Photo) > 0:
		// The last photo size is the largest rendition.
		photo := msg.Photo[len(msg.Photo)-1]
		data, err := t.client.DownloadFile(ctx, photo.FileID)
		if err != nil {
			return fmt.Errorf("downloading photo: %w", err)
		}
		return t.controller.StageImage("photo.jpg", "image/jpeg", data)

	case msg.Voice != nil:
		data, err := t.client.DownloadFile(ctx, msg.Voice.FileID)
		if err != nil {
			return fmt.Errorf("downloading voice note: %w", err)
		}
		mimeType := msg.Voice.MimeType
		if mimeType == "" {
			mimeType = "audio/ogg"
		}
		t.controller.StageAudio(mimeType, data)
		return nil

	case msg.Audio != nil:
		data, err := t.client.DownloadFile(ctx, msg.Audio.FileID)
		if err != nil {
			return fmt.Errorf("downloading audio: %w", err)
		}
		t.controller.StageAudio(msg.Audio.MimeType, data)
		return nil

	case msg.Document != nil:
		data, err := t.client.DownloadFile(ctx, msg.Document.FileID)
		if err != nil {
			return fmt.Errorf("downloading document: %w", err)
		}
		return t.controller.StageDocument(msg.Document.FileName, msg.Document.MimeType, data)
	}

	return nil
}

func messageText(msg *tgbotapi.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}
