package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v9"

	"github.com/darta-hq/darta-assistant/pkg/api/handler"
	"github.com/darta-hq/darta-assistant/pkg/attachment"
	"github.com/darta-hq/darta-assistant/pkg/chat"
	"github.com/darta-hq/darta-assistant/pkg/gemini"
	"github.com/darta-hq/darta-assistant/pkg/logger"
	"github.com/darta-hq/darta-assistant/pkg/openai"
	"github.com/darta-hq/darta-assistant/pkg/repository"
	"github.com/darta-hq/darta-assistant/pkg/services"
	"github.com/darta-hq/darta-assistant/pkg/telegram"
	"github.com/darta-hq/darta-assistant/pkg/workers"
)

type Config struct {
	// GeminiAPIKey may be empty: the assistant then runs in degraded mode and
	// answers every send with a fixed notice instead of failing.
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	GeminiTextModel  string `env:"GEMINI_TEXT_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiImageModel string `env:"GEMINI_IMAGE_MODEL" envDefault:"gemini-2.5-flash-image"`

	// ImageProvider selects the marketing-image backend: "gemini" or "openai".
	ImageProvider string `env:"IMAGE_PROVIDER" envDefault:"gemini"`
	OpenAIToken   string `env:"OPEN_AI_TOKEN"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	AudioCaptureInput string `env:"AUDIO_CAPTURE_INPUT" envDefault:"alsa"`

	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramOwnerChatID int64  `env:"TELEGRAM_OWNER_CHAT_ID"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	workerGroup, err := setupWorkers()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers() (workers.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set, running in degraded mode")
	}

	geminiClient := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel)

	gateway, err := setupImageGateway(cfg, geminiClient)
	if err != nil {
		return nil, err
	}

	conversation := services.NewConversationService(modelClient{geminiClient}, gateway)

	transcriptRepo := repository.NewTranscriptRepository()
	dashboardRepo := repository.NewDashboardRepository()

	recorder := attachment.NewRecorder(attachment.NewFFmpegDevice(cfg.AudioCaptureInput))
	controller := chat.NewController(conversation, transcriptRepo, recorder)

	var workerGroup workers.Group

	mux := http.NewServeMux()
	messagesHandler := handler.NewMessages(controller)
	recordingHandler := handler.NewRecording(controller)
	transcriptHandler := handler.NewTranscript(controller)
	dashboardHandler := handler.NewDashboard(dashboardRepo)
	healthHandler := handler.NewHealth()

	mux.HandleFunc("POST /api/messages", messagesHandler.Send)
	mux.HandleFunc("POST /api/recording/start", recordingHandler.Start)
	mux.HandleFunc("POST /api/recording/stop", recordingHandler.Stop)
	mux.HandleFunc("GET /api/transcript", transcriptHandler.Get)
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.Get)
	mux.HandleFunc("GET /api/health", healthHandler.Get)

	workerGroup = append(workerGroup, workers.NewHTTPServer(cfg.HTTPAddr, mux))

	if cfg.TelegramBotToken != "" {
		telegramClient, err := telegram.NewClient(cfg.TelegramBotToken)
		if err != nil {
			return nil, fmt.Errorf("creating telegram client: %w", err)
		}

		listener, err := workers.NewTelegramListener(telegramClient, controller, cfg.TelegramOwnerChatID)
		if err != nil {
			return nil, fmt.Errorf("creating telegram listener: %w", err)
		}
		workerGroup = append(workerGroup, listener)
	}

	return workerGroup, nil
}

func setupImageGateway(cfg Config, geminiClient *gemini.Client) (services.ImageSynthesizer, error) {
	switch cfg.ImageProvider {
	case "gemini":
		return geminiClient, nil
	case "openai":
		imageClient, err := openai.NewImageClient(cfg.OpenAIToken)
		if err != nil {
			return nil, fmt.Errorf("creating openai image client: %w", err)
		}
		return imageClient, nil
	default:
		return nil, fmt.Errorf("unknown image provider: %q", cfg.ImageProvider)
	}
}

// modelClient narrows the Gemini client to the conversation service's
// session-opening interface.
type modelClient struct {
	client *gemini.Client
}

func (m modelClient) StartSession(ctx context.Context) (services.ModelSession, error) {
	session, err := m.client.StartSession(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}
