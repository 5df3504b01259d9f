package attachment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/darta-hq/darta-assistant/pkg/domain"
	"github.com/darta-hq/darta-assistant/pkg/logger"
)

// CaptureDevice acquires the microphone. Acquisition can fail when permission
// is denied or hardware is absent.
type CaptureDevice interface {
	Acquire(ctx context.Context) (CaptureStream, error)
}

// CaptureStream is one live recording. Chunks delivers buffered audio until
// the stream is closed; Close releases the underlying device.
type CaptureStream interface {
	MIMEType() string
	Chunks() <-chan []byte
	Close() error
}

type recorderState int

const (
	stateIdle recorderState = iota
	stateRecording
)

var (
	errAlreadyRecording = errors.New("recording already in progress")
	errNotRecording     = errors.New("no recording in progress")
)

// Recorder drives the two-state capture machine Idle -> Recording -> Idle.
// The device is exclusively owned for the duration of one recording and is
// released on every exit path from Recording.
type Recorder struct {
	device CaptureDevice

	mu     sync.Mutex
	state  recorderState
	stream CaptureStream
}

func NewRecorder(device CaptureDevice) *Recorder {
	return &Recorder{device: device}
}

func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == stateRecording
}

// Start acquires the capture device and enters Recording. A failed
// acquisition leaves the recorder Idle and surfaces ErrDeviceUnavailable;
// there is no automatic retry.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == stateRecording {
		return errAlreadyRecording
	}

	stream, err := r.device.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}

	r.stream = stream
	r.state = stateRecording
	slog.InfoContext(ctx, "Recording started", "mimeType", stream.MIMEType())
	return nil
}

// Stop flushes buffered chunks into a single audio attachment, releases the
// device, and returns to Idle.
func (r *Recorder) Stop() (*domain.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateRecording {
		return nil, errNotRecording
	}

	stream := r.stream
	r.stream = nil
	r.state = stateIdle

	// A noisy teardown must not eat the recording: Close seals the chunks
	// either way, so the payload is still flushed.
	if err := stream.Close(); err != nil {
		slog.Warn("Releasing capture device", logger.Err(err))
	}

	var payload []byte
	for chunk := range stream.Chunks() {
		payload = append(payload, chunk...)
	}

	mimeType := stream.MIMEType()
	slog.Info("Recording stopped", "mimeType", mimeType, "sizeBytes", len(payload))

	return &domain.Attachment{
		Kind:       domain.AttachmentKindAudio,
		MIMEType:   mimeType,
		Data:       payload,
		PreviewURL: DataURL(mimeType, payload),
	}, nil
}

// Cancel discards the current recording, if any, releasing the device without
// producing an attachment.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateRecording {
		return
	}

	if err := r.stream.Close(); err != nil {
		slog.Warn("Releasing capture device on cancel", logger.Err(err))
	}
	for range r.stream.Chunks() {
	}
	r.stream = nil
	r.state = stateIdle
}
