package attachment

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

const captureChunkSize = 4096

// ffmpegDevice records from the default system input via ffmpeg. Acquisition
// fails when ffmpeg is missing or the input cannot be opened, which the
// recorder surfaces as a device-unavailable condition.
type ffmpegDevice struct {
	input string
}

// NewFFmpegDevice captures from the given libavdevice input, for example
// "alsa" with source "default". An empty input selects alsa.
func NewFFmpegDevice(input string) *ffmpegDevice {
	if input == "" {
		input = "alsa"
	}
	return &ffmpegDevice{input: input}
}

func (d *ffmpegDevice) Acquire(ctx context.Context) (CaptureStream, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("looking for `ffmpeg`: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-f", d.input, "-i", "default",
		"-c:a", "libopus", "-f", "ogg", "-")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting ffmpeg: %w", err)
	}

	s := &ffmpegStream{cmd: cmd, done: make(chan struct{})}
	go s.read(stdout)
	return s, nil
}

type ffmpegStream struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu     sync.Mutex
	chunks [][]byte

	closeOnce sync.Once
	out       chan []byte
}

func (s *ffmpegStream) MIMEType() string { return "audio/ogg" }

func (s *ffmpegStream) read(r io.Reader) {
	defer close(s.done)
	for {
		buf := make([]byte, captureChunkSize)
		n, err := r.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.chunks = append(s.chunks, buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Close stops the recording process and seals the buffered chunks. Chunks()
// is only meaningful after Close.
func (s *ffmpegStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		<-s.done
		err = s.drainWait()

		s.mu.Lock()
		out := make(chan []byte, len(s.chunks))
		for _, chunk := range s.chunks {
			out <- chunk
		}
		close(out)
		s.out = out
		s.mu.Unlock()
	})
	return err
}

func (s *ffmpegStream) drainWait() error {
	// The process was killed on purpose; only report unexpected failures.
	if err := s.cmd.Wait(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return fmt.Errorf("waiting for ffmpeg: %w", err)
		}
	}
	return nil
}

func (s *ffmpegStream) Chunks() <-chan []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.out == nil {
		empty := make(chan []byte)
		close(empty)
		return empty
	}
	return s.out
}
