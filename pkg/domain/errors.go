package domain

import "errors"

var (
	// ErrUnsupportedFormat is returned when a selected file is not a
	// supported image or document type. Staging is aborted; any previously
	// staged attachment is left untouched.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrDeviceUnavailable is returned when the audio capture device cannot
	// be acquired. Reported to the user immediately, never retried.
	ErrDeviceUnavailable = errors.New("capture device unavailable")

	// ErrMissingCredentials marks the degraded mode: no model credential is
	// configured, every send yields DegradedModeReply.
	ErrMissingCredentials = errors.New("model credentials missing")

	// ErrEmptyMessage guards sends that would produce no parts. A silent
	// no-op, never user-visible.
	ErrEmptyMessage = errors.New("empty message")

	// ErrSendInFlight is returned when a send is requested while another is
	// outstanding. Callers are expected to disable sending while busy, so
	// hitting this is a precondition violation, not a race the core resolves.
	ErrSendInFlight = errors.New("a send is already in flight")
)

const (
	// DegradedModeReply is the fixed answer used for every send while no
	// model credential is configured. The UI stays usable without one.
	DegradedModeReply = "I can't connect right now (missing API key). Please configure the assistant and try again."

	// ApologeticReply absorbs any model or transport failure during a turn.
	ApologeticReply = "Sorry, I had trouble processing that request."
)
