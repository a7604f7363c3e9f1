// Package core defines sentinel errors and the error taxonomy.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors. Wrap with fmt.Errorf("...: %w", err) to add context.
var (
	// Decoding errors
	ErrPacketTooShort   = errors.New("strix: packet too short")
	ErrUnsupportedProto = errors.New("strix: unsupported protocol")

	// Session errors
	ErrSessionRunning    = errors.New("strix: session already running")
	ErrSessionNotStarted = errors.New("strix: session not started")

	// Configuration errors
	ErrConfigInvalid = errors.New("strix: invalid configuration")
)

// DecodeError describes a malformed or truncated frame. Recovered: the
// frame is skipped and counted, the pipeline keeps running.
type DecodeError struct {
	Layer string // "ethernet", "arp", "ipv4", "icmp"
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("strix: decode %s: %v", e.Layer, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewDecodeError wraps a layer-level failure into a DecodeError.
func NewDecodeError(layer string, err error) *DecodeError {
	return &DecodeError{Layer: layer, Err: err}
}

// CaptureError means the capture source cannot be opened or read.
// Fatal: aborts the session.
type CaptureError struct {
	Device string
	Err    error
}

func (e *CaptureError) Error() string {
	if e.Device == "" {
		return fmt.Sprintf("strix: capture: %v", e.Err)
	}
	return fmt.Sprintf("strix: capture on %s: %v", e.Device, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }
