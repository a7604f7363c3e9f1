package afpacket

import (
	"testing"
	"time"

	"firestige.xyz/strix/internal/source"
)

func TestNewSourcePollTimeout(t *testing.T) {
	src, err := NewSource(source.Config{Device: "eth0", SnapLen: 65536, BufferSizeMB: 8, TimeoutMs: 100})
	if err != nil {
		t.Fatalf("NewSource failed: %v", err)
	}

	s := src.(*Source)
	if s.pollTimeout != 100*time.Millisecond {
		t.Errorf("pollTimeout = %v, want 100ms", s.pollTimeout)
	}
	if s.blockSize%s.frameSize != 0 {
		t.Errorf("blockSize %d not a multiple of frameSize %d", s.blockSize, s.frameSize)
	}
}

func TestNewSourceRequiresDevice(t *testing.T) {
	if _, err := NewSource(source.Config{SnapLen: 65536, BufferSizeMB: 8}); err == nil {
		t.Error("expected error for missing device")
	}
}
