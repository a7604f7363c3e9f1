// Package source abstracts raw frame acquisition from a live interface or
// a replay file.
package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"firestige.xyz/strix/internal/core"
)

// Source produces a lazy, ordered sequence of frames. Live sources are
// infinite; replay sources end with io.EOF. Frames arrive in non-decreasing
// timestamp order.
//
// ReadFrame blocks; Stop closes the underlying handle, which unblocks any
// in-flight read. Start fails with *core.CaptureError when the interface
// or file cannot be opened.
type Source interface {
	Start(ctx context.Context) error
	ReadFrame() (core.Frame, error)
	LinkType() layers.LinkType
	Stop() error
}

// ToFrame converts a gopacket read result into a core.Frame.
func ToFrame(data []byte, ci gopacket.CaptureInfo) core.Frame {
	return core.Frame{
		Data:       data,
		Timestamp:  ci.Timestamp,
		CaptureLen: uint32(ci.CaptureLength),
		OrigLen:    uint32(ci.Length),
	}
}

// Factory builds a Source from its capture settings.
type Factory func(cfg Config) (Source, error)

// Config is the source-facing subset of the capture configuration.
type Config struct {
	Device       string
	FilePath     string
	SnapLen      int
	BufferSizeMB int
	TimeoutMs    int
	Promiscuous  bool
	BpfFilter    string
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Factory)
)

// Register adds a named source factory. Implementations call this from
// their init; callers blank-import the packages they want available.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = f
}

// New builds the source registered under name.
func New(name string, cfg Config) (Source, error) {
	mu.RLock()
	f, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown source %q", core.ErrConfigInvalid, name)
	}
	return f(cfg)
}
