// Package file implements a replay source over a pcap capture file.
package file

import (
	"context"
	"io"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/source"
)

// Name is the registry key for this source.
const Name = "file"

func init() {
	source.Register(Name, NewSource)
}

// Source replays frames from a pcap file with their recorded timestamps.
// ReadFrame returns io.EOF at the end of the file.
type Source struct {
	path   string
	handle *pcap.Handle
}

// NewSource creates a file replay source.
func NewSource(cfg source.Config) (source.Source, error) {
	if cfg.FilePath == "" {
		return nil, &core.CaptureError{Err: core.ErrConfigInvalid}
	}
	return &Source{path: cfg.FilePath}, nil
}

func (s *Source) Start(ctx context.Context) error {
	handle, err := pcap.OpenOffline(s.path)
	if err != nil {
		return &core.CaptureError{Device: s.path, Err: err}
	}
	s.handle = handle
	return nil
}

func (s *Source) ReadFrame() (core.Frame, error) {
	if s.handle == nil {
		return core.Frame{}, core.ErrSessionNotStarted
	}

	data, ci, err := s.handle.ReadPacketData()
	if err != nil {
		if err == io.EOF {
			return core.Frame{}, io.EOF
		}
		return core.Frame{}, err
	}
	return source.ToFrame(data, ci), nil
}

func (s *Source) LinkType() layers.LinkType {
	if s.handle == nil {
		return layers.LinkTypeEthernet
	}
	return s.handle.LinkType()
}

func (s *Source) Stop() error {
	if s.handle != nil {
		s.handle.Close()
	}
	return nil
}
