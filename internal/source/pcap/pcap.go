// Package pcap implements a live source over a libpcap handle.
package pcap

import (
	"context"
	"time"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/source"
)

// Name is the registry key for this source.
const Name = "pcap"

func init() {
	source.Register(Name, NewSource)
}

// Source reads frames from a live libpcap handle.
type Source struct {
	handle *pcap.Handle

	device      string
	snapLen     int
	timeout     time.Duration
	promiscuous bool
	bpfFilter   string
}

// NewSource creates a live pcap source.
func NewSource(cfg source.Config) (source.Source, error) {
	if cfg.Device == "" {
		return nil, &core.CaptureError{Err: core.ErrConfigInvalid}
	}

	timeout := pcap.BlockForever
	if cfg.TimeoutMs > 0 {
		timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	}

	return &Source{
		device:      cfg.Device,
		snapLen:     cfg.SnapLen,
		timeout:     timeout,
		promiscuous: cfg.Promiscuous,
		bpfFilter:   cfg.BpfFilter,
	}, nil
}

func (s *Source) Start(ctx context.Context) error {
	handle, err := pcap.OpenLive(s.device, int32(s.snapLen), s.promiscuous, s.timeout)
	if err != nil {
		return &core.CaptureError{Device: s.device, Err: err}
	}

	if s.bpfFilter != "" {
		if err := handle.SetBPFFilter(s.bpfFilter); err != nil {
			handle.Close()
			return &core.CaptureError{Device: s.device, Err: err}
		}
	}

	s.handle = handle
	return nil
}

func (s *Source) ReadFrame() (core.Frame, error) {
	for {
		data, ci, err := s.handle.ReadPacketData()
		if err == pcap.NextErrorTimeoutExpired {
			// Poll timeout, nothing captured yet.
			continue
		}
		if err != nil {
			return core.Frame{}, err
		}
		return source.ToFrame(data, ci), nil
	}
}

func (s *Source) LinkType() layers.LinkType {
	if s.handle == nil {
		return layers.LinkTypeEthernet
	}
	return s.handle.LinkType()
}

// Stop closes the handle. A concurrent ReadFrame unblocks with an error.
func (s *Source) Stop() error {
	if s.handle != nil {
		s.handle.Close()
	}
	return nil
}
