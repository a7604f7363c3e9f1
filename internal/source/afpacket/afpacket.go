// Package afpacket implements a live source over a Linux AF_PACKET
// TPacket v3 ring buffer.
package afpacket

import (
	"context"
	"os"
	"time"

	"github.com/google/gopacket/afpacket"
	"github.com/google/gopacket/layers"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/source"
	"firestige.xyz/strix/internal/utils"
)

// Name is the registry key for this source.
const Name = "afpacket"

func init() {
	source.Register(Name, NewSource)
}

// Source reads frames from an AF_PACKET ring.
type Source struct {
	handle *afpacket.TPacket

	device      string
	snapLen     int
	frameSize   int
	blockSize   int
	numBlocks   int
	pollTimeout time.Duration
	bpfFilter   string
}

// NewSource creates an afpacket source. The ring geometry is derived from
// the configured buffer budget and snap length.
func NewSource(cfg source.Config) (source.Source, error) {
	if cfg.Device == "" {
		return nil, &core.CaptureError{Err: core.ErrConfigInvalid}
	}

	frameSize, blockSize, numBlocks, err := ringGeometry(cfg.BufferSizeMB, cfg.SnapLen, os.Getpagesize())
	if err != nil {
		return nil, &core.CaptureError{Device: cfg.Device, Err: err}
	}

	return &Source{
		device:      cfg.Device,
		snapLen:     cfg.SnapLen,
		frameSize:   frameSize,
		blockSize:   blockSize,
		numBlocks:   numBlocks,
		pollTimeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		bpfFilter:   cfg.BpfFilter,
	}, nil
}

func (s *Source) Start(ctx context.Context) error {
	opts := []interface{}{
		afpacket.OptInterface(s.device),
		afpacket.OptFrameSize(s.frameSize),
		afpacket.OptBlockSize(s.blockSize),
		afpacket.OptNumBlocks(s.numBlocks),
		afpacket.SocketRaw,
		afpacket.TPacketVersion3,
	}
	// Without an explicit timeout the poll blocks until traffic arrives;
	// a zero timeout would make it return immediately and spin.
	if s.pollTimeout > 0 {
		opts = append(opts, afpacket.OptPollTimeout(s.pollTimeout))
	}

	h, err := afpacket.NewTPacket(opts...)
	if err != nil {
		return &core.CaptureError{Device: s.device, Err: err}
	}

	if s.bpfFilter != "" {
		rawBpf, err := utils.CompileBpf(s.bpfFilter, s.snapLen)
		if err != nil {
			h.Close()
			return &core.CaptureError{Device: s.device, Err: err}
		}
		if err := h.SetBPF(rawBpf); err != nil {
			h.Close()
			return &core.CaptureError{Device: s.device, Err: err}
		}
	}

	s.handle = h
	return nil
}

func (s *Source) ReadFrame() (core.Frame, error) {
	for {
		data, ci, err := s.handle.ZeroCopyReadPacketData()
		if err == afpacket.ErrTimeout {
			// Poll timeout, nothing captured yet.
			continue
		}
		if err != nil {
			return core.Frame{}, err
		}

		// The ring slot is reused on the next read; the pipeline may
		// outlive it.
		buf := make([]byte, len(data))
		copy(buf, data)
		return source.ToFrame(buf, ci), nil
	}
}

func (s *Source) LinkType() layers.LinkType {
	return layers.LinkTypeEthernet
}

// Stop closes the ring. A concurrent ReadFrame unblocks with an error.
func (s *Source) Stop() error {
	if s.handle != nil {
		s.handle.Close()
	}
	return nil
}
