// Package session wires a packet source, the decoder, the correlator and
// the renderer into one capture run with an explicit start/stop lifecycle.
package session

import (
	"context"
	"errors"
	"io"
	"sync"

	uuid "github.com/satori/go.uuid"
	"github.com/tevino/abool"

	"firestige.xyz/strix/internal/core"
	"firestige.xyz/strix/internal/correlator"
	"firestige.xyz/strix/internal/decoder"
	"firestige.xyz/strix/internal/log"
	"firestige.xyz/strix/internal/metrics"
	"firestige.xyz/strix/internal/report"
	"firestige.xyz/strix/internal/source"
)

// Session owns one capture run. One producer goroutine reads the source,
// one consumer goroutine runs decode -> correlate -> render; a bounded
// channel joins them, preserving arrival order. The correlator's tables
// are touched only by the consumer, so no locking is needed.
type Session struct {
	id   string
	src  source.Source
	dec  decoder.Decoder
	corr *correlator.Correlator
	rend *report.Renderer

	frames chan core.Frame
	done   chan struct{}

	running  *abool.AtomicBool
	cancel   context.CancelFunc
	stopOnce sync.Once
	endOnce  sync.Once

	readErr   error
	hasOrigin bool

	logger log.Logger
}

// New assembles a session. queueSize bounds the producer/consumer channel.
func New(src source.Source, dec decoder.Decoder, corr *correlator.Correlator, rend *report.Renderer, queueSize int) *Session {
	if queueSize <= 0 {
		queueSize = 1024
	}
	id := uuid.Must(uuid.NewV4()).String()
	return &Session{
		id:      id,
		src:     src,
		dec:     dec,
		corr:    corr,
		rend:    rend,
		frames:  make(chan core.Frame, queueSize),
		done:    make(chan struct{}),
		running: abool.New(),
		logger:  log.GetLogger().WithField("session", id),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Start opens the source and launches the pipeline. Fails with
// *core.CaptureError when the source cannot be opened, and with
// core.ErrSessionRunning on a second call.
func (s *Session) Start(ctx context.Context) error {
	if !s.running.SetToIf(false, true) {
		return core.ErrSessionRunning
	}

	ctx, s.cancel = context.WithCancel(ctx)

	if err := s.src.Start(ctx); err != nil {
		s.running.UnSet()
		return err
	}

	if err := s.rend.Banner(); err != nil {
		s.running.UnSet()
		s.src.Stop()
		return err
	}

	s.logger.Info("capture session started")

	go s.captureLoop(ctx)
	go s.processLoop()

	return nil
}

// Stop requests shutdown: it cancels the producer and closes the source,
// which unblocks any in-flight read. Wait completes the flush.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.src.Stop()
	})
}

// Wait blocks until capture ends (replay EOF or Stop), then flushes still
// pending exchanges as Lost/Expired and writes the statistics summary.
// Returns the first source read error, if any.
func (s *Session) Wait() error {
	if !s.running.IsSet() && s.cancel == nil {
		return core.ErrSessionNotStarted
	}
	<-s.done

	var err error
	s.endOnce.Do(func() {
		for _, ev := range s.corr.Flush() {
			s.countEvent(ev)
			if rerr := s.rend.Render(ev); rerr != nil && err == nil {
				err = rerr
			}
		}
		if serr := s.rend.Summary(); serr != nil && err == nil {
			err = serr
		}
		s.running.UnSet()
		s.logger.Info("capture session finished")
	})

	if err == nil {
		err = s.readErr
	}
	return err
}

// captureLoop is the producer: it moves frames from the source into the
// bounded channel until EOF, error or cancellation.
func (s *Session) captureLoop(ctx context.Context) {
	defer close(s.frames)

	for {
		frame, err := s.src.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("replay source exhausted")
				return
			}
			if ctx.Err() != nil {
				// Stop closed the source under the read.
				return
			}
			s.readErr = &core.CaptureError{Err: err}
			s.logger.WithError(err).Error("source read failed")
			return
		}

		metrics.FramesCaptured.Inc()

		// Prefer delivery while the queue has room, so a concurrent Stop
		// never drops an already-captured frame.
		select {
		case s.frames <- frame:
		default:
			select {
			case s.frames <- frame:
			case <-ctx.Done():
				return
			}
		}
	}
}

// processLoop is the consumer: decode, correlate, render, in arrival order.
func (s *Session) processLoop() {
	defer close(s.done)

	for frame := range s.frames {
		if !s.hasOrigin {
			s.rend.SetOrigin(frame.Timestamp)
			s.hasOrigin = true
		}

		pkt, err := s.dec.Decode(frame)
		if err != nil {
			var decodeErr *core.DecodeError
			if errors.As(err, &decodeErr) {
				metrics.DecodeErrors.WithLabelValues(decodeErr.Layer).Inc()
			}
			s.logger.WithError(err).Debug("frame skipped")
			continue
		}

		for _, ev := range s.corr.Observe(pkt) {
			s.countEvent(ev)
			if err := s.rend.Render(ev); err != nil {
				s.logger.WithError(err).Error("render failed")
			}
		}
	}
}

func (s *Session) countEvent(ev core.Event) {
	switch ev.Type {
	case core.EventArpReply:
		metrics.ExchangesCompleted.WithLabelValues("arp").Inc()
	case core.EventEchoReply:
		metrics.ExchangesCompleted.WithLabelValues("icmp").Inc()
	case core.EventArpExpired:
		metrics.ExchangesLost.WithLabelValues("arp").Inc()
	case core.EventEchoLost:
		metrics.ExchangesLost.WithLabelValues("icmp").Inc()
	case core.EventOrphanReply:
		metrics.OrphanReplies.Inc()
	}
}
