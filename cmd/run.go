package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firestige.xyz/strix/internal/config"
	"firestige.xyz/strix/internal/correlator"
	"firestige.xyz/strix/internal/decoder"
	"firestige.xyz/strix/internal/log"
	"firestige.xyz/strix/internal/metrics"
	"firestige.xyz/strix/internal/report"
	"firestige.xyz/strix/internal/session"
	"firestige.xyz/strix/internal/source"

	// Packet sources register themselves on import.
	_ "firestige.xyz/strix/internal/source/afpacket"
	_ "firestige.xyz/strix/internal/source/file"
	_ "firestige.xyz/strix/internal/source/pcap"
)

// runCapture loads the config at configFile, assembles a session and runs
// it to completion. Live sources stop on SIGINT/SIGTERM; the file source
// stops at end of capture.
func runCapture(overrides func(*config.Config)) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if overrides != nil {
		overrides(cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if err := log.Init(cfg.Log); err != nil {
		return err
	}
	logger := log.GetLogger()

	var srv *metrics.Server
	if cfg.Metrics.Enabled {
		srv = metrics.NewServer(cfg.Metrics.Listen, cfg.Metrics.Path)
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Stop(ctx)
		}()
	}

	src, err := source.New(cfg.Capture.Source, source.Config{
		Device:       cfg.Capture.Device,
		FilePath:     cfg.Capture.FilePath,
		SnapLen:      cfg.Capture.SnapLen,
		BufferSizeMB: cfg.Capture.BufferSizeMB,
		TimeoutMs:    cfg.Capture.TimeoutMs,
		Promiscuous:  cfg.Capture.Promiscuous,
		BpfFilter:    cfg.Capture.BpfFilter,
	})
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.Report.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	iface := cfg.Capture.Device
	if cfg.Capture.Source == "file" {
		iface = cfg.Capture.FilePath
	}
	rend := report.New(out, report.Config{
		Iface:     iface,
		MonitorIP: cfg.MonitorAddr(),
	})

	corr := correlator.New(correlator.Config{
		ArpTimeout:  cfg.Correlator.ArpTimeout,
		IcmpTimeout: cfg.Correlator.IcmpTimeout,
	})

	sess := session.New(src, decoder.New(), corr, rend, cfg.Capture.QueueSize)
	if err := sess.Start(context.Background()); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		sig := <-sigCh
		logger.WithField("signal", sig.String()).Info("shutting down")
		sess.Stop()
	}()

	return sess.Wait()
}

// openOutput opens the report destination. An empty path means stdout,
// which must not be closed.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
