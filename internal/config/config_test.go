package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
strix:
  capture:
    source: pcap
    device: eth0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pcap", cfg.Capture.Source)
	assert.Equal(t, "eth0", cfg.Capture.Device)
	assert.Equal(t, 65536, cfg.Capture.SnapLen)
	assert.Equal(t, 1024, cfg.Capture.QueueSize)
	assert.Equal(t, "arp or icmp", cfg.Capture.BpfFilter)
	assert.Equal(t, 3*time.Second, cfg.Correlator.ArpTimeout)
	assert.Equal(t, 5*time.Second, cfg.Correlator.IcmpTimeout)
	assert.False(t, cfg.Metrics.Enabled)
	require.NotNil(t, cfg.Log)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
strix:
  capture:
    source: file
    file_path: /tmp/ping.pcap
    queue_size: 64
  correlator:
    arp_timeout: 1500ms
    icmp_timeout: 10s
  report:
    monitor_ip: 10.0.0.1
  log:
    level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Capture.Source)
	assert.Equal(t, "/tmp/ping.pcap", cfg.Capture.FilePath)
	assert.Equal(t, 64, cfg.Capture.QueueSize)
	assert.Equal(t, 1500*time.Millisecond, cfg.Correlator.ArpTimeout)
	assert.Equal(t, 10*time.Second, cfg.Correlator.IcmpTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.MonitorAddr().IsValid())
	assert.Equal(t, "10.0.0.1", cfg.MonitorAddr().String())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestValidateRejectsBadSource(t *testing.T) {
	path := writeConfig(t, `
strix:
  capture:
    source: carrier-pigeon
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown capture.source")
}

func TestValidateRequiresDevice(t *testing.T) {
	path := writeConfig(t, `
strix:
  capture:
    source: afpacket
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "capture.device is required")
}

func TestValidateRejectsBadMonitorIP(t *testing.T) {
	path := writeConfig(t, `
strix:
  capture:
    source: pcap
    device: eth0
  report:
    monitor_ip: not-an-ip
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "monitor_ip")
}
