package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAndValidateAcceptsDefaults(t *testing.T) {
	path := writeConfig(t, `
strix:
  capture:
    source: pcap
    device: eth0
`)

	cfg, err := loadAndValidate(path)
	require.NoError(t, err)
	assert.Equal(t, "arp or icmp", cfg.Capture.BpfFilter)
}

func TestLoadAndValidateRejectsBadFilter(t *testing.T) {
	path := writeConfig(t, `
strix:
  capture:
    source: pcap
    device: eth0
    bpf_filter: "this is not bpf"
`)

	_, err := loadAndValidate(path)
	assert.ErrorContains(t, err, "capture.bpf_filter")
}
