// Package config handles configuration loading using viper.
package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/spf13/viper"

	"firestige.xyz/strix/internal/log"
	"firestige.xyz/strix/internal/utils"
)

// Config is the top-level static configuration. Maps to the `strix:` root
// key in YAML; env vars override via the STRIX_ prefix (e.g. STRIX_CAPTURE_DEVICE).
type Config struct {
	Capture    CaptureConfig     `mapstructure:"capture" yaml:"capture"`
	Correlator CorrelatorConfig  `mapstructure:"correlator" yaml:"correlator"`
	Report     ReportConfig      `mapstructure:"report" yaml:"report"`
	Metrics    MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
	Log        *log.LoggerConfig `mapstructure:"log" yaml:"log"`
}

// CaptureConfig selects and tunes the packet source.
type CaptureConfig struct {
	Source       string `mapstructure:"source" yaml:"source"` // afpacket | pcap | file
	Device       string `mapstructure:"device" yaml:"device"`
	FilePath     string `mapstructure:"file_path" yaml:"file_path"`
	SnapLen      int    `mapstructure:"snap_len" yaml:"snap_len"`
	BufferSizeMB int    `mapstructure:"buffer_size_mb" yaml:"buffer_size_mb"`
	TimeoutMs    int    `mapstructure:"timeout_ms" yaml:"timeout_ms"`
	Promiscuous  bool   `mapstructure:"promiscuous" yaml:"promiscuous"`
	BpfFilter    string `mapstructure:"bpf_filter" yaml:"bpf_filter"`
	QueueSize    int    `mapstructure:"queue_size" yaml:"queue_size"`
}

// CorrelatorConfig bounds how long exchanges stay pending. The artifact
// format does not pin these; they are deliberately configurable.
type CorrelatorConfig struct {
	ArpTimeout  time.Duration `mapstructure:"arp_timeout" yaml:"arp_timeout"`
	IcmpTimeout time.Duration `mapstructure:"icmp_timeout" yaml:"icmp_timeout"`
}

// ReportConfig controls the timeline output.
type ReportConfig struct {
	// Output is a file path; empty means stdout.
	Output string `mapstructure:"output" yaml:"output"`
	// MonitorIP fixes the endpoint whose perspective decides the
	// Outgoing/Incoming direction words. Empty = infer from traffic.
	MonitorIP string `mapstructure:"monitor_ip" yaml:"monitor_ip"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Listen  string `mapstructure:"listen" yaml:"listen"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// configRoot is the top-level wrapper matching the YAML structure `strix: ...`.
type configRoot struct {
	Strix Config `mapstructure:"strix" yaml:"strix"`
}

// Load loads configuration from path, applies env overrides and defaults,
// and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// The `strix.` key prefix maps to STRIX_ env vars via the key replacer
	// (key "strix.capture.device" -> env "STRIX_CAPTURE_DEVICE").
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Strix

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("strix.capture.source", "pcap")
	v.SetDefault("strix.capture.snap_len", 65536)
	v.SetDefault("strix.capture.buffer_size_mb", 8)
	v.SetDefault("strix.capture.timeout_ms", 100)
	v.SetDefault("strix.capture.promiscuous", true)
	v.SetDefault("strix.capture.bpf_filter", utils.DefaultFilter)
	v.SetDefault("strix.capture.queue_size", 1024)

	v.SetDefault("strix.correlator.arp_timeout", "3s")
	v.SetDefault("strix.correlator.icmp_timeout", "5s")

	v.SetDefault("strix.metrics.enabled", false)
	v.SetDefault("strix.metrics.listen", ":9091")
	v.SetDefault("strix.metrics.path", "/metrics")

	v.SetDefault("strix.log.level", "info")
	v.SetDefault("strix.log.pattern", "%time [%level] %msg%n")
	v.SetDefault("strix.log.time", "2006-01-02 15:04:05")
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Capture.Source {
	case "afpacket", "pcap":
		if c.Capture.Device == "" {
			return fmt.Errorf("capture.device is required for source %q", c.Capture.Source)
		}
	case "file":
		if c.Capture.FilePath == "" {
			return fmt.Errorf("capture.file_path is required for source %q", c.Capture.Source)
		}
	default:
		return fmt.Errorf("unknown capture.source %q (must be afpacket, pcap or file)", c.Capture.Source)
	}

	if c.Capture.SnapLen <= 0 {
		return fmt.Errorf("capture.snap_len must be positive, got %d", c.Capture.SnapLen)
	}
	if c.Capture.QueueSize <= 0 {
		return fmt.Errorf("capture.queue_size must be positive, got %d", c.Capture.QueueSize)
	}

	if c.Correlator.ArpTimeout <= 0 {
		return fmt.Errorf("correlator.arp_timeout must be positive, got %v", c.Correlator.ArpTimeout)
	}
	if c.Correlator.IcmpTimeout <= 0 {
		return fmt.Errorf("correlator.icmp_timeout must be positive, got %v", c.Correlator.IcmpTimeout)
	}

	if c.Report.MonitorIP != "" {
		if _, err := netip.ParseAddr(c.Report.MonitorIP); err != nil {
			return fmt.Errorf("report.monitor_ip: %w", err)
		}
	}

	return nil
}

// MonitorAddr returns the parsed monitor IP or the zero Addr when unset.
// Validate has already checked the syntax.
func (c *Config) MonitorAddr() netip.Addr {
	if c.Report.MonitorIP == "" {
		return netip.Addr{}
	}
	addr, _ := netip.ParseAddr(c.Report.MonitorIP)
	return addr
}
