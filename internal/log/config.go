package log

// LoggerConfig configures the process-wide logger.
//
// Pattern supports %time, %level, %field and %msg placeholders. When empty,
// the prefixed text formatter is used instead, which suits interactive runs.
type LoggerConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	Time    string `mapstructure:"time" yaml:"time"`

	File *FileAppenderConfig `mapstructure:"file" yaml:"file,omitempty"`
}

// FileAppenderConfig configures the rotating file appender.
type FileAppenderConfig struct {
	Filename   string `mapstructure:"filename" yaml:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

func defaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level: "info",
		Time:  "2006-01-02 15:04:05",
	}
}
