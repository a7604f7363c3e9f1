// Package log provides the process-wide logger, backed by logrus.
package log

import "sync"

// Logger is the logging facade used throughout the agent.
type Logger interface {
	Trace(args ...interface{})
	Tracef(format string, args ...interface{})

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})

	WithField(field string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger

	IsDebugEnabled() bool
}

var (
	mu     sync.RWMutex
	logger Logger = newAdapter(defaultConfig())
)

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init replaces the process-wide logger according to cfg. Safe to call
// once at startup, before goroutines holding the old logger are spawned.
func Init(cfg *LoggerConfig) error {
	if cfg == nil {
		cfg = defaultConfig()
	}
	adapter, err := newAdapterChecked(cfg)
	if err != nil {
		return err
	}
	mu.Lock()
	logger = adapter
	mu.Unlock()
	return nil
}
