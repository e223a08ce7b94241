package agent

import (
	"github.com/apex/log"
	"github.com/xyproto/env/v2"
)

// Environment switches.
const (
	EnvDisable      = "CLASSPATCH_DISABLE"
	EnvSkipShutdown = "CLASSPATCH_SKIP_SHUTDOWN"
	EnvClass        = "CLASSPATCH_CLASS"
	EnvLogLevel     = "CLASSPATCH_LOG_LEVEL"
)

// DefaultClassName is the internal name of the class carrying fetchJar.
const DefaultClassName = "hudson/remoting/RemoteClassLoader$ClassLoaderProxy"

// Config controls which class the hook touches and how it reacts to
// failure.
type Config struct {
	// ClassName is matched exactly against the internal name of each class
	// offered to the hook.
	ClassName string
	// Disable turns the hook into a no-op.
	Disable bool
	// SkipShutdown keeps the process alive when patching fails, leaving it
	// unprotected.
	SkipShutdown bool
}

// ConfigFromEnv reads the switches from the process environment.
func ConfigFromEnv() Config {
	return Config{
		ClassName:    env.Str(EnvClass, DefaultClassName),
		Disable:      env.Bool(EnvDisable),
		SkipShutdown: env.Bool(EnvSkipShutdown),
	}
}

// LogLevelFromEnv parses CLASSPATCH_LOG_LEVEL, falling back to info.
func LogLevelFromEnv() log.Level {
	level, err := log.ParseLevel(env.Str(EnvLogLevel, "info"))
	if err != nil {
		return log.InfoLevel
	}
	return level
}
