package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptEndpointURL sets the remote graph-query endpoint URL.
func OptEndpointURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Endpoint URL", s) {
			c.Endpoint.URL = s
		}
	}
}

// OptEndpointToken sets the bearer token for the endpoint.
func OptEndpointToken(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Endpoint Token", s) {
			c.Endpoint.Token = s
		}
	}
}

// OptThrottleRowThreshold sets the response size above which the client
// pauses before its next call.
func OptThrottleRowThreshold(i int) Option {
	return func(c *Config) {
		if isValidInt("Throttle Row Threshold", i) {
			c.Throttle.RowThreshold = i
		}
	}
}

// OptThrottleDelayMs sets the backpressure pause in milliseconds.
func OptThrottleDelayMs(i int) Option {
	return func(c *Config) {
		if isValidInt("Throttle Delay", i) {
			c.Throttle.DelayMs = i
		}
	}
}

// OptDumpWorkDir sets the working directory for chunk files.
// The directory is reused across runs for resumability.
func OptDumpWorkDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Dump Work Directory", s) {
			c.Dump.WorkDir = s
		}
	}
}

// OptDumpArchive sets the destination path of the resulting archive.
func OptDumpArchive(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Dump Archive", s) {
			c.Dump.Archive = s
		}
	}
}

// OptDumpClade restricts the dump to the subtree rooted at a page ID.
// Runtime-only field - not in ToOptions().
func OptDumpClade(i int) Option {
	return func(c *Config) {
		if isValidInt("Clade Page ID", i) {
			c.Dump.Clade = i
		}
	}
}

// OptDumpChunkSize sets the SKIP/LIMIT window size for oversized queries.
// Runtime-only field - not in ToOptions().
func OptDumpChunkSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Chunk Size", i) {
			c.Dump.ChunkSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdin", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log
// locations. Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
