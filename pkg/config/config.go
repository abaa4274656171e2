// Package config provides configuration management for gntraits.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify
//   Config
// - Invalid options are rejected with gn.Warn() - config remains in a
//   valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Endpoint: url, token
//   - Throttle: row_threshold, delay_ms
//   - Dump: work_dir, archive
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Dump.Clade, Dump.ChunkSize (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNTRAITS_ prefix with underscores for nesting:
//
//	GNTRAITS_ENDPOINT_URL=https://eol.org/service/cypher
//	GNTRAITS_ENDPOINT_TOKEN=...
//	GNTRAITS_THROTTLE_ROW_THRESHOLD=100
//	GNTRAITS_LOG_LEVEL=info
package config

// Config represents the complete gntraits configuration.
type Config struct {
	// Endpoint contains remote graph-query service settings.
	Endpoint EndpointConfig `mapstructure:"endpoint" yaml:"endpoint"`

	// Throttle contains the flat backpressure policy protecting the
	// shared remote service.
	Throttle ThrottleConfig `mapstructure:"throttle" yaml:"throttle"`

	// Dump contains settings specific to the dump command.
	Dump DumpConfig `mapstructure:"dump" yaml:"dump"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories
	// reside. It must be set by CLI during init, there is no default
	// value for it.
	HomeDir string
}

// EndpointConfig contains remote graph-query service parameters.
type EndpointConfig struct {
	// URL is the Cypher-over-HTTP endpoint queries are submitted to.
	URL string `mapstructure:"url" yaml:"url"`

	// Token is an optional bearer token for the endpoint.
	Token string `mapstructure:"token" yaml:"token"`
}

// ThrottleConfig exposes the backpressure policy: after any response
// larger than RowThreshold rows, the client pauses DelayMs milliseconds
// before the next call. The policy is applied uniformly to every caller.
type ThrottleConfig struct {
	// RowThreshold is the response size above which the pause applies.
	RowThreshold int `mapstructure:"row_threshold" yaml:"row_threshold"`

	// DelayMs is the pause duration in milliseconds.
	DelayMs int `mapstructure:"delay_ms" yaml:"delay_ms"`
}

// DumpConfig contains settings specific to the dump command.
type DumpConfig struct {
	// WorkDir is the working directory for chunk files. It is reused
	// across runs and is the resumability anchor: a chunk file present
	// there is never re-fetched. Empty means the default cache
	// location under HomeDir.
	WorkDir string `mapstructure:"work_dir" yaml:"work_dir"`

	// Archive is the destination path of the resulting tar.gz archive.
	Archive string `mapstructure:"archive" yaml:"archive"`

	// Clade optionally restricts the dump to the subtree rooted at
	// this page ID. Zero means no restriction. Runtime-only.
	Clade int `mapstructure:"clade" yaml:"clade"`

	// ChunkSize is the number of rows requested per SKIP/LIMIT window
	// during a fetch. Zero means the default window size. Runtime-only.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Endpoint: EndpointConfig{
			URL: "https://eol.org/service/cypher",
		},
		Throttle: ThrottleConfig{
			RowThreshold: 100,
			DelayMs:      1000,
		},
		Dump: DumpConfig{
			Archive: "trait_bank.tgz",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
