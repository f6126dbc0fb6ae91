package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/rift.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Runtime: RuntimeConfig{
			FPS:  60,
			Seed: 0,
		},
		Input: InputConfig{
			KeyHold: 500 * time.Millisecond, // Matches the common 500ms auto-repeat delay; longer delays need a larger value
		},
		Server: ServerConfig{
			Address:     "0.0.0.0:2222",
			HostKey:     ".ssh/rift_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
		Audio: AudioConfig{
			Enabled: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
