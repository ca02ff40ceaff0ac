// Package config loads podium's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/podium/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	[storage]
//	backend = "sqlite"            # sqlite | file | memory
//	path = "~/.local/share/podium/podium.db"
//
//	[suggest]
//	model = "gemini-2.5-flash"
//	api_key_env = "GEMINI_API_KEY"
//	category = "interesting current-affairs debate topics"
//	count = 3
//	timeout_seconds = 20
//
//	[draw]
//	shuffle_frames = 25
//	shuffle_interval_ms = 70
//
//	[log]
//	path = "~/.local/share/podium/podium.log"
//	level = "info"
//
//	[[days]]
//	id = 1
//	label = "Day 1"
//
// Every field is optional. Without a [[days]] table podium uses three days
// with ids 1, 2 and 3. The day set is fixed for the lifetime of the process.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors, an unknown storage backend, and
// duplicate or non-positive day ids. A missing file is not an error.
//
// The API key is never stored in the file. Suggest.APIKey reads it from the
// environment variable named by api_key_env.
package config
