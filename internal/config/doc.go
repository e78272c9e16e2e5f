// Package config handles loading and parsing the roster configuration file.
//
// # Overview
//
// This package reads roster's TOML configuration to discover the accounts
// API endpoint, the client log destination, and the session refresh cadence.
// The file is small on purpose: everything about the signed-in user lives on
// the server, so the client only needs to know where the server is.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/roster/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/roster/config.toml
//   - API endpoint: 127.0.0.1:8080
//   - Log file: ~/.local/share/roster/roster.log
//   - Log level: info
//   - Session refresh: 600 seconds
//
// # TOML Format
//
// Example roster config.toml:
//
//	api_base = "127.0.0.1:8080"
//	log_file = "~/.local/share/roster/roster.log"
//	log_level = "debug"
//	session_refresh_seconds = 600
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Path Expansion
//
// The package handles several path formats:
//
//   - Absolute paths: Used as-is ("/var/log/roster.log")
//   - Tilde paths: Expanded to home directory ("~/.config/roster")
//   - Relative paths: Converted to absolute based on current directory
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
// This allows roster to work out-of-the-box against a local server
// without any configuration file.
//
// # Usage Example
//
//	// Use default config path
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//
//	// Access configuration
//	client, err := api.NewClient(cfg.APIBase, logger)
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
package config
