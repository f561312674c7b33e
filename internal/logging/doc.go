// Package logging provides structured logging with per-module log levels.
//
// Records go to stdout (text or JSON), to the systemd journal when journald
// is reachable, and to an in-memory ring buffer that backs the console's
// live log view.
//
// Initialize once at startup, then ask for a module logger:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"presets": "debug",
//			"api":     "warn",
//		},
//	})
//
//	logger := logging.GetLogger("presets")
//	logger.Info("Preset saved", "preset_id", id)
//
// Loggers obtained before Initialize are kept and switch to the configured
// level once it runs.
//
// On journald systems:
//
//	journalctl -t ecm-ffmpeg -f
//	journalctl -t ecm-ffmpeg MODULE=presets
//
// TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	buffer_size = 1000
//
//	[logging.modules]
//	presets = "debug"
//	api = "warn"
package logging
