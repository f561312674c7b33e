package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/titooo7/enhancedchannelmanager-sub006/cmd"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/api"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/config"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/encoders"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/events"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/logging"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/metrics"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/metrics/exporters"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/presets"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port           string `help:"Address to listen on" short:"p" default:":8095" toml:"server.port" env:"SERVER_PORT"`
	AllowedOrigins string `help:"Comma-separated browser origins allowed to call the API (empty allows any)" default:"" toml:"server.allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`

	// Preset settings
	PresetsFile     string `help:"Presets file" default:"presets.toml" toml:"presets.file" env:"PRESETS_FILE"`
	PresetsWatch    bool   `help:"Reload presets when the file changes on disk" default:"true" toml:"presets.watch" env:"PRESETS_WATCH"`
	PresetsDebounce string `help:"Quiet period before reloading a changed presets file" default:"1500ms" toml:"presets.debounce" env:"PRESETS_DEBOUNCE"`

	// Hardware the console may offer encoders for (nvenc, vaapi, qsv, ...)
	HardwareCapabilities string `help:"Comma-separated hardware capabilities" default:"" toml:"ffmpeg.hw_capabilities" env:"FFMPEG_HW_CAPABILITIES"`

	// Observability settings
	MetricsPrometheusEnabled bool `help:"Expose Prometheus metrics on /metrics" default:"true" toml:"metrics.prometheus_enabled" env:"METRICS_PROMETHEUS_ENABLED"`
	MetricsStreamEnabled     bool `help:"Publish generator stats on /api/metrics" default:"true" toml:"metrics.stream_enabled" env:"METRICS_STREAM_ENABLED"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings; per-module levels live in [logging.modules]
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
}

// splitList splits a comma-separated option, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func main() {
	var cli humacli.CLI

	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		loggingConfig := config.LoadLoggingConfig(opts.Config)
		loggingConfig.Level = opts.LoggingLevel
		loggingConfig.Format = opts.LoggingFormat
		logging.Initialize(loggingConfig)

		logger := logging.GetLogger("main")
		logger.Info("Starting", "version", version.String())

		eventBus := events.New()

		// Buffered log entries are streamed to /api/logs/stream through the bus
		logging.SetLogCallback(func(entry logging.LogEntry) {
			eventBus.Publish(api.LogEntryToEvent(entry))
		})

		unsubscribeMetrics := metrics.Subscribe(eventBus)

		presetService, err := presets.NewService(presets.Options{
			Store:    presets.NewTOML(opts.PresetsFile),
			EventBus: eventBus,
		})
		if err != nil {
			logger.Error("Failed to load presets", "file", opts.PresetsFile, "error", err)
			os.Exit(1)
		}

		apiOpts := &api.Options{
			AuthUsername:       opts.AuthUsername,
			AuthPassword:       opts.AuthPassword,
			PresetService:      presetService,
			CapabilityProvider: encoders.NewStaticProvider(splitList(opts.HardwareCapabilities)),
			CORSOrigins:        splitList(opts.AllowedOrigins),
			EventBus:           eventBus,
		}
		if opts.MetricsPrometheusEnabled {
			apiOpts.PrometheusHandler = exporters.HTTPHandler()
		}

		server := api.NewServer(apiOpts)

		var sseExporter *exporters.SSEExporter
		var stopWatch func() error

		hooks.OnStart(func() {
			if opts.MetricsStreamEnabled {
				sseExporter = exporters.NewSSEExporter(eventBus)
				sseExporter.Start(context.Background())
			}

			if opts.PresetsWatch {
				debounce, parseErr := time.ParseDuration(opts.PresetsDebounce)
				if parseErr != nil {
					logger.Warn("Invalid presets debounce, using default", "value", opts.PresetsDebounce, "error", parseErr)
					debounce = 1500 * time.Millisecond
				}
				stop, watchErr := presetService.Watch(opts.PresetsFile, debounce)
				if watchErr != nil {
					logger.Warn("Presets file will not be watched", "error", watchErr)
				} else {
					stopWatch = stop
				}
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if stopErr := server.Stop(ctx); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			if stopWatch != nil {
				if stopErr := stopWatch(); stopErr != nil {
					logger.Warn("Error stopping presets watcher", "error", stopErr)
				}
			}
			if sseExporter != nil {
				sseExporter.Stop()
			}
			unsubscribeMetrics()
		})
	})

	cli.Root().Version = version.String()
	cli.Root().AddCommand(cmd.CreateGenerateCmd())
	cli.Root().AddCommand(cmd.CreatePresetsCmd())

	cli.Run()
}
