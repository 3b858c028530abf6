package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/piwi3910/SpritePack/internal/project"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// lenientConfig marks commands that still run, on defaults, when the
// config file cannot be loaded.
const lenientConfig = "lenient-config"

// settings is the loaded configuration shared by all commands.
type settings struct {
	path   string
	config model.AppConfig
}

func withSettings(ctx context.Context, s settings) context.Context {
	return context.WithValue(ctx, settingsKey, s)
}

// settingsFromContext returns the loaded settings, or defaults at the
// default path when the root command did not run.
func settingsFromContext(ctx context.Context) settings {
	if s, ok := ctx.Value(settingsKey).(settings); ok {
		return s
	}
	return settings{path: project.DefaultConfigPath(), config: model.DefaultAppConfig()}
}

// Execute runs the spritepack CLI with ctx and returns an error if any
// command fails.
//
// Logging goes to stderr at the configured level (info unless the config
// file says otherwise); --verbose switches to debug.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Output goes to the command's
// configured writers, so tests can capture it with SetOut and SetErr.
func NewRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:           "spritepack",
		Short:         "SpritePack packs sprites onto a single sheet",
		Long:          `SpritePack lays out a list of named rectangles on one canvas and writes their coordinates as JSON, spreadsheets, PDF reports, labels or DXF drawings.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = project.DefaultConfigPath()
			}
			cfg, loadErr := project.LoadAppConfig(configPath)
			if loadErr != nil {
				if cmd.Annotations[lenientConfig] == "" {
					return fmt.Errorf("load config: %w", loadErr)
				}
				cfg = model.DefaultAppConfig()
			}

			logger := newLogger(cmd.ErrOrStderr(), logLevel(cfg.LogLevel, verbose))
			if loadErr != nil {
				logger.Warn("using default config", "err", loadErr)
			}
			logger.Debug("config loaded", "path", configPath)

			ctx := withLogger(cmd.Context(), logger)
			ctx = withSettings(ctx, settings{path: configPath, config: cfg})
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("spritepack %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.spritepack/config.json)")

	root.AddCommand(newPackCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newConfigCmd())

	return root
}
