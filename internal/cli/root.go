package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/graphport/graphport/pkg/cache"
	"github.com/graphport/graphport/pkg/pipeline"
	"github.com/graphport/graphport/pkg/plugin"
	"github.com/graphport/graphport/pkg/registry"

	// Bundled plugin packages register their factories at init time.
	// Discovery still gates activation on the plugin root's manifests.
	_ "github.com/graphport/graphport/pkg/plugins/dotviz"
	_ "github.com/graphport/graphport/pkg/plugins/jsonsource"
	_ "github.com/graphport/graphport/pkg/plugins/svgviz"
)

// appName is the application name used for directories and display.
const appName = "graphport"

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the graphport CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. The plugin root defaults to the "plugins" directory
// next to the executable and can be overridden with --plugins.
func Execute(ctx context.Context) error {
	var verbose bool
	var pluginRoot string

	root := &cobra.Command{
		Use:          appName,
		Short:        "Graphport discovers graph plugins and runs them as pipelines",
		Long:         `Graphport is a CLI tool for ingesting graphs through data source plugins and rendering them through visualizer plugins, with plugins discovered from a well-known directory at startup.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&pluginRoot, "plugins", "", "plugin root directory (default: \"plugins\" next to the executable)")

	root.AddCommand(newPluginsCmd(&pluginRoot))
	root.AddCommand(newParseCmd(&pluginRoot))
	root.AddCommand(newRenderCmd(&pluginRoot))

	return root.ExecuteContext(ctx)
}

// newRegistry creates the plugin registry for a command invocation.
func newRegistry(ctx context.Context, pluginRoot string) *registry.Registry {
	if pluginRoot == "" {
		pluginRoot = registry.DefaultRoot()
	}
	return registry.New(pluginRoot, nil, loggerFromContext(ctx))
}

// newRunner creates a pipeline runner for CLI use.
func newRunner(ctx context.Context, pluginRoot string, noCache bool, cacheOverride string) *pipeline.Runner {
	reg := newRegistry(ctx, pluginRoot)
	return pipeline.NewRunner(reg, newCache(noCache, cacheOverride), loggerFromContext(ctx))
}

// newCache builds the artifact cache. Caching degrades to a null cache
// rather than failing the command.
func newCache(noCache bool, override string) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir := override
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache()
		}
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// cacheDir returns the cache directory using XDG standard (~/.cache/graphport/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseOptFlags converts repeated "key=value" flags into plugin options.
// Values stay strings; plugins coerce them to typed values on access.
func parseOptFlags(flags []string) (plugin.Options, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	opts := make(plugin.Options, len(flags))
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q (expected key=value)", f)
		}
		opts[key] = value
	}
	return opts, nil
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
