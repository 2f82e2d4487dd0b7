package registry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/graphport/graphport/pkg/observability"
	"github.com/graphport/graphport/pkg/plugin"
)

// DefaultRootDir is the well-known plugin root directory name, resolved
// relative to the executable (falling back to the working directory).
const DefaultRootDir = "plugins"

// DefaultRoot resolves the default plugin root. It prefers the directory
// next to the running executable so installed binaries find their bundled
// plugins, and falls back to the working directory during development.
func DefaultRoot() string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), DefaultRootDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return DefaultRootDir
}

// Registry maintains the authoritative set of discovered DataSource and
// Visualizer factories for the process lifetime. Discovery runs lazily,
// exactly once, on the first query; the result is cached and never
// rescanned.
//
// Registry is safe for concurrent use.
type Registry struct {
	root    string
	catalog *Catalog
	logger  *log.Logger

	once  sync.Once
	scans int // number of filesystem scans performed; 1 after load

	dataSources map[string]Factory
	visualizers map[string]Factory
}

// New creates a registry over the given plugin root. A nil catalog means
// the process-wide [Default] catalog; a nil logger discards output.
// No scanning happens until the first query.
func New(root string, catalog *Catalog, logger *log.Logger) *Registry {
	if catalog == nil {
		catalog = Default()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Registry{
		root:        root,
		catalog:     catalog,
		logger:      logger,
		dataSources: make(map[string]Factory),
		visualizers: make(map[string]Factory),
	}
}

// =============================================================================
// Discovery
// =============================================================================

// load performs the one-time discovery transition. Concurrent callers block
// until the single scan finishes; later callers observe the cached result.
func (r *Registry) load() {
	r.once.Do(r.scan)
}

func (r *Registry) scan() {
	scanID := uuid.NewString()
	start := time.Now()
	r.scans++

	hooks := observability.Discovery()
	hooks.OnScanStart(scanID, r.root)
	r.logger.Debug("plugin discovery started", "scan", scanID, "root", r.root)

	defer func() {
		hooks.OnScanComplete(scanID, len(r.dataSources), len(r.visualizers), time.Since(start))
		r.logger.Debug("plugin discovery finished",
			"scan", scanID,
			"data_sources", len(r.dataSources),
			"visualizers", len(r.visualizers),
			"elapsed", time.Since(start).Round(time.Millisecond))
	}()

	entries, err := os.ReadDir(r.root)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing plugin root is not an error: empty registries.
			return
		}
		r.logger.Warn("cannot read plugin root", "root", r.root, "err", err)
		return
	}

	for _, ent := range entries {
		if !ent.IsDir() {
			continue
		}
		r.importPackage(scanID, filepath.Join(r.root, ent.Name()), ent.Name())
	}
}

// importPackage imports one plugin package directory: validates its marker
// manifest, activates the module's catalog factories, and recursively
// descends into marked subdirectories as sub-modules. Failures are isolated
// per package and never abort the overall scan.
func (r *Registry) importPackage(scanID, dir, module string) {
	markerPath := filepath.Join(dir, MarkerFile)
	if _, err := os.Stat(markerPath); err != nil {
		// Not a plugin package; skip silently.
		return
	}

	dirName := filepath.Base(dir)
	if _, err := loadManifest(markerPath, dirName); err != nil {
		observability.Discovery().OnPackageError(scanID, module, err)
		r.logger.Warn("skipping plugin package", "module", module, "err", err)
		return
	}

	r.activate(module)
	observability.Discovery().OnPackageImported(scanID, module)

	subs, err := os.ReadDir(dir)
	if err != nil {
		observability.Discovery().OnPackageError(scanID, module, err)
		r.logger.Warn("cannot read plugin package", "module", module, "err", err)
		return
	}
	for _, sub := range subs {
		if !sub.IsDir() {
			continue
		}
		r.importPackage(scanID, filepath.Join(dir, sub.Name()), module+"."+sub.Name())
	}
}

// activate matches every catalog factory of the module against the
// capability contracts and registers the matches. A factory satisfying both
// contracts registers in both maps under the same qualified key. Key
// collisions overwrite (last wins).
func (r *Registry) activate(module string) {
	for _, f := range r.catalog.ForModule(module) {
		key := f.Key()
		matched := false
		if _, ok := f.Prototype.(plugin.DataSource); ok {
			r.dataSources[key] = f
			matched = true
		}
		if _, ok := f.Prototype.(plugin.Visualizer); ok {
			r.visualizers[key] = f
			matched = true
		}
		if matched {
			r.logger.Debug("registered plugin type", "key", key)
		}
		// Factories matching neither contract are skipped silently:
		// most candidate types are expected not to match.
	}
}

// =============================================================================
// Queries
// =============================================================================

// DataSources returns the full data source registry, keyed by qualified
// key. The returned map is a copy.
func (r *Registry) DataSources() map[string]Factory {
	r.load()
	return copyFactories(r.dataSources)
}

// Visualizers returns the full visualizer registry, keyed by qualified key.
// The returned map is a copy.
func (r *Registry) Visualizers() map[string]Factory {
	r.load()
	return copyFactories(r.visualizers)
}

// DataSource returns the factory registered under key, or false if the key
// is unknown. A miss is not an error.
func (r *Registry) DataSource(key string) (Factory, bool) {
	r.load()
	f, ok := r.dataSources[key]
	return f, ok
}

// Visualizer returns the factory registered under key, or false if the key
// is unknown. A miss is not an error.
func (r *Registry) Visualizer(key string) (Factory, bool) {
	r.load()
	f, ok := r.visualizers[key]
	return f, ok
}

// NewDataSource constructs the data source registered under key with the
// given options. Unknown keys and construction failures both yield
// (nil, false); construction failures are additionally logged. Callers
// treat a false result as "plugin unusable" without distinguishing the
// cause.
func (r *Registry) NewDataSource(key string, opts plugin.Options) (plugin.DataSource, bool) {
	f, ok := r.DataSource(key)
	if !ok {
		return nil, false
	}
	inst, err := construct(f, opts)
	if err != nil {
		r.logger.Error("data source construction failed", "key", key, "err", err)
		return nil, false
	}
	src, ok := inst.(plugin.DataSource)
	if !ok {
		r.logger.Error("constructed instance does not satisfy DataSource", "key", key)
		return nil, false
	}
	return src, true
}

// NewVisualizer constructs the visualizer registered under key with the
// given options. Semantics match [Registry.NewDataSource].
func (r *Registry) NewVisualizer(key string, opts plugin.Options) (plugin.Visualizer, bool) {
	f, ok := r.Visualizer(key)
	if !ok {
		return nil, false
	}
	inst, err := construct(f, opts)
	if err != nil {
		r.logger.Error("visualizer construction failed", "key", key, "err", err)
		return nil, false
	}
	viz, ok := inst.(plugin.Visualizer)
	if !ok {
		r.logger.Error("constructed instance does not satisfy Visualizer", "key", key)
		return nil, false
	}
	return viz, true
}

// construct invokes the factory constructor, converting panics into errors
// so a misbehaving plugin cannot take down the process.
func construct(f Factory, opts plugin.Options) (inst any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("constructor panicked: %v", rec)
		}
	}()
	return f.New(opts)
}

// =============================================================================
// Summary
// =============================================================================

// Entry describes one registered plugin type for diagnostic listings.
type Entry struct {
	Key    string // Qualified registry key "<module>.<TypeName>"
	Type   string // Concrete type name
	Module string // Owning module
}

// Summary holds per-capability counts and entry metadata.
type Summary struct {
	DataSources []Entry
	Visualizers []Entry
}

// DataSourceCount returns the number of registered data sources.
func (s Summary) DataSourceCount() int { return len(s.DataSources) }

// VisualizerCount returns the number of registered visualizers.
func (s Summary) VisualizerCount() int { return len(s.Visualizers) }

// Summary returns counts and per-entry metadata for every registered plugin
// type, sorted by key for stable listings.
func (r *Registry) Summary() Summary {
	r.load()
	return Summary{
		DataSources: entries(r.dataSources),
		Visualizers: entries(r.visualizers),
	}
}

func entries(m map[string]Factory) []Entry {
	out := make([]Entry, 0, len(m))
	for key, f := range m {
		out = append(out, Entry{Key: key, Type: f.Type, Module: f.Module})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func copyFactories(m map[string]Factory) map[string]Factory {
	out := make(map[string]Factory, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
