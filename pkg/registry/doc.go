// Package registry discovers plugin packages and exposes lookup and
// instantiation of capability-satisfying plugin types.
//
// # Overview
//
// Plugins reach the process in two halves that discovery joins together:
//
//   - Go plugin packages self-register [Factory] values into a [Catalog]
//     during their own init, naming the module they belong to.
//   - A plugin root directory holds one subdirectory per plugin package,
//     marked by a plugin.toml manifest. Only modules whose directory and
//     manifest check out are activated.
//
// The first call to any query, lookup, or instantiate method triggers a
// one-time scan (NotLoaded → Loading → Loaded); every later call observes
// the cached result. The scan enumerates the plugin root, imports each
// marked package (and, recursively, its marked subdirectories as
// sub-modules named parent.child), and matches every activated factory's
// prototype against the [plugin.DataSource] and [plugin.Visualizer]
// contracts. A type satisfying both registers in both maps under the same
// qualified key "<module>.<TypeName>".
//
// # Failure Isolation
//
// A missing plugin root yields empty registries, not an error. Per-package
// manifest failures are logged and skipped without aborting the scan; a
// factory whose prototype matches neither contract is skipped silently;
// constructor failures during instantiation are reported and surfaced as an
// absent result. Nothing is retried — discovery runs exactly once per
// Registry.
//
// # Usage
//
//	reg := registry.New(registry.DefaultRoot(), nil, logger)
//	for key := range reg.DataSources() {
//	    fmt.Println(key)
//	}
//	src, ok := reg.NewDataSource("jsonsource.Source", plugin.Options{"path": "g.json"})
//	if !ok {
//	    // plugin unusable; the cause has been logged
//	}
//
// # Concurrency
//
// Registry is safe for concurrent use: the lazy discovery transition is
// guarded so exactly one caller performs the scan and all others observe
// the cached result. The registries are read-only after load.
package registry
