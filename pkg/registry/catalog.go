package registry

import (
	"fmt"
	"sync"

	"github.com/graphport/graphport/pkg/plugin"
)

// Factory describes one concrete plugin type a package contributes.
//
// Prototype is a zero-value instance used purely for capability matching;
// New constructs the instance handed to callers. A factory whose prototype
// satisfies neither capability contract is never registered.
type Factory struct {
	// Module is the plugin package name the factory belongs to
	// (sub-modules use dotted names, e.g. "jsonsource.extra").
	Module string

	// Type is the concrete type name, e.g. "Source".
	Type string

	// Prototype is an instance used for contract matching only.
	Prototype any

	// New constructs a fresh instance with the given free-form options.
	New func(opts plugin.Options) (any, error)
}

// Key returns the qualified registry key "<module>.<TypeName>".
func (f Factory) Key() string { return f.Module + "." + f.Type }

// valid reports whether the factory carries everything matching needs.
func (f Factory) valid() error {
	if f.Module == "" || f.Type == "" {
		return fmt.Errorf("factory must set Module and Type")
	}
	if f.Prototype == nil {
		return fmt.Errorf("factory %s has no prototype", f.Key())
	}
	if f.New == nil {
		return fmt.Errorf("factory %s has no constructor", f.Key())
	}
	return nil
}

// Catalog is the process-wide set of plugin factories, filled in by plugin
// packages during their init. A Registry activates a catalog entry only
// when discovery finds the entry's module in the plugin root.
//
// Catalog is safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	factories []Factory
}

// NewCatalog creates an empty catalog. Tests construct private catalogs;
// production code normally uses [Default] via package-level [Register].
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Register adds a factory to the catalog. Invalid factories are rejected
// with an error; duplicate keys are allowed and resolved last-registered-
// wins at activation time.
func (c *Catalog) Register(f Factory) error {
	if err := f.valid(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories = append(c.factories, f)
	return nil
}

// ForModule returns the factories registered under the given module name,
// in registration order.
func (c *Catalog) ForModule(module string) []Factory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Factory
	for _, f := range c.factories {
		if f.Module == module {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of registered factories.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.factories)
}

// defaultCatalog is the catalog plugin packages register into from init.
var defaultCatalog = NewCatalog()

// Default returns the process-wide catalog.
func Default() *Catalog { return defaultCatalog }

// Register adds a factory to the process-wide catalog. It panics on an
// invalid factory, since it is only called from package init where a bad
// registration is a programming error.
func Register(f Factory) {
	if err := defaultCatalog.Register(f); err != nil {
		panic(err)
	}
}
