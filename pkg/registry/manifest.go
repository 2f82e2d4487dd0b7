package registry

import (
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/graphport/graphport/pkg/errors"
)

// MarkerFile is the package marker that qualifies a directory under the
// plugin root as a plugin package. Directories without it are skipped
// silently during discovery.
const MarkerFile = "plugin.toml"

// Manifest is the decoded plugin.toml package marker.
type Manifest struct {
	// Package is the plugin package name; it must match the directory name.
	Package string `toml:"package"`

	// Description is optional free text shown in listings.
	Description string `toml:"description"`
}

// loadManifest reads and validates the marker file of a plugin directory.
// The dir name is the importable package name and must match the manifest's
// declared package. All failures carry the INVALID_MANIFEST code and are
// treated as isolated import failures by the scan.
func loadManifest(path, dirName string) (Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Manifest{}, apperrors.Wrap(apperrors.ErrCodeInvalidManifest, err, "decode %s", filepath.Base(path))
	}
	if err := apperrors.ValidatePluginName(m.Package); err != nil {
		return Manifest{}, err
	}
	if m.Package != dirName {
		return Manifest{}, apperrors.New(apperrors.ErrCodeInvalidManifest,
			"package %q does not match directory %q", m.Package, dirName)
	}
	return m, nil
}
