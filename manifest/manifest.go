// Package manifest reads preload batches from YAML, JSON or TOML files.
//
//	options:
//	  base_url: https://cdn.example.com/img
//	images:
//	  - logo.png
//	  - [a.png, b.png]
package manifest

import (
	"context"
	"errors"
	"fmt"

	"github.com/projecteru2/core/log"
	"github.com/spf13/viper"

	"github.com/projecteru2/preload/preload"
	"github.com/projecteru2/preload/utils"
)

// ErrInvalidManifest is returned when the manifest path is missing,
// not a regular file, or empty.
var ErrInvalidManifest = errors.New("manifest missing or empty")

// Manifest is a batch description loaded from a file.
type Manifest struct {
	Options    preload.Options
	References []preload.Reference
}

// Load reads the manifest at path. The format follows the file extension.
// Malformed options degrade to unset; unusable image entries are logged and
// skipped.
func Load(ctx context.Context, path string) (*Manifest, error) {
	logger := log.WithFunc("manifest.Load")

	if !utils.ValidFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidManifest, path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	m := &Manifest{Options: preload.NormalizeOptions(v.Get("options"))}
	switch images := v.Get("images").(type) {
	case nil:
	case []any:
		m.References = preload.ReferencesFrom(ctx, images...)
	default:
		m.References = preload.ReferencesFrom(ctx, images)
	}
	logger.Infof(ctx, "manifest %s: %d reference(s)", path, len(m.References))
	return m, nil
}
