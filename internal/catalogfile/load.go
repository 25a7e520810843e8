// SPDX-License-Identifier: MPL-2.0

package catalogfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/verscat/verscat/pkg/catalog"
	"github.com/verscat/verscat/pkg/cueutil"
)

const (
	// FormatTOML is Gradle's libs.versions.toml format.
	FormatTOML Format = "toml"
	// FormatCUE is the CUE catalog format.
	FormatCUE Format = "cue"
)

type (
	// Format identifies a catalog file format.
	Format string

	options struct {
		name        string
		logger      *log.Logger
		maxFileSize int64
	}

	// Option configures Load and Parse.
	Option func(*options)
)

// WithName sets the catalog name. Without it the name is taken from the
// file name up to the first dot, so libs.versions.toml yields "libs".
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxFileSize bounds the accepted file size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(o *options) {
		o.maxFileSize = size
	}
}

// DetectFormat returns the format implied by the extension of path.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("%s: %w: expected a .toml or .cue file", path, ErrUnsupportedFormat)
	}
}

// NameFromPath derives a catalog name from a file name: the base name up
// to its first dot.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		return catalog.DefaultName
	}
	return base
}

// Load reads and parses the catalog file at path.
func Load(path string, opts ...Option) (*catalog.Catalog, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	opts = append([]Option{WithName(NameFromPath(path))}, opts...)
	return Parse(data, format, path, opts...)
}

// Parse decodes catalog data of the given format. file names the input in
// error messages.
func Parse(data []byte, format Format, file string, opts ...Option) (*catalog.Catalog, error) {
	o := options{
		name:        catalog.DefaultName,
		logger:      log.New(io.Discard),
		maxFileSize: cueutil.DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cueutil.CheckFileSize(data, o.maxFileSize, file); err != nil {
		return nil, err
	}

	var (
		doc *table
		err error
	)
	switch format {
	case FormatTOML:
		doc, err = parseTOML(data, file)
	case FormatCUE:
		doc, err = parseCUE(data, file, o.maxFileSize)
	default:
		return nil, fmt.Errorf("%s: %w %q", file, ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	d := &decoder{file: file, logger: o.logger}
	entries, err := d.decode(doc)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(entries, catalog.WithName(o.name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	o.logger.Debug("loaded catalog", "file", file, "name", cat.Name(), "entries", cat.Len())
	return cat, nil
}
