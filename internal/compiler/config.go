package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/arcadejump/internal/ir"
)

// ConfigName is the file FindConfig looks for.
const ConfigName = "jumpgen.yaml"

// DefaultResolver is the import path of the resolver package used by
// generated code.
const DefaultResolver = "github.com/roach88/arcadejump/resolver"

// Config controls code generation. It is read from jumpgen.yaml.
type Config struct {
	// Package is the package clause of generated files. Defaults to the
	// name of the directory holding the source.
	Package string `yaml:"package,omitempty"`

	// Numeric is the type of expression blocks without an `as` clause.
	// Defaults to f64.
	Numeric string `yaml:"numeric,omitempty"`

	// Suffix replaces the .jump extension of generated files. Defaults to
	// _jump.go.
	Suffix string `yaml:"suffix,omitempty"`

	// Resolver is the import path of the resolver package; the no-failure
	// subset is imported from its nofailure subpackage.
	Resolver string `yaml:"resolver,omitempty"`
}

// DefaultConfig returns the configuration used without a jumpgen.yaml.
func DefaultConfig() Config {
	var c Config
	c.setDefaults()
	return c
}

// LoadConfig reads and validates a jumpgen.yaml file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses jumpgen.yaml content. Unknown fields are rejected.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := c.validate(path); err != nil {
		return Config{}, err
	}
	c.setDefaults()
	return c, nil
}

// FindConfig searches for jumpgen.yaml starting from dir and walking up to
// the filesystem root. It returns an empty path when none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate checks a configuration assembled outside ParseConfig, such as
// one carrying command-line overrides.
func (c Config) Validate() error {
	return c.validate("config")
}

func (c *Config) validate(path string) error {
	if c.Numeric != "" {
		if _, ok := ir.ParseNumType(c.Numeric); !ok {
			return fmt.Errorf("%s: numeric: unknown type %q", path, c.Numeric)
		}
	}
	if c.Suffix != "" && !strings.HasSuffix(c.Suffix, ".go") {
		return fmt.Errorf("%s: suffix %q must end in .go", path, c.Suffix)
	}
	if c.Package != "" && !token.IsIdentifier(c.Package) {
		return fmt.Errorf("%s: package %q is not a Go identifier", path, c.Package)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Numeric == "" {
		c.Numeric = "f64"
	}
	if c.Suffix == "" {
		c.Suffix = "_jump.go"
	}
	if c.Resolver == "" {
		c.Resolver = DefaultResolver
	}
}

// NumType returns the default numeric type.
func (c Config) NumType() ir.NumType {
	nt, ok := ir.ParseNumType(c.Numeric)
	if !ok {
		return ir.Float64
	}
	return nt
}

// OutputPath returns the generated file name for a .jump source.
func (c Config) OutputPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + c.Suffix
}

// PackageFor returns the configured package, or the name of the directory
// holding source.
func (c Config) PackageFor(source string) string {
	if c.Package != "" {
		return c.Package
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "main"
	}
	name := strings.NewReplacer("-", "_", ".", "_").Replace(filepath.Base(filepath.Dir(abs)))
	if !token.IsIdentifier(name) {
		return "main"
	}
	return name
}
