package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/roach88/arcadejump/internal/compiler"
)

// LoadError represents an error that occurred while locating sources or
// their configuration.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FindJumpFiles expands files and directories into the sorted list of .jump
// files they hold. Directories are walked recursively; hidden directories
// and testdata are skipped.
func FindJumpFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", root), Err: err}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error accessing %s", root), Err: err}
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && (name == "testdata" || name[0] == '.' || name[0] == '_') {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == ".jump" {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning %s", root), Err: err}
		}
	}

	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: "no .jump files found"}
	}
	sort.Strings(files)
	return files, nil
}

// ConfigOverrides are command-line settings applied over jumpgen.yaml.
type ConfigOverrides struct {
	Path    string // explicit config file; searched for when empty
	Package string
	Numeric string
}

// LoadConfig returns the generator configuration for a source file: the
// explicit file, else the nearest jumpgen.yaml above the source, else the
// defaults, with the overrides applied.
func LoadConfig(source string, o ConfigOverrides) (compiler.Config, error) {
	path := o.Path
	if path == "" {
		found, err := compiler.FindConfig(filepath.Dir(source))
		if err != nil {
			return compiler.Config{}, &LoadError{Code: ErrCodeConfig, Message: "searching for " + compiler.ConfigName, Err: err}
		}
		path = found
	}

	cfg := compiler.DefaultConfig()
	if path != "" {
		var err error
		cfg, err = compiler.LoadConfig(path)
		if err != nil {
			return compiler.Config{}, &LoadError{Code: ErrCodeConfig, Message: err.Error(), Err: err}
		}
	}

	if o.Package != "" {
		cfg.Package = o.Package
	}
	if o.Numeric != "" {
		cfg.Numeric = o.Numeric
	}
	if err := cfg.Validate(); err != nil {
		return compiler.Config{}, &LoadError{Code: ErrCodeConfig, Message: err.Error(), Err: err}
	}
	return cfg, nil
}
