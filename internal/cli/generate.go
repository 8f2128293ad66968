package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/arcadejump/internal/compiler"
	"github.com/roach88/arcadejump/internal/ir"
	"github.com/roach88/arcadejump/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Config  string
	Package string
	Numeric string
	DryRun  bool
	Cache   string
}

// GeneratedFile describes one compiled source.
type GeneratedFile struct {
	Source string   `json:"source"`
	Output string   `json:"output"`
	Blocks []string `json:"blocks"`

	// Unchanged is set when the cache showed the output to be current.
	Unchanged bool `json:"unchanged,omitempty"`
}

// GenerateResult is the JSON payload of the generate command.
type GenerateResult struct {
	Files  []GeneratedFile `json:"files"`
	DryRun bool            `json:"dry_run,omitempty"`
}

func (r GenerateResult) String() string {
	var b strings.Builder
	verb := "wrote"
	if r.DryRun {
		verb = "would write"
	}
	for i, f := range r.Files {
		if i > 0 {
			b.WriteByte('\n')
		}
		if f.Unchanged {
			fmt.Fprintf(&b, "unchanged %s", f.Output)
			continue
		}
		fmt.Fprintf(&b, "%s %s (%d blocks)", verb, f.Output, len(f.Blocks))
	}
	return b.String()
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Generate Go code from .jump files",
		Long: `Compile .jump sources into Go files next to them.

Directories are searched recursively for .jump files; the current directory
is used when no path is given. Settings come from the nearest jumpgen.yaml
above each source unless --config names one. When any source has errors,
every diagnostic is reported and no file is written.

Exit codes:
  0 - All files generated
  2 - Invalid sources, configuration or paths

Examples:
  jumpgen generate
  jumpgen generate ./moves/moves.jump
  jumpgen generate ./moves --numeric f32 --dry-run
  jumpgen generate --cache .jumpgen.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runGenerate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to jumpgen.yaml")
	cmd.Flags().StringVar(&opts.Package, "package", "", "package clause of generated files")
	cmd.Flags().StringVar(&opts.Numeric, "numeric", "", "default numeric type (f32|f64)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "compile without writing files")
	cmd.Flags().StringVar(&opts.Cache, "cache", "", "SQLite generation cache; unchanged sources are skipped")

	return cmd
}

type compiled struct {
	source      string
	output      string
	file        *ir.File
	cfg         compiler.Config
	fingerprint string
	configHash  string
}

func runGenerate(opts *GenerateOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := opts.Logger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := FindJumpFiles(paths)
	if err != nil {
		return reportLoadError(formatter, err)
	}
	logger.Debug("found sources", "count", len(files))

	overrides := ConfigOverrides{Path: opts.Config, Package: opts.Package, Numeric: opts.Numeric}
	var (
		sources []compiled
		failed  bool
	)
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("reading %s", path), err.Error())
			return WrapExitError(ExitCommandError, "reading source", err)
		}
		cfg, err := LoadConfig(path, overrides)
		if err != nil {
			return reportLoadError(formatter, err)
		}

		f, err := compiler.Analyze(path, src, cfg)
		var diags compiler.Diagnostics
		if errors.As(err, &diags) {
			logger.Debug("source has errors", "file", path, "count", len(diags))
			if err := formatter.Diagnostics(src, diags); err != nil {
				return err
			}
			failed = true
			continue
		}
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("checking %s", path), err.Error())
			return WrapExitError(ExitCommandError, "checking source", err)
		}

		c := compiled{source: path, output: cfg.OutputPath(path), file: f, cfg: cfg}
		if c.fingerprint, err = ir.Fingerprint(f); err != nil {
			return WrapExitError(ExitFailure, "fingerprinting source", err)
		}
		if c.configHash, err = configHash(cfg, path); err != nil {
			return WrapExitError(ExitFailure, "hashing configuration", err)
		}
		sources = append(sources, c)
	}
	if failed {
		return NewExitError(ExitCommandError, "sources have errors")
	}

	var (
		cache *store.Store
		run   store.Run
	)
	if opts.Cache != "" {
		cache, err = store.Open(opts.Cache)
		if err != nil {
			_ = formatter.Error(ErrCodeCache, "opening cache", err.Error())
			return WrapExitError(ExitCommandError, "opening cache", err)
		}
		defer cache.Close()
		if !opts.DryRun {
			if run, err = cache.BeginRun(ctx, store.UUIDv7Generator{}); err != nil {
				_ = formatter.Error(ErrCodeCache, "recording run", err.Error())
				return WrapExitError(ExitFailure, "recording run", err)
			}
			logger.Debug("cache run", "id", run.ID, "seq", run.Seq)
		}
	}

	result := GenerateResult{Files: make([]GeneratedFile, 0, len(sources)), DryRun: opts.DryRun}
	for _, c := range sources {
		gf := GeneratedFile{Source: c.source, Output: c.output, Blocks: blockNames(c.file)}
		rec := store.Output{
			Source:      absPath(c.source),
			Output:      absPath(c.output),
			Fingerprint: c.fingerprint,
			ConfigHash:  c.configHash,
			RunID:       run.ID,
		}

		if cache != nil {
			prev, fresh, err := cache.Fresh(ctx, rec)
			if err != nil {
				_ = formatter.Error(ErrCodeCache, "reading cache", err.Error())
				return WrapExitError(ExitFailure, "reading cache", err)
			}
			if fresh && fileHash(c.output) == prev.CodeHash {
				logger.Debug("unchanged", "source", c.source)
				gf.Unchanged = true
				result.Files = append(result.Files, gf)
				continue
			}
		}

		code, err := compiler.Generate(c.file, c.cfg.PackageFor(c.source), c.cfg)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("generating %s", c.source), err.Error())
			return WrapExitError(ExitCommandError, "generating code", err)
		}
		if !opts.DryRun {
			if err := os.WriteFile(c.output, code, 0644); err != nil {
				_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing %s", c.output), err.Error())
				return WrapExitError(ExitCommandError, "writing output", err)
			}
			logger.Info("generated", "source", c.source, "output", c.output)

			if cache != nil {
				rec.CodeHash = ir.Hash(ir.DomainCode, code)
				if err := cache.RecordOutput(ctx, rec); err != nil {
					_ = formatter.Error(ErrCodeCache, "recording output", err.Error())
					return WrapExitError(ExitFailure, "recording output", err)
				}
			}
		}
		result.Files = append(result.Files, gf)
	}
	return formatter.Success(result)
}

func blockNames(f *ir.File) []string {
	names := make([]string, len(f.Blocks))
	for i, b := range f.Blocks {
		names[i] = b.Name
	}
	return names
}

// configHash identifies everything besides the statement graph that shapes
// the generated code of source.
func configHash(cfg compiler.Config, source string) (string, error) {
	cfg.Package = cfg.PackageFor(source)
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return ir.Hash(ir.DomainConfig, data), nil
}

// fileHash returns the code hash of a file, or "" when it cannot be read.
func fileHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return ir.Hash(ir.DomainCode, data)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// reportLoadError prints a *LoadError and converts it to a command error.
func reportLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		details := any(nil)
		if loadErr.Err != nil {
			details = loadErr.Err.Error()
		}
		_ = formatter.Error(loadErr.Code, loadErr.Message, details)
		return WrapExitError(ExitCommandError, loadErr.Message, loadErr.Err)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "loading sources", err)
}
