package preset

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/arcadejump/param"
)

//go:embed schema.cue
var schemaSource string

// Error is a preset that could not be decoded, with its CUE position.
type Error struct {
	Preset  string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: preset %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Preset, e.Message)
	}
	return fmt.Sprintf("preset %s: %s", e.Preset, e.Message)
}

// Load reads every CUE file of the package in dir and decodes the structs
// found under the top-level "preset" field.
func Load(dir string) ([]Spec, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("presets directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances in %s", dir)
	}
	if inst := instances[0]; inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(instances[0])
	if err := value.Err(); err != nil {
		return nil, formatCUEError("", err)
	}
	return Compile(value)
}

// Compile decodes presets from a CUE value holding a "preset" struct, e.g.
//
//	preset: mario: { height: 4, time: 0.4, min_height: 1 }
//
// Specs are returned sorted by name.
func Compile(v cue.Value) ([]Spec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError("", err)
	}
	schema := v.Context().CompileString(schemaSource, cue.Filename("schema.cue"))
	def := schema.LookupPath(cue.ParsePath("#Preset"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("preset schema: %w", err)
	}

	presets := v.LookupPath(cue.ParsePath("preset"))
	if !presets.Exists() {
		return nil, nil
	}
	iter, err := presets.Fields()
	if err != nil {
		return nil, formatCUEError("", err)
	}

	var specs []Spec
	for iter.Next() {
		name := iter.Label()
		spec, err := compileSpec(name, def, iter.Value())
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs, nil
}

var verticalFields = map[string]param.Kind{
	"height":  param.Height,
	"time":    param.Time,
	"impulse": param.Impulse,
	"gravity": param.Gravity,
}

func compileSpec(name string, def, v cue.Value) (Spec, error) {
	checked := def.Unify(v)
	if err := checked.Validate(cue.Concrete(true)); err != nil {
		return Spec{}, formatCUEError(name, err)
	}

	spec := Spec{Name: name, Vertical: map[param.Kind]float64{}}
	for field, kind := range verticalFields {
		f, ok, err := lookupFloat(checked, field)
		if err != nil {
			return Spec{}, formatCUEError(name, err)
		}
		if ok {
			spec.Vertical[kind] = f
		}
	}

	for field, dst := range map[string]*float64{
		"speed":      &spec.Speed,
		"range":      &spec.Range,
		"ratio":      &spec.Ratio,
		"min_height": &spec.MinHeight,
		"air_height": &spec.AirHeight,
	} {
		f, _, err := lookupFloat(checked, field)
		if err != nil {
			return Spec{}, formatCUEError(name, err)
		}
		*dst = f
	}

	if jumps := checked.LookupPath(cue.ParsePath("air_jumps")); jumps.Exists() {
		n, err := jumps.Int64()
		if err != nil {
			return Spec{}, formatCUEError(name, err)
		}
		spec.AirJumps = int(n)
	}

	if spec.Range != 0 && len(spec.Vertical) != 1 {
		return Spec{}, &Error{
			Preset:  name,
			Message: "range needs exactly one of height, impulse or gravity",
			Pos:     v.Pos(),
		}
	}
	return spec, nil
}

func lookupFloat(v cue.Value, field string) (float64, bool, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return 0, false, nil
	}
	f, err := fv.Float64()
	if err != nil {
		return 0, false, err
	}
	return f, true, nil
}

// formatCUEError keeps the first error and its position.
func formatCUEError(name string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	e := &Error{Preset: name, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		e.Pos = positions[0]
	}
	return e
}
