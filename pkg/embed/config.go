// Package embed is the boundary to the external embedding pipeline.
// It reads the pipeline's configuration, points it at a new sequence
// file and runs the pipeline.
package embed

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrew-torda/embedsub/pkg/seqlen"
)

// ErrConfig is returned for a configuration that is missing a
// required field or has one of the wrong type.
var ErrConfig = errors.New("bad pipeline configuration")

// Names in the global section of a pipeline configuration.
const (
	GlobalKey        = "global"
	SequencesFileKey = "sequences_file"
	MaxNSeqKey       = "max_number_of_sequences"
	MaxLenKey        = "max_len"
	MinLenKey        = "min_len"
)

// DefaultMaxNSeq is the sample size when the config does not give one.
const DefaultMaxNSeq = 250

// Config is a pipeline configuration as a nested mapping. Everything
// we do not know about is carried along untouched.
type Config map[string]any

// Globals are the few fields we read from the global section.
type Globals struct {
	SequencesFile string
	MaxNSeq       int
	Window        seqlen.Window
}

// Load reads a YAML pipeline configuration.
func Load(fname string) (Config, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return Parse(b)
}

// Parse decodes YAML into a Config.
func Parse(b []byte) (Config, error) {
	// Nested mappings take the type of the outer one, so this must be
	// a plain map.
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: empty configuration", ErrConfig)
	}
	return Config(m), nil
}

// asMap accepts either spelling of a string keyed mapping.
func asMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case Config:
		return map[string]any(x), true
	}
	return nil, false
}

func (cfg Config) global() (map[string]any, error) {
	g, ok := cfg[GlobalKey]
	if !ok {
		return nil, fmt.Errorf("%w: no %q section", ErrConfig, GlobalKey)
	}
	m, ok := asMap(g)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %T, not a mapping", ErrConfig, GlobalKey, g)
	}
	return m, nil
}

// toInt accepts the ways a YAML or JSON decoder may hand us a whole
// number.
func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case uint64:
		if x > math.MaxInt {
			return 0, false
		}
		return int(x), true
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > 1<<53 {
			return 0, false
		}
		return int(x), true
	}
	return 0, false
}

func optInt(g map[string]any, key string, dflt int) (int, error) {
	v, ok := g[key]
	if !ok || v == nil {
		return dflt, nil
	}
	i, ok := toInt(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s must be an integer, got %v", ErrConfig, GlobalKey, key, v)
	}
	return i, nil
}

// Globals pulls out the sequence file, sample size and length window,
// filling in defaults of 250, 100 and 50.
func (cfg Config) Globals() (Globals, error) {
	var gl Globals
	g, err := cfg.global()
	if err != nil {
		return gl, err
	}
	sf, ok := g[SequencesFileKey].(string)
	if !ok || sf == "" {
		return gl, fmt.Errorf("%w: %s.%s must be a non-empty string", ErrConfig, GlobalKey, SequencesFileKey)
	}
	gl.SequencesFile = sf
	if gl.MaxNSeq, err = optInt(g, MaxNSeqKey, DefaultMaxNSeq); err != nil {
		return gl, err
	}
	if gl.MaxNSeq < 0 {
		return gl, fmt.Errorf("%w: %s.%s is negative (%d)", ErrConfig, GlobalKey, MaxNSeqKey, gl.MaxNSeq)
	}
	if gl.Window.Max, err = optInt(g, MaxLenKey, seqlen.DefaultMax); err != nil {
		return gl, err
	}
	if gl.Window.Min, err = optInt(g, MinLenKey, seqlen.DefaultMin); err != nil {
		return gl, err
	}
	return gl, nil
}

// deepCopy copies the maps and slices a YAML decoder produces.
// Anything else is a scalar and is shared.
func deepCopy(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = deepCopy(e)
		}
		return m
	case Config:
		return Config(deepCopy(map[string]any(x)).(map[string]any))
	case map[any]any:
		m := make(map[any]any, len(x))
		for k, e := range x {
			m[k] = deepCopy(e)
		}
		return m
	case []any:
		s := make([]any, len(x))
		for i, e := range x {
			s[i] = deepCopy(e)
		}
		return s
	}
	return v
}

// Clone returns a deep copy.
func (cfg Config) Clone() Config {
	return deepCopy(cfg).(Config)
}

// WithSequencesFile returns a copy of cfg whose global.sequences_file
// is fname. cfg itself is not changed.
func (cfg Config) WithSequencesFile(fname string) (Config, error) {
	if _, err := cfg.global(); err != nil {
		return nil, err
	}
	out := cfg.Clone()
	g, _ := out.global()
	g[SequencesFileKey] = fname
	return out, nil
}
