package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/luchuanbaker/MyPojoToJson/internal/skeleton"
)

const DefaultFileName = "pojo2json.yml"

const (
	DefaultMaxDepth           = 50
	DefaultMaxSteps           = 20000
	DefaultRecursionThreshold = 1

	IdentityErased  = "erased"
	IdentityGeneric = "generic"
)

// Literal is a scalar YAML value kept together with its tag, so 0.00 stays
// a two-decimal number and "0" stays a string.
type Literal struct {
	node yaml.Node
}

func (l *Literal) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.Newf("line %d: value must be a scalar", n.Line)
	}
	l.node = *n
	return nil
}

func (Literal) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "number"},
			{Type: "boolean"},
			{Type: "null"},
		},
		Description: "JSON value emitted for the type.",
	}
}

// Value converts the literal into a skeleton value.
func (l Literal) Value() (skeleton.Value, error) {
	text := l.node.Value
	switch l.node.ShortTag() {
	case "!!null", "":
		return skeleton.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(text)
		if err != nil {
			return skeleton.Value{}, errors.Wrapf(err, "invalid boolean %q", text)
		}
		return skeleton.Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return skeleton.Value{}, errors.Wrapf(err, "invalid integer %q", text)
		}
		return skeleton.Int(i), nil
	case "!!float":
		d, err := decimal.NewFromString(text)
		if err != nil {
			return skeleton.Value{}, errors.Wrapf(err, "invalid number %q", text)
		}
		return skeleton.Decimal(d), nil
	default:
		return skeleton.String(text), nil
	}
}

type WellKnown struct {
	Type  string  `yaml:"type" jsonschema:"required,description=Qualified class name such as java.time.Duration. Subtypes of the class match as well."`
	Value Literal `yaml:"value" jsonschema:"required"`
}

type Config struct {
	Sources            []string    `yaml:"sources,omitempty" jsonschema:"description=Directories or files scanned for .java sources. Relative paths are resolved against the directory of the config file. Defaults to that directory."`
	Exclude            []string    `yaml:"exclude,omitempty" jsonschema:"description=Doublestar glob patterns of source paths to skip (e.g. **/generated/**). Replaces the built-in excludes when set."`
	MaxDepth           int         `yaml:"max_depth,omitempty" jsonschema:"minimum=0,description=Maximum number of nested class expansions on one branch before a MaxDepth marker is emitted. Defaults to 50." default:"50"`
	MaxSteps           int         `yaml:"max_steps,omitempty" jsonschema:"minimum=0,description=Maximum number of resolution steps for one type before resolution fails. Defaults to 20000." default:"20000"`
	RecursionThreshold int         `yaml:"recursion_threshold,omitempty" jsonschema:"minimum=0,description=How many times a type may already be open on a branch before a Recursion marker is emitted. Defaults to 1." default:"1"`
	RecursionIdentity  string      `yaml:"recursion_identity,omitempty" jsonschema:"enum=erased,enum=generic,description=Whether recursion detection compares erased types or full generic types. Defaults to erased." default:"erased"`
	SkipTransient      *bool       `yaml:"skip_transient,omitempty" jsonschema:"description=Skip transient fields. Defaults to true." default:"true"`
	IgnoreAnnotations  []string    `yaml:"ignore_annotations,omitempty" jsonschema:"description=Fields carrying any of these annotations (simple or qualified names) are skipped."`
	IncludeDocs        *bool       `yaml:"include_docs,omitempty" jsonschema:"description=Render field documentation comments as trailing // comments. Defaults to true." default:"true"`
	WellKnown          []WellKnown `yaml:"well_known,omitempty" jsonschema:"description=Extra leaf types with fixed values. They take precedence over the built-in table."`

	dir string
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// LoadOptional behaves like Load but returns the defaults when path does not exist.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{dir: filepath.Dir(path)}, nil
	}
	return Load(path)
}

// Parse decodes and validates config data. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.Newf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.MaxSteps < 0 {
		return errors.Newf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if c.RecursionThreshold < 0 {
		return errors.Newf("recursion_threshold must not be negative, got %d", c.RecursionThreshold)
	}
	switch c.RecursionIdentity {
	case "", IdentityErased, IdentityGeneric:
	default:
		return errors.Newf("recursion_identity: unsupported value %q (supported: erased, generic)", c.RecursionIdentity)
	}
	for i, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Newf("exclude[%d]: invalid glob pattern %q", i, pattern)
		}
	}
	for i, wk := range c.WellKnown {
		if wk.Type == "" {
			return errors.Newf("well_known[%d]: type is required", i)
		}
		if _, err := wk.Value.Value(); err != nil {
			return errors.Wrapf(err, "well_known[%d] (%s)", i, wk.Type)
		}
	}
	return nil
}

// Dir is the directory of the loaded file, or "" for configs built in memory.
func (c *Config) Dir() string {
	return c.dir
}

// SourceRoots returns Sources resolved against the config directory.
func (c *Config) SourceRoots() []string {
	base := c.dir
	if base == "" {
		base = "."
	}
	if len(c.Sources) == 0 {
		return []string{base}
	}
	roots := make([]string, len(c.Sources))
	for i, s := range c.Sources {
		if filepath.IsAbs(s) {
			roots[i] = s
		} else {
			roots[i] = filepath.Join(base, s)
		}
	}
	return roots
}

func (c *Config) EffectiveMaxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c *Config) EffectiveMaxSteps() int {
	if c.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return c.MaxSteps
}

func (c *Config) EffectiveRecursionThreshold() int {
	if c.RecursionThreshold <= 0 {
		return DefaultRecursionThreshold
	}
	return c.RecursionThreshold
}

func (c *Config) EffectiveRecursionIdentity() string {
	if c.RecursionIdentity == "" {
		return IdentityErased
	}
	return c.RecursionIdentity
}

func (c *Config) EffectiveSkipTransient() bool {
	return c.SkipTransient == nil || *c.SkipTransient
}

func (c *Config) EffectiveIncludeDocs() bool {
	return c.IncludeDocs == nil || *c.IncludeDocs
}
