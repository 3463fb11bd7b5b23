package resolver

import (
	"go.uber.org/zap"

	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
	"github.com/luchuanbaker/MyPojoToJson/internal/wellknown"
)

const (
	// DefaultMaxDepth bounds the active stack of one branch. The bound is
	// inclusive: with 50 expansions open, the next one becomes a MaxDepth marker.
	DefaultMaxDepth = 50
	// DefaultMaxSteps bounds the total number of resolve calls of one request.
	DefaultMaxSteps = 20000
	// DefaultRecursionThreshold stops a branch on the first repeat of a type.
	DefaultRecursionThreshold = 1

	DefaultIterableContract = "java.lang.Iterable"
	DefaultMapContract      = "java.util.Map"
)

// Identity selects how types are compared on the active stack.
type Identity string

const (
	// IdentityErased ignores generic arguments: Box<String> repeats Box<Integer>.
	IdentityErased Identity = "erased"
	// IdentityGeneric compares the full generic type.
	IdentityGeneric Identity = "generic"
)

// Progress is reported at each recursive entry. It never affects the result.
type Progress struct {
	Type     string
	Depth    int
	Steps    int
	Fraction float64
}

// FieldFilter returns false for fields that must not appear in the output.
type FieldFilter func(class *typemodel.ClassDescriptor, field typemodel.Field) bool

type Options struct {
	Types  typemodel.TypeResolver
	Oracle typemodel.AssignabilityOracle
	Docs   typemodel.DocLookup

	WellKnown *wellknown.Table

	// MaxDepth is the number of class expansions that may be open at once;
	// a reference met at that depth yields a MaxDepth marker.
	MaxDepth           int
	MaxSteps           int
	RecursionThreshold int
	Identity           Identity

	IncludeTransient  bool
	IgnoreAnnotations []string
	FieldFilter       FieldFilter
	// OmitDocs drops documentation annotations even when Docs is available.
	OmitDocs bool

	IterableContract string
	MapContract      string

	Progress func(Progress)
	Logger   *zap.SugaredLogger
}

func (o Options) withDefaults() Options {
	if o.Oracle == nil {
		if oracle, ok := o.Types.(typemodel.AssignabilityOracle); ok {
			o.Oracle = oracle
		}
	}
	if o.Docs == nil {
		if docs, ok := o.Types.(typemodel.DocLookup); ok {
			o.Docs = docs
		}
	}
	if o.WellKnown == nil {
		o.WellKnown = wellknown.Default(nil)
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if o.RecursionThreshold <= 0 {
		o.RecursionThreshold = DefaultRecursionThreshold
	}
	if o.Identity == "" {
		o.Identity = IdentityErased
	}
	if o.IterableContract == "" {
		o.IterableContract = DefaultIterableContract
	}
	if o.MapContract == "" {
		o.MapContract = DefaultMapContract
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}
	return o
}
