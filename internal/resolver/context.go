package resolver

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/luchuanbaker/MyPojoToJson/internal/skeleton"
	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
)

var (
	// ErrCancelled is returned when the caller cancels a resolution. It is a
	// normal early termination; any partial value is discarded.
	ErrCancelled = errors.New("resolution cancelled")
	// ErrStepOverflow is returned when a walk exceeds the global step budget.
	ErrStepOverflow = errors.New("resolution step budget exceeded")
)

// Context is the mutable state of one resolution request. It is owned by a
// single goroutine and discarded once the request returns.
type Context struct {
	ctx  context.Context
	opts Options

	depth    int
	stack    []string
	steps    int
	fraction float64

	partial    skeleton.Value
	hasPartial bool
}

func NewContext(ctx context.Context, opts Options) (*Context, error) {
	if opts.Types == nil {
		return nil, errors.New("resolver: no type resolver configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{ctx: ctx, opts: opts.withDefaults()}, nil
}

// Depth is the number of type expansions currently open.
func (c *Context) Depth() int { return c.depth }

// Steps is the number of resolve calls made so far.
func (c *Context) Steps() int { return c.steps }

// Active returns a copy of the active stack, outermost first.
func (c *Context) Active() []string {
	return append([]string(nil), c.stack...)
}

// Partial returns the first top-level container produced, as far as it was filled.
func (c *Context) Partial() (skeleton.Value, bool) {
	return c.partial, c.hasPartial
}

func (c *Context) keepPartial(v skeleton.Value) {
	if !c.hasPartial {
		c.partial = v
		c.hasPartial = true
	}
}

func (c *Context) identity(ref typemodel.TypeRef) string {
	if c.opts.Identity == IdentityGeneric {
		return ref.String()
	}
	return ref.Erasure()
}

func displayName(ref typemodel.TypeRef) string {
	if ref.IsClass() {
		return typemodel.SimpleName(ref.Name)
	}
	return ref.Presentable()
}

// guard stops a branch whose type is already being expanded, or whose active
// stack has reached the depth ceiling.
func (c *Context) guard(ref typemodel.TypeRef) (skeleton.Value, bool) {
	id := c.identity(ref)
	count := 0
	for _, active := range c.stack {
		if active == id {
			count++
		}
	}
	if count >= c.opts.RecursionThreshold {
		c.opts.Logger.Debugw("recursion detected", "type", id, "depth", c.depth)
		return skeleton.Recursion(displayName(ref)), true
	}
	if len(c.stack) >= c.opts.MaxDepth {
		c.opts.Logger.Debugw("max depth reached", "type", id, "depth", len(c.stack))
		return skeleton.MaxDepth(displayName(ref)), true
	}
	return skeleton.Value{}, false
}

// checkpoint is called on every recursive entry: it honours cancellation,
// enforces the global step budget and reports progress.
func (c *Context) checkpoint(ref typemodel.TypeRef) error {
	if err := c.ctx.Err(); err != nil {
		return errors.Mark(errors.Wrap(err, "resolve "+ref.Presentable()), ErrCancelled)
	}
	c.steps++
	if c.steps > c.opts.MaxSteps {
		err := errors.Newf("type graph exceeds %d resolution steps at %s", c.opts.MaxSteps, ref.Presentable())
		err = errors.WithHint(err, "raise max_steps or resolve a narrower type")
		return errors.Mark(err, ErrStepOverflow)
	}
	if c.opts.Progress != nil {
		c.fraction = math.Min(0.9, c.fraction+0.1)
		c.opts.Progress(Progress{
			Type:     ref.Presentable(),
			Depth:    c.depth,
			Steps:    c.steps,
			Fraction: c.fraction,
		})
	}
	return nil
}

// enter pushes ref on the active stack. The returned release must be deferred;
// it restores the stack to its length before the push on every exit path.
func (c *Context) enter(ref typemodel.TypeRef) func() {
	n := len(c.stack)
	c.stack = append(c.stack, c.identity(ref))
	c.depth++
	return func() {
		c.stack = c.stack[:n]
		c.depth--
	}
}
