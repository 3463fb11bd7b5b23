package orchestrator

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/luchuanbaker/MyPojoToJson/internal/config"
	"github.com/luchuanbaker/MyPojoToJson/internal/javasrc"
	"github.com/luchuanbaker/MyPojoToJson/internal/logger"
	"github.com/luchuanbaker/MyPojoToJson/internal/render"
	"github.com/luchuanbaker/MyPojoToJson/internal/resolver"
	"github.com/luchuanbaker/MyPojoToJson/internal/skeleton"
	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
	"github.com/luchuanbaker/MyPojoToJson/internal/wellknown"
)

// progressBuffer bounds queued progress updates; further updates are dropped.
const progressBuffer = 16

// ErrTypeNotFound is returned when the requested class is not in the sources.
var ErrTypeNotFound = errors.New("type not found")

// SourceLoader abstracts building the type universe for testability.
type SourceLoader interface {
	Load(ctx context.Context, roots []string) (*typemodel.Universe, error)
}

// Request describes one resolution. Non-zero fields override the config.
type Request struct {
	Type     string
	Sources  []string
	Exclude  []string
	MaxDepth int
	MaxSteps int
	NoDocs   bool
}

type Result struct {
	Root    typemodel.TypeRef
	Value   skeleton.Value
	Output  []byte
	Steps   int
	Classes int
}

type outcome struct {
	value skeleton.Value
	steps int
	err   error
}

func Run(ctx context.Context, cfg *config.Config, req Request, progress func(resolver.Progress)) (*Result, error) {
	loader := &javasrc.Loader{
		Exclude: excludes(cfg, req),
		Logger:  logger.Named("javasrc"),
	}
	return RunWith(ctx, cfg, req, loader, progress)
}

func excludes(cfg *config.Config, req Request) []string {
	base := cfg.Exclude
	if base == nil {
		if len(req.Exclude) == 0 {
			return nil
		}
		base = javasrc.DefaultExcludes
	}
	return append(append([]string(nil), base...), req.Exclude...)
}

func RunWith(ctx context.Context, cfg *config.Config, req Request, loader SourceLoader, progress func(resolver.Progress)) (*Result, error) {
	log := logger.Named("orchestrator")

	roots := req.Sources
	if len(roots) == 0 {
		roots = cfg.SourceRoots()
	}
	log.Debugw("loading sources", "roots", roots)

	universe, err := loader.Load(ctx, roots)
	if err != nil {
		return nil, errors.Wrap(err, "load sources")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "resolve "+req.Type), resolver.ErrCancelled)
	}

	root, err := javasrc.ParseTypeExpr(ctx, req.Type, universe)
	if err != nil {
		return nil, err
	}
	if base := root.DeepComponent(); base.IsClass() {
		if _, ok := universe.Lookup(base.Name); !ok {
			err := errors.Wrapf(ErrTypeNotFound, "%s", base.Name)
			return nil, errors.WithHint(err, "check the source roots or use the qualified class name")
		}
	}

	table, err := wellKnown(cfg)
	if err != nil {
		return nil, err
	}
	docs := cfg.EffectiveIncludeDocs() && !req.NoDocs

	opts := resolver.Options{
		Types:              universe,
		WellKnown:          table,
		MaxDepth:           cfg.EffectiveMaxDepth(),
		MaxSteps:           cfg.EffectiveMaxSteps(),
		RecursionThreshold: cfg.EffectiveRecursionThreshold(),
		Identity:           resolver.Identity(cfg.EffectiveRecursionIdentity()),
		IncludeTransient:   !cfg.EffectiveSkipTransient(),
		IgnoreAnnotations:  cfg.IgnoreAnnotations,
		OmitDocs:           !docs,
		Logger:             logger.Named("resolver"),
	}
	if req.MaxDepth > 0 {
		opts.MaxDepth = req.MaxDepth
	}
	if req.MaxSteps > 0 {
		opts.MaxSteps = req.MaxSteps
	}

	updates := make(chan resolver.Progress, progressBuffer)
	opts.Progress = func(p resolver.Progress) {
		select {
		case updates <- p:
		default:
		}
	}

	done := make(chan outcome, 1)
	go func() {
		rc, err := resolver.NewContext(ctx, opts)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		v, err := rc.Run(root)
		done <- outcome{value: v, steps: rc.Steps(), err: err}
	}()

	deliver := func(p resolver.Progress) {
		if progress != nil {
			progress(p)
		}
	}

	for {
		select {
		case p := <-updates:
			deliver(p)
		case o := <-done:
			drain(updates, deliver)
			if o.err != nil {
				return nil, o.err
			}
			log.Debugw("resolved", "type", root.String(), "steps", o.steps)

			out, err := render.Render(o.value, render.Options{Docs: docs})
			if err != nil {
				return nil, err
			}
			return &Result{
				Root:    root,
				Value:   o.value,
				Output:  out,
				Steps:   o.steps,
				Classes: universe.Len(),
			}, nil
		case <-ctx.Done():
			return nil, errors.Mark(errors.Wrap(ctx.Err(), "resolve "+req.Type), resolver.ErrCancelled)
		}
	}
}

func drain(updates <-chan resolver.Progress, deliver func(resolver.Progress)) {
	for {
		select {
		case p := <-updates:
			deliver(p)
		default:
			return
		}
	}
}

func wellKnown(cfg *config.Config) (*wellknown.Table, error) {
	base := wellknown.Default(nil)
	if len(cfg.WellKnown) == 0 {
		return base, nil
	}
	entries := make([]wellknown.Entry, 0, len(cfg.WellKnown))
	for i, wk := range cfg.WellKnown {
		v, err := wk.Value.Value()
		if err != nil {
			return nil, errors.Wrapf(err, "well_known[%d] (%s)", i, wk.Type)
		}
		entries = append(entries, wellknown.Constant(wk.Type, v))
	}
	return base.With(entries...), nil
}
