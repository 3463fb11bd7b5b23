// Package javasrc builds a typemodel.Universe from Java source files using
// tree-sitter, so that type references can be resolved without a compiler.
package javasrc

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/luchuanbaker/MyPojoToJson/internal/typemodel"
)

// DefaultExcludes skips build output and hidden directories.
var DefaultExcludes = []string{
	"**/.*/**",
	"**/target/**",
	"**/build/**",
	"**/out/**",
	"**/node_modules/**",
}

type Loader struct {
	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to each source root. Nil means DefaultExcludes.
	Exclude     []string
	Concurrency int
	Logger      *zap.SugaredLogger
}

func (l *Loader) logger() *zap.SugaredLogger {
	if l.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return l.Logger
}

func (l *Loader) excludes() []string {
	if l.Exclude == nil {
		return DefaultExcludes
	}
	return l.Exclude
}

func (l *Loader) concurrency() int {
	if l.Concurrency > 0 {
		return l.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// Discover lists the .java files under roots. A root may also name a single file.
func (l *Loader) Discover(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.Wrapf(err, "source root %s", root)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(root), "**/*.java")
		if err != nil {
			return nil, errors.Wrapf(err, "scan %s", root)
		}
		for _, rel := range matches {
			excluded, err := l.excluded(rel)
			if err != nil {
				return nil, err
			}
			if !excluded {
				add(filepath.Join(root, filepath.FromSlash(rel)))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func (l *Loader) excluded(rel string) (bool, error) {
	for _, pattern := range l.excludes() {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, errors.Wrapf(err, "exclude pattern %q", pattern)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Load parses every source file under roots and returns the linked universe,
// including the built-in library classes.
func (l *Loader) Load(ctx context.Context, roots []string) (*typemodel.Universe, error) {
	files, err := l.Discover(roots)
	if err != nil {
		return nil, err
	}
	l.logger().Debugw("parsing java sources", "files", len(files), "workers", l.concurrency())

	units := make([]*fileUnit, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency())
	for i, path := range files {
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "read %s", path)
			}
			// tree-sitter parsers are not safe for concurrent use
			unit, err := parseSource(gctx, newParser(), path, src)
			if err != nil {
				return err
			}
			units[i] = unit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return l.link(units), nil
}

// LoadFS parses every .java file of fsys. It is the in-memory counterpart of Load.
func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS) (*typemodel.Universe, error) {
	matches, err := doublestar.Glob(fsys, "**/*.java")
	if err != nil {
		return nil, errors.Wrap(err, "scan sources")
	}
	units := make([]*fileUnit, 0, len(matches))
	p := newParser()
	for _, name := range matches {
		excluded, err := l.excluded(name)
		if err != nil {
			return nil, err
		}
		if excluded {
			continue
		}
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", name)
		}
		unit, err := parseSource(ctx, p, name, src)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return l.link(units), nil
}

func (l *Loader) link(units []*fileUnit) *typemodel.Universe {
	u := typemodel.NewUniverse()
	RegisterJDK(u)
	newLinker(u).link(units, l.logger())
	l.logger().Debugw("type universe ready", "classes", u.Len())
	return u
}
