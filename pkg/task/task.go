// Package task orchestrates classpath file operations.
//
// A task runs in one of two modes. Write mode filters the declared
// dependency set, optionally checks for unresolved version conflicts
// (safe mode), resolves the survivors to artifact paths, relativizes them
// against the local repository, and persists the result atomically. Read
// mode decodes an existing classpath file and feeds every entry, in file
// order, to an injected [Appender].
//
// Resolution is delegated entirely to the injected [resolve.Resolver];
// the task never performs version selection itself.
package task

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarpath/pkg/classpath"
	"github.com/matzehuels/jarpath/pkg/depset"
	"github.com/matzehuels/jarpath/pkg/resolve"
)

// SelfCoordinate is jarpath's own Maven coordinate. The filter drops it
// unconditionally so the tool never resolves itself into a classpath it
// is building when the host build loads it as a plugin.
const SelfCoordinate = "io.github.matzehuels:jarpath"

// Appender receives classpath entries during read mode, in file order.
// Later entries can shadow earlier ones in class resolution, so order
// matters. Appending an already-present path must be harmless.
type Appender interface {
	Append(path string) error
}

// AppenderFunc adapts a function to the Appender interface.
type AppenderFunc func(path string) error

// Append calls f(path).
func (f AppenderFunc) Append(path string) error { return f(path) }

// Task executes classpath read and write operations against an injected
// resolver and appender.
type Task struct {
	resolver resolve.Resolver
	appender Appender
	logger   *log.Logger
}

// New creates a Task. The appender may be nil if only write mode is used;
// logger may be nil for silent operation.
func New(resolver resolve.Resolver, appender Appender, logger *log.Logger) *Task {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Task{resolver: resolver, appender: appender, logger: logger}
}

// Run merges opts over defaults and executes the selected mode.
//
// A missing target file is a configuration problem the caller's pipeline
// can survive: it is logged as a warning and the task becomes a no-op.
// Everything else fails hard: safe-mode conflicts return a
// [depset.ConflictError] with the full conflict map attached and write
// nothing; resolution and file errors propagate unmodified.
func (t *Task) Run(ctx context.Context, defaults Defaults, opts Options) error {
	cfg := Merge(defaults, opts)

	if cfg.File == "" {
		t.logger.Warn("no classpath file configured, skipping")
		return nil
	}

	if cfg.Write {
		return t.write(ctx, cfg)
	}
	return t.read(cfg)
}

// read decodes the classpath file and appends every entry in file order.
// Failures mid-pass are not transactional: entries already appended stay
// appended.
func (t *Task) read(cfg Config) error {
	paths, err := classpath.ReadFile(cfg.File)
	if err != nil {
		return err
	}

	for _, p := range paths {
		if err := t.appender.Append(p); err != nil {
			return fmt.Errorf("append %s: %w", p, err)
		}
	}
	t.logger.Debug("classpath restored", "file", cfg.File, "entries", len(paths))
	return nil
}

func (t *Task) write(ctx context.Context, cfg Config) error {
	env := cfg.Environment()
	if err := env.Validate(); err != nil {
		return err
	}

	filtered := depset.Filter(env.Dependencies, env.Scopes, SelfCoordinate, nil)
	filtered = t.resolver.ApplyGlobalExclusions(env.Exclusions, filtered)
	env.Dependencies = filtered
	t.logger.Debug("dependencies filtered", "kept", len(filtered))

	if cfg.Safe {
		conflicts, err := depset.DetectConflicts(ctx, env, t.resolver)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &depset.ConflictError{Conflicts: conflicts}
		}
	}

	resolved, err := t.resolver.Resolve(ctx, env)
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(resolved))
	for _, p := range resolved {
		paths = append(paths, classpath.Relativize(env.LocalRepo, p))
	}

	if err := classpath.WriteFile(cfg.File, paths); err != nil {
		return err
	}
	t.logger.Info("classpath written", "file", cfg.File, "entries", len(paths))
	return nil
}
