package task

import "github.com/matzehuels/jarpath/pkg/depset"

// Defaults are the ambient settings a task starts from, typically loaded
// from the project manifest. Self is the project's own coordinate; when
// set it joins the exclusion set so a project depending on itself (a
// multi-module cycle, a stale lockfile) never resolves into its own
// classpath.
type Defaults struct {
	File         string
	Self         string
	LocalRepo    string
	Scopes       []string
	Exclusions   []string
	Dependencies []depset.Dependency
	Safe         bool
}

// Options are per-invocation overrides. Pointer and nil-slice fields mean
// "not set": a nil override never erases an ambient default, while a
// pointer to the zero value deliberately overrides (e.g., --safe=false
// against a manifest that enables safe mode).
type Options struct {
	File         *string
	Write        bool
	Safe         *bool
	LocalRepo    *string
	Scopes       []string
	Exclusions   []string
	Dependencies []depset.Dependency
}

// Config is the fully merged, concrete configuration a task runs with.
type Config struct {
	File         string
	Self         string
	Write        bool
	Safe         bool
	LocalRepo    string
	Scopes       []string
	Exclusions   []string
	Dependencies []depset.Dependency
}

// Environment builds the immutable resolution environment from the
// merged configuration. The project's own coordinate, when known, is
// folded into the global exclusions so both direct filtering and the
// transitive walk skip it.
func (c Config) Environment() depset.Environment {
	exclusions := c.Exclusions
	if c.Self != "" {
		exclusions = append(append([]string{}, c.Exclusions...), c.Self)
	}
	return depset.Environment{
		Dependencies: c.Dependencies,
		LocalRepo:    c.LocalRepo,
		Exclusions:   exclusions,
		Scopes:       c.Scopes,
	}
}

// Merge layers opts over defaults. Only explicitly set option fields take
// precedence; unset fields keep the ambient default.
func Merge(defaults Defaults, opts Options) Config {
	cfg := Config{
		File:         defaults.File,
		Self:         defaults.Self,
		Write:        opts.Write,
		Safe:         defaults.Safe,
		LocalRepo:    defaults.LocalRepo,
		Scopes:       defaults.Scopes,
		Exclusions:   defaults.Exclusions,
		Dependencies: defaults.Dependencies,
	}

	if opts.File != nil {
		cfg.File = *opts.File
	}
	if opts.Safe != nil {
		cfg.Safe = *opts.Safe
	}
	if opts.LocalRepo != nil {
		cfg.LocalRepo = *opts.LocalRepo
	}
	if opts.Scopes != nil {
		cfg.Scopes = opts.Scopes
	}
	if opts.Exclusions != nil {
		cfg.Exclusions = opts.Exclusions
	}
	if opts.Dependencies != nil {
		cfg.Dependencies = opts.Dependencies
	}
	return cfg
}
