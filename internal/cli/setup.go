package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarpath/pkg/manifest"
	"github.com/matzehuels/jarpath/pkg/resolve/maven"
	"github.com/matzehuels/jarpath/pkg/task"
)

// defaultCacheTTL is how long fetched POM documents stay fresh. Release
// POMs are immutable, so the TTL only bounds cache growth.
const defaultCacheTTL = 24 * time.Hour

// resolveOpts holds the flags shared by every command that runs a
// dependency resolution.
type resolveOpts struct {
	manifestPath string // manifest file path (jarpath.toml if empty)
	repoURL      string // remote repository base URL
	redisAddr    string // shared Redis cache address
	noCache      bool   // disable the metadata cache
	refresh      bool   // bypass cached POMs
	download     bool   // fetch missing JARs into the local repo
	maxDepth     int    // maximum transitive depth
	maxNodes     int    // maximum POM fetches
}

// register adds the shared resolution flags to cmd.
func (o *resolveOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.manifestPath, "manifest", "m", "", "manifest file (default jarpath.toml)")
	cmd.Flags().StringVar(&o.repoURL, "repo-url", maven.CentralURL, "remote repository base URL")
	cmd.Flags().StringVar(&o.redisAddr, "redis", "", "shared Redis cache address (host:port)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the POM metadata cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cached POMs")
	cmd.Flags().BoolVar(&o.download, "download", false, "download missing artifacts into the local repository")
	cmd.Flags().IntVar(&o.maxDepth, "max-depth", maven.DefaultMaxDepth, "maximum transitive dependency depth")
	cmd.Flags().IntVar(&o.maxNodes, "max-nodes", maven.DefaultMaxNodes, "maximum dependencies to fetch")
}

// newResolver builds a Maven resolver wired to the selected cache backend.
func (o *resolveOpts) newResolver(ctx context.Context) (*maven.Resolver, error) {
	logger := loggerFromContext(ctx)

	store, err := newStore(ctx, o.noCache, o.redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cache setup: %w", err)
	}

	client := maven.NewClient(o.repoURL, store, defaultCacheTTL)
	return maven.NewResolver(client, client, maven.Options{
		MaxDepth: o.maxDepth,
		MaxNodes: o.maxNodes,
		Refresh:  o.refresh,
		Download: o.download,
		Logger:   func(msg string, args ...any) { logger.Warnf(msg, args...) },
	}), nil
}

// loadDefaults reads the manifest and converts it to task defaults. A
// missing manifest at the conventional path is not an error; flags alone
// can drive a run. An explicitly named manifest must exist.
func (o *resolveOpts) loadDefaults() (task.Defaults, error) {
	path := o.manifestPath
	explicit := path != ""
	if !explicit {
		path = manifest.Filename
	}

	m, err := manifest.Load(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return task.Defaults{}, nil
		}
		return task.Defaults{}, fmt.Errorf("load manifest %s: %w", path, err)
	}

	return task.Defaults{
		File:         m.Settings.File,
		Self:         m.Project.Coordinate,
		LocalRepo:    m.Settings.LocalRepo,
		Scopes:       m.Settings.Scopes,
		Exclusions:   m.Settings.Exclusions,
		Dependencies: m.DependencySet(),
		Safe:         m.Settings.Safe,
	}, nil
}

// envOpts holds the flags that override manifest settings per invocation.
// Cobra reports whether each flag was set, which maps directly onto the
// task option fields where nil means "keep the manifest default".
type envOpts struct {
	file       string
	localRepo  string
	safe       bool
	scopes     []string
	exclusions []string
}

// register adds the override flags to cmd.
func (o *envOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "classpath file to operate on")
	cmd.Flags().StringVar(&o.localRepo, "local-repo", "", "local repository root (default ~/.m2/repository)")
	cmd.Flags().BoolVar(&o.safe, "safe", false, "fail on unresolved version conflicts")
	cmd.Flags().StringSliceVar(&o.scopes, "scopes", nil, "dependency scopes to include")
	cmd.Flags().StringSliceVar(&o.exclusions, "exclude", nil, "coordinates or group IDs to exclude globally")
}

// options converts the flags that were actually set into task options.
func (o *envOpts) options(cmd *cobra.Command, write bool) task.Options {
	opts := task.Options{Write: write}
	if cmd.Flags().Changed("file") {
		opts.File = &o.file
	}
	if cmd.Flags().Changed("local-repo") {
		opts.LocalRepo = &o.localRepo
	}
	if cmd.Flags().Changed("safe") {
		opts.Safe = &o.safe
	}
	if cmd.Flags().Changed("scopes") {
		opts.Scopes = o.scopes
	}
	if cmd.Flags().Changed("exclude") {
		opts.Exclusions = o.exclusions
	}
	return opts
}
