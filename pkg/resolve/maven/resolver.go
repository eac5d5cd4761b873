package maven

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/jarpath/pkg/depgraph"
	"github.com/matzehuels/jarpath/pkg/depset"
	"github.com/matzehuels/jarpath/pkg/resolve"
)

const (
	// DefaultMaxDepth caps the transitive walk depth.
	DefaultMaxDepth = 50
	// DefaultMaxNodes caps the number of POMs fetched per resolution.
	DefaultMaxNodes = 5000
)

// ErrMissingArtifact is returned when a resolved artifact has no JAR in
// the local repository and no artifact source to download it from.
var ErrMissingArtifact = errors.New("artifact not present in local repository")

// POMSource supplies versioned POM metadata. *Client implements it; tests
// supply canned projects.
type POMSource interface {
	FetchPOM(ctx context.Context, group, artifact, version string, refresh bool) (*Project, error)
}

// ArtifactSource downloads artifact files into the local repository.
type ArtifactSource interface {
	FetchArtifact(ctx context.Context, group, artifact, version, dest string) error
}

// Options configures resolution behavior.
type Options struct {
	MaxDepth int                  // maximum transitive depth (default 50)
	MaxNodes int                  // maximum POM fetches (default 5000)
	Refresh  bool                 // bypass the metadata cache
	Download bool                 // fetch missing JARs into the local repo
	Logger   func(string, ...any) // progress/warning callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Resolver implements [resolve.Resolver] over Maven repository metadata
// and a standard local-repository layout.
type Resolver struct {
	source    POMSource
	artifacts ArtifactSource
	opts      Options
}

// NewResolver creates a Resolver. artifacts may be nil, in which case
// missing JARs are an error regardless of Options.Download.
func NewResolver(source POMSource, artifacts ArtifactSource, opts Options) *Resolver {
	return &Resolver{source: source, artifacts: artifacts, opts: opts.WithDefaults()}
}

// Resolve walks the transitive graph and returns the artifact path for
// every selected coordinate, in breadth-first encounter order. The order
// is deterministic for a fixed environment.
func (r *Resolver) Resolve(ctx context.Context, env depset.Environment) ([]string, error) {
	g, err := r.walk(ctx, env)
	if err != nil {
		return nil, err
	}

	repo, err := r.repoFor(env)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(g.order))
	for _, coord := range g.order {
		version := g.selected[coord]
		path, err := r.locate(ctx, repo, coord, version)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// GraphConflicts returns every coordinate observed with more than one
// distinct version during the walk. Direct declarations are not special
// here; that policy lives in [depset.DetectConflicts].
func (r *Resolver) GraphConflicts(ctx context.Context, env depset.Environment) (depset.ConflictMap, error) {
	g, err := r.walk(ctx, env)
	if err != nil {
		return nil, err
	}
	return g.conflicts(), nil
}

// DependencyGraph walks the transitive graph and returns an inspectable
// snapshot with nodes in resolution order, edges in "depends on"
// direction, and candidate versions attached for conflict highlighting.
func (r *Resolver) DependencyGraph(ctx context.Context, env depset.Environment) (*depgraph.Graph, error) {
	g, err := r.walk(ctx, env)
	if err != nil {
		return nil, err
	}

	out := &depgraph.Graph{}
	for _, coord := range g.order {
		candidates := make([]string, 0, len(g.versions[coord]))
		for v := range g.versions[coord] {
			candidates = append(candidates, v)
		}
		sort.Strings(candidates)
		out.Nodes = append(out.Nodes, depgraph.Node{
			Coordinate: coord,
			Version:    g.selected[coord],
			Direct:     g.direct[coord],
			Candidates: candidates,
		})
	}
	for _, e := range g.edges {
		out.Edges = append(out.Edges, depgraph.Edge{From: e[0], To: e[1]})
	}
	return out, nil
}

// ApplyGlobalExclusions drops dependencies matching any pattern. A
// pattern is either a full "groupId:artifactId" coordinate or a bare
// groupId, which matches every artifact in the group.
func (r *Resolver) ApplyGlobalExclusions(patterns []string, deps []depset.Dependency) []depset.Dependency {
	if len(patterns) == 0 {
		return deps
	}
	out := make([]depset.Dependency, 0, len(deps))
	for _, d := range deps {
		if !matchesAny(patterns, d.Coordinate) {
			out = append(out, d)
		}
	}
	return out
}

func matchesAny(patterns []string, coord string) bool {
	group, _, _ := strings.Cut(coord, ":")
	for _, p := range patterns {
		if p == coord || p == group {
			return true
		}
	}
	return false
}

func (r *Resolver) repoFor(env depset.Environment) (string, error) {
	if env.LocalRepo != "" {
		return env.LocalRepo, nil
	}
	return DefaultLocalRepo()
}

// locate returns the absolute JAR path for one selection, downloading it
// when permitted and a source is available.
func (r *Resolver) locate(ctx context.Context, repo, coord, version string) (string, error) {
	path := ArtifactPath(repo, coord, version)
	if _, err := os.Stat(path); err == nil {
		return filepath.Abs(path)
	}

	if r.artifacts == nil || !r.opts.Download {
		return "", fmt.Errorf("%w: %s@%s (looked in %s)", ErrMissingArtifact, coord, version, path)
	}

	group, artifact, _ := strings.Cut(coord, ":")
	r.opts.Logger("downloading %s@%s", coord, version)
	if err := r.artifacts.FetchArtifact(ctx, group, artifact, version, path); err != nil {
		return "", fmt.Errorf("download %s@%s: %w", coord, version, err)
	}
	return filepath.Abs(path)
}

// graph accumulates walk state: the selected version per coordinate,
// every version observed, and first-encounter order.
type graph struct {
	selected map[string]string
	versions map[string]map[string]bool
	order    []string
	enqueued map[string]bool
	direct   map[string]bool
	edges    [][2]string
	edgeSeen map[[2]string]bool
}

func (g *graph) edge(from, to string) {
	e := [2]string{from, to}
	if g.edgeSeen[e] {
		return
	}
	g.edgeSeen[e] = true
	g.edges = append(g.edges, e)
}

func (g *graph) observe(coord, version string) {
	if g.versions[coord] == nil {
		g.versions[coord] = make(map[string]bool)
	}
	g.versions[coord][version] = true
}

func (g *graph) conflicts() depset.ConflictMap {
	m := make(depset.ConflictMap)
	for coord, versions := range g.versions {
		if len(versions) < 2 {
			continue
		}
		list := make([]string, 0, len(versions))
		for v := range versions {
			list = append(list, v)
		}
		sort.Strings(list)
		m[coord] = list
	}
	return m
}

type walkItem struct {
	coord    string
	version  string
	depth    int
	excluded map[string]bool
}

// walk crawls the transitive graph breadth-first. Directly declared
// versions are seeded as the selection for their coordinate before any
// transitive candidate is seen; transitive coordinates select the first
// version encountered. Only the selected version of a coordinate is
// expanded, so losing candidates contribute to conflict reporting but not
// to the graph's edges.
func (r *Resolver) walk(ctx context.Context, env depset.Environment) (*graph, error) {
	g := &graph{
		selected: make(map[string]string),
		versions: make(map[string]map[string]bool),
		enqueued: make(map[string]bool),
		direct:   make(map[string]bool),
		edgeSeen: make(map[[2]string]bool),
	}

	base := make(map[string]bool, len(env.Exclusions))
	for _, excl := range env.Exclusions {
		base[excl] = true
	}

	var queue []walkItem
	for _, d := range env.Dependencies {
		g.observe(d.Coordinate, d.Version)
		g.direct[d.Coordinate] = true
		if _, ok := g.selected[d.Coordinate]; ok {
			continue // repeated direct coordinate, first declaration wins
		}
		g.selected[d.Coordinate] = d.Version
		g.order = append(g.order, d.Coordinate)

		excluded := cloneSet(base)
		for _, excl := range d.Exclusions {
			excluded[excl] = true
		}
		g.enqueued[d.Coordinate] = true
		queue = append(queue, walkItem{coord: d.Coordinate, version: d.Version, excluded: excluded})
	}

	fetched := 0
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := queue[0]
		queue = queue[1:]

		if item.depth >= r.opts.MaxDepth || fetched >= r.opts.MaxNodes {
			continue
		}
		if g.selected[item.coord] != item.version {
			continue // a different version won for this coordinate
		}

		group, artifact, _ := strings.Cut(item.coord, ":")
		pom, err := r.source.FetchPOM(ctx, group, artifact, item.version, r.opts.Refresh)
		fetched++
		if err != nil {
			if item.depth == 0 {
				return nil, fmt.Errorf("resolve %s@%s: %w", item.coord, item.version, err)
			}
			r.opts.Logger("fetch failed: %s@%s: %v", item.coord, item.version, err)
			continue
		}

		for _, dep := range pom.Dependencies {
			if !walkable(dep) {
				continue
			}
			coord := dep.Coordinate()
			if item.excluded[coord] || item.excluded[dep.GroupID] {
				continue
			}

			g.observe(coord, dep.Version)
			g.edge(item.coord, coord)
			if _, ok := g.selected[coord]; !ok {
				g.selected[coord] = dep.Version
				g.order = append(g.order, coord)
			}
			// Each coordinate is expanded once, with the exclusion set
			// of the first path that reached it. Losing version
			// candidates and later paths contribute observations only.
			if g.selected[coord] != dep.Version || g.enqueued[coord] {
				continue
			}
			g.enqueued[coord] = true

			excluded := cloneSet(item.excluded)
			for _, excl := range dep.Exclusions {
				excluded[excl.Coordinate()] = true
			}
			queue = append(queue, walkItem{
				coord:    coord,
				version:  dep.Version,
				depth:    item.depth + 1,
				excluded: excluded,
			})
		}
	}

	return g, nil
}

func cloneSet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

var _ resolve.Resolver = (*Resolver)(nil)
