// Package depset models the dependency set a classpath is built from.
//
// A [Dependency] identifies one declared artifact by its Maven coordinate
// ("groupId:artifactId"), a version, a scope, and an optional list of
// coordinates excluded from its transitive subtree. An [Environment] bundles
// the ordered dependency list with the settings that shape resolution:
// the local repository path, global exclusions, and the scope set.
//
// The package also implements the two pure operations applied to a
// dependency set before resolution: scope/exclusion filtering ([Filter])
// and conflict detection ([DetectConflicts]).
package depset

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultScopes is the scope set used when the caller supplies none.
var DefaultScopes = []string{"compile", "runtime", "provided"}

// Dependency is one declared artifact.
//
// Coordinate identity is "groupId:artifactId" without the version; two
// dependencies with the same coordinate and different versions are exactly
// the conflict condition detected by [DetectConflicts].
type Dependency struct {
	Coordinate string   // "groupId:artifactId", never versioned
	Version    string   // requested version (e.g., "32.1.3-jre")
	Scope      string   // compile, runtime, provided, test, ... ("" means compile)
	Exclusions []string // coordinates pruned from this dependency's subtree
}

// EffectiveScope returns the dependency's scope, defaulting to "compile".
func (d Dependency) EffectiveScope() string {
	if d.Scope == "" {
		return "compile"
	}
	return d.Scope
}

// Validate checks that the dependency has a well-formed coordinate and a
// version. Exclusion entries must themselves be coordinates.
func (d Dependency) Validate() error {
	if err := validateCoordinate(d.Coordinate); err != nil {
		return err
	}
	if d.Version == "" {
		return fmt.Errorf("dependency %s: missing version", d.Coordinate)
	}
	for _, excl := range d.Exclusions {
		if err := validateCoordinate(excl); err != nil {
			return fmt.Errorf("dependency %s: exclusion: %w", d.Coordinate, err)
		}
	}
	return nil
}

// String returns the dependency in "coordinate@version" form.
func (d Dependency) String() string {
	return d.Coordinate + "@" + d.Version
}

func validateCoordinate(coord string) error {
	group, artifact, ok := strings.Cut(coord, ":")
	if !ok || group == "" || artifact == "" {
		return fmt.Errorf("invalid coordinate %q (want \"groupId:artifactId\")", coord)
	}
	return nil
}

// Environment is the full input to one resolution pass. It is built fresh
// per task invocation and treated as immutable once built.
//
// Dependencies may contain duplicate coordinates; uniqueness is only
// meaningful among direct entries relative to conflict detection.
type Environment struct {
	Dependencies []Dependency
	LocalRepo    string   // relocatable artifact stash, "" when not configured
	Exclusions   []string // global exclusions, applied regardless of scope
	Scopes       []string // included scopes, nil means DefaultScopes
}

// EffectiveScopes returns the environment's scope set, or DefaultScopes
// when none is configured.
func (e Environment) EffectiveScopes() []string {
	if len(e.Scopes) == 0 {
		return DefaultScopes
	}
	return e.Scopes
}

// Direct returns the set of directly declared coordinates.
func (e Environment) Direct() map[string]bool {
	direct := make(map[string]bool, len(e.Dependencies))
	for _, d := range e.Dependencies {
		direct[d.Coordinate] = true
	}
	return direct
}

// Validate checks every dependency and exclusion in the environment.
func (e Environment) Validate() error {
	for _, d := range e.Dependencies {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, excl := range e.Exclusions {
		if err := validateCoordinate(excl); err != nil {
			return fmt.Errorf("global exclusion: %w", err)
		}
	}
	return nil
}

// ConflictMap maps each coordinate that would resolve to more than one
// version to the sorted list of candidate versions. Keys never include a
// directly declared coordinate.
type ConflictMap map[string][]string

// Coordinates returns the map's keys in sorted order.
func (m ConflictMap) Coordinates() []string {
	coords := make([]string, 0, len(m))
	for c := range m {
		coords = append(coords, c)
	}
	sort.Strings(coords)
	return coords
}

// ConflictError reports unresolved version conflicts found in safe mode.
// The full conflict map is attached as structured context.
type ConflictError struct {
	Conflicts ConflictMap
}

// Error summarizes the conflicts, one coordinate per clause.
func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, coord := range e.Conflicts.Coordinates() {
		parts = append(parts, fmt.Sprintf("%s (%s)", coord, strings.Join(e.Conflicts[coord], ", ")))
	}
	return "unresolved version conflicts: " + strings.Join(parts, "; ")
}
