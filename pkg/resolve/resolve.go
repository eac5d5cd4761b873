// Package resolve defines the resolver capability the classpath task
// consumes.
//
// The resolver is injected as an interface rather than called as a
// library so filtering, conflict detection, and the task state machine can
// be tested against canned graphs. [github.com/matzehuels/jarpath/pkg/resolve/maven]
// provides the real implementation backed by Maven Central metadata and a
// standard local-repository layout.
package resolve

import (
	"context"

	"github.com/matzehuels/jarpath/pkg/depset"
)

// Resolver turns a dependency environment into concrete artifact paths.
//
// Implementations must produce a deterministic path order for a fixed
// environment; the classpath file's entry order is class-shadowing order
// and must be reproducible.
type Resolver interface {
	depset.GraphSource

	// Resolve walks the transitive graph implied by env and returns the
	// absolute path of every resolved artifact, in resolution order.
	Resolve(ctx context.Context, env depset.Environment) ([]string, error)

	// ApplyGlobalExclusions removes every dependency whose coordinate
	// matches one of the patterns. Order is preserved.
	ApplyGlobalExclusions(patterns []string, deps []depset.Dependency) []depset.Dependency
}
