// Package maven implements [resolve.Resolver] against Maven repositories.
//
// # Overview
//
// Metadata (POM files) is fetched from a remote repository, Maven Central
// by default, through an HTTP client with retry/backoff and a pluggable
// response cache. Artifact files are located in a local repository laid
// out the standard way:
//
//	<repo>/<groupId as dirs>/<artifactId>/<version>/<artifactId>-<version>.jar
//
// # Version selection
//
// The walker works breadth-first from the declared dependencies. A
// directly declared version always wins for its coordinate; among purely
// transitive candidates the first version encountered wins. Every distinct
// version seen is recorded, which is what [Resolver.GraphConflicts]
// reports.
//
// # Scope and exclusion rules
//
// Transitive dependencies in test or provided scope, optional
// dependencies, and dependencies with unresolved Maven properties (${...})
// are skipped, matching what a launcher-facing classpath needs. Exclusions
// declared on a dependency apply to its whole subtree; global exclusions
// apply everywhere.
//
// [resolve.Resolver]: github.com/matzehuels/jarpath/pkg/resolve.Resolver
package maven
