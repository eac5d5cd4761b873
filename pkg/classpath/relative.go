package classpath

import (
	"path/filepath"
	"strings"
)

// Relativize rewrites a resolved artifact path against the configured
// local repository, keeping classpath files portable across checkouts that
// share a relocatable artifact stash.
//
// With no local repository configured (localRepo == ""), the absolute path
// is returned unchanged apart from cleaning to native separators. With one
// configured, the path's segment relative to the canonical repository
// directory is rejoined onto the configured (possibly relative) repository
// path, so the file references artifacts through the stash location rather
// than wherever the stash happened to be mounted during resolution.
//
// A path that does not lie under the repository is returned cleaned and
// unchanged; mixed layouts with system JARs outside the stash stay usable.
func Relativize(localRepo, abs string) string {
	abs = filepath.Clean(abs)
	if localRepo == "" {
		return abs
	}

	canonical, err := filepath.Abs(localRepo)
	if err != nil {
		return abs
	}
	rel, err := filepath.Rel(canonical, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return abs
	}
	return filepath.Join(localRepo, rel)
}
