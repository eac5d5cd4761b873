package depset

import "context"

// GraphSource supplies version groupings from a transitive dependency
// graph. It is the single capability conflict detection needs from a
// resolver, kept narrow so tests can supply canned graphs.
type GraphSource interface {
	// GraphConflicts walks the transitive graph implied by env and returns
	// every coordinate that resolves to more than one distinct version.
	GraphConflicts(ctx context.Context, env Environment) (ConflictMap, error)
}

// DetectConflicts returns the version conflicts that remain after removing
// every coordinate the caller declared directly.
//
// A direct declaration is treated as a deliberate override: it may silently
// shadow a transitively required version, and is never itself reported.
// Only conflicts the caller has not already taken a position on survive.
// The result is empty (possibly nil) when nothing remains.
func DetectConflicts(ctx context.Context, env Environment, src GraphSource) (ConflictMap, error) {
	conflicts, err := src.GraphConflicts(ctx, env)
	if err != nil {
		return nil, err
	}
	if len(conflicts) == 0 {
		return conflicts, nil
	}

	direct := env.Direct()
	remaining := make(ConflictMap, len(conflicts))
	for coord, versions := range conflicts {
		if direct[coord] {
			continue
		}
		remaining[coord] = versions
	}
	return remaining, nil
}
