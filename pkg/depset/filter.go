package depset

// Filter reduces deps to the entries handed to resolution. Three rules
// apply, in order:
//
//  1. Scope inclusion: only dependencies whose effective scope is in
//     scopes survive. An empty scopes slice means [DefaultScopes].
//  2. Self-exclusion: the entry matching self is dropped, so the tool
//     never resolves itself into the classpath it is building when loaded
//     dynamically by the host build.
//  3. Global exclusions: any remaining entry whose coordinate is in
//     exclusions is dropped, regardless of scope.
//
// Input order is preserved for surviving entries and the input slice is
// never modified. An empty result is valid and yields an empty classpath
// file downstream. Filter is idempotent.
func Filter(deps []Dependency, scopes []string, self string, exclusions []string) []Dependency {
	included := scopeSet(scopes)
	excluded := make(map[string]bool, len(exclusions))
	for _, coord := range exclusions {
		excluded[coord] = true
	}

	out := make([]Dependency, 0, len(deps))
	for _, d := range deps {
		if !included[d.EffectiveScope()] {
			continue
		}
		if d.Coordinate == self {
			continue
		}
		if excluded[d.Coordinate] {
			continue
		}
		out = append(out, d)
	}
	return out
}

func scopeSet(scopes []string) map[string]bool {
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	set := make(map[string]bool, len(scopes))
	for _, s := range scopes {
		set[s] = true
	}
	return set
}
