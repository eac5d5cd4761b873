// Package classpath implements the on-disk classpath file format.
//
// A classpath file is a single line of paths joined by the platform
// path-list separator (":" on POSIX, ";" on Windows), with no trailing
// separator and no line terminator. The format is directly consumable as a
// java -cp argument. Order is resolution order and round-trips exactly:
// Decode(Encode(paths)) == paths for any paths free of the separator.
//
// The package also provides atomic file persistence ([WriteFile],
// [ReadFile]) and local-repository path relativization ([Relativize]).
package classpath

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Separator is the platform path-list separator used by the codec.
const Separator = string(os.PathListSeparator)

var (
	// ErrEmptyEntry is returned by Decode for a file containing an empty
	// path element, typically produced by a doubled or trailing separator.
	ErrEmptyEntry = errors.New("classpath file contains an empty path entry")

	// ErrSeparatorInPath is returned by Encode when a path embeds the
	// path-list separator and could not round-trip.
	ErrSeparatorInPath = errors.New("path contains the path-list separator")
)

// Encode joins paths into the on-disk classpath format. An empty slice
// encodes to an empty byte slice, the valid representation of an empty
// classpath. Paths containing the separator are rejected because they
// cannot be decoded back.
func Encode(paths []string) ([]byte, error) {
	for _, p := range paths {
		if strings.Contains(p, Separator) {
			return nil, fmt.Errorf("%w: %q", ErrSeparatorInPath, p)
		}
	}
	return []byte(strings.Join(paths, Separator)), nil
}

// Decode splits data into the ordered path list it encodes. Empty input
// decodes to an empty list, matching Encode's treatment of an empty
// dependency set. Any empty element is an error rather than being
// silently dropped: a classpath file with a stray separator is malformed
// and the launcher would misinterpret it.
func Decode(data []byte) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	paths := strings.Split(string(data), Separator)
	for i, p := range paths {
		if p == "" {
			return nil, fmt.Errorf("%w (entry %d of %d)", ErrEmptyEntry, i+1, len(paths))
		}
	}
	return paths, nil
}
