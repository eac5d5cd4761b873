package task

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/jarpath/pkg/classpath"
	"github.com/matzehuels/jarpath/pkg/depset"
)

// fakeResolver returns canned paths and conflicts and records the
// environment it was handed.
type fakeResolver struct {
	paths        []string
	resolveErr   error
	conflicts    depset.ConflictMap
	conflictsErr error

	resolvedEnv *depset.Environment
	resolves    int
}

func (f *fakeResolver) Resolve(ctx context.Context, env depset.Environment) ([]string, error) {
	f.resolvedEnv = &env
	f.resolves++
	return f.paths, f.resolveErr
}

func (f *fakeResolver) GraphConflicts(ctx context.Context, env depset.Environment) (depset.ConflictMap, error) {
	return f.conflicts, f.conflictsErr
}

func (f *fakeResolver) ApplyGlobalExclusions(patterns []string, deps []depset.Dependency) []depset.Dependency {
	excluded := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		excluded[p] = true
	}
	out := make([]depset.Dependency, 0, len(deps))
	for _, d := range deps {
		if !excluded[d.Coordinate] {
			out = append(out, d)
		}
	}
	return out
}

// recordingAppender collects appended paths, optionally failing after a
// set number of appends.
type recordingAppender struct {
	paths  []string
	failAt int // fail on the nth append (1-based), 0 means never
}

func (a *recordingAppender) Append(path string) error {
	if a.failAt > 0 && len(a.paths)+1 == a.failAt {
		return errors.New("append rejected")
	}
	a.paths = append(a.paths, path)
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestRunMissingFileIsNoOp(t *testing.T) {
	r := &fakeResolver{}
	a := &recordingAppender{}
	tk := New(r, a, nil)

	if err := tk.Run(context.Background(), Defaults{}, Options{}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(a.paths) != 0 || r.resolves != 0 {
		t.Error("no-op task touched resolver or appender")
	}
}

func TestReadModeAppendsInFileOrder(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classpath")
	if err := classpath.WriteFile(file, []string{"/lib/a.jar", "/lib/b.jar"}); err != nil {
		t.Fatal(err)
	}

	a := &recordingAppender{}
	tk := New(&fakeResolver{}, a, nil)

	if err := tk.Run(context.Background(), Defaults{File: file}, Options{}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	want := []string{"/lib/a.jar", "/lib/b.jar"}
	if !reflect.DeepEqual(a.paths, want) {
		t.Errorf("appended = %v, want %v", a.paths, want)
	}
}

func TestReadModeMissingFileFails(t *testing.T) {
	file := filepath.Join(t.TempDir(), "absent")
	tk := New(&fakeResolver{}, &recordingAppender{}, nil)

	err := tk.Run(context.Background(), Defaults{File: file}, Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Run() error = %v, want os.ErrNotExist", err)
	}
}

func TestReadModePartialAppendOnFailure(t *testing.T) {
	// Read-mode failures are not transactional: entries appended before
	// the failure stay appended.
	file := filepath.Join(t.TempDir(), "classpath")
	if err := classpath.WriteFile(file, []string{"/lib/a.jar", "/lib/b.jar", "/lib/c.jar"}); err != nil {
		t.Fatal(err)
	}

	a := &recordingAppender{failAt: 2}
	tk := New(&fakeResolver{}, a, nil)

	if err := tk.Run(context.Background(), Defaults{File: file}, Options{}); err == nil {
		t.Fatal("Run() succeeded despite append failure")
	}
	if !reflect.DeepEqual(a.paths, []string{"/lib/a.jar"}) {
		t.Errorf("appended = %v, want [/lib/a.jar]", a.paths)
	}
}

func TestWriteModePersistsResolvedPaths(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classpath")
	r := &fakeResolver{paths: []string{"/repo/a/1.0/a-1.0.jar", "/repo/b/2.0/b-2.0.jar"}}
	tk := New(r, nil, nil)

	defaults := Defaults{
		File: file,
		Dependencies: []depset.Dependency{
			{Coordinate: "g:a", Version: "1.0"},
			{Coordinate: "g:b", Version: "2.0"},
		},
	}

	if err := tk.Run(context.Background(), defaults, Options{Write: true}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got, err := classpath.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, r.paths) {
		t.Errorf("classpath file = %v, want %v", got, r.paths)
	}
}

func TestWriteModeFiltersBeforeResolving(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classpath")
	r := &fakeResolver{}
	tk := New(r, nil, nil)

	defaults := Defaults{
		File:   file,
		Scopes: []string{"compile"},
		Dependencies: []depset.Dependency{
			{Coordinate: "g:kept", Version: "1.0", Scope: "compile"},
			{Coordinate: "g:test-only", Version: "1.0", Scope: "test"},
			{Coordinate: SelfCoordinate, Version: "1.0", Scope: "compile"},
		},
	}

	if err := tk.Run(context.Background(), defaults, Options{Write: true}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if r.resolvedEnv == nil {
		t.Fatal("resolver was not invoked")
	}
	deps := r.resolvedEnv.Dependencies
	if len(deps) != 1 || deps[0].Coordinate != "g:kept" {
		t.Errorf("resolver saw %v, want only g:kept", deps)
	}
}

func TestWriteModeAppliesGlobalExclusions(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classpath")
	r := &fakeResolver{}
	tk := New(r, nil, nil)

	defaults := Defaults{
		File:       file,
		Exclusions: []string{"bad:dep"},
		Dependencies: []depset.Dependency{
			{Coordinate: "good:dep", Version: "1.0"},
			{Coordinate: "bad:dep", Version: "1.0"},
		},
	}

	if err := tk.Run(context.Background(), defaults, Options{Write: true}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	deps := r.resolvedEnv.Dependencies
	if len(deps) != 1 || deps[0].Coordinate != "good:dep" {
		t.Errorf("resolver saw %v, want only good:dep", deps)
	}
}

func TestWriteModeExcludesProjectCoordinate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classpath")
	r := &fakeResolver{}
	tk := New(r, nil, nil)

	defaults := Defaults{
		File: file,
		Self: "com.example:app",
		Dependencies: []depset.Dependency{
			{Coordinate: "good:dep", Version: "1.0"},
			{Coordinate: "com.example:app", Version: "0.1.0"},
		},
	}

	if err := tk.Run(context.Background(), defaults, Options{Write: true}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	deps := r.resolvedEnv.Dependencies
	if len(deps) != 1 || deps[0].Coordinate != "good:dep" {
		t.Errorf("resolver saw %v, want the project's own coordinate dropped", deps)
	}
}

func TestSafeModeConflictLeavesFileUntouched(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classpath")
	if err := classpath.WriteFile(file, []string{"/old.jar"}); err != nil {
		t.Fatal(err)
	}

	r := &fakeResolver{conflicts: depset.ConflictMap{"lib:shared": {"1.0", "2.0"}}}
	tk := New(r, nil, nil)

	defaults := Defaults{
		File:         file,
		Safe:         true,
		Dependencies: []depset.Dependency{{Coordinate: "app:root", Version: "1.0"}},
	}

	err := tk.Run(context.Background(), defaults, Options{Write: true})
	var conflictErr *depset.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("Run() error = %v, want ConflictError", err)
	}
	if _, ok := conflictErr.Conflicts["lib:shared"]; !ok {
		t.Error("ConflictError missing conflict detail")
	}
	if r.resolves != 0 {
		t.Error("resolver invoked despite safe-mode failure")
	}

	got, err := classpath.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"/old.jar"}) {
		t.Errorf("classpath file = %v, want prior contents", got)
	}
}

func TestSafeModeConflictWritesNoNewFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classpath")
	r := &fakeResolver{conflicts: depset.ConflictMap{"lib:shared": {"1.0", "2.0"}}}
	tk := New(r, nil, nil)

	defaults := Defaults{
		File:         file,
		Safe:         true,
		Dependencies: []depset.Dependency{{Coordinate: "app:root", Version: "1.0"}},
	}

	if err := tk.Run(context.Background(), defaults, Options{Write: true}); err == nil {
		t.Fatal("Run() succeeded despite conflicts")
	}
	if _, err := os.Stat(file); !errors.Is(err, os.ErrNotExist) {
		t.Error("safe-mode failure created a classpath file")
	}
}

func TestSafeModeDirectOverrideSuppressesConflict(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classpath")
	// The graph reports lib:shared at two versions, but the caller
	// declares it directly, which suppresses the conflict.
	r := &fakeResolver{
		conflicts: depset.ConflictMap{"lib:shared": {"1.0", "2.0"}},
		paths:     []string{"/repo/shared-2.0.jar"},
	}
	tk := New(r, nil, nil)

	defaults := Defaults{
		File:         file,
		Safe:         true,
		Dependencies: []depset.Dependency{{Coordinate: "lib:shared", Version: "2.0"}},
	}

	if err := tk.Run(context.Background(), defaults, Options{Write: true}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestWriteModeResolverErrorPropagates(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classpath")
	resolverErr := errors.New("registry unreachable")
	r := &fakeResolver{resolveErr: resolverErr}
	tk := New(r, nil, nil)

	defaults := Defaults{
		File:         file,
		Dependencies: []depset.Dependency{{Coordinate: "a:b", Version: "1.0"}},
	}

	err := tk.Run(context.Background(), defaults, Options{Write: true})
	if !errors.Is(err, resolverErr) {
		t.Errorf("Run() error = %v, want %v", err, resolverErr)
	}
	if _, statErr := os.Stat(file); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("failed write left a classpath file")
	}
}

func TestWriteModeRelativizesAgainstLocalRepo(t *testing.T) {
	repo := t.TempDir()
	file := filepath.Join(t.TempDir(), "classpath")
	abs := filepath.Join(repo, "g", "a", "1.0", "a-1.0.jar")

	r := &fakeResolver{paths: []string{abs}}
	tk := New(r, nil, nil)

	defaults := Defaults{
		File:         file,
		LocalRepo:    repo,
		Dependencies: []depset.Dependency{{Coordinate: "g:a", Version: "1.0"}},
	}

	if err := tk.Run(context.Background(), defaults, Options{Write: true}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	got, err := classpath.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	want := classpath.Relativize(repo, abs)
	if len(got) != 1 || got[0] != want {
		t.Errorf("classpath file = %v, want [%s]", got, want)
	}
}

func TestWriteModeEmptyDependencySet(t *testing.T) {
	file := filepath.Join(t.TempDir(), "classpath")
	tk := New(&fakeResolver{}, nil, nil)

	if err := tk.Run(context.Background(), Defaults{File: file}, Options{Write: true}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	got, err := classpath.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("classpath file = %v, want empty", got)
	}
}
