package depset

import (
	"reflect"
	"testing"
)

func TestDependencyValidate(t *testing.T) {
	tests := []struct {
		name    string
		dep     Dependency
		wantErr bool
	}{
		{"valid", dep("com.google.guava:guava", "32.1.3-jre", "compile"), false},
		{"valid with exclusions", Dependency{
			Coordinate: "org.apache.hadoop:hadoop-client",
			Version:    "3.3.6",
			Exclusions: []string{"log4j:log4j"},
		}, false},
		{"missing colon", dep("guava", "32.1.3-jre", ""), true},
		{"empty group", dep(":guava", "1.0", ""), true},
		{"empty artifact", dep("com.google.guava:", "1.0", ""), true},
		{"missing version", dep("a:b", "", ""), true},
		{"bad exclusion", Dependency{
			Coordinate: "a:b",
			Version:    "1.0",
			Exclusions: []string{"not-a-coordinate"},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dep.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEffectiveScope(t *testing.T) {
	if got := dep("a:b", "1.0", "").EffectiveScope(); got != "compile" {
		t.Errorf("EffectiveScope() = %q, want \"compile\"", got)
	}
	if got := dep("a:b", "1.0", "test").EffectiveScope(); got != "test" {
		t.Errorf("EffectiveScope() = %q, want \"test\"", got)
	}
}

func TestEnvironmentEffectiveScopes(t *testing.T) {
	var env Environment
	if got := env.EffectiveScopes(); !reflect.DeepEqual(got, DefaultScopes) {
		t.Errorf("EffectiveScopes() = %v, want %v", got, DefaultScopes)
	}

	env.Scopes = []string{"test"}
	if got := env.EffectiveScopes(); !reflect.DeepEqual(got, []string{"test"}) {
		t.Errorf("EffectiveScopes() = %v, want [test]", got)
	}
}

func TestEnvironmentDirect(t *testing.T) {
	env := Environment{Dependencies: []Dependency{
		dep("a:a", "1.0", "compile"),
		dep("b:b", "2.0", "runtime"),
		dep("a:a", "1.1", "compile"), // duplicate coordinate is allowed
	}}
	direct := env.Direct()
	if len(direct) != 2 || !direct["a:a"] || !direct["b:b"] {
		t.Errorf("Direct() = %v, want {a:a, b:b}", direct)
	}
}

func TestConflictMapCoordinates(t *testing.T) {
	m := ConflictMap{"z:z": {"1"}, "a:a": {"2"}, "m:m": {"3"}}
	want := []string{"a:a", "m:m", "z:z"}
	if got := m.Coordinates(); !reflect.DeepEqual(got, want) {
		t.Errorf("Coordinates() = %v, want %v", got, want)
	}
}

func TestDependencyString(t *testing.T) {
	if got := dep("a:b", "1.2.3", "").String(); got != "a:b@1.2.3" {
		t.Errorf("String() = %q, want \"a:b@1.2.3\"", got)
	}
}
