// Package manifest reads jarpath.toml, the project manifest that supplies
// ambient defaults for classpath tasks.
//
// Example:
//
//	[project]
//	coordinate = "com.example:app"
//
//	[settings]
//	file = ".classpath"
//	local-repo = "vendor/m2"
//	scopes = ["compile", "runtime"]
//	exclusions = ["commons-logging:commons-logging"]
//	safe = true
//
//	[[dependencies]]
//	coordinate = "com.google.guava:guava"
//	version = "32.1.3-jre"
//	exclusions = ["com.google.code.findbugs:jsr305"]
//
// Settings are defaults only; command-line flags override them per
// invocation without being erased for the next one.
package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jarpath/pkg/depset"
)

// Filename is the conventional manifest name looked up in the project
// directory.
const Filename = "jarpath.toml"

// Manifest is a parsed jarpath.toml.
type Manifest struct {
	Project      Project      `toml:"project"`
	Settings     Settings     `toml:"settings"`
	Dependencies []Dependency `toml:"dependencies"`
}

// Project identifies the project being built.
type Project struct {
	Coordinate string `toml:"coordinate"`
}

// Settings holds the ambient defaults for classpath tasks.
type Settings struct {
	File       string   `toml:"file"`
	LocalRepo  string   `toml:"local-repo"`
	Scopes     []string `toml:"scopes"`
	Exclusions []string `toml:"exclusions"`
	Safe       bool     `toml:"safe"`
}

// Dependency is one declared dependency entry.
type Dependency struct {
	Coordinate string   `toml:"coordinate"`
	Version    string   `toml:"version"`
	Scope      string   `toml:"scope"`
	Exclusions []string `toml:"exclusions"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	for _, d := range m.DependencySet() {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
	}
	return &m, nil
}

// DependencySet converts the manifest's dependency entries to the depset
// model, preserving declaration order.
func (m *Manifest) DependencySet() []depset.Dependency {
	deps := make([]depset.Dependency, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		deps = append(deps, depset.Dependency{
			Coordinate: d.Coordinate,
			Version:    d.Version,
			Scope:      d.Scope,
			Exclusions: d.Exclusions,
		})
	}
	return deps
}
