package maven

import (
	"encoding/xml"
	"strings"
)

// Project is the subset of a POM file the resolver needs.
type Project struct {
	GroupID      string       `xml:"groupId"`
	ArtifactID   string       `xml:"artifactId"`
	Version      string       `xml:"version"`
	Packaging    string       `xml:"packaging"`
	Dependencies []Dependency `xml:"dependencies>dependency"`
	Parent       *Parent      `xml:"parent"`
}

// Parent identifies a POM's parent project.
type Parent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// Dependency is one <dependency> element.
type Dependency struct {
	GroupID    string      `xml:"groupId"`
	ArtifactID string      `xml:"artifactId"`
	Version    string      `xml:"version"`
	Scope      string      `xml:"scope"`
	Optional   string      `xml:"optional"`
	Exclusions []Exclusion `xml:"exclusions>exclusion"`
}

// Exclusion is one <exclusion> element inside a dependency.
type Exclusion struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
}

// Coordinate returns the dependency's "groupId:artifactId" identity.
func (d Dependency) Coordinate() string {
	return d.GroupID + ":" + d.ArtifactID
}

// Coordinate returns the exclusion's "groupId:artifactId" identity.
func (e Exclusion) Coordinate() string {
	return e.GroupID + ":" + e.ArtifactID
}

// parsePOM decodes raw POM bytes.
func parsePOM(data []byte) (*Project, error) {
	var p Project
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	// Version and group may be inherited from the parent.
	if p.GroupID == "" && p.Parent != nil {
		p.GroupID = p.Parent.GroupID
	}
	if p.Version == "" && p.Parent != nil {
		p.Version = p.Parent.Version
	}
	return &p, nil
}

// walkable reports whether a POM dependency propagates onto the runtime
// classpath of its dependents.
func walkable(d Dependency) bool {
	if d.Scope == "test" || d.Scope == "provided" || d.Optional == "true" {
		return false
	}
	// Unresolved Maven properties cannot be fetched.
	if strings.HasPrefix(d.GroupID, "${") || strings.HasPrefix(d.ArtifactID, "${") || strings.HasPrefix(d.Version, "${") {
		return false
	}
	// Without dependencyManagement evaluation there is no version to
	// fetch; skip rather than guess.
	return d.Version != ""
}
