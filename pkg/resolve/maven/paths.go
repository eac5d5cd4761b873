package maven

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultLocalRepo returns the conventional local repository location,
// ~/.m2/repository.
func DefaultLocalRepo() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".m2", "repository"), nil
}

// ArtifactPath returns the JAR location for a coordinate and version under
// a local repository laid out the standard Maven way. The coordinate must
// be "groupId:artifactId".
func ArtifactPath(repo, coordinate, version string) string {
	group, artifact, _ := strings.Cut(coordinate, ":")
	parts := append([]string{repo}, strings.Split(group, ".")...)
	parts = append(parts, artifact, version, artifact+"-"+version+".jar")
	return filepath.Join(parts...)
}
