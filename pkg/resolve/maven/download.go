package maven

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/jarpath/pkg/cache"
)

// FetchArtifact downloads one JAR into the local repository at dest.
// The download streams to a temporary file beside dest and renames into
// place, so a partially transferred JAR is never visible under its final
// name. Artifact bytes are never stored in the metadata cache.
func (c *Client) FetchArtifact(ctx context.Context, group, artifact, version, dest string) error {
	url := c.jarURL(group, artifact, version)

	return cache.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %s", cache.ErrNotFound, url)
		case resp.StatusCode >= 500:
			return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, resp.StatusCode))
		default:
			return fmt.Errorf("%w: status %d", cache.ErrNetwork, resp.StatusCode)
		}

		return writeAtomic(dest, resp.Body)
	})
}

func (c *Client) jarURL(group, artifact, version string) string {
	groupPath := strings.ReplaceAll(group, ".", "/")
	return fmt.Sprintf("%s/%s/%s/%s/%s-%s.jar", c.baseURL, groupPath, artifact, version, artifact, version)
}

func writeAtomic(dest string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	tmp := dest + "." + uuid.NewString() + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

var _ ArtifactSource = (*Client)(nil)
