package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/jarpath/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "jarpath"

// cacheDir returns the cache directory using XDG standard (~/.cache/jarpath/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// newStore selects the metadata cache backend. A Redis address takes
// precedence so CI fleets can share one cache; otherwise a per-user file
// cache is used. An unresolvable cache directory degrades to no caching.
func newStore(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
