package vocab

import (
	"context"

	"github.com/MikeO7/rdflabel/pkg/log"
)

// BuildOptions controls how the registry is populated at startup
type BuildOptions struct {
	Fetcher   *Fetcher
	CacheFile string
	Offline   bool
}

// Build populates the registry once. Online it fetches the catalog and
// refreshes the cache, falling back to the cache when the fetch fails.
// Offline it only reads the cache. If nothing can be loaded an empty registry
// is returned; labels then fall back to hashed prefixes.
func Build(ctx context.Context, opts BuildOptions) *Registry {
	if !opts.Offline && opts.Fetcher != nil {
		entries, err := opts.Fetcher.Fetch(ctx)
		if err == nil {
			registry := NewRegistry(entries)
			log.Infof("Loaded %d vocabularies from %s", registry.Len(), opts.Fetcher.Endpoint())
			if opts.CacheFile != "" {
				if err := SaveCache(opts.CacheFile, registry.Entries()); err != nil {
					log.WarnErr("Could not update vocabulary cache", err)
				}
			}
			return registry
		}
		log.WarnErr("Vocabulary fetch failed, trying cache", err)
	}

	if opts.CacheFile != "" {
		entries, err := LoadCache(opts.CacheFile)
		if err == nil {
			registry := NewRegistry(entries)
			log.Infof("Loaded %d vocabularies from cache %s", registry.Len(), opts.CacheFile)
			return registry
		}
		log.WarnErr("Vocabulary cache unavailable", err)
	}

	log.Warn("Vocabulary registry is empty, unbound namespaces will use hashed prefixes")
	return NewRegistry(nil)
}

// Refresh fetches the catalog and writes it to the cache, returning the
// number of distinct namespaces stored
func Refresh(ctx context.Context, fetcher *Fetcher, cacheFile string) (int, error) {
	entries, err := fetcher.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	registry := NewRegistry(entries)
	if err := SaveCache(cacheFile, registry.Entries()); err != nil {
		return 0, err
	}
	return registry.Len(), nil
}
