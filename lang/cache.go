package lang

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// globalCache stores parse results keyed by the xxh3 hash of their source.
// Parsed statements are never mutated after parsing, so sharing one across
// callers (and goroutines) is safe.
var globalCache sync.Map

// entry tracks the parse of a single source text.
type entry struct {
	once   sync.Once
	source string
	parsed *Parsed
	err    error
}

func cacheKey(hash uint64) string { return strconv.FormatUint(hash, 36) }

// ParseCached is [Parse] with memoization: identical source text is parsed
// once and the same *Parsed (or error) is returned on every later call.
// Options only take effect on the call that performs the parse.
func ParseCached(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Parsed, error) {
	o := makeOptions(opts...)

	hash := xxh3.HashString(source)
	key := cacheKey(hash)

	value, hit := globalCache.LoadOrStore(key, &entry{source: source})

	cached, ok := value.(*entry)
	if !ok {
		return nil, NewError("invalid cache entry").
			With(slog.String("key", key))
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", hit))

	// A different source with the same hash is parsed without caching.
	if cached.source != source {
		o.logger.TraceContext(ctx, "cache collision",
			slog.String("source_hash", strconv.FormatUint(hash, 16)))

		return Parse(ctx, source, opts...)
	}

	cached.once.Do(func() {
		cached.parsed, cached.err = Parse(ctx, source, opts...)
	})

	return cached.parsed, cached.err
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
