package lang

import (
	"errors"
	"sync"
	"testing"

	"github.com/zeebo/xxh3"
)

func TestParseCached_ReturnsSameResult(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	first, err := ParseCached(t.Context(), "let x = 10 / 2")
	if err != nil {
		t.Fatalf("ParseCached error: %v", err)
	}

	second, err := ParseCached(t.Context(), "let x = 10 / 2")
	if err != nil {
		t.Fatalf("ParseCached error: %v", err)
	}

	if first != second {
		t.Error("identical sources returned different results")
	}

	other, err := ParseCached(t.Context(), "let y = 1")
	if err != nil {
		t.Fatalf("ParseCached error: %v", err)
	}

	if other == first {
		t.Error("different sources returned the same result")
	}
}

func TestParseCached_HashCollision(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	other, err := Parse(t.Context(), "7")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	// Occupy the slot of "42" with the parse of another source.
	stale := &entry{source: "7", parsed: other}
	stale.once.Do(func() {})
	globalCache.Store(cacheKey(xxh3.HashString("42")), stale)

	parsed, err := ParseCached(t.Context(), "42")
	if err != nil {
		t.Fatalf("ParseCached error: %v", err)
	}

	if parsed == other || parsed.String() != "42" {
		t.Errorf("ParseCached(%q) = %v, want a parse of its own source", "42", parsed)
	}
}

func TestParseCached_CachesErrors(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	for range 2 {
		parsed, err := ParseCached(t.Context(), "1 + 2 garbage")
		if !errors.Is(err, ErrUnconsumedInput) {
			t.Fatalf("error = %v, want ErrUnconsumedInput", err)
		}

		if parsed != nil {
			t.Errorf("parsed = %v, want nil", parsed)
		}
	}
}

func TestParseCached_Concurrent(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	const workers = 16

	results := make([]*Parsed, workers)

	var wg sync.WaitGroup

	for i := range workers {
		wg.Go(func() {
			parsed, err := ParseCached(t.Context(), "{ let a = 3\n a }")
			if err != nil {
				t.Errorf("ParseCached error: %v", err)

				return
			}

			results[i] = parsed
		})
	}

	wg.Wait()

	for i, r := range results {
		if r != results[0] {
			t.Fatalf("worker %d got a different result", i)
		}
	}

	// Cached statements are shared, so evaluation must not depend on prior runs.
	for range 2 {
		val, err := results[0].Eval(NewEnv())
		if err != nil || val != NumberValue(3) {
			t.Fatalf("Eval = (%v, %v), want 3", val, err)
		}
	}
}

func TestClearCache(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	first, _ := ParseCached(t.Context(), "42")

	ClearCache()

	second, _ := ParseCached(t.Context(), "42")

	if first == second {
		t.Error("ClearCache did not discard cached results")
	}
}
