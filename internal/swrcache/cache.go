// Package swrcache is a small file-backed cache with stale-while-revalidate
// semantics, used to keep domain and record listings snappy between runs.
// Mutating operations invalidate their keys so the next read hits the API.
package swrcache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultFreshTTL = 2 * time.Minute
	defaultMaxStale = 30 * time.Minute
	refreshTimeout  = 30 * time.Second
)

// Cache stores JSON entries under a directory, one file per key.
type Cache struct {
	dir      string
	freshTTL time.Duration
	maxStale time.Duration
}

// entry wraps cached data with the time it was fetched.
type entry[T any] struct {
	Data      T         `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
}

// New returns a cache rooted at dir with default TTLs.
func New(dir string) *Cache {
	return &Cache{dir: dir, freshTTL: defaultFreshTTL, maxStale: defaultMaxStale}
}

// NewDefault returns a cache rooted at the OS user cache dir.
func NewDefault() *Cache {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return New(filepath.Join(base, "aliddns", "dns"))
}

// WithTTLs returns a cache rooted at dir with custom TTLs. Intended for tests.
func WithTTLs(dir string, freshTTL, maxStale time.Duration) *Cache {
	return &Cache{dir: dir, freshTTL: freshTTL, maxStale: maxStale}
}

// GetOrFetch returns data for key, serving a cached copy when it is fresh,
// serving a stale copy while refreshing in the background when it is within
// the stale window, and fetching synchronously otherwise.
func GetOrFetch[T any](c *Cache, ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c == nil || c.dir == "" {
		return fetch(ctx)
	}

	cached, ok := read[T](c, key)
	if !ok || cached.FetchedAt.IsZero() {
		return fetchAndStore(c, ctx, key, fetch)
	}

	age := time.Since(cached.FetchedAt)
	switch {
	case age < 0:
		return fetchAndStore(c, ctx, key, fetch)
	case age <= c.freshTTL:
		return cached.Data, nil
	case c.maxStale <= 0 || age <= c.maxStale:
		go refresh(c, key, fetch)
		return cached.Data, nil
	default:
		return fetchAndStore(c, ctx, key, fetch)
	}
}

// Invalidate removes a single cached entry.
func (c *Cache) Invalidate(key string) error {
	if c == nil || c.dir == "" {
		return nil
	}
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes all cached entries.
func (c *Cache) Clear() error {
	if c == nil || c.dir == "" {
		return nil
	}
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, f := range files {
		if err := os.RemoveAll(filepath.Join(c.dir, f.Name())); err != nil {
			return err
		}
	}
	return nil
}

func fetchAndStore[T any](c *Cache, ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	data, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	_ = write(c, key, entry[T]{Data: data, FetchedAt: time.Now()})
	return data, nil
}

func refresh[T any](c *Cache, key string, fetch func(context.Context) (T, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	data, err := fetch(ctx)
	if err != nil {
		return
	}
	_ = write(c, key, entry[T]{Data: data, FetchedAt: time.Now()})
}

func read[T any](c *Cache, key string) (entry[T], bool) {
	var zero entry[T]
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return zero, false
	}
	var e entry[T]
	if err := json.Unmarshal(data, &e); err != nil {
		return zero, false
	}
	return e, true
}

// write stores an entry atomically: temp file then rename, so a crashed
// writer never leaves a truncated JSON file behind.
func write[T any](c *Cache, key string, e entry[T]) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, sanitize(key)+".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Rename(name, c.path(key))
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, sanitize(key)+".json")
}

func sanitize(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "cache"
	}
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		ch := key[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' || ch == '_' {
			b.WriteByte(ch)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
