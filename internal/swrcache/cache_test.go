package swrcache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrFetch_MissFetchesAndStores(t *testing.T) {
	c := New(t.TempDir())
	var calls atomic.Int32

	fetch := func(context.Context) ([]string, error) {
		calls.Add(1)
		return []string{"example.com"}, nil
	}

	got, err := GetOrFetch(c, context.Background(), "domains", fetch)
	if err != nil {
		t.Fatalf("GetOrFetch failed: %v", err)
	}
	if len(got) != 1 || got[0] != "example.com" {
		t.Errorf("unexpected data: %v", got)
	}

	// Second call within the fresh window must not re-fetch.
	_, err = GetOrFetch(c, context.Background(), "domains", fetch)
	if err != nil {
		t.Fatal(err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected 1 fetch, got %d", n)
	}
}

func TestGetOrFetch_FetchErrorPropagates(t *testing.T) {
	c := New(t.TempDir())
	want := errors.New("api down")

	_, err := GetOrFetch(c, context.Background(), "k", func(context.Context) (int, error) {
		return 0, want
	})
	if !errors.Is(err, want) {
		t.Errorf("expected fetch error to propagate, got %v", err)
	}
}

func TestGetOrFetch_ExpiredRefetchesSynchronously(t *testing.T) {
	// maxStale of 1ns makes any stored entry fully expired.
	c := WithTTLs(t.TempDir(), time.Nanosecond, time.Nanosecond)
	var calls atomic.Int32

	fetch := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	if _, err := GetOrFetch(c, context.Background(), "k", fetch); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	got, err := GetOrFetch(c, context.Background(), "k", fetch)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("expected synchronous refetch to return fresh value 2, got %d", got)
	}
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	c := New(t.TempDir())
	var calls atomic.Int32

	fetch := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	if _, err := GetOrFetch(c, context.Background(), "k", fetch); err != nil {
		t.Fatal(err)
	}
	if err := c.Invalidate("k"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	got, err := GetOrFetch(c, context.Background(), "k", fetch)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("expected refetch after invalidation, got value %d", got)
	}
}

func TestInvalidate_MissingKeyIsNoError(t *testing.T) {
	c := New(t.TempDir())
	if err := c.Invalidate("never-stored"); err != nil {
		t.Errorf("Invalidate of missing key should be nil, got %v", err)
	}
}

func TestNilCache_PassesThrough(t *testing.T) {
	var c *Cache
	got, err := GetOrFetch(c, context.Background(), "k", func(context.Context) (string, error) {
		return "direct", nil
	})
	if err != nil || got != "direct" {
		t.Errorf("nil cache should call fetch directly, got (%q, %v)", got, err)
	}
}
