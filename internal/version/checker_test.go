package version

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestChecker(t *testing.T, handler http.HandlerFunc) *Checker {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Checker{
		baseURL: srv.URL,
		client:  srv.Client(),
	}
}

func releaseHandler(t *testing.T, tag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/releases/latest" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"tag_name": tag})
	}
}

func TestCheck_UpdateAvailable(t *testing.T) {
	old := Current
	Current = "v1.0.0"
	t.Cleanup(func() { Current = old })

	c := newTestChecker(t, releaseHandler(t, "v1.1.0"))
	result, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Outcome != UpdateAvailable {
		t.Errorf("outcome = %v, want UpdateAvailable", result.Outcome)
	}
	if result.Latest != "v1.1.0" || result.Current != "v1.0.0" {
		t.Errorf("result = %+v", result)
	}
}

func TestCheck_UpToDate(t *testing.T) {
	old := Current
	Current = "v1.1.0"
	t.Cleanup(func() { Current = old })

	for _, tag := range []string{"v1.1.0", "v1.0.9"} {
		c := newTestChecker(t, releaseHandler(t, tag))
		result, err := c.Check(context.Background())
		if err != nil {
			t.Fatalf("Check(%s): %v", tag, err)
		}
		if result.Outcome != UpToDate {
			t.Errorf("outcome for tag %s = %v, want UpToDate", tag, result.Outcome)
		}
	}
}

// A remote tag that is not strict vX.Y.Z yields Unknown, never a guess.
func TestCheck_MalformedTag(t *testing.T) {
	c := newTestChecker(t, releaseHandler(t, "release-2024-03"))
	result, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Outcome != Unknown {
		t.Errorf("outcome = %v, want Unknown", result.Outcome)
	}
}

func TestCheck_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := &Checker{
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 20 * time.Millisecond},
	}
	_, err := c.Check(context.Background())
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestCheck_ServerError(t *testing.T) {
	c := newTestChecker(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := c.Check(context.Background())
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("server error must not be reported as a timeout")
	}
}
