package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	releaseBaseURL = "https://api.github.com/repos/QsSama-W/aliddns"
	checkTimeout   = 10 * time.Second
)

// ErrTimeout indicates the release endpoint did not answer within the check
// window. Distinct from other network failures so callers can soften the
// message: a slow network is not an outage.
var ErrTimeout = errors.New("update check timed out")

// Outcome is the three-valued result of an update check.
type Outcome int

const (
	// UpToDate means the latest release is not newer than the running build.
	UpToDate Outcome = iota
	// UpdateAvailable means a strictly newer release exists.
	UpdateAvailable
	// Unknown means the latest tag did not parse as a strict version; no
	// comparison was possible.
	Unknown
)

// CheckResult carries the outcome of one update check.
type CheckResult struct {
	Outcome Outcome
	Latest  string
	Current string
}

// Checker queries the release endpoint for the latest published tag.
type Checker struct {
	baseURL string
	client  *http.Client
}

// NewChecker returns a Checker with the default endpoint and timeout.
func NewChecker() *Checker {
	return &Checker{
		baseURL: releaseBaseURL,
		client:  &http.Client{Timeout: checkTimeout},
	}
}

// Check fetches the latest release tag and compares it to the running build.
// A malformed remote tag yields Outcome Unknown, not an error; network
// failures and timeouts are errors.
func (c *Checker) Check(ctx context.Context) (*CheckResult, error) {
	latest, err := c.latestTag(ctx)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{Latest: latest, Current: Current}
	newer, err := IsNewer(latest, Current)
	switch {
	case errors.Is(err, ErrInvalidFormat):
		result.Outcome = Unknown
	case err != nil:
		return nil, err
	case newer:
		result.Outcome = UpdateAvailable
	default:
		result.Outcome = UpToDate
	}
	return result, nil
}

func (c *Checker) latestTag(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/releases/latest", nil)
	if err != nil {
		return "", fmt.Errorf("update check: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("update check: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("update check: unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("update check: failed to decode response: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("update check: release has no tag name")
	}
	return release.TagName, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
