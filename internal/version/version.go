// Package version holds the build version and the release update check.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Current is the version of this build. Overridable at link time:
//
//	go build -ldflags "-X github.com/QsSama-W/aliddns/internal/version.Current=v1.2.3"
var Current = "v1.0.0"

// ErrInvalidFormat indicates a version string that is not strict
// "vMAJOR.MINOR.PATCH" form.
var ErrInvalidFormat = errors.New("invalid version format")

// semverPattern is deliberately strict: exactly "v" plus three dot-separated
// decimal numbers. Pre-release suffixes, build metadata, and bare "1.2.3"
// are all rejected rather than guessed at.
var semverPattern = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)$`)

// Parse splits a strict "vMAJOR.MINOR.PATCH" string into its numeric parts.
func Parse(v string) (major, minor, patch int, err error) {
	m := semverPattern.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, v)
	}
	major, _ = strconv.Atoi(m[1])
	minor, _ = strconv.Atoi(m[2])
	patch, _ = strconv.Atoi(m[3])
	return major, minor, patch, nil
}

// IsNewer reports whether candidate is strictly newer than current by
// numeric (major, minor, patch) comparison. Equal versions are not newer.
// Either argument failing to parse yields ErrInvalidFormat.
func IsNewer(candidate, current string) (bool, error) {
	cMaj, cMin, cPat, err := Parse(candidate)
	if err != nil {
		return false, err
	}
	uMaj, uMin, uPat, err := Parse(current)
	if err != nil {
		return false, err
	}

	if cMaj != uMaj {
		return cMaj > uMaj, nil
	}
	if cMin != uMin {
		return cMin > uMin, nil
	}
	return cPat > uPat, nil
}
