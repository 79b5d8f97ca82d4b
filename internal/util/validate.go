package util

import (
	"fmt"
	"regexp"
	"strings"
)

// validRRChars matches only alphanumeric characters, hyphens, periods,
// underscores, and the wildcard star.
var validRRChars = regexp.MustCompile(`^[a-zA-Z0-9.\-_*]+$`)

// ValidateRR checks that an RR (the relative subdomain label) is acceptable
// to alidns:
//   - "@" (the apex marker) and "*" (wildcard) are always valid
//   - Otherwise only alphanumerics, hyphens, underscores, and periods
//   - No empty labels (leading/trailing/consecutive periods)
//   - Labels must not start or end with a hyphen
func ValidateRR(rr string) error {
	if rr == "@" || rr == "*" {
		return nil
	}
	if rr == "" {
		return fmt.Errorf("rr cannot be empty (use \"@\" for the apex)")
	}
	if !validRRChars.MatchString(rr) {
		return fmt.Errorf("rr %q contains invalid characters (only a-z, A-Z, 0-9, hyphens, underscores, and periods are allowed)", rr)
	}

	for _, label := range strings.Split(rr, ".") {
		if label == "" {
			return fmt.Errorf("rr %q contains an empty label", rr)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("rr label %q must not start or end with a hyphen", label)
		}
	}

	return nil
}
