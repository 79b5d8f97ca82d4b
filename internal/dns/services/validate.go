package services

import (
	"regexp"
	"strings"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
)

// DefaultTTL is the TTL applied when none is specified (the alidns default).
const DefaultTTL = 600

// Family is the classification of a free-text IP address input.
type Family int

const (
	FamilyInvalid Family = iota
	FamilyIPv4
	FamilyIPv6
)

// String returns a short label for display ("IPv4", "IPv6", "invalid").
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "IPv4"
	case FamilyIPv6:
		return "IPv6"
	default:
		return "invalid"
	}
}

// RecordType maps a family to the record type it implies. ok is false for
// FamilyInvalid.
func (f Family) RecordType() (domain.RecordType, bool) {
	switch f {
	case FamilyIPv4:
		return domain.RecordTypeA, true
	case FamilyIPv6:
		return domain.RecordTypeAAAA, true
	default:
		return "", false
	}
}

// octet matches a single decimal segment in [0,255]. Leading zeros are
// tolerated ("001" parses as 1), matching what the provider accepts.
const octet = `(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)`

var (
	ipv4Pattern = regexp.MustCompile(`^` + octet + `(\.` + octet + `){3}$`)

	// hextets matches a colon-separated run of 1-4 digit hex groups.
	hextets = regexp.MustCompile(`^[0-9a-fA-F]{1,4}(:[0-9a-fA-F]{1,4})*$`)

	ipv6FullPattern = regexp.MustCompile(`^([0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}$`)
)

// Classify reports whether input is an IPv4 literal, an IPv6 literal, or
// neither. Pure and total: any string yields a result, nothing panics.
//
// IPv4 requires exactly four dot-separated segments, each range-checked to
// [0,255] by pattern. IPv6 accepts the canonical 8-hextet form and all
// "::"-compressed forms, including "::" and "::1". (Earlier builds of this
// tool only recognised the full 8-group form; compressed addresses are valid
// and deliberately accepted here.)
func Classify(input string) Family {
	input = strings.TrimSpace(input)
	if input == "" {
		return FamilyInvalid
	}

	if ipv4Pattern.MatchString(input) {
		return FamilyIPv4
	}
	if isIPv6(input) {
		return FamilyIPv6
	}
	return FamilyInvalid
}

func isIPv6(s string) bool {
	if ipv6FullPattern.MatchString(s) {
		return true
	}

	// Compressed form: exactly one "::", with plain hextet runs (possibly
	// empty) on either side. The "::" stands for at least one zero group,
	// so at most 7 groups may appear explicitly.
	left, right, found := strings.Cut(s, "::")
	if !found || strings.Contains(right, "::") {
		return false
	}
	if left != "" && !hextets.MatchString(left) {
		return false
	}
	if right != "" && !hextets.MatchString(right) {
		return false
	}
	return countGroups(left)+countGroups(right) <= 7
}

func countGroups(run string) int {
	if run == "" {
		return 0
	}
	return strings.Count(run, ":") + 1
}

// normalizeDomain lowercases and strips any trailing dot from a domain name.
func normalizeDomain(d string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(d), "."))
}

// normalizeRR trims an RR label, maps blank to the apex marker, lowercases,
// and strips a fully-qualified ".mainDomain" suffix the user may have typed.
func normalizeRR(rr, mainDomain string) string {
	rr = strings.ToLower(strings.TrimSpace(rr))
	rr = strings.TrimRight(rr, ".")
	if rr == "" {
		return domain.ApexRR
	}

	suffix := "." + mainDomain
	if strings.HasSuffix(rr, suffix) {
		rr = rr[:len(rr)-len(suffix)]
	}
	if rr == mainDomain || rr == "" {
		return domain.ApexRR
	}
	return rr
}
