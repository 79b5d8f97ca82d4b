package services

import (
	"testing"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
)

func TestClassify_IPv4(t *testing.T) {
	valid := []string{
		"0.0.0.0",
		"1.2.3.4",
		"203.0.113.5",
		"255.255.255.255",
		"192.168.001.001", // leading zeros tolerated
		"  10.0.0.1  ",    // surrounding whitespace trimmed
	}
	for _, ip := range valid {
		if got := Classify(ip); got != FamilyIPv4 {
			t.Errorf("Classify(%q) = %v, want IPv4", ip, got)
		}
	}
}

func TestClassify_IPv4Invalid(t *testing.T) {
	invalid := []string{
		"256.0.0.1",  // octet out of range
		"1.2.3",      // too few segments
		"1.2.3.4.5",  // too many segments
		"1.2.3.1000", // segment too long
		"1.2.3.4x",   // trailing content
		"a.b.c.d",
		"1..2.3",
	}
	for _, ip := range invalid {
		if got := Classify(ip); got != FamilyInvalid {
			t.Errorf("Classify(%q) = %v, want invalid", ip, got)
		}
	}
}

func TestClassify_IPv6Full(t *testing.T) {
	valid := []string{
		"2001:0db8:0000:0000:0000:0000:0000:0001",
		"fe80:0:0:0:0:0:0:1",
		"1:2:3:4:5:6:7:8",
		"FFFF:ffff:FFFF:ffff:FFFF:ffff:FFFF:ffff",
	}
	for _, ip := range valid {
		if got := Classify(ip); got != FamilyIPv6 {
			t.Errorf("Classify(%q) = %v, want IPv6", ip, got)
		}
	}
}

// Compressed forms are accepted by policy: the earlier full-form-only
// validator was a bug, not behavior to preserve.
func TestClassify_IPv6Compressed(t *testing.T) {
	valid := []string{
		"::",
		"::1",
		"1::",
		"2001:db8::1",
		"fe80::1:2:3",
		"1:2:3:4:5:6:7::",
		"::1:2:3:4:5:6:7",
	}
	for _, ip := range valid {
		if got := Classify(ip); got != FamilyIPv6 {
			t.Errorf("Classify(%q) = %v, want IPv6", ip, got)
		}
	}
}

func TestClassify_IPv6Invalid(t *testing.T) {
	invalid := []string{
		"1:2:3:4:5:6:7",       // 7 groups, no compression
		"1:2:3:4:5:6:7:8:9",   // 9 groups
		"1:2:3:4:5:6:7:8::",   // 8 explicit groups plus ::
		"::1:2:3:4:5:6:7:8",   // likewise on the right
		"1::2::3",             // two compressions
		"12345::",             // hextet too long
		"g::1",                // non-hex character
		":::",                 // malformed
		"2001:db8::1 extra",   // trailing content
		"",                    // empty
		"just-not-an-address", // garbage
	}
	for _, ip := range invalid {
		if got := Classify(ip); got != FamilyInvalid {
			t.Errorf("Classify(%q) = %v, want invalid", ip, got)
		}
	}
}

func TestFamily_RecordType(t *testing.T) {
	if typ, ok := FamilyIPv4.RecordType(); !ok || typ != domain.RecordTypeA {
		t.Errorf("IPv4 record type = (%v, %v), want (A, true)", typ, ok)
	}
	if typ, ok := FamilyIPv6.RecordType(); !ok || typ != domain.RecordTypeAAAA {
		t.Errorf("IPv6 record type = (%v, %v), want (AAAA, true)", typ, ok)
	}
	if _, ok := FamilyInvalid.RecordType(); ok {
		t.Error("invalid family should not map to a record type")
	}
}

func TestNormalizeRR(t *testing.T) {
	cases := []struct {
		rr, mainDomain, want string
	}{
		{"www", "example.com", "www"},
		{"", "example.com", "@"},
		{"@", "example.com", "@"},
		{"WWW", "example.com", "www"},
		{"www.example.com", "example.com", "www"},
		{"example.com", "example.com", "@"},
		{" www. ", "example.com", "www"},
	}
	for _, tc := range cases {
		if got := normalizeRR(tc.rr, tc.mainDomain); got != tc.want {
			t.Errorf("normalizeRR(%q, %q) = %q, want %q", tc.rr, tc.mainDomain, got, tc.want)
		}
	}
}

func TestNormalizeDomain(t *testing.T) {
	if got := normalizeDomain("  EXAMPLE.COM.  "); got != "example.com" {
		t.Errorf("normalizeDomain = %q, want %q", got, "example.com")
	}
}
