package util

import "testing"

func TestValidateRR_Valid(t *testing.T) {
	valid := []string{"@", "*", "www", "mail", "a", "web-1", "dev.api", "_acme-challenge", "x_y"}
	for _, rr := range valid {
		if err := ValidateRR(rr); err != nil {
			t.Errorf("ValidateRR(%q) = %v, want nil", rr, err)
		}
	}
}

func TestValidateRR_Invalid(t *testing.T) {
	invalid := []string{"", "www..api", ".www", "www.", "-www", "www-", "a.-b", "sp ace", "héllo"}
	for _, rr := range invalid {
		if err := ValidateRR(rr); err == nil {
			t.Errorf("ValidateRR(%q) = nil, want error", rr)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"  Alidns ": "alidns",
		"ALIDNS":    "alidns",
		"":          "",
	}
	for in, want := range cases {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
