package domain

// ApexRR is the sentinel RR value meaning "the apex of the main domain".
const ApexRR = "@"

// RecordType represents a DNS record type. Only A and AAAA records are
// managed by this tool; other types pass through list responses and are
// filtered out before display.
type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeNS    RecordType = "NS"
	RecordTypeMX    RecordType = "MX"
	RecordTypeSRV   RecordType = "SRV"
	RecordTypeCAA   RecordType = "CAA"
)

// Managed reports whether this tool manages records of type t.
func (t RecordType) Managed() bool {
	return t == RecordTypeA || t == RecordTypeAAAA
}

// RecordStatus is the provider-side pause flag on a record. A disabled
// record resolves to nothing but keeps its identity for later re-enable.
type RecordStatus string

const (
	StatusEnable  RecordStatus = "ENABLE"
	StatusDisable RecordStatus = "DISABLE"
)

// Toggled returns the opposite status.
func (s RecordStatus) Toggled() RecordStatus {
	if s == StatusEnable {
		return StatusDisable
	}
	return StatusEnable
}

// Record represents a single DNS resource record as known to the provider.
// The provider's copy is authoritative; Record values are built from list
// responses, used to render or decide, and discarded.
type Record struct {
	// ID is the provider-assigned record identifier. It is the only valid
	// handle for update, status, and delete operations, and is never
	// fabricated client-side.
	ID string `json:"id"`

	// Domain is the registered main domain (e.g. "example.com").
	Domain string `json:"domain"`

	// RR is the relative subdomain label, or ApexRR for the apex.
	RR string `json:"rr"`

	// Type is the record type.
	Type RecordType `json:"type"`

	// Value is the record value (an IP address for A/AAAA).
	Value string `json:"value"`

	// TTL is the time-to-live in seconds.
	TTL int `json:"ttl"`

	// Status is ENABLE or DISABLE.
	Status RecordStatus `json:"status"`
}

// FullName derives the fully-qualified name for the record. It is display
// plumage, never a second source of truth.
func (r Record) FullName() string {
	return FullName(r.Domain, r.RR)
}

// Enabled reports whether the record currently resolves.
func (r Record) Enabled() bool {
	return r.Status != StatusDisable
}

// FullName joins an RR with its main domain, treating ApexRR as the bare
// domain.
func FullName(mainDomain, rr string) string {
	if rr == ApexRR || rr == "" {
		return mainDomain
	}
	return rr + "." + mainDomain
}

// DomainName represents a domain registered in the provider account.
type DomainName struct {
	// Name is the registered domain name (e.g. "example.com").
	Name string `json:"name"`

	// RecordCount is the provider-reported number of records, when known.
	RecordCount int `json:"record_count,omitempty"`
}
