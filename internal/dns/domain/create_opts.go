package domain

// CreateRecordOpts holds the parameters for creating a new DNS record.
type CreateRecordOpts struct {
	// RR is the relative subdomain label. Use ApexRR for the apex.
	RR string

	// Type is the DNS record type. Required.
	Type RecordType

	// Value is the record value. Required.
	Value string

	// TTL is the time-to-live in seconds.
	// Zero means use the provider default (600 for alidns).
	TTL int
}

// UpdateRecordOpts holds the parameters for updating an existing record.
// alidns requires the full (rr, type, value) triple on every update.
type UpdateRecordOpts struct {
	// RR is the subdomain label for the record. Required.
	RR string

	// Type is the record type. Required.
	Type RecordType

	// Value is the new record value. Required.
	Value string

	// TTL is the new time-to-live in seconds. Zero keeps the provider default.
	TTL int
}
