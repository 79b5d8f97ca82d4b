package domain

import "context"

// Provider is the interface that DNS providers must implement. Every method
// is a single blocking remote call with no retry layer; failures propagate
// to the caller wrapped around a sentinel error where recognisable.
type Provider interface {
	// GetDisplayName returns the human-readable provider name (e.g. "alidns").
	GetDisplayName() string

	// ListDomains returns all domains in the provider account. An empty
	// slice is a valid result meaning the account manages no domains.
	ListDomains(ctx context.Context) ([]DomainName, error)

	// ListRecords returns all DNS records for the given main domain,
	// including types this tool does not manage. Callers filter.
	ListRecords(ctx context.Context, mainDomain string) ([]Record, error)

	// FindRecord looks up the record for a fully-qualified subdomain name
	// and type. When the provider reports more than one match, the first
	// record in provider list order is returned. Returns ErrNotFound when
	// no record matches.
	FindRecord(ctx context.Context, fullSubDomain string, typ RecordType) (*Record, error)

	// CreateRecord creates a new record and returns it with its assigned ID.
	CreateRecord(ctx context.Context, mainDomain string, opts CreateRecordOpts) (*Record, error)

	// UpdateRecord updates an existing record by its ID, preserving the
	// record's identity and any provider-side metadata keyed by it.
	UpdateRecord(ctx context.Context, id string, opts UpdateRecordOpts) (*Record, error)

	// SetStatus enables or disables a record by its ID.
	SetStatus(ctx context.Context, id string, status RecordStatus) error

	// DeleteRecord deletes a record by its ID. Irreversible; confirmation
	// is the caller's responsibility.
	DeleteRecord(ctx context.Context, id string) error
}
