// Package services provides the DNS business logic layer.
//
// The Service type wraps a domain.Provider and adds input normalisation,
// IP classification, and the reconcile-or-create decision before delegating
// to the provider. CLI commands and TUI models construct a Service from a
// resolved provider and call service methods rather than the provider
// directly. After every successful mutation the service re-fetches the
// domain's record list from the provider; callers never see a locally
// patched copy.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
	"github.com/QsSama-W/aliddns/internal/oplog"
	"github.com/QsSama-W/aliddns/internal/swrcache"
	"github.com/QsSama-W/aliddns/internal/util"
)

// ErrInvalidAddress indicates input that is neither a valid IPv4 nor IPv6
// literal.
var ErrInvalidAddress = errors.New("not a valid IPv4 or IPv6 address")

// Service is the DNS business logic layer.
type Service struct {
	provider domain.Provider
	cache    *swrcache.Cache
	log      oplog.Repository
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables stale-while-revalidate caching for read operations.
func WithCache(cache *swrcache.Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithOpLog records every operation outcome in the given repository.
func WithOpLog(repo oplog.Repository) Option {
	return func(s *Service) {
		s.log = repo
	}
}

// New returns a Service backed by the given provider.
func New(provider domain.Provider, opts ...Option) *Service {
	svc := &Service{provider: provider}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ProviderName returns the display name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.GetDisplayName()
}

// ReconcileOutcome says whether Reconcile updated an existing record or
// created a new one.
type ReconcileOutcome string

const (
	OutcomeCreated ReconcileOutcome = "created"
	OutcomeUpdated ReconcileOutcome = "updated"
)

// ReconcileResult carries the result of a successful Reconcile.
type ReconcileResult struct {
	Outcome  ReconcileOutcome
	RecordID string
	FullName string
	Type     domain.RecordType
	Value    string

	// Records is the fresh post-mutation record list for the domain,
	// re-fetched from the provider.
	Records []domain.Record
}

// Message renders the user-facing one-line summary of the result.
func (r *ReconcileResult) Message() string {
	verb := "added"
	if r.Outcome == OutcomeUpdated {
		verb = "updated"
	}
	return fmt.Sprintf("%s %s -> %s (%s) [record %s]", verb, r.FullName, r.Value, r.Type, r.RecordID)
}

// ListDomains returns all domains in the provider account. An empty list is
// a valid result.
func (s *Service) ListDomains(ctx context.Context) ([]domain.DomainName, error) {
	if s.cache == nil {
		return s.provider.ListDomains(ctx)
	}

	key := cacheKey(s.provider.GetDisplayName(), "domains")
	return swrcache.GetOrFetch(s.cache, ctx, key, s.provider.ListDomains)
}

// ListRecords returns the A and AAAA records for the given domain. Records
// of other types are filtered out before returning.
func (s *Service) ListRecords(ctx context.Context, mainDomain string) ([]domain.Record, error) {
	mainDomain = normalizeDomain(mainDomain)
	if mainDomain == "" {
		return nil, fmt.Errorf("domain name is required")
	}
	if s.cache == nil {
		return s.fetchRecords(ctx, mainDomain)
	}

	key := cacheKey(s.provider.GetDisplayName(), "records", mainDomain)
	return swrcache.GetOrFetch(s.cache, ctx, key, func(ctx context.Context) ([]domain.Record, error) {
		return s.fetchRecords(ctx, mainDomain)
	})
}

// Reconcile converges the record for (mainDomain, rr) toward ip: it derives
// the record type from the address family, updates the existing record of
// that (name, type) pair in place when one exists, and creates a new record
// otherwise. Exactly one mutation call is issued, then the record list is
// re-fetched.
func (s *Service) Reconcile(ctx context.Context, mainDomain, rr, ip string) (*ReconcileResult, error) {
	start := time.Now()

	mainDomain = normalizeDomain(mainDomain)
	if mainDomain == "" {
		return nil, fmt.Errorf("domain name is required")
	}
	rr = normalizeRR(rr, mainDomain)
	if err := util.ValidateRR(rr); err != nil {
		return nil, err
	}

	typ, ok := Classify(ip).RecordType()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, ip)
	}

	fullName := domain.FullName(mainDomain, rr)

	result, err := s.applyRecord(ctx, mainDomain, rr, fullName, typ, ip)
	s.record("reconcile", mainDomain, resultID(result), fullName, start, err, resultDetail(result))
	if err != nil {
		return nil, err
	}

	result.Records, err = s.freshRecords(ctx, mainDomain)
	if err != nil {
		// The mutation itself succeeded; say so in the error.
		return nil, fmt.Errorf("%s, but refreshing the record list failed: %w", result.Message(), err)
	}
	return result, nil
}

// applyRecord issues the single create-or-update mutation for Reconcile.
func (s *Service) applyRecord(ctx context.Context, mainDomain, rr, fullName string, typ domain.RecordType, ip string) (*ReconcileResult, error) {
	existing, err := s.provider.FindRecord(ctx, fullName, typ)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		rec, err := s.provider.UpdateRecord(ctx, existing.ID, domain.UpdateRecordOpts{
			RR:    rr,
			Type:  typ,
			Value: ip,
		})
		if err != nil {
			return nil, err
		}
		return &ReconcileResult{
			Outcome:  OutcomeUpdated,
			RecordID: rec.ID,
			FullName: fullName,
			Type:     typ,
			Value:    ip,
		}, nil
	}

	rec, err := s.provider.CreateRecord(ctx, mainDomain, domain.CreateRecordOpts{
		RR:    rr,
		Type:  typ,
		Value: ip,
		TTL:   DefaultTTL,
	})
	if err != nil {
		return nil, err
	}
	return &ReconcileResult{
		Outcome:  OutcomeCreated,
		RecordID: rec.ID,
		FullName: fullName,
		Type:     typ,
		Value:    ip,
	}, nil
}

// SetStatus enables or disables a record and returns the refreshed record
// list for the domain.
func (s *Service) SetStatus(ctx context.Context, mainDomain, id string, status domain.RecordStatus) ([]domain.Record, error) {
	start := time.Now()

	mainDomain = normalizeDomain(mainDomain)
	if mainDomain == "" {
		return nil, fmt.Errorf("domain name is required")
	}
	if id == "" {
		return nil, fmt.Errorf("record ID is required")
	}

	err := s.provider.SetStatus(ctx, id, status)
	s.record("set-status", mainDomain, id, "", start, err, string(status))
	if err != nil {
		return nil, err
	}

	return s.freshRecords(ctx, mainDomain)
}

// Delete removes a record unconditionally and returns the refreshed record
// list. Confirmation (twice) is the caller's job; the service never gates
// on it.
func (s *Service) Delete(ctx context.Context, mainDomain, id string) ([]domain.Record, error) {
	start := time.Now()

	mainDomain = normalizeDomain(mainDomain)
	if mainDomain == "" {
		return nil, fmt.Errorf("domain name is required")
	}
	if id == "" {
		return nil, fmt.Errorf("record ID is required")
	}

	err := s.provider.DeleteRecord(ctx, id)
	s.record("delete", mainDomain, id, "", start, err, "")
	if err != nil {
		return nil, err
	}

	return s.freshRecords(ctx, mainDomain)
}

// fetchRecords lists and filters without touching the cache.
func (s *Service) fetchRecords(ctx context.Context, mainDomain string) ([]domain.Record, error) {
	records, err := s.provider.ListRecords(ctx, mainDomain)
	if err != nil {
		return nil, err
	}

	managed := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if r.Type.Managed() {
			managed = append(managed, r)
		}
	}
	return managed, nil
}

// freshRecords drops any cached copy and re-reads the authoritative list
// from the provider. Called after every successful mutation.
func (s *Service) freshRecords(ctx context.Context, mainDomain string) ([]domain.Record, error) {
	if s.cache != nil {
		_ = s.cache.Invalidate(cacheKey(s.provider.GetDisplayName(), "records", mainDomain))
	}
	return s.ListRecords(ctx, mainDomain)
}

// record appends an oplog entry; the operation's own error handling is
// unaffected by logging failures.
func (s *Service) record(op, mainDomain, recordID, recordName string, start time.Time, opErr error, detail string) {
	if s.log == nil {
		return
	}

	entry := &oplog.Entry{
		Operation:  op,
		Domain:     mainDomain,
		RecordID:   recordID,
		RecordName: recordName,
		Outcome:    oplog.OutcomeSuccess,
		Detail:     detail,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if opErr != nil {
		entry.Outcome = oplog.OutcomeError
		entry.Detail = opErr.Error()
	}
	_ = s.log.Save(entry)
}

func resultID(r *ReconcileResult) string {
	if r == nil {
		return ""
	}
	return r.RecordID
}

func resultDetail(r *ReconcileResult) string {
	if r == nil {
		return ""
	}
	return r.Message()
}
