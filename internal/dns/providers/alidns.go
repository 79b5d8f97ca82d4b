package providers

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/QsSama-W/aliddns/internal/config"
	"github.com/QsSama-W/aliddns/internal/dns/domain"
	"github.com/QsSama-W/aliddns/internal/services/auth"
)

const (
	alidnsBaseURL    = "https://alidns.aliyuncs.com/"
	alidnsAPIVersion = "2015-01-09"
	alidnsTimeout    = 30 * time.Second
	alidnsPageSize   = 100

	alidnsKeyIDStore     = "alidns-access-key-id"
	alidnsKeySecretStore = "alidns-access-key-secret"
)

// Compile-time check that AlidnsProvider satisfies domain.Provider.
var _ domain.Provider = (*AlidnsProvider)(nil)

// AlidnsProvider implements domain.Provider against the Alibaba Cloud DNS
// RPC API (version 2015-01-09, HMAC-SHA1 request signing).
type AlidnsProvider struct {
	accessKeyID     string
	accessKeySecret string
	regionID        string
	baseURL         string
	client          *http.Client

	// now and nonce are overridable for deterministic signing tests.
	now   func() time.Time
	nonce func() string
}

// NewAlidnsProvider creates an AlidnsProvider with the given credentials.
func NewAlidnsProvider(accessKeyID, accessKeySecret, regionID string) *AlidnsProvider {
	if regionID == "" {
		regionID = config.DefaultRegion
	}
	return &AlidnsProvider{
		accessKeyID:     accessKeyID,
		accessKeySecret: accessKeySecret,
		regionID:        regionID,
		baseURL:         alidnsBaseURL,
		client:          &http.Client{Timeout: alidnsTimeout},
		now:             time.Now,
		nonce:           randomNonce,
	}
}

// RegisterAlidns registers the alidns provider factory with the DNS registry.
// It reads two keychain entries (access key ID and secret) and takes the
// region from the config file.
func RegisterAlidns() {
	Register("alidns", func(store auth.Store) (domain.Provider, error) {
		keyID, err := store.GetToken(alidnsKeyIDStore)
		if err != nil {
			return nil, fmt.Errorf("alidns auth: access key ID not found (run 'aliddns auth login alidns'): %w", err)
		}
		keySecret, err := store.GetToken(alidnsKeySecretStore)
		if err != nil {
			return nil, fmt.Errorf("alidns auth: access key secret not found (run 'aliddns auth login alidns'): %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("alidns: %w", err)
		}
		return NewAlidnsProvider(keyID, keySecret, cfg.Region()), nil
	})
}

// GetDisplayName returns the human-readable provider name.
func (p *AlidnsProvider) GetDisplayName() string {
	return "alidns"
}

// --- API response types ---

// alidnsError is the error body the API returns alongside non-2xx statuses.
type alidnsError struct {
	Code      string `json:"Code"`
	Message   string `json:"Message"`
	RequestID string `json:"RequestId"`
}

func (e alidnsError) Error() string {
	return fmt.Sprintf("alidns: %s: %s (request %s)", e.Code, e.Message, e.RequestID)
}

// alidnsRecord maps to the alidns DNS record object.
type alidnsRecord struct {
	RecordID   string `json:"RecordId"`
	DomainName string `json:"DomainName"`
	RR         string `json:"RR"`
	Type       string `json:"Type"`
	Value      string `json:"Value"`
	TTL        int    `json:"TTL"`
	Status     string `json:"Status"`
}

// --- HTTP and signing helpers ---

// call issues a signed GET for the given RPC action and decodes the JSON
// response into out.
func (p *AlidnsProvider) call(ctx context.Context, action string, params map[string]string, out any) error {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("Action", action)
	query.Set("Format", "JSON")
	query.Set("Version", alidnsAPIVersion)
	query.Set("AccessKeyId", p.accessKeyID)
	query.Set("SignatureMethod", "HMAC-SHA1")
	query.Set("SignatureVersion", "1.0")
	query.Set("SignatureNonce", p.nonce())
	query.Set("Timestamp", p.now().UTC().Format("2006-01-02T15:04:05Z"))

	query.Set("Signature", p.sign(http.MethodGet, query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("alidns: failed to build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("alidns: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("alidns: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr alidnsError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Code != "" {
			return mapAPIError(apiErr)
		}
		return fmt.Errorf("alidns: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("alidns: failed to decode response: %w", err)
	}
	return nil
}

// sign computes the RPC signature (version 1.0) over the sorted,
// percent-encoded query. The Signature parameter itself is excluded.
func (p *AlidnsProvider) sign(method string, query url.Values) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		if k == "Signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var canonical strings.Builder
	for i, k := range keys {
		if i > 0 {
			canonical.WriteByte('&')
		}
		canonical.WriteString(percentEncode(k))
		canonical.WriteByte('=')
		canonical.WriteString(percentEncode(query.Get(k)))
	}

	stringToSign := method + "&" + percentEncode("/") + "&" + percentEncode(canonical.String())

	mac := hmac.New(sha1.New, []byte(p.accessKeySecret+"&"))
	mac.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// percentEncode escapes per RFC 3986 as the signature algorithm requires:
// space as %20 (never +), '*' as %2A, and '~' left bare.
func percentEncode(s string) string {
	encoded := url.QueryEscape(s)
	encoded = strings.ReplaceAll(encoded, "+", "%20")
	encoded = strings.ReplaceAll(encoded, "*", "%2A")
	encoded = strings.ReplaceAll(encoded, "%7E", "~")
	return encoded
}

func randomNonce() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf)
}

// mapAPIError converts alidns error codes to domain sentinels where
// recognisable, keeping the API's own message.
func mapAPIError(apiErr alidnsError) error {
	code := apiErr.Code
	switch {
	case strings.HasPrefix(code, "InvalidAccessKeyId") ||
		code == "SignatureDoesNotMatch" ||
		code == "Forbidden" ||
		strings.HasPrefix(code, "Forbidden."):
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, apiErr.Error())
	case code == "DomainRecordNotExist" ||
		code == "InvalidRR.NoExist" ||
		strings.HasPrefix(code, "InvalidDomainName") ||
		strings.Contains(code, "NotExist") ||
		strings.Contains(code, "NotFound"):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, apiErr.Error())
	case strings.HasPrefix(code, "Throttling"):
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, apiErr.Error())
	case code == "DomainRecordDuplicate" ||
		strings.Contains(code, "Conflict"):
		return fmt.Errorf("%w: %s", domain.ErrConflict, apiErr.Error())
	}
	return apiErr
}

// --- Provider implementation ---

// ListDomains returns all domains in the account, walking the paged
// DescribeDomains response to the end.
func (p *AlidnsProvider) ListDomains(ctx context.Context) ([]domain.DomainName, error) {
	type response struct {
		TotalCount int `json:"TotalCount"`
		Domains    struct {
			Domain []struct {
				DomainName  string `json:"DomainName"`
				RecordCount int    `json:"RecordCount"`
			} `json:"Domain"`
		} `json:"Domains"`
	}

	var domains []domain.DomainName
	for page := 1; ; page++ {
		var out response
		err := p.call(ctx, "DescribeDomains", map[string]string{
			"PageNumber": strconv.Itoa(page),
			"PageSize":   strconv.Itoa(alidnsPageSize),
		}, &out)
		if err != nil {
			return nil, fmt.Errorf("failed to list domains: %w", err)
		}

		for _, d := range out.Domains.Domain {
			domains = append(domains, domain.DomainName{
				Name:        d.DomainName,
				RecordCount: d.RecordCount,
			})
		}

		if len(domains) >= out.TotalCount || len(out.Domains.Domain) == 0 {
			return domains, nil
		}
	}
}

// ListRecords returns all DNS records for the given main domain.
func (p *AlidnsProvider) ListRecords(ctx context.Context, mainDomain string) ([]domain.Record, error) {
	type response struct {
		TotalCount    int `json:"TotalCount"`
		DomainRecords struct {
			Record []alidnsRecord `json:"Record"`
		} `json:"DomainRecords"`
	}

	var records []domain.Record
	for page := 1; ; page++ {
		var out response
		err := p.call(ctx, "DescribeDomainRecords", map[string]string{
			"DomainName": mainDomain,
			"PageNumber": strconv.Itoa(page),
			"PageSize":   strconv.Itoa(alidnsPageSize),
		}, &out)
		if err != nil {
			return nil, fmt.Errorf("failed to list records for %q: %w", mainDomain, err)
		}

		for _, r := range out.DomainRecords.Record {
			records = append(records, toDomainRecord(r))
		}

		if len(records) >= out.TotalCount || len(out.DomainRecords.Record) == 0 {
			return records, nil
		}
	}
}

// FindRecord looks up the record for (fullSubDomain, type) via
// DescribeSubDomainRecords. The first record in API order wins when the
// provider reports several.
func (p *AlidnsProvider) FindRecord(ctx context.Context, fullSubDomain string, typ domain.RecordType) (*domain.Record, error) {
	type response struct {
		TotalCount    int `json:"TotalCount"`
		DomainRecords struct {
			Record []alidnsRecord `json:"Record"`
		} `json:"DomainRecords"`
	}

	var out response
	err := p.call(ctx, "DescribeSubDomainRecords", map[string]string{
		"SubDomain": fullSubDomain,
		"Type":      string(typ),
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to find record %q (%s): %w", fullSubDomain, typ, err)
	}

	if len(out.DomainRecords.Record) == 0 {
		return nil, fmt.Errorf("record %q (%s): %w", fullSubDomain, typ, domain.ErrNotFound)
	}

	rec := toDomainRecord(out.DomainRecords.Record[0])
	return &rec, nil
}

// CreateRecord creates a new record and returns it with its assigned ID.
func (p *AlidnsProvider) CreateRecord(ctx context.Context, mainDomain string, opts domain.CreateRecordOpts) (*domain.Record, error) {
	type response struct {
		RecordID string `json:"RecordId"`
	}

	params := map[string]string{
		"DomainName": mainDomain,
		"RR":         opts.RR,
		"Type":       string(opts.Type),
		"Value":      opts.Value,
	}
	if opts.TTL > 0 {
		params["TTL"] = strconv.Itoa(opts.TTL)
	}

	var out response
	if err := p.call(ctx, "AddDomainRecord", params, &out); err != nil {
		return nil, fmt.Errorf("failed to create record for %q: %w", mainDomain, err)
	}

	return &domain.Record{
		ID:     out.RecordID,
		Domain: mainDomain,
		RR:     opts.RR,
		Type:   opts.Type,
		Value:  opts.Value,
		TTL:    opts.TTL,
		Status: domain.StatusEnable,
	}, nil
}

// UpdateRecord updates an existing record by its ID. The API requires the
// full (RR, type, value) triple on every update.
func (p *AlidnsProvider) UpdateRecord(ctx context.Context, id string, opts domain.UpdateRecordOpts) (*domain.Record, error) {
	type response struct {
		RecordID string `json:"RecordId"`
	}

	params := map[string]string{
		"RecordId": id,
		"RR":       opts.RR,
		"Type":     string(opts.Type),
		"Value":    opts.Value,
	}
	if opts.TTL > 0 {
		params["TTL"] = strconv.Itoa(opts.TTL)
	}

	var out response
	if err := p.call(ctx, "UpdateDomainRecord", params, &out); err != nil {
		return nil, fmt.Errorf("failed to update record %q: %w", id, err)
	}

	return &domain.Record{
		ID:     out.RecordID,
		RR:     opts.RR,
		Type:   opts.Type,
		Value:  opts.Value,
		TTL:    opts.TTL,
		Status: domain.StatusEnable,
	}, nil
}

// SetStatus enables or disables a record by its ID.
func (p *AlidnsProvider) SetStatus(ctx context.Context, id string, status domain.RecordStatus) error {
	err := p.call(ctx, "SetDomainRecordStatus", map[string]string{
		"RecordId": id,
		"Status":   string(status),
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to set record %q to %s: %w", id, status, err)
	}
	return nil
}

// DeleteRecord deletes a record by its ID.
func (p *AlidnsProvider) DeleteRecord(ctx context.Context, id string) error {
	err := p.call(ctx, "DeleteDomainRecord", map[string]string{
		"RecordId": id,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to delete record %q: %w", id, err)
	}
	return nil
}

// --- Conversion helpers ---

func toDomainRecord(r alidnsRecord) domain.Record {
	return domain.Record{
		ID:     r.RecordID,
		Domain: r.DomainName,
		RR:     r.RR,
		Type:   domain.RecordType(r.Type),
		Value:  r.Value,
		TTL:    r.TTL,
		Status: domain.RecordStatus(r.Status),
	}
}
