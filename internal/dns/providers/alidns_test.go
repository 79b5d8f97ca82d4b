package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
)

// --- Test helpers ---

// newTestAlidnsProvider creates an AlidnsProvider pointed at the given test
// server, with deterministic timestamp and nonce.
func newTestAlidnsProvider(t *testing.T, serverURL string) *AlidnsProvider {
	t.Helper()
	p := NewAlidnsProvider("test-key-id", "test-key-secret", "cn-hangzhou")
	p.baseURL = serverURL + "/"
	p.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	p.nonce = func() string { return "fixed-nonce" }
	return p
}

// newStaticServer creates an httptest.Server that always returns the given
// JSON and captures the last request query.
func newStaticServer(t *testing.T, body any) (*httptest.Server, *url.Values) {
	t.Helper()
	var lastQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("failed to encode test response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &lastQuery
}

// newErrorServer creates an httptest.Server that returns an alidns error body
// with the given status and code.
func newErrorServer(t *testing.T, status int, code, message string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"Code":      code,
			"Message":   message,
			"RequestId": "req-123",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testRecordJSON(id, domainName, rr, typ, value, status string, ttl int) map[string]any {
	return map[string]any{
		"RecordId":   id,
		"DomainName": domainName,
		"RR":         rr,
		"Type":       typ,
		"Value":      value,
		"TTL":        ttl,
		"Status":     status,
	}
}

func recordsBody(total int, records ...map[string]any) map[string]any {
	return map[string]any{
		"TotalCount":    total,
		"DomainRecords": map[string]any{"Record": records},
	}
}

// --- Signing tests ---

func TestSign_Deterministic(t *testing.T) {
	p := NewAlidnsProvider("id", "secret", "")

	query := url.Values{}
	query.Set("Action", "DescribeDomains")
	query.Set("AccessKeyId", "id")

	first := p.sign(http.MethodGet, query)
	second := p.sign(http.MethodGet, query)
	if first == "" {
		t.Fatal("signature is empty")
	}
	if first != second {
		t.Errorf("signature not deterministic: %q vs %q", first, second)
	}

	// The Signature parameter itself must not feed back into the signature.
	query.Set("Signature", first)
	if got := p.sign(http.MethodGet, query); got != first {
		t.Errorf("signature changed after adding Signature param: %q vs %q", got, first)
	}

	other := NewAlidnsProvider("id", "different-secret", "")
	if other.sign(http.MethodGet, query) == first {
		t.Error("different secrets produced the same signature")
	}
}

func TestPercentEncode(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain", "plain"},
		{"a b", "a%20b"},
		{"a*b", "a%2Ab"},
		{"a~b", "a~b"},
		{"a/b", "a%2Fb"},
		{"a=b&c", "a%3Db%26c"},
	}
	for _, tc := range cases {
		if got := percentEncode(tc.in); got != tc.want {
			t.Errorf("percentEncode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCall_SendsCommonParams(t *testing.T) {
	srv, lastQuery := newStaticServer(t, map[string]any{})
	p := newTestAlidnsProvider(t, srv.URL)

	if err := p.call(context.Background(), "DescribeDomains", nil, nil); err != nil {
		t.Fatalf("call: %v", err)
	}

	q := *lastQuery
	want := map[string]string{
		"Action":           "DescribeDomains",
		"Format":           "JSON",
		"Version":          "2015-01-09",
		"AccessKeyId":      "test-key-id",
		"SignatureMethod":  "HMAC-SHA1",
		"SignatureVersion": "1.0",
		"SignatureNonce":   "fixed-nonce",
		"Timestamp":        "2024-03-01T12:00:00Z",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("query %s = %q, want %q", k, got, v)
		}
	}
	if q.Get("Signature") == "" {
		t.Error("request is missing the Signature parameter")
	}
}

// --- ListDomains tests ---

func TestListDomains_HappyPath(t *testing.T) {
	srv, _ := newStaticServer(t, map[string]any{
		"TotalCount": 2,
		"Domains": map[string]any{
			"Domain": []any{
				map[string]any{"DomainName": "example.com", "RecordCount": 7},
				map[string]any{"DomainName": "another.io", "RecordCount": 0},
			},
		},
	})
	p := newTestAlidnsProvider(t, srv.URL)

	domains, err := p.ListDomains(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []domain.DomainName{
		{Name: "example.com", RecordCount: 7},
		{Name: "another.io"},
	}
	if diff := cmp.Diff(want, domains); diff != "" {
		t.Errorf("ListDomains mismatch (-want +got):\n%s", diff)
	}
}

func TestListDomains_Empty(t *testing.T) {
	srv, _ := newStaticServer(t, map[string]any{
		"TotalCount": 0,
		"Domains":    map[string]any{"Domain": []any{}},
	})
	p := newTestAlidnsProvider(t, srv.URL)

	domains, err := p.ListDomains(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(domains) != 0 {
		t.Errorf("expected no domains, got %d", len(domains))
	}
}

func TestListDomains_Paged(t *testing.T) {
	const total = alidnsPageSize + 1

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("PageNumber"))
		var names []any
		if page == 1 {
			for i := 0; i < alidnsPageSize; i++ {
				names = append(names, map[string]any{"DomainName": "domain-" + strconv.Itoa(i) + ".com"})
			}
		} else {
			names = append(names, map[string]any{"DomainName": "last.com"})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"TotalCount": total,
			"Domains":    map[string]any{"Domain": names},
		})
	}))
	t.Cleanup(srv.Close)
	p := newTestAlidnsProvider(t, srv.URL)

	domains, err := p.ListDomains(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(domains) != total {
		t.Fatalf("expected %d domains across pages, got %d", total, len(domains))
	}
	if domains[total-1].Name != "last.com" {
		t.Errorf("last domain = %q, want last.com", domains[total-1].Name)
	}
}

// --- ListRecords tests ---

func TestListRecords_HappyPath(t *testing.T) {
	srv, lastQuery := newStaticServer(t, recordsBody(2,
		testRecordJSON("1001", "example.com", "www", "A", "203.0.113.5", "ENABLE", 600),
		testRecordJSON("1002", "example.com", "@", "AAAA", "2001:db8::1", "DISABLE", 300),
	))
	p := newTestAlidnsProvider(t, srv.URL)

	records, err := p.ListRecords(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []domain.Record{
		{ID: "1001", Domain: "example.com", RR: "www", Type: domain.RecordTypeA, Value: "203.0.113.5", TTL: 600, Status: domain.StatusEnable},
		{ID: "1002", Domain: "example.com", RR: "@", Type: domain.RecordTypeAAAA, Value: "2001:db8::1", TTL: 300, Status: domain.StatusDisable},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("ListRecords mismatch (-want +got):\n%s", diff)
	}

	q := *lastQuery
	if q.Get("Action") != "DescribeDomainRecords" || q.Get("DomainName") != "example.com" {
		t.Errorf("unexpected request: Action=%q DomainName=%q", q.Get("Action"), q.Get("DomainName"))
	}
}

// --- FindRecord tests ---

func TestFindRecord_FirstMatchWins(t *testing.T) {
	srv, lastQuery := newStaticServer(t, recordsBody(2,
		testRecordJSON("2001", "example.com", "www", "A", "198.51.100.1", "ENABLE", 600),
		testRecordJSON("2002", "example.com", "www", "A", "198.51.100.2", "ENABLE", 600),
	))
	p := newTestAlidnsProvider(t, srv.URL)

	rec, err := p.FindRecord(context.Background(), "www.example.com", domain.RecordTypeA)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.ID != "2001" {
		t.Errorf("record ID = %q, want first match 2001", rec.ID)
	}

	q := *lastQuery
	if q.Get("Action") != "DescribeSubDomainRecords" {
		t.Errorf("Action = %q", q.Get("Action"))
	}
	if q.Get("SubDomain") != "www.example.com" || q.Get("Type") != "A" {
		t.Errorf("unexpected request: SubDomain=%q Type=%q", q.Get("SubDomain"), q.Get("Type"))
	}
}

func TestFindRecord_NotFound(t *testing.T) {
	srv, _ := newStaticServer(t, recordsBody(0))
	p := newTestAlidnsProvider(t, srv.URL)

	_, err := p.FindRecord(context.Background(), "missing.example.com", domain.RecordTypeA)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// --- Mutation tests ---

func TestCreateRecord(t *testing.T) {
	srv, lastQuery := newStaticServer(t, map[string]any{"RecordId": "3001"})
	p := newTestAlidnsProvider(t, srv.URL)

	rec, err := p.CreateRecord(context.Background(), "example.com", domain.CreateRecordOpts{
		RR:    "www",
		Type:  domain.RecordTypeA,
		Value: "203.0.113.5",
		TTL:   600,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.ID != "3001" {
		t.Errorf("record ID = %q, want 3001", rec.ID)
	}

	q := *lastQuery
	want := map[string]string{
		"Action":     "AddDomainRecord",
		"DomainName": "example.com",
		"RR":         "www",
		"Type":       "A",
		"Value":      "203.0.113.5",
		"TTL":        "600",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("query %s = %q, want %q", k, got, v)
		}
	}
}

func TestUpdateRecord(t *testing.T) {
	srv, lastQuery := newStaticServer(t, map[string]any{"RecordId": "3001"})
	p := newTestAlidnsProvider(t, srv.URL)

	rec, err := p.UpdateRecord(context.Background(), "3001", domain.UpdateRecordOpts{
		RR:    "www",
		Type:  domain.RecordTypeA,
		Value: "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.ID != "3001" || rec.Value != "203.0.113.9" {
		t.Errorf("record = %+v", rec)
	}

	q := *lastQuery
	if q.Get("Action") != "UpdateDomainRecord" || q.Get("RecordId") != "3001" {
		t.Errorf("unexpected request: Action=%q RecordId=%q", q.Get("Action"), q.Get("RecordId"))
	}
}

func TestSetStatus(t *testing.T) {
	srv, lastQuery := newStaticServer(t, map[string]any{"RecordId": "3001", "Status": "DISABLE"})
	p := newTestAlidnsProvider(t, srv.URL)

	if err := p.SetStatus(context.Background(), "3001", domain.StatusDisable); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	q := *lastQuery
	if q.Get("Action") != "SetDomainRecordStatus" || q.Get("RecordId") != "3001" || q.Get("Status") != "DISABLE" {
		t.Errorf("unexpected request: %v", q)
	}
}

func TestDeleteRecord(t *testing.T) {
	srv, lastQuery := newStaticServer(t, map[string]any{"RecordId": "3001"})
	p := newTestAlidnsProvider(t, srv.URL)

	if err := p.DeleteRecord(context.Background(), "3001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	q := *lastQuery
	if q.Get("Action") != "DeleteDomainRecord" || q.Get("RecordId") != "3001" {
		t.Errorf("unexpected request: %v", q)
	}
}

// --- Error mapping tests ---

func TestMapAPIError_Sentinels(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"InvalidAccessKeyId.NotFound", domain.ErrUnauthorized},
		{"SignatureDoesNotMatch", domain.ErrUnauthorized},
		{"Forbidden.RAM", domain.ErrUnauthorized},
		{"DomainRecordNotExist", domain.ErrNotFound},
		{"InvalidDomainName.NoExist", domain.ErrNotFound},
		{"Throttling.User", domain.ErrRateLimited},
		{"DomainRecordDuplicate", domain.ErrConflict},
	}
	for _, tc := range cases {
		err := mapAPIError(alidnsError{Code: tc.code, Message: "detail", RequestID: "r"})
		if !errors.Is(err, tc.want) {
			t.Errorf("mapAPIError(%s) = %v, want %v", tc.code, err, tc.want)
		}
	}

	// Unrecognised codes pass through with the API message intact.
	err := mapAPIError(alidnsError{Code: "SomethingElse", Message: "detail"})
	for _, sentinel := range []error{domain.ErrUnauthorized, domain.ErrNotFound, domain.ErrRateLimited, domain.ErrConflict} {
		if errors.Is(err, sentinel) {
			t.Errorf("unrecognised code mapped to %v", sentinel)
		}
	}
}

func TestCall_APIErrorStatus(t *testing.T) {
	srv := newErrorServer(t, http.StatusBadRequest, "InvalidAccessKeyId.NotFound", "Specified access key is not found.")
	p := newTestAlidnsProvider(t, srv.URL)

	_, err := p.ListDomains(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
