package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adanna/bankcore/internal/notify"
	"github.com/adanna/bankcore/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(memory.New(), notify.NewLogNotifier(log), log)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	data, _ := io.ReadAll(resp.Body)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("decode %s: %v", string(data), err)
		}
	}
	return resp, out
}

func respCode(t *testing.T, body map[string]any) string {
	t.Helper()
	code, _ := body["response_code"].(string)
	return code
}

func accountField(t *testing.T, body map[string]any, key string) any {
	t.Helper()
	info, ok := body["account_info"].(map[string]any)
	if !ok {
		t.Fatalf("no account_info in %v", body)
	}
	return info[key]
}

func TestAccountAndTransactionFlow(t *testing.T) {
	ts := newTestServer(t)

	// create
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/accounts", map[string]any{
		"firstname": "Ada",
		"lastname":  "Obi",
		"email":     "ada@example.com",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d body=%v", resp.StatusCode, body)
	}
	if got := respCode(t, body); got != "002" {
		t.Fatalf("create code = %s", got)
	}
	number, _ := accountField(t, body, "account_number").(string)
	if len(number) != 10 {
		t.Fatalf("account number %q", number)
	}
	if name := accountField(t, body, "account_name"); name != "Ada Obi" {
		t.Fatalf("account name = %v", name)
	}

	// same email again is a read, not an error
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/v1/accounts", map[string]any{
		"firstname": "Ada",
		"lastname":  "Obi",
		"email":     "ada@example.com",
	})
	if resp.StatusCode != http.StatusOK || respCode(t, body) != "001" {
		t.Fatalf("duplicate create: status=%d code=%s", resp.StatusCode, respCode(t, body))
	}
	if dup, _ := accountField(t, body, "account_number").(string); dup != number {
		t.Fatalf("duplicate create returned %q, want %q", dup, number)
	}

	// credit 100.00
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/v1/accounts/"+number+"/credit", map[string]any{"amount_minor": 10000})
	if resp.StatusCode != http.StatusOK || respCode(t, body) != "007" {
		t.Fatalf("credit: status=%d code=%s", resp.StatusCode, respCode(t, body))
	}
	if bal := accountField(t, body, "balance_minor"); bal != float64(10000) {
		t.Fatalf("balance after credit = %v", bal)
	}

	// debit 30.00
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/v1/accounts/"+number+"/debit", map[string]any{"amount_minor": 3000})
	if resp.StatusCode != http.StatusOK || respCode(t, body) != "008" {
		t.Fatalf("debit: status=%d code=%s", resp.StatusCode, respCode(t, body))
	}
	if bal := accountField(t, body, "balance"); bal != "70.00" {
		t.Fatalf("balance after debit = %v", bal)
	}

	// overdraw attempt
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/v1/accounts/"+number+"/debit", map[string]any{"amount_minor": 100000})
	if resp.StatusCode != http.StatusUnprocessableEntity || respCode(t, body) != "011" {
		t.Fatalf("overdraw: status=%d code=%s", resp.StatusCode, respCode(t, body))
	}

	// balance unchanged
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/v1/accounts/"+number+"/balance", nil)
	if resp.StatusCode != http.StatusOK || respCode(t, body) != "003" {
		t.Fatalf("balance enquiry: status=%d code=%s", resp.StatusCode, respCode(t, body))
	}
	if bal := accountField(t, body, "balance_minor"); bal != float64(7000) {
		t.Fatalf("balance = %v, want 7000", bal)
	}

	// name enquiry
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/v1/accounts/"+number+"/name", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("name enquiry status = %d", resp.StatusCode)
	}
	if name := body["account_name"]; name != "Ada Obi" {
		t.Fatalf("name enquiry = %v", name)
	}
}

func TestCreateCustomerAndMerchant(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/accounts/customer", map[string]any{
		"firstname":                 "Ngozi",
		"lastname":                  "Eze",
		"email":                     "ngozi@example.com",
		"customer_reference_number": "REF-42",
		"date_of_birth":             "1991-06-02",
	})
	if resp.StatusCode != http.StatusCreated || respCode(t, body) != "002" {
		t.Fatalf("customer create: status=%d code=%s body=%v", resp.StatusCode, respCode(t, body), body)
	}

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/v1/accounts/merchant", map[string]any{
		"firstname":                    "Emeka",
		"lastname":                     "Ike",
		"email":                        "emeka@example.com",
		"business_name":                "Ike Stores",
		"business_registration_number": "RC-1001",
	})
	if resp.StatusCode != http.StatusCreated || respCode(t, body) != "002" {
		t.Fatalf("merchant create: status=%d code=%s body=%v", resp.StatusCode, respCode(t, body), body)
	}

	// missing variant field fails validation
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/v1/accounts/customer", map[string]any{
		"firstname": "No",
		"lastname":  "Ref",
		"email":     "noref@example.com",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("customer without reference: status=%d", resp.StatusCode)
	}
}

func TestUpdateAndPatchAndDelete(t *testing.T) {
	ts := newTestServer(t)

	_, body := doJSON(t, http.MethodPost, ts.URL+"/v1/accounts", map[string]any{
		"firstname": "Ada",
		"lastname":  "Obi",
		"email":     "life@example.com",
		"address":   "Old Street 1",
	})
	number, _ := accountField(t, body, "account_number").(string)

	// full update overwrites everything supplied
	resp, body := doJSON(t, http.MethodPut, ts.URL+"/v1/accounts/"+number, map[string]any{
		"firstname": "Adaeze",
		"lastname":  "Obi",
	})
	if resp.StatusCode != http.StatusOK || respCode(t, body) != "006" {
		t.Fatalf("update: status=%d code=%s", resp.StatusCode, respCode(t, body))
	}
	if name := accountField(t, body, "account_name"); name != "Adaeze Obi" {
		t.Fatalf("name after update = %v", name)
	}

	// patch changes only the named field
	resp, body = doJSON(t, http.MethodPatch, ts.URL+"/v1/accounts/"+number, map[string]any{
		"firstname": "Ify",
	})
	if resp.StatusCode != http.StatusOK || respCode(t, body) != "006" {
		t.Fatalf("patch: status=%d code=%s", resp.StatusCode, respCode(t, body))
	}
	if name := accountField(t, body, "account_name"); name != "Ify Obi" {
		t.Fatalf("name after patch = %v", name)
	}

	// delete then 404
	resp, body = doJSON(t, http.MethodDelete, ts.URL+"/v1/accounts/"+number, nil)
	if resp.StatusCode != http.StatusOK || respCode(t, body) != "005" {
		t.Fatalf("delete: status=%d code=%s", resp.StatusCode, respCode(t, body))
	}
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/v1/accounts/"+number, nil)
	if resp.StatusCode != http.StatusNotFound || respCode(t, body) != "004" {
		t.Fatalf("get after delete: status=%d code=%s", resp.StatusCode, respCode(t, body))
	}
}

func TestTransactionValidationOrder(t *testing.T) {
	ts := newTestServer(t)

	// unknown account wins over bad amount
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/accounts/0000000000/credit", map[string]any{"amount_minor": 0})
	if resp.StatusCode != http.StatusNotFound || respCode(t, body) != "004" {
		t.Fatalf("unknown account: status=%d code=%s", resp.StatusCode, respCode(t, body))
	}

	_, body = doJSON(t, http.MethodPost, ts.URL+"/v1/accounts", map[string]any{
		"firstname": "Ada",
		"lastname":  "Obi",
		"email":     "order@example.com",
	})
	number, _ := accountField(t, body, "account_number").(string)

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/v1/accounts/"+number+"/credit", map[string]any{"amount_minor": 0})
	if resp.StatusCode != http.StatusUnprocessableEntity || respCode(t, body) != "009" {
		t.Fatalf("zero amount: status=%d code=%s", resp.StatusCode, respCode(t, body))
	}
}

func TestRequestValidation(t *testing.T) {
	ts := newTestServer(t)

	// missing content type
	resp, err := http.Post(ts.URL+"/v1/accounts", "text/plain", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("wrong content type: status=%d", resp.StatusCode)
	}

	// malformed body
	resp, err = http.Post(ts.URL+"/v1/accounts", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed body: status=%d", resp.StatusCode)
	}

	// missing required fields
	resp2, body := doJSON(t, http.MethodPost, ts.URL+"/v1/accounts", map[string]any{"email": "not-an-email"})
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("validation: status=%d body=%v", resp2.StatusCode, body)
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d", path, resp.StatusCode)
		}
	}
}
