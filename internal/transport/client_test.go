package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danmuck/shippoctl/internal/testutil/testlog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL + "/v1/"
	cfg.Token = "shippo_test_token"
	c, err := NewClient(cfg, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNewClientRequiresBaseURLAndToken(t *testing.T) {
	testlog.Start(t)
	if _, err := NewClient(Config{Token: "x"}); !errors.Is(err, ErrBaseURLRequired) {
		t.Fatalf("expected ErrBaseURLRequired, got %v", err)
	}
	if _, err := NewClient(Config{BaseURL: DefaultBaseURL, Token: "  "}); !errors.Is(err, ErrTokenRequired) {
		t.Fatalf("expected ErrTokenRequired, got %v", err)
	}
	c, err := NewClient(Config{BaseURL: DefaultBaseURL + "/", Token: "x"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("base url=%q", c.BaseURL())
	}
}

func TestDoSendsJSONWithAuthorization(t *testing.T) {
	testlog.Start(t)
	var gotAuth, gotType, gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"object_id":"abc","length":"5.0000","weight":12345678901234}`))
	})

	out, err := c.Do(context.Background(), http.MethodPost, "/parcels/", map[string]any{"length": 5}, nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "ShippoToken shippo_test_token" {
		t.Fatalf("authorization=%q", gotAuth)
	}
	if gotType != "application/json" || gotPath != "/v1/parcels/" {
		t.Fatalf("content-type=%q path=%q", gotType, gotPath)
	}
	if gotBody["length"] != float64(5) {
		t.Fatalf("body=%v", gotBody)
	}
	if out["object_id"] != "abc" {
		t.Fatalf("out=%v", out)
	}
	if n, ok := out["weight"].(json.Number); !ok || n.String() != "12345678901234" {
		t.Fatalf("numbers must decode as json.Number, got %T %v", out["weight"], out["weight"])
	}
}

func TestDoEncodesQueryAndOmitsBody(t *testing.T) {
	testlog.Start(t)
	var gotQuery url.Values
	var gotLen int64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotLen = r.ContentLength
		_, _ = w.Write([]byte(`{"count":0,"results":[]}`))
	})
	query := url.Values{"page": {"2"}, "results": {"5"}}
	if _, err := c.Do(context.Background(), http.MethodGet, "addresses/", nil, query); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotQuery.Get("page") != "2" || gotQuery.Get("results") != "5" {
		t.Fatalf("query=%v", gotQuery)
	}
	if gotLen != 0 {
		t.Fatalf("expected empty body, content-length=%d", gotLen)
	}
}

func TestDoReturnsAPIError(t *testing.T) {
	testlog.Start(t)
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
		temporary  bool
	}{
		{name: "detail field", status: 401, body: `{"detail":"Invalid token."}`, wantDetail: "Invalid token."},
		{name: "field errors", status: 400, body: `{"zip":["required"],"city":["too long","bad"]}`, wantDetail: "city: too long, bad; zip: required"},
		{name: "plain text", status: 503, body: "upstream down\n", wantDetail: "upstream down", temporary: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.Do(context.Background(), http.MethodGet, "/addresses/x/", nil, nil)
			if !errors.Is(err, ErrAPI) {
				t.Fatalf("expected ErrAPI, got %v", err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.StatusCode != tc.status || apiErr.Detail != tc.wantDetail {
				t.Fatalf("status=%d detail=%q", apiErr.StatusCode, apiErr.Detail)
			}
			if apiErr.Temporary() != tc.temporary {
				t.Fatalf("temporary=%v", apiErr.Temporary())
			}
			if !strings.Contains(apiErr.Error(), "/addresses/x/") {
				t.Fatalf("error should name the path: %v", apiErr)
			}
		})
	}
}

func TestDoRejectsNonObjectBodies(t *testing.T) {
	testlog.Start(t)
	for _, body := range []string{`[1,2]`, `null`, `not json`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		if _, err := c.Do(context.Background(), http.MethodGet, "/tracks/usps/1/", nil, nil); !errors.Is(err, ErrUnexpectedResponse) {
			t.Fatalf("body %q: expected ErrUnexpectedResponse, got %v", body, err)
		}
	}
}

func TestDoHonorsContext(t *testing.T) {
	testlog.Start(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Do(ctx, http.MethodGet, "/parcels/", nil, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResourceLabel(t *testing.T) {
	testlog.Start(t)
	tests := map[string]string{
		"/addresses/":            "addresses",
		"shipments/abc/validate": "shipments",
		"/":                      "root",
	}
	for path, want := range tests {
		if got := resourceLabel(path); got != want {
			t.Fatalf("resourceLabel(%q)=%q want %q", path, got, want)
		}
	}
}
