package mockapi

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/danmuck/shippoctl/internal/attributes"
	"github.com/danmuck/shippoctl/internal/observability"
	"github.com/danmuck/shippoctl/internal/requests"
	"github.com/gin-gonic/gin"
)

// resource describes one object collection served by the mock.
type resource struct {
	name    string
	builder func(map[string]any) requests.Builder
	// complete fills server-side fields into a validated payload. A non-nil
	// error is reported to the caller as 400.
	complete func(s *Server, c *gin.Context, id string, payload map[string]any) error
	// revalidate updates a stored object for the validate endpoint.
	revalidate func(s *Server, obj map[string]any)
}

func (s *Server) resources() []resource {
	return []resource{
		{
			name:       "addresses",
			builder:    func(p map[string]any) requests.Builder { return requests.NewAddress(p) },
			complete:   completeAddress,
			revalidate: revalidateAddress,
		},
		{
			name:     "parcels",
			builder:  func(p map[string]any) requests.Builder { return requests.NewParcel(p) },
			complete: completeParcel,
		},
		{
			name:     "shipments",
			builder:  func(p map[string]any) requests.Builder { return requests.NewShipment(p) },
			complete: completeShipment,
		},
	}
}

func (s *Server) create(res resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			detail(c, http.StatusBadRequest, "could not read request body")
			return
		}
		bag, err := attributes.Decode(raw)
		if err != nil {
			detail(c, http.StatusBadRequest, "request body must be a JSON object")
			return
		}
		payload, err := res.builder(bag.Raw()).ToArray()
		if err != nil {
			detail(c, http.StatusBadRequest, err.Error())
			return
		}

		id := s.newID()
		now := s.timestamp()
		payload["object_id"] = id
		payload["object_created"] = now
		payload["object_updated"] = now
		payload["object_owner"] = s.cfg.Owner
		payload["object_state"] = "VALID"
		if payload["metadata"] == nil {
			payload["metadata"] = ""
		}
		if err := res.complete(s, c, id, payload); err != nil {
			detail(c, http.StatusBadRequest, err.Error())
			return
		}
		s.store.Put(res.name, payload)
		s.log.Debug().
			Str("resource", res.name).
			Str("object_id", id).
			Msg("mockapi_object_created")
		c.JSON(http.StatusCreated, payload)
	}
}

func (s *Server) retrieve(res resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj, ok := s.store.Get(res.name, c.Param("id"))
		if !ok {
			detail(c, http.StatusNotFound, "Not found.")
			return
		}
		c.JSON(http.StatusOK, obj)
	}
}

func (s *Server) validate(res resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj, ok := s.store.Get(res.name, c.Param("id"))
		if !ok {
			detail(c, http.StatusNotFound, "Not found.")
			return
		}
		if res.revalidate != nil {
			res.revalidate(s, obj)
			obj["object_updated"] = s.timestamp()
			s.store.Put(res.name, obj)
		}
		c.JSON(http.StatusOK, obj)
	}
}

func (s *Server) list(res resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := queryInt(c, "page", 1)
		if !ok || page < 1 {
			detail(c, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		size, ok := queryInt(c, "results", DefaultPageSize)
		if !ok || size < 1 {
			detail(c, http.StatusBadRequest, "results must be a positive integer")
			return
		}
		if size > MaxPageSize {
			size = MaxPageSize
		}

		items, total := s.store.Page(res.name, page, size)
		last := lastPage(total, size)
		if page > last {
			detail(c, http.StatusNotFound, "Invalid page.")
			return
		}
		results := make([]any, 0, len(items))
		for _, item := range items {
			results = append(results, item)
		}
		var next, previous any
		if page < last {
			next = pageURL(c, page+1, size)
		}
		if page > 1 {
			previous = pageURL(c, page-1, size)
		}
		c.JSON(http.StatusOK, gin.H{
			"count":    total,
			"next":     next,
			"previous": previous,
			"results":  results,
		})
	}
}

func completeAddress(_ *Server, _ *gin.Context, _ string, payload map[string]any) error {
	for _, key := range []string{"name", "company", "street_no", "street1", "street2", "city", "state", "zip", "phone", "email", "ip"} {
		if _, ok := payload[key]; !ok {
			payload[key] = ""
		}
	}
	if phone, _ := payload["phone"].(string); phone != "" {
		payload["phone"] = normalizePhone(phone)
	}
	if _, ok := payload["is_residential"]; !ok {
		payload["is_residential"] = false
	}
	payload["object_source"] = "FULLY_ENTERED"
	payload["messages"] = []any{}
	return nil
}

func revalidateAddress(_ *Server, obj map[string]any) {
	obj["object_source"] = "VALIDATOR"
	obj["object_state"] = "VALID"
	obj["messages"] = []any{}
}

func completeParcel(_ *Server, _ *gin.Context, _ string, payload map[string]any) error {
	// The service echoes dimensions as decimals.
	for _, key := range []string{"length", "width", "height", "weight"} {
		if n, ok := payload[key].(int); ok {
			payload[key] = float64(n)
		}
	}
	for _, key := range []string{"template", "value_amount", "value_currency"} {
		if _, ok := payload[key]; !ok {
			payload[key] = ""
		}
	}
	return nil
}

func completeShipment(s *Server, c *gin.Context, id string, payload map[string]any) error {
	refs := []struct{ key, resource string }{
		{"address_from", "addresses"},
		{"address_to", "addresses"},
		{"parcel", "parcels"},
	}
	for _, ref := range refs {
		objectID, _ := payload[ref.key].(string)
		if !s.store.Has(ref.resource, objectID) {
			return fmt.Errorf("%s: object %q does not exist", ref.key, objectID)
		}
	}
	if ret, _ := payload["address_return"].(string); ret == "" {
		payload["address_return"] = payload["address_from"]
	} else if !s.store.Has("addresses", ret) {
		return fmt.Errorf("address_return: object %q does not exist", ret)
	}
	for _, key := range []string{"return_of", "customs_declaration", "insurance_currency", "reference_1", "reference_2"} {
		if _, ok := payload[key]; !ok {
			payload[key] = ""
		}
	}
	if _, ok := payload["insurance_amount"]; !ok {
		payload["insurance_amount"] = 0
	}
	if _, ok := payload["extra"]; !ok {
		payload["extra"] = map[string]any{}
	}
	payload["object_status"] = "QUEUED"
	payload["carrier_accounts"] = []any{}
	payload["messages"] = []any{}
	payload["rates_url"] = baseURL(c) + s.cfg.BasePath + "/shipments/" + id + "/rates/"
	return nil
}

// normalizePhone keeps digits only, with a leading "+" written as "00".
func normalizePhone(phone string) string {
	var b strings.Builder
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		b.WriteString("00")
	}
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// lastPage is the highest valid page; an empty list still has page 1.
func lastPage(total, size int) int {
	if total == 0 {
		return 1
	}
	return (total + size - 1) / size
}

func pageURL(c *gin.Context, page, size int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("results", strconv.Itoa(size))
	return baseURL(c) + c.Request.URL.Path + "?" + q.Encode()
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func detail(c *gin.Context, status int, msg string) {
	c.Set(observability.DetailKey, msg)
	c.JSON(status, gin.H{"detail": msg})
}
