package shippo

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/danmuck/shippoctl/internal/attributes"
	"github.com/danmuck/shippoctl/internal/entity"
)

// Tracks reads carrier tracking records.
type Tracks struct {
	transport Transport
}

// Get returns the tracking record for a carrier token (e.g. "usps") and
// tracking number.
func (t *Tracks) Get(ctx context.Context, carrier, trackingNumber string) (*entity.Track, error) {
	carrier = strings.ToLower(strings.TrimSpace(carrier))
	if carrier == "" {
		return nil, ErrCarrierRequired
	}
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, ErrNumberRequired
	}
	path := "/tracks/" + url.PathEscape(carrier) + "/" + url.PathEscape(trackingNumber) + "/"
	out, err := t.transport.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return entity.NewTrack(attributes.New(out)), nil
}
