// Package shippo is the typed client for the address, parcel, shipment and
// track resources.
//
// Create validates params with the matching request builder before anything
// is sent; a validation failure returns the attribute error and performs no
// request.
package shippo

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/danmuck/shippoctl/internal/entity"
	"github.com/danmuck/shippoctl/internal/requests"
)

var (
	ErrIDRequired      = errors.New("shippo: object id required")
	ErrCarrierRequired = errors.New("shippo: carrier required")
	ErrNumberRequired  = errors.New("shippo: tracking number required")
)

// Transport sends one request and returns the decoded JSON object.
// *transport.Client satisfies it.
type Transport interface {
	Do(ctx context.Context, method, path string, payload map[string]any, query url.Values) (map[string]any, error)
}

// ListOptions selects a page of a list call. Zero values are omitted.
type ListOptions struct {
	Page    int
	Results int
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Results > 0 {
		q.Set("results", strconv.Itoa(o.Results))
	}
	return q
}

type (
	Addresses = Resource[*entity.Address]
	Parcels   = Resource[*entity.Parcel]
	Shipments = Resource[*entity.Shipment]
)

type Client struct {
	addresses *Addresses
	parcels   *Parcels
	shipments *Shipments
	tracks    *Tracks
}

func NewClient(t Transport) *Client {
	return &Client{
		addresses: newResource[*entity.Address](t, "addresses", entity.ShapeAddress,
			func(p map[string]any) requests.Builder { return requests.NewAddress(p) }),
		parcels: newResource[*entity.Parcel](t, "parcels", entity.ShapeParcel,
			func(p map[string]any) requests.Builder { return requests.NewParcel(p) }),
		shipments: newResource[*entity.Shipment](t, "shipments", entity.ShapeShipment,
			func(p map[string]any) requests.Builder { return requests.NewShipment(p) }),
		tracks: &Tracks{transport: t},
	}
}

func (c *Client) Addresses() *Addresses { return c.addresses }
func (c *Client) Parcels() *Parcels     { return c.parcels }
func (c *Client) Shipments() *Shipments { return c.shipments }
func (c *Client) Tracks() *Tracks       { return c.tracks }
