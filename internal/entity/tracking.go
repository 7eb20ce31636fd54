package entity

import (
	"time"

	"github.com/danmuck/shippoctl/internal/attributes"
)

// Tracking status values reported by carriers.
const (
	StatusUnknown   = "UNKNOWN"
	StatusTransit   = "TRANSIT"
	StatusDelivered = "DELIVERED"
	StatusReturned  = "RETURNED"
	StatusFailure   = "FAILURE"
)

// TrackingStatus is one carrier scan event.
type TrackingStatus struct {
	Entity
}

func NewTrackingStatus(b *attributes.Bag) *TrackingStatus {
	return &TrackingStatus{Entity: newEntity(b)}
}

// Status is one of UNKNOWN, TRANSIT, DELIVERED, RETURNED or FAILURE.
//   - UNKNOWN: not found in the carrier's system, or found but not yet scanned.
//   - TRANSIT: scanned by the carrier and in transit.
//   - DELIVERED: successfully delivered.
//   - RETURNED: en route back to the sender, or returned.
//   - FAILURE: the carrier reported a delivery issue. This is not a
//     technical error.
func (s *TrackingStatus) Status() string { return s.str("status") }

// StatusDetails is the carrier's free-text description of the event.
func (s *TrackingStatus) StatusDetails() string { return s.str("status_details") }

// StatusDate is the carrier's event timestamp, as sent.
func (s *TrackingStatus) StatusDate() string { return s.str("status_date") }

// StatusTime parses StatusDate; zero when absent or unparseable.
func (s *TrackingStatus) StatusTime() time.Time { return s.dateTime("status_date") }

// Location is where the event was scanned.
func (s *TrackingStatus) Location() *Location {
	loc, err := attributes.InstanceOf(s.attributes.MayHave("location"), NewLocation)
	if err != nil {
		logFieldError("location", err)
		return NewLocation(nil)
	}
	return loc
}

// Location is the place of a tracking event.
type Location struct {
	Entity
}

func NewLocation(b *attributes.Bag) *Location {
	return &Location{Entity: newEntity(b)}
}

func (l *Location) City() string    { return l.str("city") }
func (l *Location) State() string   { return l.str("state") }
func (l *Location) Zip() string     { return l.str("zip") }
func (l *Location) Country() string { return l.str("country") }

// Track is the tracking record for one carrier tracking number.
type Track struct {
	Entity
}

func NewTrack(b *attributes.Bag) *Track {
	return &Track{Entity: newEntity(b)}
}

func (t *Track) Carrier() string        { return t.str("carrier") }
func (t *Track) TrackingNumber() string { return t.str("tracking_number") }
func (t *Track) Metadata() string       { return t.str("metadata") }

// ETA is the carrier's estimated delivery time.
func (t *Track) ETA() time.Time { return t.dateTime("eta") }

// ServiceLevel is the carrier service level, as a name/token mapping.
func (t *Track) ServiceLevel() attributes.Array { return t.array("servicelevel") }

// AddressFrom and AddressTo are partial addresses (city, state, zip, country).
func (t *Track) AddressFrom() *Location { return t.location("address_from") }
func (t *Track) AddressTo() *Location   { return t.location("address_to") }

// TrackingStatus is the latest event.
func (t *Track) TrackingStatus() *TrackingStatus {
	st, err := attributes.InstanceOf(t.attributes.MayHave("tracking_status"), NewTrackingStatus)
	if err != nil {
		logFieldError("tracking_status", err)
		return NewTrackingStatus(nil)
	}
	return st
}

// TrackingHistory lists all events, oldest first.
func (t *Track) TrackingHistory() []*TrackingStatus {
	history, err := attributes.ListOf(t.attributes.MayHave("tracking_history"), NewTrackingStatus)
	if err != nil {
		logFieldError("tracking_history", err)
		return nil
	}
	return history
}

func (t *Track) location(key string) *Location {
	loc, err := attributes.InstanceOf(t.attributes.MayHave(key), NewLocation)
	if err != nil {
		logFieldError(key, err)
		return NewLocation(nil)
	}
	return loc
}
