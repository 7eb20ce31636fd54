package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/shippoctl/internal/entity"
	"github.com/gin-gonic/gin"
)

// CannedPrefix marks tracking numbers with scripted histories: SHIPPO_TRANSIT,
// SHIPPO_DELIVERED, SHIPPO_RETURNED and SHIPPO_FAILURE. Any other number is
// reported as UNKNOWN with no history.
const CannedPrefix = "SHIPPO_"

type trackEvent struct {
	status  string
	details string
	ago     time.Duration
	city    string
	state   string
	zip     string
}

var (
	origin      = trackEvent{city: "San Francisco", state: "CA", zip: "94117"}
	destination = trackEvent{city: "Chicago", state: "IL", zip: "60611"}
)

var cannedHistories = map[string][]trackEvent{
	entity.StatusTransit: {
		{status: entity.StatusTransit, details: "Your shipment has been accepted.", ago: 26 * time.Hour, city: "San Francisco", state: "CA", zip: "94117"},
		{status: entity.StatusTransit, details: "Arrived at sorting facility.", ago: 12 * time.Hour, city: "Denver", state: "CO", zip: "80202"},
	},
	entity.StatusDelivered: {
		{status: entity.StatusTransit, details: "Your shipment has been accepted.", ago: 50 * time.Hour, city: "San Francisco", state: "CA", zip: "94117"},
		{status: entity.StatusTransit, details: "Out for delivery.", ago: 6 * time.Hour, city: "Chicago", state: "IL", zip: "60611"},
		{status: entity.StatusDelivered, details: "Your shipment has been delivered.", ago: 2 * time.Hour, city: "Chicago", state: "IL", zip: "60611"},
	},
	entity.StatusReturned: {
		{status: entity.StatusTransit, details: "Your shipment has been accepted.", ago: 72 * time.Hour, city: "San Francisco", state: "CA", zip: "94117"},
		{status: entity.StatusReturned, details: "Returned to sender: addressee unknown.", ago: 4 * time.Hour, city: "Chicago", state: "IL", zip: "60611"},
	},
	entity.StatusFailure: {
		{status: entity.StatusTransit, details: "Your shipment has been accepted.", ago: 30 * time.Hour, city: "San Francisco", state: "CA", zip: "94117"},
		{status: entity.StatusFailure, details: "Delivery attempt failed: no secure location.", ago: 3 * time.Hour, city: "Chicago", state: "IL", zip: "60611"},
	},
}

func (s *Server) track(c *gin.Context) {
	carrier := strings.ToLower(c.Param("carrier"))
	number := c.Param("number")
	now := s.now().UTC()

	status := entity.StatusUnknown
	if strings.HasPrefix(number, CannedPrefix) {
		if _, ok := cannedHistories[strings.TrimPrefix(number, CannedPrefix)]; ok {
			status = strings.TrimPrefix(number, CannedPrefix)
		}
	}

	events := cannedHistories[status]
	history := make([]any, 0, len(events))
	for _, ev := range events {
		history = append(history, eventObject(ev, now))
	}

	var latest any
	if len(history) > 0 {
		latest = history[len(history)-1]
	} else {
		latest = map[string]any{
			"status":         entity.StatusUnknown,
			"status_details": "The carrier has not reported this tracking number yet.",
			"status_date":    nil,
			"location":       nil,
		}
	}

	var eta any
	if status == entity.StatusTransit {
		eta = now.Add(24 * time.Hour).Format(timeLayout)
	}

	c.JSON(http.StatusOK, gin.H{
		"carrier":          carrier,
		"tracking_number":  number,
		"address_from":     locationObject(origin),
		"address_to":       locationObject(destination),
		"eta":              eta,
		"servicelevel":     gin.H{"token": carrier + "_priority", "name": "Priority"},
		"metadata":         nil,
		"tracking_status":  latest,
		"tracking_history": history,
	})
}

func eventObject(ev trackEvent, now time.Time) map[string]any {
	return map[string]any{
		"status":         ev.status,
		"status_details": ev.details,
		"status_date":    now.Add(-ev.ago).Format(timeLayout),
		"location":       locationObject(ev),
	}
}

func locationObject(ev trackEvent) map[string]any {
	return map[string]any{
		"city":    ev.city,
		"state":   ev.state,
		"zip":     ev.zip,
		"country": "US",
	}
}
