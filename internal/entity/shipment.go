package entity

import (
	"time"

	"github.com/danmuck/shippoctl/internal/attributes"
)

// Shipment is a shipment object as returned by the service. Address and
// parcel references are object ids.
type Shipment struct {
	Entity
}

func NewShipment(b *attributes.Bag) *Shipment {
	return &Shipment{Entity: newEntity(b)}
}

func (s *Shipment) ObjectState() string   { return s.str("object_state") }
func (s *Shipment) ObjectOwner() string   { return s.str("object_owner") }
func (s *Shipment) ObjectPurpose() string { return s.str("object_purpose") }

// ObjectStatus is the rating progress: WAITING, QUEUED, SUCCESS or ERROR.
func (s *Shipment) ObjectStatus() string { return s.str("object_status") }

func (s *Shipment) AddressFrom() string    { return s.str("address_from") }
func (s *Shipment) AddressTo() string      { return s.str("address_to") }
func (s *Shipment) AddressReturn() string  { return s.str("address_return") }
func (s *Shipment) Parcel() string         { return s.str("parcel") }
func (s *Shipment) SubmissionType() string { return s.str("submission_type") }

func (s *Shipment) SubmissionDate() time.Time { return s.dateTime("submission_date") }

// ReturnOf is the id of the original shipment when this is a return.
func (s *Shipment) ReturnOf() string           { return s.str("return_of") }
func (s *Shipment) CustomsDeclaration() string { return s.str("customs_declaration") }
func (s *Shipment) InsuranceAmount() int       { return s.integer("insurance_amount") }
func (s *Shipment) InsuranceCurrency() string  { return s.str("insurance_currency") }
func (s *Shipment) Reference1() string         { return s.str("reference_1") }
func (s *Shipment) Reference2() string         { return s.str("reference_2") }
func (s *Shipment) RatesURL() string           { return s.str("rates_url") }
func (s *Shipment) Metadata() string           { return s.str("metadata") }

// CarrierAccounts lists the carrier account ids used for rating.
func (s *Shipment) CarrierAccounts() []string { return s.stringList("carrier_accounts") }

// Extra holds optional service flags such as signature_confirmation.
func (s *Shipment) Extra() attributes.Array    { return s.array("extra") }
func (s *Shipment) Messages() attributes.Array { return s.array("messages") }
