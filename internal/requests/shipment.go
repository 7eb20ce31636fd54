package requests

import (
	"time"

	"github.com/danmuck/shippoctl/internal/attributes"
)

const (
	SubmissionPickup  = "PICKUP"
	SubmissionDropoff = "DROPOFF"
)

var submissionType = attributes.OneOf(SubmissionPickup, SubmissionDropoff)

// Shipment holds the parameters for creating a shipment. Addresses and the
// parcel are referenced by object id.
type Shipment struct {
	attributes *attributes.Bag
}

func NewShipment(params map[string]any) *Shipment {
	return &Shipment{attributes: attributes.New(params)}
}

func (s *Shipment) ObjectPurpose() (string, error) {
	return s.attributes.MustHave("object_purpose").AsString(purposes)
}

func (s *Shipment) AddressFrom() (string, error) {
	return s.attributes.MustHave("address_from").AsString(attributes.NotBlank)
}

func (s *Shipment) AddressTo() (string, error) {
	return s.attributes.MustHave("address_to").AsString(attributes.NotBlank)
}

func (s *Shipment) Parcel() (string, error) {
	return s.attributes.MustHave("parcel").AsString(attributes.NotBlank)
}

// SubmissionType is PICKUP or DROPOFF.
func (s *Shipment) SubmissionType() (string, error) {
	return s.attributes.MustHave("submission_type").AsString(submissionType)
}

// SubmissionDate is when the shipment will be handed to the carrier.
func (s *Shipment) SubmissionDate() (time.Time, error) {
	return s.attributes.MayHave("submission_date").AsDateTime()
}

func (s *Shipment) AddressReturn() (string, error) {
	return s.attributes.MayHave("address_return").AsString()
}

func (s *Shipment) CustomsDeclaration() (string, error) {
	return s.attributes.MayHave("customs_declaration").AsString()
}

func (s *Shipment) InsuranceAmount() (int, error) {
	return s.attributes.MayHave("insurance_amount").AsInteger()
}

func (s *Shipment) InsuranceCurrency() (string, error) {
	return s.attributes.MayHave("insurance_currency").AsString()
}

// Extra holds optional service flags, e.g. signature_confirmation.
func (s *Shipment) Extra() (attributes.Array, error) {
	return s.attributes.MayHave("extra").AsArray()
}

func (s *Shipment) Reference1() (string, error) {
	return s.attributes.MayHave("reference_1").AsString()
}

func (s *Shipment) Reference2() (string, error) {
	return s.attributes.MayHave("reference_2").AsString()
}

func (s *Shipment) Metadata() (string, error) {
	return s.attributes.MayHave("metadata").AsString(metadata)
}

func (s *Shipment) ToArray() (map[string]any, error) {
	out := newPayload()
	put(out, "object_purpose", s.ObjectPurpose)
	put(out, "address_from", s.AddressFrom)
	put(out, "address_to", s.AddressTo)
	put(out, "parcel", s.Parcel)
	put(out, "submission_type", s.SubmissionType)
	put(out, "submission_date", s.SubmissionDate)
	put(out, "address_return", s.AddressReturn)
	put(out, "customs_declaration", s.CustomsDeclaration)
	put(out, "insurance_amount", s.InsuranceAmount)
	put(out, "insurance_currency", s.InsuranceCurrency)
	put(out, "extra", s.Extra)
	put(out, "reference_1", s.Reference1)
	put(out, "reference_2", s.Reference2)
	put(out, "metadata", s.Metadata)
	return out.result()
}
