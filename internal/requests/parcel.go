package requests

import "github.com/danmuck/shippoctl/internal/attributes"

var (
	DistanceUnits = []string{"cm", "in", "ft", "mm", "m", "yd"}
	MassUnits     = []string{"g", "oz", "lb", "kg"}

	distanceUnit = attributes.OneOf(DistanceUnits...)
	massUnit     = attributes.OneOf(MassUnits...)
)

// Parcel holds the parameters for creating a parcel.
type Parcel struct {
	attributes *attributes.Bag
}

func NewParcel(params map[string]any) *Parcel {
	return &Parcel{attributes: attributes.New(params)}
}

// Length is the first dimension and should be the largest of the three;
// the service reorders them otherwise.
func (p *Parcel) Length() (int, error) {
	return p.attributes.MustHave("length").AsInteger()
}

// Width should be the second largest dimension.
func (p *Parcel) Width() (int, error) {
	return p.attributes.MustHave("width").AsInteger()
}

// Height should be the smallest dimension.
func (p *Parcel) Height() (int, error) {
	return p.attributes.MustHave("height").AsInteger()
}

// DistanceUnit applies to length, width and height.
func (p *Parcel) DistanceUnit() (string, error) {
	return p.attributes.MustHave("distance_unit").AsString(distanceUnit)
}

func (p *Parcel) Weight() (int, error) {
	return p.attributes.MustHave("weight").AsInteger()
}

func (p *Parcel) MassUnit() (string, error) {
	return p.attributes.MustHave("mass_unit").AsString(massUnit)
}

// Template is a carrier's predefined package token. When set, the
// template's dimensions are used for rating; the weight still applies.
func (p *Parcel) Template() (string, error) {
	return p.attributes.MayHave("template").AsString()
}

func (p *Parcel) Metadata() (string, error) {
	return p.attributes.MayHave("metadata").AsString(metadata)
}

func (p *Parcel) ToArray() (map[string]any, error) {
	out := newPayload()
	put(out, "length", p.Length)
	put(out, "width", p.Width)
	put(out, "height", p.Height)
	put(out, "distance_unit", p.DistanceUnit)
	put(out, "weight", p.Weight)
	put(out, "mass_unit", p.MassUnit)
	put(out, "template", p.Template)
	put(out, "metadata", p.Metadata)
	return out.result()
}
