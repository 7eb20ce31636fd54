package requests

import "github.com/danmuck/shippoctl/internal/attributes"

var country = attributes.ExactLength(2)

// Address holds the parameters for creating an address. PURCHASE addresses
// must be complete enough to print a label; QUOTE addresses only need a
// country.
type Address struct {
	attributes *attributes.Bag
}

func NewAddress(params map[string]any) *Address {
	return &Address{attributes: attributes.New(params)}
}

// ObjectPurpose is QUOTE or PURCHASE.
func (a *Address) ObjectPurpose() (string, error) {
	return a.attributes.MustHave("object_purpose").AsString(purposes)
}

// Country is the ISO 3166-1 alpha-2 country code.
func (a *Address) Country() (string, error) {
	return a.attributes.MustHave("country").AsString(country)
}

func (a *Address) Name() (string, error)    { return a.purchaseField("name") }
func (a *Address) Street1() (string, error) { return a.purchaseField("street1") }
func (a *Address) City() (string, error)    { return a.purchaseField("city") }
func (a *Address) Zip() (string, error)     { return a.purchaseField("zip") }
func (a *Address) Phone() (string, error)   { return a.purchaseField("phone") }
func (a *Address) Email() (string, error)   { return a.purchaseField("email") }

func (a *Address) Company() (string, error)  { return a.attributes.MayHave("company").AsString() }
func (a *Address) StreetNo() (string, error) { return a.attributes.MayHave("street_no").AsString() }
func (a *Address) Street2() (string, error)  { return a.attributes.MayHave("street2").AsString() }
func (a *Address) State() (string, error)    { return a.attributes.MayHave("state").AsString() }

func (a *Address) IsResidential() (bool, error) {
	return a.attributes.MayHave("is_residential").AsBool()
}

func (a *Address) Metadata() (string, error) {
	return a.attributes.MayHave("metadata").AsString(metadata)
}

func (a *Address) purchaseField(key string) (string, error) {
	purpose, err := a.ObjectPurpose()
	if err != nil {
		return "", err
	}
	if purpose == PurposePurchase {
		return a.attributes.MustHave(key).AsString(attributes.NotBlank)
	}
	return a.attributes.MayHave(key).AsString()
}

func (a *Address) ToArray() (map[string]any, error) {
	out := newPayload()
	put(out, "object_purpose", a.ObjectPurpose)
	put(out, "name", a.Name)
	put(out, "company", a.Company)
	put(out, "street_no", a.StreetNo)
	put(out, "street1", a.Street1)
	put(out, "street2", a.Street2)
	put(out, "city", a.City)
	put(out, "state", a.State)
	put(out, "zip", a.Zip)
	put(out, "country", a.Country)
	put(out, "phone", a.Phone)
	put(out, "email", a.Email)
	put(out, "is_residential", a.IsResidential)
	put(out, "metadata", a.Metadata)
	return out.result()
}
