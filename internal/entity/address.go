package entity

import "github.com/danmuck/shippoctl/internal/attributes"

// Address is an address object as returned by the service.
type Address struct {
	Entity
}

func NewAddress(b *attributes.Bag) *Address {
	return &Address{Entity: newEntity(b)}
}

// ObjectState is VALID or INVALID.
func (a *Address) ObjectState() string { return a.str("object_state") }

// ObjectPurpose is QUOTE or PURCHASE.
func (a *Address) ObjectPurpose() string { return a.str("object_purpose") }

// ObjectSource is FULLY_ENTERED, PARTIALLY_ENTERED or VALIDATOR.
func (a *Address) ObjectSource() string { return a.str("object_source") }

// ObjectOwner is the username of the user who created the object.
func (a *Address) ObjectOwner() string { return a.str("object_owner") }

func (a *Address) Name() string        { return a.str("name") }
func (a *Address) Company() string     { return a.str("company") }
func (a *Address) StreetNo() string    { return a.str("street_no") }
func (a *Address) Street1() string     { return a.str("street1") }
func (a *Address) Street2() string     { return a.str("street2") }
func (a *Address) City() string        { return a.str("city") }
func (a *Address) State() string       { return a.str("state") }
func (a *Address) Zip() string         { return a.str("zip") }
func (a *Address) Country() string     { return a.str("country") }
func (a *Address) Phone() string       { return a.str("phone") }
func (a *Address) Email() string       { return a.str("email") }
func (a *Address) IP() string          { return a.str("ip") }
func (a *Address) Metadata() string    { return a.str("metadata") }
func (a *Address) IsResidential() bool { return a.boolean("is_residential") }

// Messages holds validation or processing notes attached by the service.
func (a *Address) Messages() attributes.Array { return a.array("messages") }
