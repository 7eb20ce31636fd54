package entity

import "github.com/danmuck/shippoctl/internal/attributes"

// Parcel is a parcel object as returned by the service. Dimensions are sent
// as integers but echoed back as decimals.
type Parcel struct {
	Entity
}

func NewParcel(b *attributes.Bag) *Parcel {
	return &Parcel{Entity: newEntity(b)}
}

func (p *Parcel) ObjectState() string  { return p.str("object_state") }
func (p *Parcel) ObjectOwner() string  { return p.str("object_owner") }
func (p *Parcel) Template() string     { return p.str("template") }
func (p *Parcel) Length() float64      { return p.float("length") }
func (p *Parcel) Width() float64       { return p.float("width") }
func (p *Parcel) Height() float64      { return p.float("height") }
func (p *Parcel) DistanceUnit() string { return p.str("distance_unit") }
func (p *Parcel) Weight() float64      { return p.float("weight") }
func (p *Parcel) MassUnit() string     { return p.str("mass_unit") }

// ValueAmount is the declared value; empty when none was given.
func (p *Parcel) ValueAmount() string   { return p.str("value_amount") }
func (p *Parcel) ValueCurrency() string { return p.str("value_currency") }
func (p *Parcel) Metadata() string      { return p.str("metadata") }
