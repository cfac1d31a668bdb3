package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/addrconv/internal/address"
)

// Record is the persisted shape of a canonical address, shared by every
// backend. The recipient union is flattened with an explicit kind.
type Record struct {
	ID            uuid.UUID `json:"id"`
	UpdatedAt     time.Time `json:"updated_at"`
	Kind          string    `json:"kind"`
	Name          string    `json:"name,omitempty"`
	CompanyName   string    `json:"company_name,omitempty"`
	Contact       *string   `json:"contact,omitempty"`
	HasDelivery   bool      `json:"has_delivery_point"`
	External      *string   `json:"external,omitempty"`
	Internal      *string   `json:"internal,omitempty"`
	Postbox       *string   `json:"postbox,omitempty"`
	HasStreet     bool      `json:"has_street"`
	StreetNumber  *string   `json:"street_number,omitempty"`
	StreetName    string    `json:"street_name,omitempty"`
	Postcode      string    `json:"postcode"`
	Town          string    `json:"town"`
	TownLocation  *string   `json:"town_location,omitempty"`
	Country       string    `json:"country"`
}

// NewRecord flattens a for persistence.
func NewRecord(a address.Address) (Record, error) {
	r := Record{
		ID:           a.ID,
		UpdatedAt:    a.UpdatedAt,
		Kind:         a.Kind.String(),
		Postcode:     a.PostalDetails.Postcode,
		Town:         a.PostalDetails.Town,
		TownLocation: address.CloneString(a.PostalDetails.TownLocation),
		Country:      a.Country.ISOCode(),
	}
	if !a.Country.Valid() {
		return Record{}, fmt.Errorf("address %s: unsupported country", a.ID)
	}

	switch rcp := a.Recipient.(type) {
	case address.IndividualRecipient:
		r.Name = rcp.Name
	case address.BusinessRecipient:
		r.CompanyName = rcp.CompanyName
		r.Contact = address.CloneString(rcp.Contact)
	default:
		return Record{}, fmt.Errorf("address %s: unsupported recipient %T", a.ID, a.Recipient)
	}

	if dp := a.DeliveryPoint; dp != nil {
		r.HasDelivery = true
		r.External = address.CloneString(dp.External)
		r.Internal = address.CloneString(dp.Internal)
		r.Postbox = address.CloneString(dp.Postbox)
	}
	if s := a.Street; s != nil {
		r.HasStreet = true
		r.StreetNumber = address.CloneString(s.Number)
		r.StreetName = s.Name
	}

	return r, nil
}

// Address rebuilds the canonical address from r.
func (r Record) Address() (address.Address, error) {
	kind, err := address.ParseKind(r.Kind)
	if err != nil {
		return address.Address{}, fmt.Errorf("record %s: %w", r.ID, err)
	}
	country, err := address.ParseCountry(r.Country)
	if err != nil {
		return address.Address{}, fmt.Errorf("record %s: %w", r.ID, err)
	}

	a := address.Address{
		ID:        r.ID,
		UpdatedAt: r.UpdatedAt,
		Kind:      kind,
		PostalDetails: address.PostalDetails{
			Postcode:     r.Postcode,
			Town:         r.Town,
			TownLocation: address.CloneString(r.TownLocation),
		},
		Country: country,
	}

	if kind == address.Business {
		a.Recipient = address.BusinessRecipient{CompanyName: r.CompanyName, Contact: address.CloneString(r.Contact)}
	} else {
		a.Recipient = address.IndividualRecipient{Name: r.Name}
	}
	if r.HasDelivery {
		a.DeliveryPoint = &address.DeliveryPoint{
			External: address.CloneString(r.External),
			Internal: address.CloneString(r.Internal),
			Postbox:  address.CloneString(r.Postbox),
		}
	}
	if r.HasStreet {
		a.Street = &address.Street{Number: address.CloneString(r.StreetNumber), Name: r.StreetName}
	}

	return a, nil
}
