// Package iso20022 models the ISO 20022 structured postal address element set.
package iso20022

import (
	"encoding/json"
	"encoding/xml"

	"github.com/addrconv/internal/address"
)

// Address is either an *Individual or a *Business ISO address.
type Address interface {
	Kind() address.Kind
	Postal() PostalAddress
	// PartyName is the <Nm> of the party owning the postal address.
	PartyName() string
}

// Individual is an ISO 20022 party that is a person.
type Individual struct {
	Name          string        `json:"name"`
	PostalAddress PostalAddress `json:"postal_address"`
}

// Business is an ISO 20022 party that is an organisation.
type Business struct {
	BusinessName  string        `json:"business_name"`
	PostalAddress PostalAddress `json:"postal_address"`
}

// PostalAddress is the <PstlAdr> element set.
type PostalAddress struct {
	StreetName       *string `json:"street_name,omitempty"`        // <StrtNm>
	BuildingNumber   *string `json:"building_number,omitempty"`    // <BldgNb>
	Floor            *string `json:"floor,omitempty"`              // <Flr>
	Room             *string `json:"room,omitempty"`               // <Room>
	Postbox          *string `json:"postbox,omitempty"`            // <PstBx>
	Department       *string `json:"department,omitempty"`         // <Dept>
	Postcode         string  `json:"postcode"`                     // <PstCd>
	TownName         string  `json:"town_name"`                    // <TwnNm>
	TownLocationName *string `json:"town_location_name,omitempty"` // <TwnLctnNm>
	Country          string  `json:"country"`                      // <Ctry>
}

func (*Individual) Kind() address.Kind { return address.Individual }

func (*Business) Kind() address.Kind { return address.Business }

func (a *Individual) Postal() PostalAddress { return a.PostalAddress }

func (a *Business) Postal() PostalAddress { return a.PostalAddress }

func (a *Individual) PartyName() string { return a.Name }

func (a *Business) PartyName() string { return a.BusinessName }

// Decode reads an ISO address from JSON. Variant selection mirrors
// french.Decode: an explicit "kind" marker, else "name" versus
// "business_name", rejecting payloads carrying both or neither.
func Decode(data []byte) (Address, error) {
	var probe struct {
		Kind         *string          `json:"kind"`
		Name         *json.RawMessage `json:"name"`
		BusinessName *json.RawMessage `json:"business_name"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, address.InvalidFormat("malformed iso20022 address JSON: %v", err)
	}

	var kind address.Kind
	switch {
	case probe.Kind != nil:
		k, err := address.ParseKind(*probe.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	case probe.Name != nil && probe.BusinessName != nil:
		return nil, address.InvalidFormat("ambiguous iso20022 address: both 'name' and 'business_name' are present")
	case probe.Name != nil:
		kind = address.Individual
	case probe.BusinessName != nil:
		kind = address.Business
	default:
		return nil, address.InvalidFormat("iso20022 address needs either 'name' or 'business_name'")
	}

	var out Address
	if kind == address.Business {
		out = &Business{}
	} else {
		out = &Individual{}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, address.InvalidFormat("malformed iso20022 %s address: %v", kind, err)
	}
	return out, nil
}

// xmlParty lays out elements in ISO 20022 schema order.
type xmlParty struct {
	XMLName xml.Name `xml:"Pty"`
	Name    string   `xml:"Nm"`
	Postal  struct {
		Department       *string `xml:"Dept,omitempty"`
		StreetName       *string `xml:"StrtNm,omitempty"`
		BuildingNumber   *string `xml:"BldgNb,omitempty"`
		Floor            *string `xml:"Flr,omitempty"`
		Postbox          *string `xml:"PstBx,omitempty"`
		Room             *string `xml:"Room,omitempty"`
		Postcode         string  `xml:"PstCd"`
		TownName         string  `xml:"TwnNm"`
		TownLocationName *string `xml:"TwnLctnNm,omitempty"`
		Country          string  `xml:"Ctry"`
	} `xml:"PstlAdr"`
}

// MarshalXML renders a as an indented <Pty> element with its <PstlAdr>.
func MarshalXML(a Address) ([]byte, error) {
	p := a.Postal()

	var party xmlParty
	party.Name = a.PartyName()
	party.Postal.Department = p.Department
	party.Postal.StreetName = p.StreetName
	party.Postal.BuildingNumber = p.BuildingNumber
	party.Postal.Floor = p.Floor
	party.Postal.Postbox = p.Postbox
	party.Postal.Room = p.Room
	party.Postal.Postcode = p.Postcode
	party.Postal.TownName = p.TownName
	party.Postal.TownLocationName = p.TownLocationName
	party.Postal.Country = p.Country

	return xml.MarshalIndent(party, "", "  ")
}
