// Package convert maps canonical addresses to and from the French
// NF Z10-011 line set and the ISO 20022 postal address element set.
//
// Every function is pure: no I/O, no shared state, and results never alias
// their inputs. A conversion either returns a complete value or a single
// *address.MissingFieldError / *address.InvalidFormatError.
package convert

import (
	"fmt"

	"github.com/addrconv/internal/address"
	"github.com/addrconv/internal/french"
	"github.com/addrconv/internal/iso20022"
)

// ToFrench renders a canonical address as French address lines.
func ToFrench(a address.Address) (french.Address, error) {
	switch a.Kind {
	case address.Individual:
		name, err := individualName(a)
		if err != nil {
			return nil, err
		}

		var street *string
		if a.Street != nil {
			line := streetLine(*a.Street)
			street = &line
		}

		return &french.Individual{
			Name:             name,
			InternalDelivery: deliveryInternal(a.DeliveryPoint),
			ExternalDelivery: deliveryExternal(a.DeliveryPoint),
			Street:           street,
			DistributionInfo: distributionInfo(a),
			Postal:           postalLine(a.PostalDetails),
			Country:          a.Country.String(),
		}, nil

	case address.Business:
		companyName, err := businessName(a)
		if err != nil {
			return nil, err
		}
		if a.Street == nil {
			return nil, address.MissingField("street")
		}

		return &french.Business{
			BusinessName:     companyName,
			Recipient:        a.Recipient.Denomination(),
			ExternalDelivery: deliveryExternal(a.DeliveryPoint),
			Street:           streetLine(*a.Street),
			DistributionInfo: distributionInfo(a),
			Postal:           postalLine(a.PostalDetails),
			Country:          a.Country.String(),
		}, nil

	default:
		return nil, address.InvalidFormat("unknown address kind %d", int(a.Kind))
	}
}

// ToISO20022 renders a canonical address as an ISO 20022 party and postal address.
func ToISO20022(a address.Address) (iso20022.Address, error) {
	postal := iso20022.PostalAddress{
		Floor:            deliveryExternal(a.DeliveryPoint),
		Room:             deliveryInternal(a.DeliveryPoint),
		Postbox:          deliveryPostbox(a.DeliveryPoint),
		Postcode:         a.PostalDetails.Postcode,
		TownName:         a.PostalDetails.Town,
		TownLocationName: address.CloneString(a.PostalDetails.TownLocation),
		Country:          a.Country.ISOCode(),
	}
	if a.Street != nil {
		postal.StreetName = address.StringPtr(a.Street.Name)
		postal.BuildingNumber = address.CloneString(a.Street.Number)
	}

	switch a.Kind {
	case address.Individual:
		name, err := individualName(a)
		if err != nil {
			return nil, err
		}
		return &iso20022.Individual{Name: name, PostalAddress: postal}, nil

	case address.Business:
		companyName, err := businessName(a)
		if err != nil {
			return nil, err
		}
		postal.Department = a.Recipient.Denomination()
		return &iso20022.Business{BusinessName: companyName, PostalAddress: postal}, nil

	default:
		return nil, address.InvalidFormat("unknown address kind %d", int(a.Kind))
	}
}

func individualName(a address.Address) (string, error) {
	r, ok := a.Recipient.(address.IndividualRecipient)
	if !ok || r.Name == "" {
		return "", address.MissingField("name")
	}
	return r.Name, nil
}

func businessName(a address.Address) (string, error) {
	r, ok := a.Recipient.(address.BusinessRecipient)
	if !ok || r.CompanyName == "" {
		return "", address.MissingField("company_name")
	}
	return r.CompanyName, nil
}

func streetLine(s address.Street) string {
	if s.Number != nil {
		return fmt.Sprintf("%s %s", *s.Number, s.Name)
	}
	return s.Name
}

func postalLine(p address.PostalDetails) string {
	return fmt.Sprintf("%s %s", p.Postcode, p.Town)
}

// distributionInfo merges the postbox and the town location into a
// single line, postbox first.
func distributionInfo(a address.Address) *string {
	postbox := deliveryPostbox(a.DeliveryPoint)
	townLocation := a.PostalDetails.TownLocation

	switch {
	case postbox != nil && townLocation != nil:
		merged := fmt.Sprintf("%s %s", *postbox, *townLocation)
		return &merged
	case postbox != nil:
		return postbox
	case townLocation != nil:
		return address.CloneString(townLocation)
	default:
		return nil
	}
}

func deliveryExternal(dp *address.DeliveryPoint) *string {
	if dp == nil {
		return nil
	}
	return address.CloneString(dp.External)
}

func deliveryInternal(dp *address.DeliveryPoint) *string {
	if dp == nil {
		return nil
	}
	return address.CloneString(dp.Internal)
}

func deliveryPostbox(dp *address.DeliveryPoint) *string {
	if dp == nil {
		return nil
	}
	return address.CloneString(dp.Postbox)
}
