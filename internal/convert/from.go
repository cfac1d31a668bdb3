package convert

import (
	"github.com/addrconv/internal/address"
	"github.com/addrconv/internal/french"
	"github.com/addrconv/internal/iso20022"
)

// FromFrench reconstructs a canonical address from French address lines.
//
// For businesses the distribution line is split back into a postbox and a
// town location. That split is best effort: it does not invert ToFrench
// when the merged line was ambiguous.
func FromFrench(fa french.Address) (address.Address, error) {
	switch fa := fa.(type) {
	case *french.Individual:
		if fa == nil {
			return address.Address{}, address.InvalidFormat("french address is empty")
		}
		if fa.Name == "" {
			return address.Address{}, address.MissingField("name")
		}

		var street *address.Street
		if fa.Street != nil {
			s, err := french.ParseStreet(*fa.Street)
			if err != nil {
				return address.Address{}, err
			}
			street = &s
		}

		postal, err := french.ParsePostal(fa.Postal)
		if err != nil {
			return address.Address{}, err
		}

		country, err := address.ParseCountry(fa.Country)
		if err != nil {
			return address.Address{}, err
		}

		var dp *address.DeliveryPoint
		if fa.ExternalDelivery != nil || fa.InternalDelivery != nil || fa.DistributionInfo != nil {
			dp = &address.DeliveryPoint{
				External: address.CloneString(fa.ExternalDelivery),
				Internal: address.CloneString(fa.InternalDelivery),
				Postbox:  address.CloneString(fa.DistributionInfo),
			}
		}

		return address.New(
			address.Individual,
			address.IndividualRecipient{Name: fa.Name},
			dp,
			street,
			postal,
			country,
		), nil

	case *french.Business:
		if fa == nil {
			return address.Address{}, address.InvalidFormat("french address is empty")
		}
		if fa.BusinessName == "" {
			return address.Address{}, address.MissingField("business_name")
		}

		street, err := french.ParseStreet(fa.Street)
		if err != nil {
			return address.Address{}, err
		}

		postal, err := french.ParsePostal(fa.Postal)
		if err != nil {
			return address.Address{}, err
		}

		var postbox *string
		if fa.DistributionInfo != nil {
			postbox, err = french.ParsePostbox(*fa.DistributionInfo)
			if err != nil {
				return address.Address{}, err
			}
			postal.TownLocation, err = french.ParseTownLocation(*fa.DistributionInfo)
			if err != nil {
				return address.Address{}, err
			}
		}

		country, err := address.ParseCountry(fa.Country)
		if err != nil {
			return address.Address{}, err
		}

		// A distribution line holding only a town location leaves no
		// delivery point behind.
		var dp *address.DeliveryPoint
		if fa.ExternalDelivery != nil || postbox != nil {
			dp = &address.DeliveryPoint{
				External: address.CloneString(fa.ExternalDelivery),
				Postbox:  postbox,
			}
		}

		return address.New(
			address.Business,
			address.BusinessRecipient{CompanyName: fa.BusinessName, Contact: address.CloneString(fa.Recipient)},
			dp,
			&street,
			postal,
			country,
		), nil

	case nil:
		return address.Address{}, address.InvalidFormat("french address is empty")

	default:
		return address.Address{}, address.InvalidFormat("unsupported french address type %T", fa)
	}
}

// FromISO20022 reconstructs a canonical address from an ISO 20022 party.
//
// An individual must carry a street name. A business without one gets an
// empty street name instead of an error.
func FromISO20022(ia iso20022.Address) (address.Address, error) {
	var (
		kind      address.Kind
		recipient address.Recipient
		street    *address.Street
		dp        *address.DeliveryPoint
		p         iso20022.PostalAddress
	)

	switch ia := ia.(type) {
	case *iso20022.Individual:
		if ia == nil {
			return address.Address{}, address.InvalidFormat("iso20022 address is empty")
		}
		p = ia.PostalAddress
		if ia.Name == "" {
			return address.Address{}, address.MissingField("name")
		}
		if p.StreetName == nil || *p.StreetName == "" {
			return address.Address{}, address.MissingField("street_name")
		}

		kind = address.Individual
		recipient = address.IndividualRecipient{Name: ia.Name}
		street = &address.Street{Number: address.CloneString(p.BuildingNumber), Name: *p.StreetName}
		if p.Floor != nil || p.Room != nil || p.Postbox != nil {
			dp = &address.DeliveryPoint{
				External: address.CloneString(p.Floor),
				Internal: address.CloneString(p.Room),
				Postbox:  address.CloneString(p.Postbox),
			}
		}

	case *iso20022.Business:
		if ia == nil {
			return address.Address{}, address.InvalidFormat("iso20022 address is empty")
		}
		p = ia.PostalAddress
		if ia.BusinessName == "" {
			return address.Address{}, address.MissingField("business_name")
		}

		var name string
		if p.StreetName != nil {
			name = *p.StreetName
		}

		kind = address.Business
		recipient = address.BusinessRecipient{CompanyName: ia.BusinessName, Contact: address.CloneString(p.Department)}
		street = &address.Street{Number: address.CloneString(p.BuildingNumber), Name: name}
		if p.Floor != nil || p.Postbox != nil {
			dp = &address.DeliveryPoint{
				External: address.CloneString(p.Floor),
				Postbox:  address.CloneString(p.Postbox),
			}
		}

	case nil:
		return address.Address{}, address.InvalidFormat("iso20022 address is empty")

	default:
		return address.Address{}, address.InvalidFormat("unsupported iso20022 address type %T", ia)
	}

	if p.Postcode == "" {
		return address.Address{}, address.MissingField("postcode")
	}
	if p.TownName == "" {
		return address.Address{}, address.MissingField("town_name")
	}

	country, err := address.ParseCountry(p.Country)
	if err != nil {
		return address.Address{}, err
	}

	return address.New(
		kind,
		recipient,
		dp,
		street,
		address.PostalDetails{
			Postcode:     p.Postcode,
			Town:         p.TownName,
			TownLocation: address.CloneString(p.TownLocationName),
		},
		country,
	), nil
}
