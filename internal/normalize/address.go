// Package normalize cleans raw address lines before they reach the parser.
package normalize

import (
	"strings"

	"github.com/addrconv/internal/french"
	"github.com/addrconv/internal/iso20022"
)

// Line trims a line and collapses internal whitespace runs to single spaces.
// Case and punctuation are kept as typed.
func Line(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// French returns a copy of fa with every line normalised. A blank optional
// line stays present as "" so the parser can still reject it.
func French(fa french.Address) french.Address {
	switch fa := fa.(type) {
	case *french.Individual:
		if fa == nil {
			return fa
		}
		return &french.Individual{
			Name:             Line(fa.Name),
			InternalDelivery: optional(fa.InternalDelivery),
			ExternalDelivery: optional(fa.ExternalDelivery),
			Street:           optional(fa.Street),
			DistributionInfo: optional(fa.DistributionInfo),
			Postal:           Line(fa.Postal),
			Country:          Line(fa.Country),
		}
	case *french.Business:
		if fa == nil {
			return fa
		}
		return &french.Business{
			BusinessName:     Line(fa.BusinessName),
			Recipient:        optional(fa.Recipient),
			ExternalDelivery: optional(fa.ExternalDelivery),
			Street:           Line(fa.Street),
			DistributionInfo: optional(fa.DistributionInfo),
			Postal:           Line(fa.Postal),
			Country:          Line(fa.Country),
		}
	default:
		return fa
	}
}

// ISO20022 returns a copy of ia with every element normalised.
func ISO20022(ia iso20022.Address) iso20022.Address {
	switch ia := ia.(type) {
	case *iso20022.Individual:
		if ia == nil {
			return ia
		}
		return &iso20022.Individual{Name: Line(ia.Name), PostalAddress: postal(ia.PostalAddress)}
	case *iso20022.Business:
		if ia == nil {
			return ia
		}
		return &iso20022.Business{BusinessName: Line(ia.BusinessName), PostalAddress: postal(ia.PostalAddress)}
	default:
		return ia
	}
}

func postal(p iso20022.PostalAddress) iso20022.PostalAddress {
	return iso20022.PostalAddress{
		StreetName:       optional(p.StreetName),
		BuildingNumber:   optional(p.BuildingNumber),
		Floor:            optional(p.Floor),
		Room:             optional(p.Room),
		Postbox:          optional(p.Postbox),
		Department:       optional(p.Department),
		Postcode:         Line(p.Postcode),
		TownName:         Line(p.TownName),
		TownLocationName: optional(p.TownLocationName),
		Country:          Line(p.Country),
	}
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	line := Line(*s)
	return &line
}
