// Package french models NF Z10-011 line-oriented addresses and parses
// their semi-structured lines.
package french

import (
	"encoding/json"

	"github.com/addrconv/internal/address"
)

// Address is either an *Individual or a *Business French address.
type Address interface {
	Kind() address.Kind
	// Lines returns the address as printed on an envelope, top to bottom.
	Lines() []string
}

// Individual is a French address for a person.
type Individual struct {
	// Civility, first name and last name.
	Name string `json:"name"`
	// Apartment, mailbox, staircase, floor.
	InternalDelivery *string `json:"internal_delivery,omitempty"`
	// Building, residence, entrance.
	ExternalDelivery *string `json:"external_delivery,omitempty"`
	// Route number and label; may be absent in small villages.
	Street *string `json:"street,omitempty"`
	// Hamlet, postbox.
	DistributionInfo *string `json:"distribution_info,omitempty"`
	Postal           string  `json:"postal"`
	Country          string  `json:"country"`
}

// Business is a French address for a company.
type Business struct {
	BusinessName string `json:"business_name"`
	// Identity of the recipient and/or service.
	Recipient        *string `json:"recipient,omitempty"`
	ExternalDelivery *string `json:"external_delivery,omitempty"`
	Street           string  `json:"street"`
	// BP, CEDEX sorting information and the commune when it differs from
	// the distributing office.
	DistributionInfo *string `json:"distribution_info,omitempty"`
	// Postcode and locality, or CEDEX code and distributing office.
	Postal  string `json:"postal"`
	Country string `json:"country"`
}

func (*Individual) Kind() address.Kind { return address.Individual }

func (*Business) Kind() address.Kind { return address.Business }

func (a *Individual) Lines() []string {
	return compactLines(&a.Name, a.InternalDelivery, a.ExternalDelivery, a.Street, a.DistributionInfo, &a.Postal, &a.Country)
}

func (a *Business) Lines() []string {
	return compactLines(&a.BusinessName, a.Recipient, a.ExternalDelivery, &a.Street, a.DistributionInfo, &a.Postal, &a.Country)
}

func compactLines(lines ...*string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != nil && *line != "" {
			out = append(out, *line)
		}
	}
	return out
}

// Decode reads a French address from JSON. The variant comes from an
// optional "kind" marker; without one, it is inferred from "name" versus
// "business_name", and a payload carrying both or neither is rejected.
func Decode(data []byte) (Address, error) {
	var probe struct {
		Kind         *string          `json:"kind"`
		Name         *json.RawMessage `json:"name"`
		BusinessName *json.RawMessage `json:"business_name"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, address.InvalidFormat("malformed french address JSON: %v", err)
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
		return nil, address.InvalidFormat("ambiguous french address: both 'name' and 'business_name' are present")
	case probe.Name != nil:
		kind = address.Individual
	case probe.BusinessName != nil:
		kind = address.Business
	default:
		return nil, address.InvalidFormat("french address needs either 'name' or 'business_name'")
	}

	var out Address
	if kind == address.Business {
		out = &Business{}
	} else {
		out = &Individual{}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, address.InvalidFormat("malformed french %s address: %v", kind, err)
	}
	return out, nil
}
