package service

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/addrconv/internal/address"
	"github.com/addrconv/internal/french"
	"github.com/addrconv/internal/iso20022"
)

// Result is a canonical address rendered in one external format. Exactly
// one of French and ISO is set, according to Format.
type Result struct {
	ID     uuid.UUID
	Format Format
	French french.Address
	ISO    iso20022.Address
}

// MarshalJSON encodes only the rendered address.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Format == ISO20022 {
		return json.Marshal(r.ISO)
	}
	return json.Marshal(r.French)
}

// XML renders the ISO 20022 party element. French results have no XML form.
func (r Result) XML() ([]byte, error) {
	if r.Format != ISO20022 || r.ISO == nil {
		return nil, address.InvalidFormat("XML output is only available for iso20022")
	}
	return iso20022.MarshalXML(r.ISO)
}

// Lines returns a French result as envelope lines, top to bottom.
func (r Result) Lines() ([]string, error) {
	if r.Format != French || r.French == nil {
		return nil, address.InvalidFormat("envelope lines are only available for french")
	}
	return r.French.Lines(), nil
}
