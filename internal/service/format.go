package service

import (
	"strings"

	"github.com/addrconv/internal/address"
)

// Format names an external address representation.
type Format int

const (
	French Format = iota + 1
	ISO20022
)

func (f Format) String() string {
	switch f {
	case French:
		return "french"
	case ISO20022:
		return "iso20022"
	default:
		return "unknown"
	}
}

// ParseFormat accepts "french" or "iso20022" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "french":
		return French, nil
	case "iso20022":
		return ISO20022, nil
	default:
		return 0, address.InvalidFormat("unknown format %q: must be 'french' or 'iso20022'", s)
	}
}
