package address

import "strings"

// Country is a member of the closed set of supported countries.
type Country int

const (
	// France is the only supported country for NF Z10-011 addresses.
	France Country = iota + 1
)

type countryEntry struct {
	name    string
	isoCode string
}

// countries is the registry table. Adding a country means adding one row here.
var countries = map[Country]countryEntry{
	France: {name: "FRANCE", isoCode: "FR"},
}

// ParseCountry resolves a country from its full name or ISO alias,
// ignoring case ("france", "FRANCE", "fr" and "FR" are all France).
func ParseCountry(text string) (Country, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, InvalidFormat("country must not be empty")
	}

	for country, entry := range countries {
		if strings.EqualFold(trimmed, entry.name) || strings.EqualFold(trimmed, entry.isoCode) {
			return country, nil
		}
	}

	return 0, InvalidFormat("unsupported country %q", text)
}

// String returns the upper-case country name used on French address lines.
func (c Country) String() string {
	if entry, ok := countries[c]; ok {
		return entry.name
	}
	return "UNKNOWN"
}

// ISOCode returns the two-letter ISO 3166 code.
func (c Country) ISOCode() string {
	if entry, ok := countries[c]; ok {
		return entry.isoCode
	}
	return ""
}

// Valid reports whether c is a registry member.
func (c Country) Valid() bool {
	_, ok := countries[c]
	return ok
}
