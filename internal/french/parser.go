package french

import (
	"regexp"
	"strings"

	"github.com/addrconv/internal/address"
)

// Street number: digits followed by optional letters (25, 2BIS, 2D), then the label.
var reStreetNumber = regexp.MustCompile(`^(\d+[A-Za-z]*)(?:\s+(.*))?$`)

// Postal line: five-digit postcode, one space, town starting with a
// non-space character.
var rePostal = regexp.MustCompile(`^(\d{5}) (\S.*)$`)

// Postbox token at the start of a distribution line (BP 90432, CS 1234).
var rePostbox = regexp.MustCompile(`^[A-Z]{2}\s+\d+`)

// ParseStreet splits an optional leading street number from the street name.
func ParseStreet(line string) (address.Street, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return address.Street{}, address.InvalidFormat("street line must not be empty")
	}

	m := reStreetNumber.FindStringSubmatch(trimmed)
	if m == nil {
		return address.Street{Name: trimmed}, nil
	}

	name := strings.TrimSpace(m[2])
	if name == "" {
		return address.Street{}, address.InvalidFormat("street line %q has a number but no street name", line)
	}

	number := m[1]
	return address.Street{Number: &number, Name: name}, nil
}

// ParsePostal reads a "<postcode> <town>" line.
func ParsePostal(line string) (address.PostalDetails, error) {
	m := rePostal.FindStringSubmatch(line)
	if m == nil {
		return address.PostalDetails{}, address.InvalidFormat(
			"postal line %q must be a 5-digit postcode followed by a space and the town (e.g. '33380 MIOS')", line)
	}

	return address.PostalDetails{Postcode: m[1], Town: strings.TrimSpace(m[2])}, nil
}

// ParsePostbox returns the postbox token leading text, or nil when the
// text does not start with one.
func ParsePostbox(text string) (*string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, address.InvalidFormat("distribution info must not be empty")
	}

	token := rePostbox.FindString(text)
	if token == "" {
		return nil, nil
	}
	return &token, nil
}

// ParseTownLocation strips a leading postbox token and returns whatever
// remains, or nil when nothing does.
func ParseTownLocation(text string) (*string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, address.InvalidFormat("distribution info must not be empty")
	}

	rest := strings.TrimSpace(rePostbox.ReplaceAllString(text, ""))
	if rest == "" {
		return nil, nil
	}
	return &rest, nil
}
