// Package libpostal labels free-text address lines with libpostal. The
// parser needs cgo and the libpostal data files, so it is only compiled
// with the "libpostal" build tag; other builds report ErrUnavailable.
package libpostal

import "errors"

// ErrUnavailable is returned when the binary was built without libpostal.
var ErrUnavailable = errors.New("libpostal support not compiled in (build with -tags libpostal)")

// Component is one labelled span of an address, e.g. {"postcode", "33380"}.
type Component struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Lookup returns the value of the first component with label.
func Lookup(components []Component, label string) (string, bool) {
	for _, c := range components {
		if c.Label == label {
			return c.Value, true
		}
	}
	return "", false
}
