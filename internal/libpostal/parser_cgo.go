//go:build libpostal

package libpostal

import (
	postal "github.com/openvenues/gopostal/parser"
)

// Available reports whether Parse is backed by libpostal.
func Available() bool { return true }

// Parse labels line using libpostal with French hints.
func Parse(line string) ([]Component, error) {
	parsed := postal.ParseAddressOptions(line, postal.ParserOptions{Language: "fr", Country: "fr"})

	components := make([]Component, 0, len(parsed))
	for _, c := range parsed {
		components = append(components, Component{Label: c.Label, Value: c.Value})
	}
	return components, nil
}
