//go:build !libpostal

package libpostal

// Available reports whether Parse is backed by libpostal.
func Available() bool { return false }

// Parse always fails with ErrUnavailable in this build.
func Parse(string) ([]Component, error) {
	return nil, ErrUnavailable
}
