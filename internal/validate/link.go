// link.go implements url validation for bookmarks.
//
// The url is the identity of a link, so only the empty string is rejected.
// Scheme and host are not checked; local paths and non-http schemes are
// legitimate bookmarks, and the JSON encoding stores any other string safely.

package validate

import "fmt"

// URL validates a bookmark url.
func URL(u string) error {
	if u == "" {
		return fmt.Errorf("%w: empty url", ErrInvalidURL)
	}
	return nil
}
