// Package validate provides input validation for mystuff's domain types.
//
// Validation is minimal. Only input that cannot serve as a key (an empty
// url) is rejected at the boundary between user input and the link service;
// anything else a user types is accepted as-is, tags included.
//
// All validation errors wrap a sentinel error defined in errors.go.
// Use errors.Is() to check them:
//
//	if errors.Is(err, validate.ErrInvalidURL) {
//	    // handle invalid url
//	}
package validate
