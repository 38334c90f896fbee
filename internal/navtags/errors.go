package navtags

import (
	"errors"
	"fmt"
)

// ErrMalformed marks category info that lacks one of its required lists
var ErrMalformed = errors.New("malformed category info")

// LookupError reports a category path that could not be resolved
type LookupError struct {
	Path string // Offending category path, empty for malformed input
	Key  string // Dictionary key that was looked up
	Err  error
}

func (e *LookupError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("nav tag lookup: %v", e.Err)
	}
	return fmt.Sprintf("nav tag lookup: no dictionary entry %q for category %q", e.Key, e.Path)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
