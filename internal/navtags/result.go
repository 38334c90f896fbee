package navtags

import "kbarticle/enhancer/internal/domain"

// Result is the outcome of an asynchronous nav tag fetch
type Result struct {
	Tags []domain.CategoryDictionaryEntry
	Err  error
}

// OK reports whether tags are available to render
func (r Result) OK() bool {
	return r.Err == nil
}
