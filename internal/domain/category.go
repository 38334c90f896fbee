package domain

// CategoryMeta carries per-locale display flags for a category.
type CategoryMeta struct {
	CustomerDisplayable []bool `json:"customerDisplayable"`
}

// CategoryDictionaryEntry describes a single category referenced by an article
type CategoryDictionaryEntry struct {
	Key          string        `json:"key"`
	Name         string        `json:"name"`
	EnglishName  string        `json:"englishName"`
	ArticleCount Count         `json:"articleCount"`
	Meta         *CategoryMeta `json:"meta,omitempty"`
}

// Displayable reports the customer display flag. Entries without meta are shown.
func (e CategoryDictionaryEntry) Displayable() bool {
	if e.Meta == nil {
		return true
	}
	if len(e.Meta.CustomerDisplayable) == 0 {
		return false
	}
	return e.Meta.CustomerDisplayable[0]
}

// CategoryInfo is the category graph attached to an article.
// A nil slice means the field was absent from the response.
type CategoryInfo struct {
	Categories           []string                  `json:"categories"`           // Slash-delimited paths like "x/TAX_NavigationTax/mac"
	CategoryDictionaries []CategoryDictionaryEntry `json:"categoryDictionaries"` // Lookup table keyed by Key
}
