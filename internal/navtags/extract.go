// Package navtags derives the navigation tags shown under an article from
// the article's category graph and renders them as markup.
package navtags

import (
	"fmt"
	"strings"

	"kbarticle/enhancer/internal/domain"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultMarker          = "TAX_NavigationTax"
	DefaultMinArticleCount = 2
)

// LookupPolicy decides what happens when a navigation path names a key that
// is missing from the dictionary.
type LookupPolicy string

const (
	LookupSkip  LookupPolicy = "skip"
	LookupFatal LookupPolicy = "fatal"
)

func ParseLookupPolicy(s string) (LookupPolicy, error) {
	switch p := LookupPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case LookupSkip, LookupFatal:
		return p, nil
	case "":
		return LookupSkip, nil
	default:
		return "", fmt.Errorf("unknown lookup policy %q", s)
	}
}

type ExtractOptions struct {
	Marker          string // Substring that marks a navigation category path
	MinArticleCount int    // Entries need strictly more articles than this
	Policy          LookupPolicy
}

func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Marker:          DefaultMarker,
		MinArticleCount: DefaultMinArticleCount,
		Policy:          LookupSkip,
	}
}

// Extract selects the dictionary entries to show as nav tags, in the order
// their navigation paths appear. A key reached through two navigation paths
// is returned twice.
func Extract(info domain.CategoryInfo, opts ExtractOptions) ([]domain.CategoryDictionaryEntry, error) {
	if info.Categories == nil {
		return nil, &LookupError{Err: fmt.Errorf("%w: categories missing", ErrMalformed)}
	}
	if info.CategoryDictionaries == nil {
		return nil, &LookupError{Err: fmt.Errorf("%w: categoryDictionaries missing", ErrMalformed)}
	}

	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}

	dictionary := make(map[string]domain.CategoryDictionaryEntry, len(info.CategoryDictionaries))
	for _, entry := range info.CategoryDictionaries {
		dictionary[entry.Key] = entry
	}

	tags := make([]domain.CategoryDictionaryEntry, 0)
	for _, path := range info.Categories {
		if !strings.Contains(path, opts.Marker) {
			continue
		}

		key := path[strings.LastIndex(path, "/")+1:]
		entry, ok := dictionary[key]
		if !ok {
			lookupErr := &LookupError{Path: path, Key: key}
			if opts.Policy == LookupFatal {
				return nil, lookupErr
			}
			log.Warnf("Skipping nav tag: %v", lookupErr)
			continue
		}

		if qualifies(entry, opts.MinArticleCount) {
			tags = append(tags, entry)
		}
	}

	return tags, nil
}

func qualifies(entry domain.CategoryDictionaryEntry, minArticleCount int) bool {
	if int(entry.ArticleCount) <= minArticleCount {
		return false
	}
	if !entry.Displayable() {
		return false
	}
	if strings.TrimSpace(entry.Name) == "" {
		return false
	}
	return !strings.EqualFold(entry.Name, entry.Key)
}
