package navtags

import (
	"html"
	"net/url"
	"strings"

	"kbarticle/enhancer/internal/domain"
)

// Slug turns an English tag name into its URL form: "Mac   Pro" -> "mac-pro".
// Any Unicode space run, no-break spaces included, becomes one dash.
func Slug(englishName string) string {
	return strings.Join(strings.Fields(strings.ToLower(englishName)), "-")
}

type RenderOptions struct {
	Locale  string // URL locale, e.g. "en-us"
	Heading string
	Suffix  string // Screen reader text appended to every tag link
	Show    bool
}

// Render builds the nav tag block. It returns an empty string when there is
// nothing to show.
func Render(tags []domain.CategoryDictionaryEntry, opts RenderOptions) string {
	if !opts.Show || len(tags) == 0 {
		return ""
	}

	fragments := make([]string, 0, len(tags))
	for _, tag := range tags {
		fragments = append(fragments, renderTag(tag, opts))
	}

	var b strings.Builder
	b.WriteString(`<div id="navTags" class="book-related-topics"><h2 class="book-related-topics-eyebrow">`)
	b.WriteString(html.EscapeString(opts.Heading))
	b.WriteString(`</h2>`)
	b.WriteString(strings.Join(fragments, " "))
	b.WriteString(`</div>`)
	return b.String()
}

// TagURL is the tag landing page path for a locale
func TagURL(locale string, tag domain.CategoryDictionaryEntry) string {
	return "/" + locale + "/tags/" + url.PathEscape(Slug(tag.EnglishName))
}

func renderTag(tag domain.CategoryDictionaryEntry, opts RenderOptions) string {
	var b strings.Builder
	b.WriteString(`<div class="book-topic-tags"><a href="`)
	b.WriteString(html.EscapeString(TagURL(opts.Locale, tag)))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(tag.Name))
	b.WriteString(`<span class="a11y">`)
	b.WriteString(html.EscapeString(opts.Suffix))
	b.WriteString(`</span></a></div>`)
	return b.String()
}
