package page

import (
	"net/url"
	"strings"

	"kbarticle/enhancer/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

const languageOptionSelector = "#search_filters option"

// present treats the string forms the page uses for "no value" as absent
func present(s string) bool {
	return s != "" && s != "null" && s != "NULL"
}

// ResolveLanguage picks the language selector option for an article view.
// An explicit view locale wins, falling back to the content locale; without
// one, the locale parameter is preferred over the content locale.
func ResolveLanguage(options []string, viewLocale, localeParam, lcl string) string {
	if len(options) == 0 {
		return ""
	}

	has := func(value string) bool {
		for _, option := range options {
			if option == value {
				return true
			}
		}
		return false
	}

	if present(viewLocale) {
		if has(viewLocale) {
			return viewLocale
		}
		if has(lcl) {
			return lcl
		}
		return ""
	}

	if present(lcl) && has(lcl) {
		if present(localeParam) && has(localeParam) {
			return localeParam
		}
		return lcl
	}

	return ""
}

// SelectLanguage marks the resolved option of the language selector as
// selected and returns its value.
func (p *Page) SelectLanguage(article *domain.ArticleConfig) string {
	options := p.doc.Find(languageOptionSelector)

	values := make([]string, 0, options.Length())
	options.Each(func(_ int, option *goquery.Selection) {
		values = append(values, option.AttrOr("value", ""))
	})

	var viewLocale, localeParam, lcl string
	if article != nil {
		viewLocale, localeParam, lcl = article.ViewLocale, article.LocaleParam, article.Lcl
	}

	selected := ResolveLanguage(values, viewLocale, localeParam, lcl)
	if selected == "" {
		return ""
	}

	options.Each(func(_ int, option *goquery.Selection) {
		if option.AttrOr("value", "") == selected {
			option.SetAttr("selected", "selected")
		} else {
			option.RemoveAttr("selected")
		}
	})
	return selected
}

// LanguageURL is the article URL for a language chosen in the selector
func LanguageURL(articleID, selectedLocale, localeParam string) string {
	u := "/kb/" + url.PathEscape(articleID) + "?viewlocale=" + url.QueryEscape(selectedLocale)
	if present(strings.TrimSpace(localeParam)) {
		u += "&locale=" + url.QueryEscape(localeParam)
	}
	return u
}
