// Package page reads and rewrites a knowledge-base article page.
package page

import (
	"encoding/json"
	"fmt"
	"strings"

	"kbarticle/enhancer/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

const (
	articleConfigSelector = "#cdsArticleObj"
	headerConfigSelector  = "#cdsHeaderObj"

	navTagFlagSelector      = "#showNavTagFlag"
	navTagSuffixSelector    = "#tags-localised"
	navTagHeadingSelector   = "#mimosa-tags-heading"
	navTagContainerSelector = "#mimosa-tags"
)

// Page is a parsed article page
type Page struct {
	doc *goquery.Document
}

func Load(html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{doc: doc}, nil
}

// HTML renders the (possibly rewritten) page
func (p *Page) HTML() (string, error) {
	return p.doc.Html()
}

// Config reads the JSON configuration the server embedded in the page.
// The article object is optional, the header object is not.
func (p *Page) Config() (domain.PageConfig, error) {
	var cfg domain.PageConfig

	if raw, ok := p.doc.Find(articleConfigSelector).First().Attr("data-json"); ok {
		var article domain.ArticleConfig
		if err := json.Unmarshal([]byte(raw), &article); err != nil {
			return cfg, fmt.Errorf("failed to decode article config: %w", err)
		}
		cfg.Article = &article
	}

	raw, ok := p.doc.Find(headerConfigSelector).First().Attr("data-json")
	if !ok {
		return cfg, fmt.Errorf("header config %s not found", headerConfigSelector)
	}
	if err := json.Unmarshal([]byte(raw), &cfg.Header); err != nil {
		return cfg, fmt.Errorf("failed to decode header config: %w", err)
	}

	return cfg, nil
}

// NavTagSettings reads the hidden inputs that localize and switch nav tags
func (p *Page) NavTagSettings() domain.NavTagSettings {
	return domain.NavTagSettings{
		Show:    p.value(navTagFlagSelector) == "true",
		Suffix:  p.value(navTagSuffixSelector),
		Heading: p.value(navTagHeadingSelector),
	}
}

// SetNavTags replaces the content of the nav tag container. It reports
// whether the page has a container.
func (p *Page) SetNavTags(markup string) bool {
	container := p.doc.Find(navTagContainerSelector).First()
	if container.Length() == 0 {
		return false
	}
	container.SetHtml(markup)
	return true
}

func (p *Page) value(selector string) string {
	return p.doc.Find(selector).First().AttrOr("value", "")
}
