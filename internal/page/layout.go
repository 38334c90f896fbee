package page

import (
	"github.com/PuerkitoBio/goquery"
)

var stepSectionSelectors = []string{"div.steps", "div.stepswrap"}

// ReflowSteps moves step images below the text of each step section and
// gathers the headings and paragraphs into a leading wrapper div.
func (p *Page) ReflowSteps() int {
	count := 0
	for _, selector := range stepSectionSelectors {
		p.doc.Find(selector).Each(func(_ int, section *goquery.Selection) {
			section.AppendSelection(section.Find("p > img"))
			section.Find("p:empty").Remove()

			section.PrependHtml("<div></div>")
			wrapper := section.Children().First()
			wrapper.AppendSelection(section.Find("h2, p"))
			count++
		})
	}
	return count
}

// WrapTables wraps every table in a responsive container
func (p *Page) WrapTables() int {
	tables := p.doc.Find("table")
	tables.WrapHtml(`<div class="table-responsive"></div>`)
	return tables.Length()
}
