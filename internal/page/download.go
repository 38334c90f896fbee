package page

import (
	"html"
	"strings"

	"kbarticle/enhancer/internal/domain"
)

// DownloadOptions tune the download button for the requesting client
type DownloadOptions struct {
	Mobile     bool   // Mobile clients get a mail link instead of the download
	KBLinkBase string // Prefix of the article link in the mail body, e.g. "https://support.example.com/kb/"
}

// InsertDownloadButton adds the download button after the main title of a
// downloads article. It reports whether a button was inserted.
func (p *Page) InsertDownloadButton(article *domain.ArticleConfig, opts DownloadOptions) bool {
	if article == nil || article.Channel != domain.ChannelDownloads {
		return false
	}
	if !present(article.MetaURL) || strings.TrimSpace(article.MetaURL) == "" {
		return false
	}

	title := p.doc.Find("#main-title").First()
	if title.Length() == 0 {
		return false
	}

	href, label := article.MetaURL, article.DownloadLabel
	if opts.Mobile {
		href = "mailto:?Subject=" + article.Title + "&Body=" + opts.KBLinkBase + article.DocID + "?viewlocale=" + article.Locale
		label = article.EmailLabel
	}

	onclick := `ACUtil.clickTracking("` + article.PageName + `::detailbuttontop")`
	button := `<a class="download-button" href="` + html.EscapeString(href) + `" onclick="` + html.EscapeString(onclick) + `">` +
		`<span>` + html.EscapeString(label) + `</span></a>`

	title.AfterHtml(button)
	return true
}
