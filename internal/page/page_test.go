package page

import (
	"os"
	"strings"
	"testing"

	"kbarticle/enhancer/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *Page {
	t.Helper()
	data, err := os.ReadFile("testdata/article.html")
	require.NoError(t, err)

	p, err := Load(string(data))
	require.NoError(t, err)
	return p
}

// reparse renders the page and parses it again so assertions see the output
func reparse(t *testing.T, p *Page) *goquery.Document {
	t.Helper()
	out, err := p.HTML()
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return doc
}

func TestConfig(t *testing.T) {
	cfg, err := loadFixture(t).Config()
	require.NoError(t, err)

	require.NotNil(t, cfg.Article)
	assert.Equal(t, "HT202944", cfg.Article.DocID)
	assert.Equal(t, "en_US", cfg.Article.LocaleParam)
	assert.Equal(t, "Tue, 01 Oct 2024 10:00:00 GMT", cfg.Article.PublishedDate)
	assert.Equal(t, "false", cfg.Article.Archive.String())
	assert.True(t, cfg.Header.SetPod.Bool())
	assert.Equal(t, "us~en", cfg.Header.PodValue)
}

func TestConfigWithoutArticle(t *testing.T) {
	p, err := Load(`<div id="cdsHeaderObj" data-json='{"setPod":false}'></div>`)
	require.NoError(t, err)

	cfg, err := p.Config()
	require.NoError(t, err)
	assert.Nil(t, cfg.Article)
	assert.False(t, cfg.Header.SetPod.Bool())
}

func TestConfigErrors(t *testing.T) {
	p, err := Load(`<p>no config</p>`)
	require.NoError(t, err)
	_, err = p.Config()
	assert.ErrorContains(t, err, "header config")

	p, err = Load(`<div id="cdsArticleObj" data-json="{broken"></div>`)
	require.NoError(t, err)
	_, err = p.Config()
	assert.ErrorContains(t, err, "article config")
}

func TestNavTagSettings(t *testing.T) {
	settings := loadFixture(t).NavTagSettings()
	assert.Equal(t, domain.NavTagSettings{Show: true, Suffix: " tag", Heading: "Related topics"}, settings)

	p, err := Load(`<input id="showNavTagFlag" value="false">`)
	require.NoError(t, err)
	assert.False(t, p.NavTagSettings().Show)
}

func TestSetNavTags(t *testing.T) {
	p := loadFixture(t)
	assert.True(t, p.SetNavTags(`<div id="navTags"></div>`))

	doc := reparse(t, p)
	assert.Equal(t, 1, doc.Find("#mimosa-tags #navTags").Length())
	assert.Equal(t, 0, doc.Find("#mimosa-tags span").Length())

	assert.True(t, p.SetNavTags(""))
	doc = reparse(t, p)
	assert.Equal(t, 0, doc.Find("#mimosa-tags").Children().Length())

	empty, err := Load(`<p></p>`)
	require.NoError(t, err)
	assert.False(t, empty.SetNavTags("x"))
}

func TestReflowSteps(t *testing.T) {
	p := loadFixture(t)
	assert.Equal(t, 2, p.ReflowSteps())

	doc := reparse(t, p)

	steps := doc.Find("div.steps")
	children := steps.Children()
	require.Equal(t, 2, children.Length())
	assert.True(t, children.Eq(0).Is("div"))
	assert.True(t, children.Eq(1).Is("img"))

	wrapper := children.Eq(0)
	assert.Equal(t, 1, wrapper.Find("h2").Length())
	assert.Equal(t, 1, wrapper.Find("p").Length(), "paragraph left empty by the image move is removed")
	assert.Equal(t, "Open System Settings.", strings.TrimSpace(wrapper.Find("p").Text()))

	wrap := doc.Find("div.stepswrap").Children()
	require.Equal(t, 2, wrap.Length())
	assert.Equal(t, "/two.png", wrap.Eq(1).AttrOr("src", ""))
}

func TestWrapTables(t *testing.T) {
	p := loadFixture(t)
	assert.Equal(t, 2, p.WrapTables())

	doc := reparse(t, p)
	assert.Equal(t, 2, doc.Find("div.table-responsive > table").Length())
}

func TestSelectLanguage(t *testing.T) {
	p := loadFixture(t)
	cfg, err := p.Config()
	require.NoError(t, err)

	assert.Equal(t, "en_US", p.SelectLanguage(cfg.Article))

	doc := reparse(t, p)
	selected := doc.Find("#search_filters option[selected]")
	require.Equal(t, 1, selected.Length())
	assert.Equal(t, "en_US", selected.AttrOr("value", ""))
}

func TestInsertDownloadButton(t *testing.T) {
	article := &domain.ArticleConfig{
		DocID:         "DL1234",
		Title:         "Printer driver",
		Locale:        "en_US",
		Channel:       domain.ChannelDownloads,
		MetaURL:       "https://download.example.com/driver.dmg",
		PageName:      "acs::kb::DL1234",
		DownloadLabel: "Download",
		EmailLabel:    "Email me the link",
	}

	p := loadFixture(t)
	assert.True(t, p.InsertDownloadButton(article, DownloadOptions{}))
	doc := reparse(t, p)
	button := doc.Find("#main-title + a.download-button")
	require.Equal(t, 1, button.Length())
	assert.Equal(t, "https://download.example.com/driver.dmg", button.AttrOr("href", ""))
	assert.Equal(t, "Download", button.Find("span").Text())

	p = loadFixture(t)
	assert.True(t, p.InsertDownloadButton(article, DownloadOptions{Mobile: true, KBLinkBase: "http://support.example.com/kb/"}))
	doc = reparse(t, p)
	button = doc.Find("a.download-button")
	assert.Equal(t, "mailto:?Subject=Printer driver&Body=http://support.example.com/kb/DL1234?viewlocale=en_US", button.AttrOr("href", ""))
	assert.Equal(t, "Email me the link", button.Text())

	p = loadFixture(t)
	article.MetaURL = "null"
	assert.False(t, p.InsertDownloadButton(article, DownloadOptions{}))
	assert.False(t, p.InsertDownloadButton(&domain.ArticleConfig{Channel: "HOWTO", MetaURL: "x"}, DownloadOptions{}))
	assert.False(t, p.InsertDownloadButton(nil, DownloadOptions{}))
}
