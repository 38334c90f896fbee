package domain

import "strings"

// ArticleConfig is the JSON object the server embeds in #cdsArticleObj
type ArticleConfig struct {
	DocID         string     `json:"docId"`
	Title         string     `json:"strTitle"`
	Locale        string     `json:"strLocale"`     // Content locale, e.g. "en_US"
	Lcl           string     `json:"lcl"`           // Locale used for the language selector fallback
	LocaleParam   string     `json:"localeParam"`   // Raw ?locale= parameter
	ViewLocale    string     `json:"viewLocale"`    // Raw ?viewlocale= parameter
	PublishedDate string     `json:"publishedDate"` // Sent as If-Modified-Since on the nav tag fetch
	ReportLink    string     `json:"reportLink"`    // Base URL for impression beacons
	ReferringPage string     `json:"referringPage"`
	Archive       FlexString `json:"archive"`
	Channel       string     `json:"strChannel"`
	MetaURL       string     `json:"metaUrl"`
	ImageSrc      string     `json:"imgSrc"`
	AkamaiURL     string     `json:"akamaiUrl"`
	PageName      string     `json:"omniturePageName"`
	EmailLabel    string     `json:"messageResourcesArticleTempEmail"`
	DownloadLabel string     `json:"messageResourcesArticleTempDown"`
}

const ChannelDownloads = "DOWNLOADS"

// HasNavTags reports whether nav tags exist for this kind of article (HT documents only)
func (a ArticleConfig) HasNavTags() bool {
	return strings.HasPrefix(strings.ToLower(a.DocID), "ht")
}

// NavTagLocale turns the locale parameter into the URL form used by the
// article API and tag links: "EN_US" -> "en-us". Only the first underscore
// is replaced.
func (a ArticleConfig) NavTagLocale() string {
	return strings.Replace(strings.ToLower(a.LocaleParam), "_", "-", 1)
}

// HeaderConfig is the JSON object the server embeds in #cdsHeaderObj
type HeaderConfig struct {
	SetPod        FlexString `json:"setPod"`
	PodValue      string     `json:"podValue"`
	SearchCountry string     `json:"searchCountry"`
	AkamaiURL     string     `json:"akamaiUrl"`
}

// PageConfig groups the immutable configuration read once from a page
type PageConfig struct {
	Article *ArticleConfig // nil when the page is not an article
	Header  HeaderConfig
}

// NavTagSettings are the localized strings and switch the page provides for nav tags
type NavTagSettings struct {
	Show    bool
	Suffix  string
	Heading string
}
