package domain

import "time"

// PageView is one entry of the article view history
type PageView struct {
	ArticleID     string    `json:"article_id"`
	Title         string    `json:"title"`
	Locale        string    `json:"locale"`
	ReferringPage string    `json:"referring_page,omitempty"`
	Archive       string    `json:"archive,omitempty"`
	ViewedAt      time.Time `json:"viewed_at"`
}

// Impression is a report beacon for an article view
type Impression struct {
	ReportLink string `json:"report_link"`
	ArticleID  string `json:"article_id"`
	Locale     string `json:"locale"`
}
