package domain

import "strings"

type RatingButton string

const (
	ButtonYes    RatingButton = "Yes"
	ButtonNo     RatingButton = "No"
	ButtonSubmit RatingButton = "Submit"
	ButtonCancel RatingButton = "Cancel"
)

const (
	RatingHelpful    = 5
	RatingNotHelpful = 1

	// MaxCommentLength is the feedback text area limit
	MaxCommentLength = 1024
)

// Rating is a single helpful/not helpful vote, optionally with comments
type Rating struct {
	Button    RatingButton `json:"button"`
	Value     int          `json:"rating"`
	ArticleID string       `json:"id"`
	Locale    string       `json:"locale"`
	Comments  string       `json:"comments,omitempty"`
	VisitorID string       `json:"visitor_id,omitempty"`
}

// Helpful is the analytics label for the vote
func (r Rating) Helpful() string {
	if r.Value == RatingHelpful {
		return "yes"
	}
	return "no"
}

// SupportsFollowUp reports whether the article type gets the two-step
// feedback flow (HT, TS and KM documents).
func (r Rating) SupportsFollowUp() bool {
	for _, prefix := range []string{"HT", "TS", "KM"} {
		if strings.Contains(r.ArticleID, prefix) {
			return true
		}
	}
	return false
}

// RatingOutcome describes what the feedback widget should show next
type RatingOutcome struct {
	Submitted      bool `json:"submitted"`
	ShowCommentBox bool `json:"show_comment_box"`
	ShowDone       bool `json:"show_done"`
}
