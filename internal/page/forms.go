package page

import (
	"errors"
	"net/url"
	"strings"
)

// ErrBlankQuestion is returned for an empty forum question or the field placeholder
var ErrBlankQuestion = errors.New("question is blank")

// QuestionURL builds the forum action URL for an "ask other users" question
func QuestionURL(action, articleID, question, placeholder string) (string, error) {
	if strings.TrimSpace(question) == "" || question == placeholder {
		return "", ErrBlankQuestion
	}
	return action + "articleId=" + articleID + "&articleQuestion=" + encodeURIComponent(question), nil
}

func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// CleanTitle applies the page's title escaping before the title is stored in
// the view history. Only the first backslash, newline, carriage return and
// double quote are touched; every single quote is escaped.
func CleanTitle(title string) string {
	title = strings.Replace(title, `\`, "", 1)
	title = strings.Replace(title, "\n", " ", 1)
	title = strings.Replace(title, "\r", " ", 1)
	title = strings.ReplaceAll(title, "'", `\\'`)
	title = strings.Replace(title, `"`, `\"`, 1)
	return strings.TrimSpace(title)
}

// TruncateComments enforces the feedback box length limit in characters
func TruncateComments(comments string, limit int) string {
	runes := []rune(comments)
	if len(runes) <= limit {
		return comments
	}
	return string(runes[:limit])
}
