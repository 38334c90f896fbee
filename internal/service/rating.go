package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"kbarticle/enhancer/internal/analytics"
	"kbarticle/enhancer/internal/domain"
	"kbarticle/enhancer/internal/page"

	log "github.com/sirupsen/logrus"
)

// RatingRequest is a click in the "was this helpful" widget
type RatingRequest struct {
	Button    domain.RatingButton `json:"button"`
	ArticleID string              `json:"id"`
	Locale    string              `json:"locale"`
	Channel   string              `json:"channel"`
	Comments  string              `json:"comments"`
	VisitorID string              `json:"visitorId"`
}

func (r RatingRequest) Validate() error {
	switch r.Button {
	case domain.ButtonYes, domain.ButtonNo, domain.ButtonSubmit, domain.ButtonCancel:
	default:
		return fmt.Errorf("unknown button %q", r.Button)
	}
	if strings.TrimSpace(r.ArticleID) == "" {
		return fmt.Errorf("article id is required")
	}
	return nil
}

// Rate handles a widget click. Submission failures never reach the caller;
// the outcome only tells the widget what to show next.
func (s *Service) Rate(ctx context.Context, req RatingRequest) (domain.RatingOutcome, error) {
	if err := req.Validate(); err != nil {
		return domain.RatingOutcome{}, err
	}

	rating := domain.Rating{
		Button:    req.Button,
		Value:     domain.RatingNotHelpful,
		ArticleID: req.ArticleID,
		Locale:    req.Locale,
		VisitorID: req.VisitorID,
	}

	var outcome domain.RatingOutcome
	switch req.Button {
	case domain.ButtonYes:
		rating.Value = domain.RatingHelpful
		outcome.Submitted = s.submitRating(ctx, rating)

	case domain.ButtonNo:
		outcome.Submitted = s.submitRating(ctx, rating)
		outcome.ShowCommentBox = slices.Contains(s.commentBoxChannels, req.Channel)

	case domain.ButtonSubmit:
		comments := strings.TrimSpace(page.TruncateComments(req.Comments, domain.MaxCommentLength))
		if comments != "" {
			rating.Comments = comments
			outcome.Submitted = s.submitRating(ctx, rating)
		}

	case domain.ButtonCancel:
	}

	outcome.ShowDone = showDone(rating)
	return outcome, nil
}

// submitRating reports, persists and sends a rating. It reports whether the
// rating endpoint accepted it.
func (s *Service) submitRating(ctx context.Context, rating domain.Rating) bool {
	if rating.Button == domain.ButtonYes || rating.Button == domain.ButtonNo {
		analytics.Invoke(ctx, s.hook, analytics.Event{
			Name:      analytics.EventRating,
			ArticleID: rating.ArticleID,
			Locale:    rating.Locale,
			Value:     "helpful=" + rating.Helpful(),
		})
	}

	if s.ratings != nil {
		if err := s.ratings.SaveRating(ctx, rating); err != nil {
			log.Errorf("❌ Failed to save rating for %s: %v", rating.ArticleID, err)
		}
	}

	if err := s.feedback.SubmitRating(ctx, rating); err != nil {
		log.Warnf("⚠️ Rating for %s not delivered: %v", rating.ArticleID, err)
		return false
	}
	return true
}

// showDone decides whether the thank-you panel replaces the widget. Articles
// with the follow-up flow keep the widget open after a "No" vote.
func showDone(rating domain.Rating) bool {
	if !rating.SupportsFollowUp() {
		return true
	}
	switch rating.Button {
	case domain.ButtonYes, domain.ButtonSubmit, domain.ButtonCancel:
		return true
	default:
		return false
	}
}
