package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kbarticle/enhancer/internal/config"
	"kbarticle/enhancer/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// FeedbackClient sends the fire-and-forget beacons of the article page
type FeedbackClient interface {
	SubmitRating(ctx context.Context, rating domain.Rating) error
	SendImpression(ctx context.Context, impression domain.Impression) error
}

type feedbackClient struct {
	rl            ratelimit.Limiter
	httpClient    *resty.Client
	ratingBaseURL string
	ratingTimeout time.Duration
}

func NewFeedbackClient(cfg config.RatingConfig) FeedbackClient {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json")

	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 50
	}

	return &feedbackClient{
		rl:            ratelimit.New(rps),
		httpClient:    client,
		ratingBaseURL: cfg.BaseURL,
		ratingTimeout: time.Duration(cfg.Timeout) * time.Second,
	}
}

// SubmitRating sends the vote and aborts it once the rating timeout passes
func (c *feedbackClient) SubmitRating(ctx context.Context, rating domain.Rating) error {
	c.rl.Take()

	reqCtx, cancel := context.WithTimeout(ctx, c.ratingTimeout)
	defer cancel()

	resp, err := c.httpClient.R().
		SetContext(reqCtx).
		SetQueryParams(map[string]string{
			"page":      "ratingData",
			"rating":    strconv.Itoa(rating.Value),
			"id":        rating.ArticleID,
			"locale":    rating.Locale,
			"comments":  rating.Comments,
			"visitorId": rating.VisitorID,
		}).
		Get(c.ratingBaseURL + "kb/index")
	if err != nil {
		if reqCtx.Err() != nil {
			return fmt.Errorf("rating request aborted: %w", reqCtx.Err())
		}
		return fmt.Errorf("failed to submit rating: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	log.Debugf("Submitted rating %d for %s", rating.Value, rating.ArticleID)
	return nil
}

func (c *feedbackClient) SendImpression(ctx context.Context, impression domain.Impression) error {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":   "impression",
			"docid":  impression.ArticleID,
			"locale": impression.Locale,
		}).
		Get(strings.TrimSuffix(impression.ReportLink, "/") + "/kb/index")
	if err != nil {
		return fmt.Errorf("failed to send impression for %s: %w", impression.ArticleID, err)
	}

	if resp.IsError() {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	log.Debugf("Sent impression for %s (%s)", impression.ArticleID, impression.Locale)
	return nil
}
