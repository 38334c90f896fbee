package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"kbarticle/enhancer/internal/cache"
	"kbarticle/enhancer/internal/config"
	"kbarticle/enhancer/internal/domain"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"resty.dev/v3"
)

// ErrNoCategoryInfo means the article response carried no category info
var ErrNoCategoryInfo = errors.New("article response has no category info")

// StatusError is a non-200 answer from the article API
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Status)
}

type ArticleClient interface {
	GetCategoryInfo(ctx context.Context, locale, articleID, publishedDate string) (*domain.CategoryInfo, error)
}

type articleClient struct {
	httpClient *resty.Client
	cache      cache.ArticleCache
}

// NewArticleClient creates the article API client. Requests are made once:
// no retries, and no timeout unless the config sets one.
func NewArticleClient(cfg config.APIConfig, articleCache cache.ArticleCache) ArticleClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.Timeout > 0 {
		client.SetTimeout(time.Duration(cfg.Timeout) * time.Second)
	}

	return &articleClient{
		httpClient: client,
		cache:      articleCache,
	}
}

func (c *articleClient) GetCategoryInfo(ctx context.Context, locale, articleID, publishedDate string) (*domain.CategoryInfo, error) {
	req := c.httpClient.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"locale":    locale,
			"articleID": articleID,
		})
	if publishedDate != "" {
		req.SetHeader("If-Modified-Since", publishedDate)
	}

	resp, err := req.Get("/ols/api/article/{locale}/{articleID}")
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch article %s: %w", articleID, err)
	}

	var body string
	switch resp.StatusCode() {
	case http.StatusOK:
		body = resp.String()
		c.remember(ctx, locale, articleID, body)
	case http.StatusNotModified:
		body, err = c.revalidated(ctx, locale, articleID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &StatusError{StatusCode: resp.StatusCode(), Status: resp.Status()}
	}

	info, err := parseCategoryInfo(body)
	if err != nil {
		return nil, fmt.Errorf("article %s: %w", articleID, err)
	}

	log.Debugf("Fetched category info for %s (%s): %d categories", articleID, locale, len(info.Categories))
	return info, nil
}

// revalidated serves the cached body for a 304 answer, the way a browser
// cache would.
func (c *articleClient) revalidated(ctx context.Context, locale, articleID string) (string, error) {
	if c.cache == nil {
		return "", &StatusError{StatusCode: http.StatusNotModified, Status: "304 Not Modified"}
	}

	entry, err := c.cache.GetArticle(ctx, locale, articleID)
	if err != nil {
		return "", fmt.Errorf("article %s not modified and not cached: %w", articleID, err)
	}
	return entry.Body, nil
}

func (c *articleClient) remember(ctx context.Context, locale, articleID, body string) {
	if c.cache == nil || body == "" {
		return
	}

	entry := &cache.ArticleEntry{Body: body, FetchedAt: time.Now()}
	if err := c.cache.SetArticle(ctx, locale, articleID, entry); err != nil {
		log.Warnf("⚠️ Failed to cache article %s: %v", articleID, err)
	}
}

func parseCategoryInfo(body string) (*domain.CategoryInfo, error) {
	if body == "" {
		return nil, ErrNoCategoryInfo
	}
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("invalid JSON in article response")
	}

	raw := gjson.Get(body, "article.categoryInfo")
	if !raw.Exists() || !raw.IsObject() {
		return nil, ErrNoCategoryInfo
	}

	var info domain.CategoryInfo
	if err := json.Unmarshal([]byte(raw.Raw), &info); err != nil {
		return nil, fmt.Errorf("failed to decode category info: %w", err)
	}
	return &info, nil
}
