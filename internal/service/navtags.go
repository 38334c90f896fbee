package service

import (
	"context"
	"fmt"
	"time"

	"kbarticle/enhancer/internal/analytics"
	"kbarticle/enhancer/internal/domain"
	"kbarticle/enhancer/internal/navtags"

	log "github.com/sirupsen/logrus"
)

// FetchNavTags starts the nav tag fetch for an article. The channel yields
// exactly one result and is then closed. There is no timeout and no retry;
// the fetch ends early only if ctx is cancelled.
func (s *Service) FetchNavTags(ctx context.Context, article domain.ArticleConfig) <-chan navtags.Result {
	results := make(chan navtags.Result, 1)

	go func() {
		defer close(results)

		tags, err := s.navTags(ctx, article.NavTagLocale(), article.DocID, article.PublishedDate)
		results <- navtags.Result{Tags: tags, Err: err}
	}()

	return results
}

// RenderNavTags fetches and renders the nav tag block for one article
func (s *Service) RenderNavTags(ctx context.Context, locale, articleID, publishedDate string, settings domain.NavTagSettings) (string, error) {
	tags, err := s.navTags(ctx, locale, articleID, publishedDate)
	if err != nil {
		return "", err
	}

	markup := navtags.Render(tags, navtags.RenderOptions{
		Locale:  locale,
		Heading: settings.Heading,
		Suffix:  settings.Suffix,
		Show:    settings.Show,
	})
	if markup != "" {
		s.trackRender(ctx, articleID, locale, len(tags))
	}
	return markup, nil
}

func (s *Service) navTags(ctx context.Context, locale, articleID, publishedDate string) ([]domain.CategoryDictionaryEntry, error) {
	started := time.Now()
	info, err := s.articles.GetCategoryInfo(ctx, locale, articleID, publishedDate)
	if s.fetchObserver != nil {
		s.fetchObserver.ObserveFetch(started, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category info: %w", err)
	}

	tags, err := navtags.Extract(*info, s.extract)
	if err != nil {
		return nil, err
	}

	log.Debugf("Extracted %d nav tags for %s (%s)", len(tags), articleID, locale)
	return tags, nil
}

func (s *Service) trackRender(ctx context.Context, articleID, locale string, count int) {
	analytics.Invoke(ctx, s.hook, analytics.Event{
		Name:      analytics.EventNavTagsRendered,
		ArticleID: articleID,
		Locale:    locale,
		Count:     count,
	})
}
