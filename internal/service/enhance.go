package service

import (
	"context"
	"fmt"

	"kbarticle/enhancer/internal/analytics"
	"kbarticle/enhancer/internal/domain"
	"kbarticle/enhancer/internal/domain/task"
	"kbarticle/enhancer/internal/navtags"
	"kbarticle/enhancer/internal/page"

	log "github.com/sirupsen/logrus"
)

type EnhanceOptions struct {
	Mobile bool
}

// EnhancedPage is the rewritten page plus the configuration read from it
type EnhancedPage struct {
	HTML   string
	Config domain.PageConfig
}

// EnhancePage runs the article page behavior against raw page HTML: it
// records the view, rewrites the layout and fills in the nav tags.
func (s *Service) EnhancePage(ctx context.Context, html string, opts EnhanceOptions) (*EnhancedPage, error) {
	p, err := page.Load(html)
	if err != nil {
		return nil, err
	}

	cfg, err := p.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to read page config: %w", err)
	}

	var navTagResults <-chan navtags.Result
	if article := cfg.Article; article != nil {
		s.recordVisit(ctx, *article)

		if article.HasNavTags() {
			navTagResults = s.FetchNavTags(ctx, *article)
		}
	}

	p.SelectLanguage(cfg.Article)
	steps := p.ReflowSteps()
	tables := p.WrapTables()
	p.InsertDownloadButton(cfg.Article, page.DownloadOptions{Mobile: opts.Mobile, KBLinkBase: s.kbLinkBase})
	log.Debugf("Reflowed %d step sections and wrapped %d tables", steps, tables)

	if navTagResults != nil {
		select {
		case result := <-navTagResults:
			s.applyNavTags(ctx, p, *cfg.Article, result)
		case <-ctx.Done():
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
	}

	out, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	return &EnhancedPage{HTML: out, Config: cfg}, nil
}

// applyNavTags writes the nav tag block. Fetch failures leave the page as it is.
func (s *Service) applyNavTags(ctx context.Context, p *page.Page, article domain.ArticleConfig, result navtags.Result) {
	if !result.OK() {
		log.Debugf("No nav tags for %s: %v", article.DocID, result.Err)
		return
	}

	settings := p.NavTagSettings()
	if !settings.Show {
		return
	}

	locale := article.NavTagLocale()
	markup := navtags.Render(result.Tags, navtags.RenderOptions{
		Locale:  locale,
		Heading: settings.Heading,
		Suffix:  settings.Suffix,
		Show:    settings.Show,
	})

	if !p.SetNavTags(markup) {
		log.Debugf("Page for %s has no nav tag container", article.DocID)
		return
	}

	if markup != "" {
		s.trackRender(ctx, article.DocID, locale, len(result.Tags))
	}
}

// recordVisit queues the view history entry and the impression beacon.
// Without a queue both are handled in the background right away; Wait
// blocks until they are done.
func (s *Service) recordVisit(ctx context.Context, article domain.ArticleConfig) {
	view := domain.PageView{
		ArticleID:     article.DocID,
		Title:         page.CleanTitle(article.Title),
		Locale:        article.Locale,
		ReferringPage: article.ReferringPage,
		Archive:       article.Archive.String(),
		ViewedAt:      s.now(),
	}
	impression := domain.Impression{
		ReportLink: article.ReportLink,
		ArticleID:  article.DocID,
		Locale:     article.Locale,
	}

	analytics.Invoke(ctx, s.hook, analytics.Event{
		Name:      analytics.EventPageView,
		ArticleID: article.DocID,
		Locale:    article.Locale,
	})

	if s.queue == nil {
		bg := context.WithoutCancel(ctx)
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			if err := s.savePageView(bg, view); err != nil {
				log.Errorf("❌ Failed to save page view for %s: %v", view.ArticleID, err)
			}
			s.sendImpression(bg, impression)
		}()
		return
	}

	if _, err := s.queue.AddTask(ctx, &task.PageViewTask{View: view}); err != nil {
		log.Errorf("❌ Failed to queue page view for %s: %v", view.ArticleID, err)
	}
	if _, err := s.queue.AddTask(ctx, &task.ImpressionTask{Impression: impression}); err != nil {
		log.Errorf("❌ Failed to queue impression for %s: %v", impression.ArticleID, err)
	}
}

func (s *Service) savePageView(ctx context.Context, view domain.PageView) error {
	if s.history == nil {
		return nil
	}
	return s.history.SavePageView(ctx, view)
}

// sendImpression is fire-and-forget: failures are only logged
func (s *Service) sendImpression(ctx context.Context, impression domain.Impression) {
	if impression.ReportLink == "" {
		log.Debugf("No report link for %s, skipping impression", impression.ArticleID)
		return
	}
	if err := s.feedback.SendImpression(ctx, impression); err != nil {
		log.Warnf("⚠️ Impression for %s failed: %v", impression.ArticleID, err)
	}
}
