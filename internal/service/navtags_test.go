package service

import (
	"context"
	"testing"

	"kbarticle/enhancer/internal/analytics"
	"kbarticle/enhancer/internal/domain"
	"kbarticle/enhancer/internal/navtags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func macInfo(count int) *domain.CategoryInfo {
	return &domain.CategoryInfo{
		Categories: []string{"x/TAX_NavigationTax/PP1"},
		CategoryDictionaries: []domain.CategoryDictionaryEntry{
			{Key: "PP1", Name: "Mac", EnglishName: "Mac", ArticleCount: domain.Count(count)},
		},
	}
}

type recordingHook struct {
	events []analytics.Event
}

func (h *recordingHook) named(name string) []analytics.Event {
	var events []analytics.Event
	for _, event := range h.events {
		if event.Name == name {
			events = append(events, event)
		}
	}
	return events
}

func (h *recordingHook) AssignEvents(_ context.Context, event analytics.Event) error {
	h.events = append(h.events, event)
	return nil
}

func TestFetchNavTags(t *testing.T) {
	articles := &fakeArticles{info: macInfo(5)}
	s := NewService(Options{Articles: articles, Extract: navtags.DefaultExtractOptions()})

	article := domain.ArticleConfig{DocID: "HT202944", LocaleParam: "en_US", PublishedDate: "Tue, 01 Oct 2024"}
	result, ok := <-s.FetchNavTags(context.Background(), article)
	require.True(t, ok)
	require.NoError(t, result.Err)
	require.Len(t, result.Tags, 1)
	assert.Equal(t, "PP1", result.Tags[0].Key)
	assert.Equal(t, []string{"en-us/HT202944@Tue, 01 Oct 2024"}, articles.calls)

	results := s.FetchNavTags(context.Background(), article)
	<-results
	_, open := <-results
	assert.False(t, open, "channel closes after its single result")
}

func TestFetchNavTagsFailure(t *testing.T) {
	s := NewService(Options{Articles: &fakeArticles{err: errUnavailable}, Extract: navtags.DefaultExtractOptions()})

	result := <-s.FetchNavTags(context.Background(), domain.ArticleConfig{DocID: "HT1"})
	assert.ErrorIs(t, result.Err, errUnavailable)
	assert.False(t, result.OK())
}

func TestRenderNavTags(t *testing.T) {
	hook := &recordingHook{}
	s := NewService(Options{Articles: &fakeArticles{info: macInfo(5)}, Hook: hook, Extract: navtags.DefaultExtractOptions()})

	settings := domain.NavTagSettings{Show: true, Heading: "Related", Suffix: " tag"}
	markup, err := s.RenderNavTags(context.Background(), "en-us", "HT1", "", settings)
	require.NoError(t, err)
	assert.Contains(t, markup, `href="/en-us/tags/mac"`)
	require.Len(t, hook.events, 1)
	assert.Equal(t, analytics.EventNavTagsRendered, hook.events[0].Name)
	assert.Equal(t, 1, hook.events[0].Count)
}

func TestRenderNavTagsEmptySkipsHook(t *testing.T) {
	hook := &recordingHook{}
	s := NewService(Options{Articles: &fakeArticles{info: macInfo(1)}, Hook: hook, Extract: navtags.DefaultExtractOptions()})

	markup, err := s.RenderNavTags(context.Background(), "en-us", "HT1", "", domain.NavTagSettings{Show: true})
	require.NoError(t, err)
	assert.Empty(t, markup)
	assert.Empty(t, hook.events)
}

func TestRenderNavTagsFatalLookup(t *testing.T) {
	info := &domain.CategoryInfo{
		Categories:           []string{"TAX_NavigationTax/unknown"},
		CategoryDictionaries: []domain.CategoryDictionaryEntry{},
	}
	opts := navtags.DefaultExtractOptions()
	opts.Policy = navtags.LookupFatal
	s := NewService(Options{Articles: &fakeArticles{info: info}, Extract: opts})

	_, err := s.RenderNavTags(context.Background(), "en-us", "HT1", "", domain.NavTagSettings{Show: true})
	var lookupErr *navtags.LookupError
	assert.ErrorAs(t, err, &lookupErr)
}
