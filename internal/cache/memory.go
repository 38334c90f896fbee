package cache

import (
	"context"
	"sync"
)

// memoryArticleCache is used when Redis is disabled
type memoryArticleCache struct {
	mutex   sync.RWMutex
	entries map[string]ArticleEntry
}

func NewMemoryArticleCache() ArticleCache {
	return &memoryArticleCache{entries: make(map[string]ArticleEntry)}
}

func (c *memoryArticleCache) GetArticle(_ context.Context, locale, articleID string) (*ArticleEntry, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[articleKey("", locale, articleID)]
	if !ok {
		return nil, ErrMiss
	}
	return &entry, nil
}

func (c *memoryArticleCache) SetArticle(_ context.Context, locale, articleID string, entry *ArticleEntry) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[articleKey("", locale, articleID)] = *entry
	return nil
}
