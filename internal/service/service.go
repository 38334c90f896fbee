package service

import (
	"sync"
	"time"

	"kbarticle/enhancer/internal/analytics"
	"kbarticle/enhancer/internal/client"
	"kbarticle/enhancer/internal/navtags"
	"kbarticle/enhancer/internal/queue"
	"kbarticle/enhancer/internal/repository"
)

// FetchObserver is told about every article API fetch
type FetchObserver interface {
	ObserveFetch(started time.Time, err error)
}

// Options wires a Service. Queue, History, Ratings, Hook and FetchObserver
// are optional.
type Options struct {
	Articles      client.ArticleClient
	Feedback      client.FeedbackClient
	Queue         queue.Queue
	History       repository.HistoryRepository
	Ratings       repository.RatingRepository
	Hook          analytics.Hook
	FetchObserver FetchObserver

	Extract            navtags.ExtractOptions
	CommentBoxChannels []string
	KBLinkBase         string
	GroupName          string
	MinIdleTime        time.Duration
}

type Service struct {
	articles      client.ArticleClient
	feedback      client.FeedbackClient
	queue         queue.Queue
	history       repository.HistoryRepository
	ratings       repository.RatingRepository
	hook          analytics.Hook
	fetchObserver FetchObserver

	extract            navtags.ExtractOptions
	commentBoxChannels []string
	kbLinkBase         string
	groupName          string
	minIdleTime        time.Duration

	// Page views and impressions handled outside a queue
	background sync.WaitGroup

	now func() time.Time
}

func NewService(opts Options) *Service {
	minIdleTime := opts.MinIdleTime
	if minIdleTime <= 0 {
		minIdleTime = 2 * time.Minute
	}

	return &Service{
		articles:           opts.Articles,
		feedback:           opts.Feedback,
		queue:              opts.Queue,
		history:            opts.History,
		ratings:            opts.Ratings,
		hook:               opts.Hook,
		fetchObserver:      opts.FetchObserver,
		extract:            opts.Extract,
		commentBoxChannels: opts.CommentBoxChannels,
		kbLinkBase:         opts.KBLinkBase,
		groupName:          opts.GroupName,
		minIdleTime:        minIdleTime,
		now:                time.Now,
	}
}

// Wait blocks until page views and impressions handled in the background
// without a queue are done.
func (s *Service) Wait() {
	s.background.Wait()
}
