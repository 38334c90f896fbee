package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"kbarticle/enhancer/internal/domain"
	"kbarticle/enhancer/internal/domain/task"

	"github.com/redis/go-redis/v9"
)

type fakeArticles struct {
	info  *domain.CategoryInfo
	err   error
	calls []string
	mutex sync.Mutex
}

func (f *fakeArticles) GetCategoryInfo(_ context.Context, locale, articleID, publishedDate string) (*domain.CategoryInfo, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.calls = append(f.calls, locale+"/"+articleID+"@"+publishedDate)
	return f.info, f.err
}

type fakeFeedback struct {
	mutex       sync.Mutex
	ratings     []domain.Rating
	impressions chan domain.Impression
	err         error
}

func newFakeFeedback() *fakeFeedback {
	return &fakeFeedback{impressions: make(chan domain.Impression, 10)}
}

func (f *fakeFeedback) SubmitRating(_ context.Context, rating domain.Rating) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.ratings = append(f.ratings, rating)
	return f.err
}

func (f *fakeFeedback) SendImpression(_ context.Context, impression domain.Impression) error {
	f.impressions <- impression
	return f.err
}

type fakeQueue struct {
	mutex sync.Mutex
	tasks []task.Task
	acked []string
}

func (q *fakeQueue) AddTask(_ context.Context, t task.Task) (string, error) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.tasks = append(q.tasks, t)
	return "1-0", nil
}

func (q *fakeQueue) GetTask(ctx context.Context, _, _, _ string) (*redis.XMessage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (q *fakeQueue) AckTask(_ context.Context, stream, _, msgID string) error {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.acked = append(q.acked, stream+"#"+msgID)
	return nil
}

func (q *fakeQueue) AutoClaim(context.Context, string, string, string, time.Duration) ([]redis.XMessage, error) {
	return nil, nil
}

type fakeHistory struct {
	mutex sync.Mutex
	views []domain.PageView
	err   error
}

func (h *fakeHistory) SavePageView(_ context.Context, view domain.PageView) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.err != nil {
		return h.err
	}
	h.views = append(h.views, view)
	return nil
}

type fakeRatings struct {
	saved []domain.Rating
}

func (r *fakeRatings) SaveRating(_ context.Context, rating domain.Rating) error {
	r.saved = append(r.saved, rating)
	return nil
}

var errUnavailable = errors.New("unavailable")
