package service

import (
	"context"
	"testing"
	"time"

	"kbarticle/enhancer/internal/domain"
	"kbarticle/enhancer/internal/domain/task"
	"kbarticle/enhancer/internal/queue"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(t *testing.T, id string, tk task.Task) *redis.XMessage {
	t.Helper()
	data, err := tk.TaskValue()
	require.NoError(t, err)
	return &redis.XMessage{
		ID: id,
		Values: map[string]interface{}{
			"task_type": tk.TaskType(),
			"task_data": string(data),
		},
	}
}

func TestProcessPageView(t *testing.T) {
	q := &fakeQueue{}
	history := &fakeHistory{}
	s := NewService(Options{Queue: q, History: history, GroupName: "g"})

	view := domain.PageView{ArticleID: "HT1", Title: "Title", ViewedAt: time.Unix(10, 0).UTC()}
	require.NoError(t, s.processMessage(context.Background(), message(t, "1-0", &task.PageViewTask{View: view})))

	require.Len(t, history.views, 1)
	assert.Equal(t, view, history.views[0])
	assert.Equal(t, []string{queue.StreamName(task.TypePageView) + "#1-0"}, q.acked)
}

func TestProcessPageViewFailureStaysPending(t *testing.T) {
	q := &fakeQueue{}
	s := NewService(Options{Queue: q, History: &fakeHistory{err: errUnavailable}})

	err := s.processMessage(context.Background(), message(t, "1-0", &task.PageViewTask{}))
	assert.ErrorIs(t, err, errUnavailable)
	assert.Empty(t, q.acked)
}

func TestProcessImpressionAlwaysAcked(t *testing.T) {
	q := &fakeQueue{}
	feedback := newFakeFeedback()
	feedback.err = errUnavailable
	s := NewService(Options{Queue: q, Feedback: feedback})

	impression := domain.Impression{ReportLink: "https://report.example.com", ArticleID: "HT1", Locale: "en_US"}
	require.NoError(t, s.processMessage(context.Background(), message(t, "2-0", &task.ImpressionTask{Impression: impression})))

	assert.Equal(t, impression, <-feedback.impressions)
	assert.Equal(t, []string{queue.StreamName(task.TypeImpression) + "#2-0"}, q.acked)
}

func TestProcessMessageRejectsUnknown(t *testing.T) {
	s := NewService(Options{Queue: &fakeQueue{}})

	err := s.processMessage(context.Background(), &redis.XMessage{ID: "1", Values: map[string]interface{}{"task_type": "Other", "task_data": "{}"}})
	assert.ErrorContains(t, err, "unknown task type")

	err = s.processMessage(context.Background(), &redis.XMessage{ID: "1", Values: map[string]interface{}{}})
	assert.ErrorContains(t, err, "invalid task type")
}

func TestRunWorkersStopsWithContext(t *testing.T) {
	s := NewService(Options{Queue: &fakeQueue{}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunWorkers(ctx, 2) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop")
	}
}

func TestRunWorkersNeedsQueue(t *testing.T) {
	assert.Error(t, NewService(Options{}).RunWorkers(context.Background(), 1))
}
