package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInvokeSwallowsFailures(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		Invoke(ctx, nil, Event{Name: EventRating})
		Invoke(ctx, HookFunc(func(context.Context, Event) error { return errors.New("boom") }), Event{Name: EventRating})
		Invoke(ctx, HookFunc(func(context.Context, Event) error { panic("tracker missing") }), Event{Name: EventRating})
	})

	called := 0
	Invoke(ctx, HookFunc(func(_ context.Context, e Event) error {
		called++
		assert.Equal(t, "HT1", e.ArticleID)
		return nil
	}), Event{Name: EventPageView, ArticleID: "HT1"})
	assert.Equal(t, 1, called)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	Invoke(ctx, m, Event{Name: EventNavTagsRendered, Count: 3})
	Invoke(ctx, m, Event{Name: EventNavTagsRendered, Count: 2})
	Invoke(ctx, m, Event{Name: EventRating, Value: "helpful=yes"})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.tagsRendered))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.events.WithLabelValues(EventNavTagsRendered, "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues(EventRating, "helpful=yes")))

	m.ObserveFetch(time.Now(), nil)
	m.ObserveFetch(time.Now(), errors.New("down"))
}
