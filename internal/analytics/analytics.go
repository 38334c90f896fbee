// Package analytics carries page events to an optional tracking hook.
package analytics

import (
	"context"

	log "github.com/sirupsen/logrus"
)

const (
	EventNavTagsRendered = "navtags_rendered"
	EventRating          = "rating"
	EventPageView        = "page_view"
)

type Event struct {
	Name      string
	ArticleID string
	Locale    string
	Value     string // Event specific detail, e.g. helpful=yes
	Count     int
}

// Hook receives page events. Implementations may fail; callers go through
// Invoke so failures never reach the page.
type Hook interface {
	AssignEvents(ctx context.Context, event Event) error
}

// HookFunc adapts a function to Hook
type HookFunc func(ctx context.Context, event Event) error

func (f HookFunc) AssignEvents(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Invoke calls the hook if there is one, discarding errors and panics
func Invoke(ctx context.Context, hook Hook, event Event) {
	if hook == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Debugf("Analytics hook panicked on %s: %v", event.Name, r)
		}
	}()

	if err := hook.AssignEvents(ctx, event); err != nil {
		log.Debugf("Analytics hook failed on %s: %v", event.Name, err)
	}
}
