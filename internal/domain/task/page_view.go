package task

import "kbarticle/enhancer/internal/domain"

type PageViewTask struct {
	View domain.PageView `json:"view"`
}

func (t *PageViewTask) TaskType() string {
	return TypePageView
}

func (t *PageViewTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
