package task

import "kbarticle/enhancer/internal/domain"

type ImpressionTask struct {
	Impression domain.Impression `json:"impression"`
}

func (t *ImpressionTask) TaskType() string {
	return TypeImpression
}

func (t *ImpressionTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
