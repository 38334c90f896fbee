package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kbarticle/enhancer/internal/domain/task"
	"kbarticle/enhancer/internal/queue"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RunWorkers processes queued page views and impressions until ctx is done
func (s *Service) RunWorkers(ctx context.Context, numWorkers int) error {
	if s.queue == nil {
		return fmt.Errorf("no task queue configured")
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}

	var wg sync.WaitGroup

	s.runWorkersForStream(ctx, &wg, numWorkers, queue.StreamName(task.TypePageView), "view")
	s.runWorkersForStream(ctx, &wg, max(1, numWorkers/2), queue.StreamName(task.TypeImpression), "impression")

	wg.Wait()
	return nil
}

func (s *Service) runWorkersForStream(ctx context.Context, wg *sync.WaitGroup, numWorkers int, streamName, workerType string) {
	// Auto-claimer for messages a dead consumer left pending
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.minIdleTime)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := fmt.Sprintf("autoclaimer-%s", workerType)
				claimedMessages, err := s.queue.AutoClaim(ctx, s.groupName, consumer, streamName, s.minIdleTime)
				if err != nil {
					log.Errorf("❌ Failed to auto-claim messages for %s: %v", streamName, err)
					continue
				}
				if len(claimedMessages) > 0 {
					log.Infof("🔄 Auto-claimed %d messages from %s stream", len(claimedMessages), workerType)
				}
				for _, msg := range claimedMessages {
					if err := s.processMessage(ctx, &msg); err != nil {
						log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
					}
				}
			}
		}
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("%s-worker-%d", workerType, workerID)
			log.Infof("🚀 Starting %s worker %d as consumer %s", workerType, workerID, consumer)
			for {
				select {
				case <-ctx.Done():
					log.Infof("🛑 %s worker %d stopping", workerType, workerID)
					return
				default:
				}

				msg, err := s.queue.GetTask(ctx, s.groupName, consumer, streamName)
				if err != nil {
					if ctx.Err() != nil {
						continue
					}
					log.Errorf("❌ Failed to get task from %s: %v", streamName, err)
					continue
				}

				if msg != nil {
					if err := s.processMessage(ctx, msg); err != nil {
						log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
					}
				}
			}
		}(i + 1)
	}
}

// processMessage handles one queued task. Page views that fail to save stay
// pending for the auto-claimer; impressions are acknowledged either way.
func (s *Service) processMessage(ctx context.Context, msg *redis.XMessage) error {
	taskType, ok := msg.Values["task_type"].(string)
	if !ok {
		return fmt.Errorf("invalid task type in message %s", msg.ID)
	}

	taskData, ok := msg.Values["task_data"].(string)
	if !ok {
		return fmt.Errorf("invalid task data in message %s", msg.ID)
	}

	switch taskType {
	case task.TypePageView:
		viewTask, err := task.UnmarshalTask[*task.PageViewTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal page view task data: %w", err)
		}
		if err := s.savePageView(ctx, viewTask.View); err != nil {
			return fmt.Errorf("failed to save page view: %w", err)
		}

	case task.TypeImpression:
		impressionTask, err := task.UnmarshalTask[*task.ImpressionTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal impression task data: %w", err)
		}
		s.sendImpression(ctx, impressionTask.Impression)

	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}

	streamName := queue.StreamName(taskType)
	if err := s.queue.AckTask(ctx, streamName, s.groupName, msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}

	return nil
}
