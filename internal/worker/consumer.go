package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"skillbridge/internal/queue"
	"skillbridge/internal/usecase"
)

// Source is the queue surface the consumer needs. Satisfied by
// *queue.Client.
type Source interface {
	Receive(ctx context.Context, queueName string, timeout time.Duration) (*queue.Delivery, error)
	Publish(ctx context.Context, queueName string, message any) error
}

// Consumer drains the request queue and runs matching for each message.
// One consumer goroutine per process; Redis list semantics spread load
// across replicas.
type Consumer struct {
	source   Source
	matching usecase.MatchingUsecase
	logger   *log.Logger

	receiveTimeout time.Duration
	limit          int
	errBackoff     time.Duration
}

func NewConsumer(source Source, matching usecase.MatchingUsecase, logger *log.Logger, receiveTimeout time.Duration, limit int) *Consumer {
	if logger == nil {
		logger = log.Default()
	}
	if receiveTimeout <= 0 {
		receiveTimeout = 5 * time.Second
	}
	return &Consumer{
		source:         source,
		matching:       matching,
		logger:         logger,
		receiveTimeout: receiveTimeout,
		limit:          limit,
		errBackoff:     2 * time.Second,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	c.logger.Printf("[Consumer] Listening queue=%s", queue.QueueRequests)
	for {
		if ctx.Err() != nil {
			c.logger.Printf("[Consumer] Stopped")
			return
		}

		delivery, err := c.source.Receive(ctx, queue.QueueRequests, c.receiveTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			c.logger.Printf("[Consumer] Receive failed err=%v", err)
			c.sleep(ctx, c.errBackoff)
			continue
		}
		if delivery == nil {
			continue
		}

		if err := c.Handle(ctx, delivery); err != nil {
			c.logger.Printf("[Consumer] Handling failed, requeueing err=%v", err)
			if reqErr := delivery.Requeue(ctx); reqErr != nil {
				c.logger.Printf("[Consumer] Requeue failed err=%v", reqErr)
			}
			c.sleep(ctx, c.errBackoff)
			continue
		}

		if err := delivery.Ack(ctx); err != nil {
			c.logger.Printf("[Consumer] Ack failed err=%v", err)
		}
	}
}

// Handle processes one delivery. Malformed and unknown messages return nil
// so the caller acks them; retrying cannot fix them.
func (c *Consumer) Handle(ctx context.Context, delivery *queue.Delivery) error {
	var req queue.MatchRequest
	if err := json.Unmarshal(delivery.Body, &req); err != nil {
		c.logger.Printf("[Consumer] Dropping malformed message err=%v", err)
		return nil
	}
	if !req.Valid() {
		c.logger.Printf("[Consumer] Dropping invalid request type=%q", req.Type)
		return nil
	}

	switch req.Type {
	case queue.RequestTaskMatches:
		matches, err := c.matching.MatchCandidatesForTask(ctx, req.TaskID, c.limit)
		if err != nil {
			return err
		}
		c.publishResult(ctx, queue.MatchResultMessage{
			Type:      queue.RequestTaskMatches,
			TaskID:    &req.TaskID,
			Matches:   candidateEntries(matches),
			Timestamp: time.Now().UTC(),
		})
		c.logger.Printf("[Consumer] Matched task_id=%s matches=%d", req.TaskID, len(matches))

	case queue.RequestUserMatches:
		matches, err := c.matching.MatchTasksForUser(ctx, req.UserID, c.limit)
		if err != nil {
			return err
		}
		c.publishResult(ctx, queue.MatchResultMessage{
			Type:      queue.RequestUserMatches,
			UserID:    &req.UserID,
			Matches:   taskEntries(matches),
			Timestamp: time.Now().UTC(),
		})
		c.logger.Printf("[Consumer] Matched user_id=%s matches=%d", req.UserID, len(matches))
	}

	return nil
}

// publishResult is best effort: the results are already persisted, the
// queue message is a downstream convenience.
func (c *Consumer) publishResult(ctx context.Context, msg queue.MatchResultMessage) {
	if err := c.source.Publish(ctx, queue.QueueResults, msg); err != nil {
		c.logger.Printf("[Consumer] Result publish failed type=%s err=%v", msg.Type, err)
	}
}

func (c *Consumer) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func candidateEntries(matches []usecase.CandidateMatch) []queue.MatchEntry {
	out := make([]queue.MatchEntry, 0, len(matches))
	for _, m := range matches {
		out = append(out, queue.MatchEntry{
			UserID:    &m.UserID,
			UserType:  string(m.Role),
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Location:  m.Location,
			Score:     m.Score,
			Breakdown: m.Breakdown,
		})
	}
	return out
}

func taskEntries(matches []usecase.TaskMatch) []queue.MatchEntry {
	out := make([]queue.MatchEntry, 0, len(matches))
	for _, m := range matches {
		out = append(out, queue.MatchEntry{
			TaskID:    &m.TaskID,
			Title:     m.Title,
			Category:  m.Category,
			Location:  m.Location,
			Score:     m.Score,
			Breakdown: m.Breakdown,
		})
	}
	return out
}
