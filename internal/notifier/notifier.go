package notifier

import (
	"context"
	"log"
	"time"

	"skillbridge/internal/queue"
	"skillbridge/internal/usecase"

	"github.com/google/uuid"
)

// Broadcaster mirrors notifications to connected websocket clients.
type Broadcaster interface {
	BroadcastJSON(v any)
}

// Notifier publishes match events to the notification queue and mirrors
// them to the websocket hub. The queue is the durable channel; the hub is
// best effort for clients online right now.
type Notifier struct {
	queue  *queue.Client
	hub    Broadcaster
	logger *log.Logger

	now func() time.Time
}

func New(q *queue.Client, hub Broadcaster, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{
		queue:  q,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

func (n *Notifier) MatchAccepted(ctx context.Context, e usecase.MatchAcceptedEvent) error {
	msg := queue.Notification{
		Type:      queue.NotificationMatchAccepted,
		MatchID:   &e.MatchID,
		TaskID:    e.TaskID,
		UserID:    &e.UserID,
		Score:     e.Score,
		Timestamp: n.now().UTC(),
	}
	return n.dispatch(ctx, msg)
}

// NewMatches announces the ranked matches a scheduler sweep produced for a
// task, so the notification service can tell recipients who matched.
func (n *Notifier) NewMatches(ctx context.Context, taskID uuid.UUID, matches []usecase.CandidateMatch) error {
	entries := make([]queue.MatchEntry, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, queue.MatchEntry{
			UserID:    &m.UserID,
			UserType:  string(m.Role),
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Location:  m.Location,
			Score:     m.Score,
			Breakdown: m.Breakdown,
		})
	}

	msg := queue.Notification{
		Type:      queue.NotificationNewMatches,
		TaskID:    taskID,
		Matches:   entries,
		Timestamp: n.now().UTC(),
	}
	return n.dispatch(ctx, msg)
}

func (n *Notifier) dispatch(ctx context.Context, msg queue.Notification) error {
	if n.hub != nil {
		n.hub.BroadcastJSON(msg)
	}
	if n.queue == nil || !n.queue.Available() {
		n.logger.Printf("[Notifier] Queue unavailable, dropped notification type=%s", msg.Type)
		return nil
	}
	if err := n.queue.Publish(ctx, queue.QueueNotifications, msg); err != nil {
		n.logger.Printf("[Notifier] Publish failed type=%s err=%v", msg.Type, err)
		return err
	}
	return nil
}
