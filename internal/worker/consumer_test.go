package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"skillbridge/internal/queue"
	"skillbridge/internal/usecase"

	"github.com/google/uuid"
)

type stubSource struct {
	published map[string][]any
}

func (s *stubSource) Receive(ctx context.Context, queueName string, timeout time.Duration) (*queue.Delivery, error) {
	return nil, nil
}

func (s *stubSource) Publish(ctx context.Context, queueName string, message any) error {
	if s.published == nil {
		s.published = make(map[string][]any)
	}
	s.published[queueName] = append(s.published[queueName], message)
	return nil
}

type stubMatcher struct {
	candidates []usecase.CandidateMatch
	tasks      []usecase.TaskMatch
	err        error

	taskCalls []uuid.UUID
	userCalls []uuid.UUID
}

func (s *stubMatcher) MatchCandidatesForTask(ctx context.Context, taskID uuid.UUID, limit int) ([]usecase.CandidateMatch, error) {
	s.taskCalls = append(s.taskCalls, taskID)
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

func (s *stubMatcher) MatchTasksForUser(ctx context.Context, userID uuid.UUID, limit int) ([]usecase.TaskMatch, error) {
	s.userCalls = append(s.userCalls, userID)
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

func delivery(t *testing.T, msg any) *queue.Delivery {
	t.Helper()
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return &queue.Delivery{Queue: queue.QueueRequests, Body: b}
}

func TestHandleTaskMatchesPublishesResult(t *testing.T) {
	taskID := uuid.New()
	topUser := uuid.New()
	source := &stubSource{}
	matcher := &stubMatcher{candidates: []usecase.CandidateMatch{
		{UserID: topUser, FirstName: "Jonas", Score: 0.8},
		{UserID: uuid.New(), Score: 0.6},
	}}

	c := NewConsumer(source, matcher, nil, time.Second, 10)

	d := delivery(t, queue.MatchRequest{Type: queue.RequestTaskMatches, TaskID: taskID})
	if err := c.Handle(context.Background(), d); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(matcher.taskCalls) != 1 || matcher.taskCalls[0] != taskID {
		t.Fatalf("matching not invoked for task")
	}
	results := source.published[queue.QueueResults]
	if len(results) != 1 {
		t.Fatalf("published %d result messages, want 1", len(results))
	}
	msg, ok := results[0].(queue.MatchResultMessage)
	if !ok {
		t.Fatalf("published message has wrong type %T", results[0])
	}
	if msg.Type != queue.RequestTaskMatches || msg.TaskID == nil || *msg.TaskID != taskID || len(msg.Matches) != 2 {
		t.Fatalf("unexpected result message %+v", msg)
	}
	top := msg.Matches[0]
	if top.UserID == nil || *top.UserID != topUser || top.FirstName != "Jonas" {
		t.Fatalf("result entries must carry the matched user, got %+v", top)
	}
}

func TestHandleUserMatches(t *testing.T) {
	userID := uuid.New()
	source := &stubSource{}
	matcher := &stubMatcher{tasks: []usecase.TaskMatch{{TaskID: uuid.New(), Score: 0.7}}}

	c := NewConsumer(source, matcher, nil, time.Second, 10)

	d := delivery(t, queue.MatchRequest{Type: queue.RequestUserMatches, UserID: userID})
	if err := c.Handle(context.Background(), d); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(matcher.userCalls) != 1 || matcher.userCalls[0] != userID {
		t.Fatalf("matching not invoked for user")
	}
	results := source.published[queue.QueueResults]
	if len(results) != 1 {
		t.Fatalf("result message not published")
	}
	msg := results[0].(queue.MatchResultMessage)
	if msg.Type != queue.RequestUserMatches || msg.UserID == nil || *msg.UserID != userID {
		t.Fatalf("result must echo the request type and anchor, got %+v", msg)
	}
}

func TestHandleDropsMalformedAndInvalid(t *testing.T) {
	source := &stubSource{}
	matcher := &stubMatcher{}
	c := NewConsumer(source, matcher, nil, time.Second, 10)

	bad := &queue.Delivery{Queue: queue.QueueRequests, Body: []byte("{not json")}
	if err := c.Handle(context.Background(), bad); err != nil {
		t.Fatalf("malformed message must be dropped, not retried: %v", err)
	}

	unknown := delivery(t, queue.MatchRequest{Type: "reindex"})
	if err := c.Handle(context.Background(), unknown); err != nil {
		t.Fatalf("unknown type must be dropped, not retried: %v", err)
	}

	missingID := delivery(t, queue.MatchRequest{Type: queue.RequestTaskMatches})
	if err := c.Handle(context.Background(), missingID); err != nil {
		t.Fatalf("request without anchor must be dropped: %v", err)
	}

	if len(matcher.taskCalls)+len(matcher.userCalls) != 0 {
		t.Fatalf("matching must not run for dropped messages")
	}
}

func TestHandleMatchingErrorIsRetryable(t *testing.T) {
	source := &stubSource{}
	matcher := &stubMatcher{err: errors.New("db down")}
	c := NewConsumer(source, matcher, nil, time.Second, 10)

	d := delivery(t, queue.MatchRequest{Type: queue.RequestTaskMatches, TaskID: uuid.New()})
	if err := c.Handle(context.Background(), d); err == nil {
		t.Fatalf("matching failure must surface so the message is requeued")
	}
	if len(source.published[queue.QueueResults]) != 0 {
		t.Fatalf("no result may be published on failure")
	}
}
