package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewMatchesNotificationCarriesMatches(t *testing.T) {
	taskID := uuid.New()
	userID := uuid.New()

	n := Notification{
		Type:   NotificationNewMatches,
		TaskID: taskID,
		Matches: []MatchEntry{
			{UserID: &userID, UserType: "youth", FirstName: "Jonas", Score: 0.82},
			{UserID: ptr(uuid.New()), UserType: "youth", Score: 0.61},
		},
		Timestamp: time.Now().UTC(),
	}

	b, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire map[string]json.RawMessage
	if err := json.Unmarshal(b, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, leaked := wire["matchId"]; leaked {
		t.Fatalf("unset matchId must be omitted: %s", b)
	}
	if _, leaked := wire["userId"]; leaked {
		t.Fatalf("unset userId must be omitted: %s", b)
	}

	var matches []MatchEntry
	if err := json.Unmarshal(wire["matches"], &matches); err != nil {
		t.Fatalf("decode matches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %d entries, want 2", len(matches))
	}
	if matches[0].UserID == nil || *matches[0].UserID != userID {
		t.Fatalf("notification must name the matched user, got %+v", matches[0])
	}
	if matches[0].FirstName != "Jonas" {
		t.Fatalf("entry must carry the match object, got %+v", matches[0])
	}
}

func TestMatchAcceptedNotificationWire(t *testing.T) {
	matchID := uuid.New()
	userID := uuid.New()

	n := Notification{
		Type:      NotificationMatchAccepted,
		MatchID:   &matchID,
		TaskID:    uuid.New(),
		UserID:    &userID,
		Score:     0.72,
		Timestamp: time.Now().UTC(),
	}

	b, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire struct {
		Type    string     `json:"type"`
		MatchID *uuid.UUID `json:"matchId"`
		UserID  *uuid.UUID `json:"userId"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if wire.Type != NotificationMatchAccepted {
		t.Fatalf("type = %q", wire.Type)
	}
	if wire.MatchID == nil || *wire.MatchID != matchID {
		t.Fatalf("matchId missing or wrong: %s", b)
	}
	if wire.UserID == nil || *wire.UserID != userID {
		t.Fatalf("userId missing or wrong: %s", b)
	}
}

func TestResultMessageOmitsAbsentAnchor(t *testing.T) {
	taskID := uuid.New()

	msg := MatchResultMessage{
		Type:      RequestTaskMatches,
		TaskID:    &taskID,
		Matches:   []MatchEntry{},
		Timestamp: time.Now().UTC(),
	}

	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire map[string]json.RawMessage
	if err := json.Unmarshal(b, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, leaked := wire["userId"]; leaked {
		t.Fatalf("task-anchored result must omit userId: %s", b)
	}
	if _, ok := wire["taskId"]; !ok {
		t.Fatalf("task-anchored result must carry taskId: %s", b)
	}
}

func ptr(id uuid.UUID) *uuid.UUID {
	return &id
}
