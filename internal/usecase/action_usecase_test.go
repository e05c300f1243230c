package usecase

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/domain/match"
	"skillbridge/internal/repository"

	"github.com/google/uuid"
)

type stubTx struct {
	committed  bool
	rolledBack bool
}

func (t *stubTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return 0, nil
}

func (t *stubTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return nil, nil
}

func (t *stubTx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return nil
}

func (t *stubTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *stubTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type stubDB struct {
	tx       *stubTx
	beginErr error
}

func (d *stubDB) Ping(ctx context.Context) error { return nil }
func (d *stubDB) Close() error                   { return nil }

func (d *stubDB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return 0, nil
}

func (d *stubDB) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return nil, nil
}

func (d *stubDB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return nil
}

func (d *stubDB) Begin(ctx context.Context) (database.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	if d.tx == nil {
		d.tx = &stubTx{}
	}
	return d.tx, nil
}

func (d *stubDB) SQLDB() *sql.DB { return nil }

type stubAnalyticsRepo struct {
	entries   []match.AnalyticsEntry
	insertErr error
}

func (s *stubAnalyticsRepo) Insert(ctx context.Context, e match.AnalyticsEntry) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *stubAnalyticsRepo) CountByAction(ctx context.Context, since time.Time) ([]repository.ActionStat, error) {
	return nil, nil
}

func (s *stubAnalyticsRepo) WithTx(tx database.Tx) repository.AnalyticsRepository {
	return s
}

type stubNotifier struct {
	accepted []MatchAcceptedEvent
	err      error
}

func (s *stubNotifier) MatchAccepted(ctx context.Context, e MatchAcceptedEvent) error {
	if s.err != nil {
		return s.err
	}
	s.accepted = append(s.accepted, e)
	return nil
}

func storedResult() match.Result {
	return match.Result{
		ID:     uuid.New(),
		TaskID: uuid.New(),
		UserID: uuid.New(),
		Score:  0.72,
		Status: match.StatusPending,
	}
}

func TestRecordActionAcceptSettlesStatusAndNotifies(t *testing.T) {
	result := storedResult()
	results := &stubResultRepo{result: result}
	analytics := &stubAnalyticsRepo{}
	notifier := &stubNotifier{}
	db := &stubDB{}

	u := NewActionUsecase(db, results, analytics, notifier, nil)

	if err := u.RecordAction(context.Background(), result.ID, match.ActionAccept); err != nil {
		t.Fatalf("RecordAction: %v", err)
	}

	if results.statuses[result.ID] != match.StatusAccepted {
		t.Fatalf("status = %s, want accepted", results.statuses[result.ID])
	}
	if len(analytics.entries) != 1 {
		t.Fatalf("recorded %d analytics rows, want 1", len(analytics.entries))
	}
	if analytics.entries[0].Action != match.ActionAccept {
		t.Fatalf("analytics action = %s, want accept", analytics.entries[0].Action)
	}
	if db.tx == nil || !db.tx.committed {
		t.Fatalf("status and analytics must commit in one transaction")
	}
	if len(notifier.accepted) != 1 || notifier.accepted[0].MatchID != result.ID {
		t.Fatalf("accept notification missing or wrong match")
	}
}

func TestRecordActionViewLeavesStatusAlone(t *testing.T) {
	result := storedResult()
	results := &stubResultRepo{result: result}
	analytics := &stubAnalyticsRepo{}
	notifier := &stubNotifier{}

	u := NewActionUsecase(&stubDB{}, results, analytics, notifier, nil)

	if err := u.RecordAction(context.Background(), result.ID, match.ActionView); err != nil {
		t.Fatalf("RecordAction: %v", err)
	}

	if len(results.statuses) != 0 {
		t.Fatalf("view must not change status")
	}
	if len(analytics.entries) != 1 {
		t.Fatalf("view must still append an analytics row")
	}
	if len(notifier.accepted) != 0 {
		t.Fatalf("view must not notify")
	}
}

func TestRecordActionRejectDoesNotNotify(t *testing.T) {
	result := storedResult()
	results := &stubResultRepo{result: result}
	notifier := &stubNotifier{}

	u := NewActionUsecase(&stubDB{}, results, &stubAnalyticsRepo{}, notifier, nil)

	if err := u.RecordAction(context.Background(), result.ID, match.ActionReject); err != nil {
		t.Fatalf("RecordAction: %v", err)
	}
	if results.statuses[result.ID] != match.StatusRejected {
		t.Fatalf("status = %s, want rejected", results.statuses[result.ID])
	}
	if len(notifier.accepted) != 0 {
		t.Fatalf("reject must not notify")
	}
}

func TestRecordActionUnknownMatch(t *testing.T) {
	results := &stubResultRepo{getErr: repository.ErrMatchNotFound}

	u := NewActionUsecase(&stubDB{}, results, &stubAnalyticsRepo{}, &stubNotifier{}, nil)

	err := u.RecordAction(context.Background(), uuid.New(), match.ActionAccept)
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("err = %v, want ErrMatchNotFound", err)
	}
}

func TestRecordActionInvalidAction(t *testing.T) {
	u := NewActionUsecase(&stubDB{}, &stubResultRepo{}, &stubAnalyticsRepo{}, &stubNotifier{}, nil)

	err := u.RecordAction(context.Background(), uuid.New(), match.Action("snooze"))
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("err = %v, want ErrInvalidAction", err)
	}
}

func TestRecordActionAnalyticsFailureRollsBackStatus(t *testing.T) {
	result := storedResult()
	results := &stubResultRepo{result: result}
	analytics := &stubAnalyticsRepo{insertErr: errors.New("insert failed")}
	db := &stubDB{}

	u := NewActionUsecase(db, results, analytics, &stubNotifier{}, nil)

	err := u.RecordAction(context.Background(), result.ID, match.ActionAccept)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("err = %v, want ErrInternal", err)
	}
	if db.tx == nil {
		t.Fatalf("the action must run inside a transaction")
	}
	if db.tx.committed {
		t.Fatalf("a failed analytics insert must not commit the settled status")
	}
	if !db.tx.rolledBack {
		t.Fatalf("a failed analytics insert must roll the transaction back")
	}
}

func TestRecordActionNotifierFailureIsNotFatal(t *testing.T) {
	result := storedResult()
	results := &stubResultRepo{result: result}
	notifier := &stubNotifier{err: errors.New("broker down")}

	u := NewActionUsecase(&stubDB{}, results, &stubAnalyticsRepo{}, notifier, nil)

	if err := u.RecordAction(context.Background(), result.ID, match.ActionAccept); err != nil {
		t.Fatalf("notifier failure must not fail the action, got %v", err)
	}
	if results.statuses[result.ID] != match.StatusAccepted {
		t.Fatalf("status must still be accepted")
	}
}
