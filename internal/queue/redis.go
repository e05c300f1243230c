package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrUnavailable = errors.New("queue unavailable")

// Delivery is one received message. Ack removes it from the processing
// list; Requeue pushes it back to the tail of the main queue for a retry.
type Delivery struct {
	Queue string
	Body  []byte

	client *redis.Client
	raw    string
}

// Client is a Redis-list work queue. Publish pushes to the head; Receive
// atomically moves the tail entry to a per-queue processing list so a crash
// between receive and ack leaves the message recoverable.
type Client struct {
	rdb    *redis.Client
	logger *log.Logger
}

func NewClient(rdb *redis.Client, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{rdb: rdb, logger: logger}
}

func processingList(queue string) string {
	return queue + ":processing"
}

func (c *Client) Available() bool {
	return c != nil && c.rdb != nil
}

// Publish enqueues one JSON-encoded message. Marshal failures are caller
// bugs and are returned as-is.
func (c *Client) Publish(ctx context.Context, queue string, message any) error {
	if !c.Available() {
		return ErrUnavailable
	}
	b, err := json.Marshal(message)
	if err != nil {
		return err
	}
	if err := c.rdb.LPush(ctx, queue, b).Err(); err != nil {
		return err
	}
	return nil
}

// Receive blocks up to timeout for the next message. A nil Delivery with a
// nil error means the wait timed out and the caller should loop.
func (c *Client) Receive(ctx context.Context, queue string, timeout time.Duration) (*Delivery, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	raw, err := c.rdb.BLMove(ctx, queue, processingList(queue), "RIGHT", "LEFT", timeout).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	return &Delivery{
		Queue:  queue,
		Body:   []byte(raw),
		client: c.rdb,
		raw:    raw,
	}, nil
}

// Ack drops the message from the processing list after successful handling.
func (d *Delivery) Ack(ctx context.Context) error {
	if d == nil || d.client == nil {
		return nil
	}
	return d.client.LRem(ctx, processingList(d.Queue), 1, d.raw).Err()
}

// Requeue moves the message back to the main queue tail so it is retried
// after everything already waiting.
func (d *Delivery) Requeue(ctx context.Context) error {
	if d == nil || d.client == nil {
		return nil
	}
	pipe := d.client.TxPipeline()
	pipe.LRem(ctx, processingList(d.Queue), 1, d.raw)
	pipe.RPush(ctx, d.Queue, d.raw)
	_, err := pipe.Exec(ctx)
	return err
}
