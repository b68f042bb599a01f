// Package redis implements the remote contacts collection on a Redis
// instance. Documents are JSON values keyed per contact, insertion order is
// kept in an index list, and change notifications fan out over pub/sub so
// every subscriber reloads a full snapshot after each mutation.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rolodex/internal/models"
	"rolodex/internal/remote"
)

const (
	docKeyTemplate = "%s:doc:%s"
	indexKey       = "%s:index"
	changedChannel = "%s:changed"

	DefaultTimeout = 10 * time.Second
)

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	Timeout   time.Duration
}

type Collection struct {
	cli     *goredis.Client
	prefix  string
	timeout time.Duration
	logger  *zap.Logger
}

// New connects to Redis and verifies the connection before returning. A
// failed ping is a fatal configuration error surfaced at startup, not a
// recoverable session error.
func New(cfg Config, logger *zap.Logger) (*Collection, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	if cfg.KeyPrefix == "" {
		return nil, fmt.Errorf("key prefix is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cli := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, remote.NewConnectionError("failed to connect to contact store", err)
	}

	return &Collection{
		cli:     cli,
		prefix:  cfg.KeyPrefix,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

func (c *Collection) docKey(id string) string {
	return fmt.Sprintf(docKeyTemplate, c.prefix, id)
}

func (c *Collection) indexKey() string {
	return fmt.Sprintf(indexKey, c.prefix)
}

func (c *Collection) channel() string {
	return fmt.Sprintf(changedChannel, c.prefix)
}

// Subscribe delivers the current snapshot immediately, then reloads and
// redelivers on every change notification. The callback always runs on the
// subscription goroutine, one snapshot at a time.
func (c *Collection) Subscribe(ctx context.Context, onSnapshot remote.SnapshotFunc) (remote.UnsubscribeFunc, error) {
	pubsub := c.cli.Subscribe(ctx, c.channel())

	// Force the subscription onto the wire before the initial load so no
	// change between load and listen goes unnoticed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, remote.NewSubscriptionError("failed to subscribe to contact changes", err)
	}

	initial, err := c.loadSnapshot(ctx)
	if err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	c.logger.Info("subscribed to contact collection",
		zap.String("channel", c.channel()),
		zap.Int("contacts", len(initial)))

	go func() {
		onSnapshot(initial)

		for range pubsub.Channel() {
			reloadCtx, cancel := context.WithTimeout(ctx, c.timeout)
			snapshot, err := c.loadSnapshot(reloadCtx)
			cancel()
			if err != nil {
				// Keep the last good snapshot on screen; the next
				// notification triggers another reload.
				c.logger.Warn("snapshot reload failed", zap.Error(err))
				continue
			}
			onSnapshot(snapshot)
		}
	}()

	return func() {
		if err := pubsub.Close(); err != nil {
			c.logger.Warn("failed to close subscription", zap.Error(err))
		}
	}, nil
}

func (c *Collection) loadSnapshot(ctx context.Context) ([]models.Contact, error) {
	ids, err := c.cli.LRange(ctx, c.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, remote.ClassifyError(err)
	}

	contacts := make([]models.Contact, 0, len(ids))
	if len(ids) == 0 {
		return contacts, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.docKey(id)
	}

	docs, err := c.cli.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, remote.ClassifyError(err)
	}

	for i, doc := range docs {
		raw, ok := doc.(string)
		if !ok {
			// Index entry without a document: deleted mid-load, skip it.
			continue
		}
		var contact models.Contact
		if err := json.Unmarshal([]byte(raw), &contact); err != nil {
			c.logger.Warn("skipping malformed contact document",
				zap.String("id", ids[i]), zap.Error(err))
			continue
		}
		contacts = append(contacts, contact)
	}

	return contacts, nil
}

// Create stores a new document under a freshly assigned id and notifies
// subscribers. The caller learns the id from the next snapshot.
func (c *Collection) Create(ctx context.Context, fields models.ContactFields) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	id := uuid.NewString()
	doc, err := json.Marshal(fields.WithID(id))
	if err != nil {
		return remote.NewBadDataError(id, err)
	}

	pipe := c.cli.TxPipeline()
	pipe.Set(ctx, c.docKey(id), doc, 0)
	pipe.RPush(ctx, c.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return remote.ClassifyError(err)
	}

	c.notify(ctx, "create", id)
	return nil
}

// Update replaces every field of an existing document.
func (c *Collection) Update(ctx context.Context, id string, fields models.ContactFields) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	exists, err := c.cli.Exists(ctx, c.docKey(id)).Result()
	if err != nil {
		return remote.ClassifyError(err)
	}
	if exists == 0 {
		return remote.NewNotFoundError(id)
	}

	doc, err := json.Marshal(fields.WithID(id))
	if err != nil {
		return remote.NewBadDataError(id, err)
	}

	if err := c.cli.Set(ctx, c.docKey(id), doc, 0).Err(); err != nil {
		return remote.ClassifyError(err)
	}

	c.notify(ctx, "update", id)
	return nil
}

// Delete removes a document and its index entry.
func (c *Collection) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	removed, err := c.cli.Del(ctx, c.docKey(id)).Result()
	if err != nil {
		return remote.ClassifyError(err)
	}
	if removed == 0 {
		return remote.NewNotFoundError(id)
	}

	if err := c.cli.LRem(ctx, c.indexKey(), 0, id).Err(); err != nil {
		return remote.ClassifyError(err)
	}

	c.notify(ctx, "delete", id)
	return nil
}

func (c *Collection) notify(ctx context.Context, operation, id string) {
	if err := c.cli.Publish(ctx, c.channel(), operation+":"+id).Err(); err != nil {
		// Mutation landed; subscribers catch up on the next notification.
		c.logger.Warn("failed to publish change notification",
			zap.String("operation", operation), zap.String("id", id), zap.Error(err))
	}
}

// Close releases the underlying client.
func (c *Collection) Close() error {
	return c.cli.Close()
}
