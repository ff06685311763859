// Package media handles the background side of media object lifecycle:
// reclaiming stored objects once nothing references them.
package media

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ObjectRemover deletes a single stored object by key.
type ObjectRemover interface {
	Remove(ctx context.Context, key string) error
}

// CleanerConfig controls the concurrency characteristics of the cleaner.
type CleanerConfig struct {
	QueueSize int
	Workers   int
}

// Cleaner removes orphaned media objects in the background. Keys are queued
// by the content services after the referencing row is gone; a failed delete
// is logged and dropped, the object becomes garbage for a later sweep.
type Cleaner struct {
	remover ObjectRemover
	logger  *slog.Logger

	jobs   chan string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewCleaner constructs a background worker pool that deletes stored objects.
func NewCleaner(remover ObjectRemover, cfg CleanerConfig, logger *slog.Logger) *Cleaner {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Cleaner{
		remover: remover,
		logger:  logger,
		jobs:    make(chan string, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	c.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go c.worker()
	}

	return c
}

// Enqueue schedules removal of the object stored under key. Enqueue never
// blocks: when the queue is full or the cleaner is shut down the key is
// logged and dropped.
func (c *Cleaner) Enqueue(key string) {
	if key == "" {
		return
	}

	select {
	case <-c.ctx.Done():
		c.logger.Warn("media cleaner closed, dropping key", "key", key)
		return
	default:
	}

	select {
	case c.jobs <- key:
	default:
		c.logger.Warn("media cleaner queue full, dropping key", "key", key)
	}
}

// Shutdown waits for the worker pool to drain outstanding jobs. The jobs
// channel is never closed so a concurrent Enqueue cannot panic; keys queued
// after the workers exit are simply dropped with the channel.
func (c *Cleaner) Shutdown(ctx context.Context) error {
	c.once.Do(c.cancel)

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (c *Cleaner) worker() {
	defer c.wg.Done()

	for {
		select {
		case key := <-c.jobs:
			c.remove(key)
		case <-c.ctx.Done():
			// Drain whatever was queued before cancellation, then exit.
			for {
				select {
				case key := <-c.jobs:
					c.remove(key)
				default:
					return
				}
			}
		}
	}
}

func (c *Cleaner) remove(key string) {
	if c.remover == nil {
		c.logger.Error("media cleaner missing remover", "key", key)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.remover.Remove(ctx, key); err != nil {
		c.logger.Error("remove media object", "key", key, "error", err)
		return
	}
	c.logger.Info("media object removed", "key", key)
}
