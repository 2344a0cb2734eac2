// Package analytics collects per-request usage events, publishes them to
// Kafka in batches, and aggregates the consumed stream into usage stats
// served on the usage endpoint.
package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/textlens/text-analysis-platform/pkg/kafka"
)

// Collector buffers usage events and flushes them to Kafka either when the
// batch reaches batchSize or after flushInterval, whichever comes first.
// Track never blocks the request path; events are dropped when the buffer
// is full.
type Collector struct {
	producer      *kafka.Producer
	eventCh       chan kafka.Event
	batchSize     int
	flushInterval time.Duration
	logger        *slog.Logger
	done          chan struct{}
	closeOnce     sync.Once
}

// NewCollector creates a Collector.
func NewCollector(producer *kafka.Producer, batchSize int, flushInterval time.Duration) *Collector {
	if batchSize <= 0 {
		batchSize = 100
	}
	if flushInterval <= 0 {
		flushInterval = 5 * time.Second
	}
	return &Collector{
		producer:      producer,
		eventCh:       make(chan kafka.Event, batchSize*10),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		logger:        slog.Default().With("component", "usage-collector"),
		done:          make(chan struct{}),
	}
}

// Start launches the background flush loop.
func (c *Collector) Start(ctx context.Context) {
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.flushInterval)
		defer ticker.Stop()

		batch := make([]kafka.Event, 0, c.batchSize)
		for {
			select {
			case event, ok := <-c.eventCh:
				if !ok {
					c.publish(context.Background(), batch)
					return
				}
				batch = append(batch, event)
				if len(batch) >= c.batchSize {
					c.publish(ctx, batch)
					batch = batch[:0]
				}
			case <-ticker.C:
				c.publish(ctx, batch)
				batch = batch[:0]
			case <-ctx.Done():
				// Final flush with a short deadline.
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				c.drainRemaining(flushCtx, batch)
				cancel()
				return
			}
		}
	}()
	c.logger.Info("usage collector started",
		"batch_size", c.batchSize,
		"flush_interval", c.flushInterval,
	)
}

// Track enqueues an analysis event.
func (c *Collector) Track(event AnalysisEvent) {
	c.enqueue(kafka.Event{Key: event.Feature, Value: event})
}

// TrackTranslation enqueues a translation event.
func (c *Collector) TrackTranslation(event TranslationEvent) {
	c.enqueue(kafka.Event{Key: string(EventTranslation), Value: event})
}

func (c *Collector) enqueue(event kafka.Event) {
	select {
	case c.eventCh <- event:
	default:
		c.logger.Warn("usage event dropped (buffer full)")
	}
}

// Close stops accepting events and waits for the flush loop to finish.
func (c *Collector) Close() {
	c.closeOnce.Do(func() { close(c.eventCh) })
	<-c.done
}

func (c *Collector) publish(ctx context.Context, batch []kafka.Event) {
	if len(batch) == 0 {
		return
	}
	if err := c.producer.PublishBatch(ctx, batch); err != nil {
		c.logger.Error("failed to publish usage batch",
			"count", len(batch),
			"error", err,
		)
		return
	}
	c.logger.Debug("usage batch published", "count", len(batch))
}

func (c *Collector) drainRemaining(ctx context.Context, batch []kafka.Event) {
	for {
		select {
		case event, ok := <-c.eventCh:
			if !ok {
				c.publish(ctx, batch)
				return
			}
			batch = append(batch, event)
		default:
			c.publish(ctx, batch)
			return
		}
	}
}
