// Package kafkaadapter publishes spend events to Kafka.
package kafkaadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"geo-bidder/internal/config/configs"
	"geo-bidder/internal/core/domain"
	"geo-bidder/internal/metrics"
)

// closeTimeout bounds the final flush after Run is cancelled.
const closeTimeout = 5 * time.Second

// MessageWriter is the subset of *kafka.Writer used by SpendPublisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter returns a writer for the spend topic. Messages are keyed by
// campaign id, so the hash balancer keeps each campaign on one partition.
func NewWriter(cfg configs.Kafka) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.SpendTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		Async:        false,
	}
}

// SpendPublisher implements port.SpendPublisher. Publish only enqueues on a
// bounded channel; Run batches the events and writes them. Events that do
// not fit in the buffer are dropped and counted, never blocking a bid.
type SpendPublisher struct {
	w          MessageWriter
	events     chan domain.SpendEvent
	batchSize  int
	flushEvery time.Duration
	log        *slog.Logger
	dropped    atomic.Uint64
}

// NewSpendPublisher creates a publisher writing through w.
func NewSpendPublisher(w MessageWriter, cfg configs.Kafka, log *slog.Logger) *SpendPublisher {
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = 1
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 1
	}
	every := cfg.FlushInterval
	if every <= 0 {
		every = 200 * time.Millisecond
	}
	return &SpendPublisher{
		w:          w,
		events:     make(chan domain.SpendEvent, buffer),
		batchSize:  batch,
		flushEvery: every,
		log:        log.With(slog.String("component", "spend-publisher")),
	}
}

// Publish enqueues ev without blocking.
func (p *SpendPublisher) Publish(ev domain.SpendEvent) {
	select {
	case p.events <- ev:
	default:
		p.dropped.Add(1)
		metrics.SpendEventsDroppedTotal.WithLabelValues("buffer_full").Inc()
	}
}

// Dropped returns how many events were lost, either because the buffer was
// full or because a write failed.
func (p *SpendPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

// Run writes queued events until ctx is cancelled, then drains the buffer,
// flushes it and closes the writer.
func (p *SpendPublisher) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.flushEvery)
	defer ticker.Stop()

	batch := make([]kafka.Message, 0, p.batchSize)
	for {
		select {
		case ev := <-p.events:
			batch = append(batch, p.message(ev))
			if len(batch) >= p.batchSize {
				p.flush(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				p.flush(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			return p.shutdown(batch)
		}
	}
}

func (p *SpendPublisher) shutdown(batch []kafka.Message) error {
drain:
	for {
		select {
		case ev := <-p.events:
			batch = append(batch, p.message(ev))
		default:
			break drain
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if len(batch) > 0 {
		p.flush(ctx, batch)
	}
	p.log.Info("spend publisher stopped", slog.Uint64("dropped", p.dropped.Load()))
	return p.w.Close()
}

func (p *SpendPublisher) flush(ctx context.Context, batch []kafka.Message) {
	if err := p.w.WriteMessages(ctx, batch...); err != nil {
		p.dropped.Add(uint64(len(batch)))
		metrics.SpendEventsDroppedTotal.WithLabelValues("write_error").Add(float64(len(batch)))
		p.log.Warn("write spend events", slog.Int("events", len(batch)), slog.Any("error", err))
		return
	}
	metrics.SpendEventsPublishedTotal.Add(float64(len(batch)))
}

func (p *SpendPublisher) message(ev domain.SpendEvent) kafka.Message {
	// SpendEvent holds only strings, integers and a time, so Marshal
	// cannot fail.
	value, _ := json.Marshal(ev)
	return kafka.Message{
		Key:   []byte(ev.CampaignID),
		Value: value,
		Time:  ev.CreatedAt,
	}
}
