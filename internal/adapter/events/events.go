// Package events reports client activity to the client-events topic. The
// events are advisory: every caller treats a failed produce as droppable.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
	"github.com/revcart/storefront/pkg/retry"
	"github.com/twmb/franz-go/pkg/kgo"
)

var ErrNoEncoder = errors.New("encoder is nil")

type Encoder interface {
	Encode(v any) ([]byte, error)
}

var _ port.EventsProducer = (*Producer)(nil)

type Producer struct {
	cl      *kgo.Client
	encoder Encoder
}

// NewProducer connects to the broker and verifies it answers. Only the
// startup ping retries; produced records are one-shot.
func NewProducer(
	ctx context.Context, seedBrokers []string, topic string, encoder Encoder,
) (*Producer, error) {
	const op = "events.NewProducer"

	if encoder == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoEncoder)
	}

	cl, err := kgo.NewClient(
		kgo.SeedBrokers(seedBrokers...),
		kgo.DefaultProduceTopicAlways(),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = retry.Do(ctx, retry.Config{MaxAttempts: 3}, func() error {
		return cl.Ping(ctx)
	})
	if err != nil {
		cl.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Producer{cl: cl, encoder: encoder}, nil
}

func (p *Producer) Produce(ctx context.Context, evt domain.ClientEvent) error {
	const op = "Producer.Produce"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	b, err := p.encoder.Encode(toSchemaV1(evt))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	key := evt.UserID
	if key == "" {
		key = string(evt.Kind)
	}

	r := &kgo.Record{Key: []byte(key), Value: b}
	if err := p.cl.ProduceSync(ctx, r).FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p *Producer) Close() {
	const op = "Producer.Close"
	log := slog.With("op", op)
	log.Info("closing events producer...")
	p.cl.Close()
	log.Info("events producer is closed")
}

// NopProducer is used when no broker is configured; the client works the same
// without telemetry.
type NopProducer struct{}

var _ port.EventsProducer = (*NopProducer)(nil)

func (NopProducer) Produce(context.Context, domain.ClientEvent) error { return nil }

func (NopProducer) Close() {}
