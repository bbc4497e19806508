package messaging

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/domain"
)

var (
	eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_events_published_total",
		Help: "Confirmation events successfully written to Kafka.",
	})
	eventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_events_dropped_total",
		Help: "Confirmation events dropped before reaching Kafka.",
	}, []string{"reason"})
)

// EventSender is what the async publisher drains into, normally a
// *Producer.
type EventSender interface {
	Send(ctx context.Context, event domain.PaymentConfirmationEvent) error
}

// AsyncPublisher decouples request handling from broker latency: Publish
// enqueues and returns immediately, a single background goroutine drains
// the queue in order. When the queue is full the event is dropped and
// logged rather than stalling the caller.
type AsyncPublisher struct {
	sender      EventSender
	logger      *slog.Logger
	queue       chan domain.PaymentConfirmationEvent
	sendTimeout time.Duration

	stopOnce sync.Once
	done     chan struct{}
}

var _ application.EventPublisher = (*AsyncPublisher)(nil)

func NewAsyncPublisher(sender EventSender, bufferSize int, sendTimeout time.Duration, logger *slog.Logger) *AsyncPublisher {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	p := &AsyncPublisher{
		sender:      sender,
		logger:      logger,
		queue:       make(chan domain.PaymentConfirmationEvent, bufferSize),
		sendTimeout: sendTimeout,
		done:        make(chan struct{}),
	}
	go p.drain()
	return p
}

func (p *AsyncPublisher) Publish(event domain.PaymentConfirmationEvent) {
	select {
	case p.queue <- event:
	default:
		eventsDropped.WithLabelValues("queue_full").Inc()
		p.logger.Error("event queue full, dropping confirmation event",
			"payment_reference", event.PaymentReference,
			"status", event.Status)
	}
}

// Stop closes the queue and waits for the drain goroutine to deliver
// everything already enqueued.
func (p *AsyncPublisher) Stop() {
	p.stopOnce.Do(func() {
		close(p.queue)
	})
	<-p.done
}

func (p *AsyncPublisher) drain() {
	defer close(p.done)

	for event := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.sendTimeout)
		err := p.sender.Send(ctx, event)
		cancel()

		if err != nil {
			eventsDropped.WithLabelValues("send_failed").Inc()
			p.logger.Error("failed to publish confirmation event",
				"payment_reference", event.PaymentReference,
				"status", event.Status,
				"error", err)
			continue
		}

		eventsPublished.Inc()
		p.logger.Debug("published confirmation event",
			"payment_reference", event.PaymentReference,
			"status", event.Status)
	}
}
