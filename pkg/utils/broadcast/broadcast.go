// Package broadcast fans out messages of a source channel to subscribers
package broadcast

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mpapenbr/skirace-standings-go/log"
)

// Hub delivers every message of the source to all current subscribers.
// A subscriber not ready within the send timeout misses the message.
type Hub[T any] interface {
	Subscribe() <-chan T
	CancelSubscription(<-chan T)
	Close()
}

type (
	Option[T any] func(*hub[T])
	hub[T any]    struct {
		name           string
		source         <-chan T
		listeners      []chan T
		addListener    chan chan T
		removeListener chan (<-chan T)
		ctx            context.Context
		cancel         context.CancelFunc
		sendTimeout    time.Duration
		numRcv         atomic.Int64
		numSnd         atomic.Int64
		numSkip        atomic.Int64
		l              *log.Logger
	}
)

func WithSendTimeout[T any](d time.Duration) Option[T] {
	return func(h *hub[T]) {
		h.sendTimeout = d
	}
}

func WithLogger[T any](l *log.Logger) Option[T] {
	return func(h *hub[T]) {
		h.l = l
	}
}

func New[T any](name string, source <-chan T, opts ...Option[T]) Hub[T] {
	ctx, cancel := context.WithCancel(context.Background())
	h := &hub[T]{
		name:           name,
		source:         source,
		addListener:    make(chan chan T),
		removeListener: make(chan (<-chan T)),
		ctx:            ctx,
		cancel:         cancel,
		sendTimeout:    50 * time.Millisecond,
		l:              log.Default().Named("broadcast"),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.setupMetrics()
	go h.serve()
	return h
}

// Subscribe returns a channel receiving the messages. It is closed when the
// hub is closed or the subscription is cancelled.
func (h *hub[T]) Subscribe() <-chan T {
	ch := make(chan T, 1)
	select {
	case h.addListener <- ch:
	case <-h.ctx.Done():
		close(ch)
	}
	return ch
}

func (h *hub[T]) CancelSubscription(ch <-chan T) {
	select {
	case h.removeListener <- ch:
	case <-h.ctx.Done():
	}
}

func (h *hub[T]) Close() {
	h.l.Info("Closing broadcast hub",
		log.String("name", h.name),
		log.Any("rcv", h.numRcv.Load()),
		log.Any("snd", h.numSnd.Load()),
		log.Any("skip", h.numSkip.Load()))
	h.cancel()
}

func (h *hub[T]) setupMetrics() {
	meter := otel.GetMeterProvider().Meter("srs.broadcast")
	attrs := metric.WithAttributes(attribute.String("name", h.name))
	for _, d := range []struct {
		name  string
		desc  string
		value func() int64
	}{
		{"srs.broadcast.rcv", "Number of received messages", h.numRcv.Load},
		{"srs.broadcast.snd", "Number of sent messages", h.numSnd.Load},
		{"srs.broadcast.skip", "Number of skipped messages", h.numSkip.Load},
	} {
		value := d.value
		if _, err := meter.Int64ObservableCounter(d.name,
			metric.WithDescription(d.desc),
			metric.WithUnit("{count}"),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				o.Observe(value(), attrs)
				return nil
			})); err != nil {
			h.l.Error("failed to register metric",
				log.String("metric", d.name), log.ErrorField(err))
		}
	}
}

func (h *hub[T]) serve() {
	defer func() {
		for _, listener := range h.listeners {
			close(listener)
		}
		h.listeners = nil
	}()
	for {
		select {
		case <-h.ctx.Done():
			return
		case ch := <-h.addListener:
			h.listeners = append(h.listeners, ch)
		case ch := <-h.removeListener:
			for i, listener := range h.listeners {
				if listener == ch {
					h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
					close(listener)
					break
				}
			}
			h.l.Debug("removed listener",
				log.String("name", h.name), log.Int("len", len(h.listeners)))
		case msg, ok := <-h.source:
			if !ok {
				return
			}
			h.numRcv.Add(1)
			for _, listener := range h.listeners {
				select {
				case listener <- msg:
					h.numSnd.Add(1)
				case <-time.After(h.sendTimeout):
					h.numSkip.Add(1)
				}
			}
		}
	}
}
