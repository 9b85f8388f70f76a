package notify

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-plan-it/internal/config"
	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/internal/utils"
)

const defaultDeliveryTimeout = 10 * time.Second

// PushSink is the production [Sink]. It keeps one in-process timer per
// pending notification and POSTs the notification JSON to the configured
// push gateway when the timer expires.
//
// Pending timers do not survive a process restart; the scheduler's catch-up
// fallback covers reminders that were close to firing.
type PushSink struct {
	client *utils.HTTPClient
	ids    *utils.UUIDGenerator
	logger *logger.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewPushSink(cfg config.Notify, log *logger.Logger) *PushSink {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultDeliveryTimeout
	}

	client := utils.NewHTTPClient()
	client.SetBaseURL(strings.TrimRight(cfg.PushGatewayURL, "/")).
		SetTimeout(cfg.Timeout)

	return &PushSink{
		client: client,
		ids:    utils.NewUUIDGenerator(),
		logger: log,
		timers: make(map[string]*time.Timer),
	}
}

func (p *PushSink) ScheduleAt(ctx context.Context, n Notification) (string, error) {
	// time-ordered ids keep gateway logs readable
	id := p.ids.Generate()

	delay := time.Until(n.TriggerAt)
	if delay < 0 {
		delay = 0
	}

	p.mu.Lock()
	p.timers[id] = time.AfterFunc(delay, func() {
		p.deliver(id, n)
	})
	p.mu.Unlock()

	return id, nil
}

func (p *PushSink) Cancel(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if timer, ok := p.timers[id]; ok {
		timer.Stop()
		delete(p.timers, id)
	}
	return nil
}

// Stop cancels all pending timers. Called on shutdown.
func (p *PushSink) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, timer := range p.timers {
		timer.Stop()
		delete(p.timers, id)
	}
}

// deliver runs on the timer goroutine once the trigger instant arrives.
// Delivery failures are logged and dropped; there is no retry.
func (p *PushSink) deliver(id string, n Notification) {
	p.mu.Lock()
	delete(p.timers, id)
	p.mu.Unlock()

	resp, err := p.client.R().
		SetBody(n).
		Post("")
	if err != nil {
		p.logger.Err(err).
			Str("func", "PushSink.deliver").
			Str("notification_id", id).
			Str("event_id", n.CorrelationID).
			Msg("failed to deliver notification")
		return
	}
	if resp.IsError() {
		p.logger.Error().
			Str("func", "PushSink.deliver").
			Str("notification_id", id).
			Int("status", resp.StatusCode()).
			Msg("push gateway rejected notification")
		return
	}

	p.logger.Debug().
		Str("notification_id", id).
		Str("event_id", n.CorrelationID).
		Msg("notification delivered")
}
