// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MKhiriev/go-plan-it/internal/config"
	"github.com/MKhiriev/go-plan-it/internal/logger"
)

// DigestTitle heads the morning agenda notification.
const DigestTitle = "PlanIt Agenda ☀️"

// Agenda summarises one user's day for the morning digest.
type Agenda struct {
	OwnerID    string
	EventCount int

	// FirstTitle is the title of the earliest event, shown as a teaser.
	FirstTitle string
}

// AgendaSource yields the day's agenda for every user the digest should
// address. The session layer implements it over the active sessions.
type AgendaSource interface {
	Agendas(ctx context.Context, day time.Time) ([]Agenda, error)
}

// Digest fires a once-a-day agenda notification at the configured local
// wall-clock time.
type Digest struct {
	cron   *cron.Cron
	sink   Sink
	source AgendaSource
	logger *logger.Logger
}

// NewDigest builds the digest job from cfg. DigestTime is "HH:MM" in the
// configured timezone; callers should skip construction entirely when it is
// empty (digest disabled).
func NewDigest(cfg config.Notify, sink Sink, source AgendaSource, log *logger.Logger) (*Digest, error) {
	location := time.Local
	if cfg.Timezone != "" {
		var err error
		location, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load digest timezone: %w", err)
		}
	}

	digestAt, err := time.Parse("15:04", cfg.DigestTime)
	if err != nil {
		return nil, fmt.Errorf("parse digest time %q: %w", cfg.DigestTime, err)
	}

	d := &Digest{
		cron:   cron.New(cron.WithLocation(location)),
		sink:   sink,
		source: source,
		logger: log,
	}

	spec := fmt.Sprintf("%d %d * * *", digestAt.Minute(), digestAt.Hour())
	if _, err := d.cron.AddFunc(spec, d.run); err != nil {
		return nil, fmt.Errorf("add digest job: %w", err)
	}

	return d, nil
}

func (d *Digest) Start() {
	d.cron.Start()
	d.logger.Info().Msg("morning digest scheduled")
}

func (d *Digest) Stop() {
	<-d.cron.Stop().Done()
	d.logger.Info().Msg("morning digest stopped")
}

func (d *Digest) run() {
	ctx := context.Background()
	now := time.Now()

	agendas, err := d.source.Agendas(ctx, now)
	if err != nil {
		d.logger.Err(err).Str("func", "Digest.run").Msg("failed to collect agendas")
		return
	}

	for _, agenda := range agendas {
		if _, err := d.sink.ScheduleAt(ctx, Notification{
			Title:     DigestTitle,
			Body:      digestBody(agenda),
			TriggerAt: now,
		}); err != nil {
			d.logger.Err(err).
				Str("func", "Digest.run").
				Str("user_id", agenda.OwnerID).
				Msg("failed to schedule digest notification")
		}
	}
}

func digestBody(agenda Agenda) string {
	switch agenda.EventCount {
	case 0:
		return "Nothing planned today. Enjoy the quiet!"
	case 1:
		return fmt.Sprintf("1 event today: %s", agenda.FirstTitle)
	default:
		return fmt.Sprintf("%d events today, starting with %s", agenda.EventCount, agenda.FirstTitle)
	}
}
