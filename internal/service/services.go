package service

import (
	"github.com/MKhiriev/go-plan-it/internal/advisor"
	"github.com/MKhiriev/go-plan-it/internal/config"
	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/internal/notify"
	"github.com/MKhiriev/go-plan-it/internal/store"
)

type Services struct {
	AuthService  AuthService
	EventService EventService

	// Sessions is the concrete session manager behind EventService, exposed
	// for session teardown on logout and for the morning digest.
	Sessions *Sessions
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, scheduler *notify.Scheduler, adv advisor.Advisor, logger *logger.Logger) *Services {
	sessions := NewSessions(storages.EventStore, scheduler, adv, logger)

	return &Services{
		AuthService:  NewAuthService(storages.UserStore, cfg.App, logger),
		EventService: sessions,
		Sessions:     sessions,
	}
}
