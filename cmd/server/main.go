package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-plan-it/internal/adapter"
	"github.com/MKhiriev/go-plan-it/internal/advisor"
	"github.com/MKhiriev/go-plan-it/internal/config"
	"github.com/MKhiriev/go-plan-it/internal/handler"
	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/internal/notify"
	"github.com/MKhiriev/go-plan-it/internal/server"
	"github.com/MKhiriev/go-plan-it/internal/service"
	"github.com/MKhiriev/go-plan-it/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-plan-it-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	// the calendar provider only exists on the caldav backend
	var provider store.CalendarProvider
	if cfg.Storage.Backend == config.BackendCalDAV {
		provider, err = adapter.NewCalDAVProvider(cfg.Storage.CalDAV, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to calendar server")
		}
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, provider, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	sink := notify.NewPushSink(cfg.Notify, log)
	defer sink.Stop()

	scheduler := notify.NewScheduler(sink, log)

	adv := advisor.Nop()
	if cfg.Advisor.APIKey != "" {
		adv = advisor.NewGeminiAdvisor(cfg.Advisor, log)
	}

	services := service.NewServices(storages, *cfg, scheduler, adv, log)

	if cfg.Notify.DigestTime != "" {
		digest, err := notify.NewDigest(cfg.Notify, sink, services.Sessions, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating morning digest")
		}
		digest.Start()
		defer digest.Stop()
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
