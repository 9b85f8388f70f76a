// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer implementations of the outbound
// ports consumed by the storage and notification layers.
//
// The primary abstraction here is the CalDAV calendar provider: an
// implementation of [store.CalendarProvider] speaking the CalDAV protocol
// (RFC 4791) through github.com/emersion/go-webdav. It is the production
// backend behind the "caldav" storage setting; iCloud with an app-specific
// password is the primary target, but any RFC-compliant server works.
package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/emersion/go-webdav/caldav"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-plan-it/internal/config"
	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/internal/store"
)

// DefaultICloudURL is the Apple iCloud CalDAV endpoint, used when no server
// URL is configured.
const DefaultICloudURL = "https://caldav.icloud.com"

const defaultRequestTimeout = 30 * time.Second

type calDAVProvider struct {
	cfg        config.CalDAV
	httpClient *http.Client
	client     *caldav.Client
	logger     *logger.Logger

	mu      sync.Mutex
	homeSet string
}

// NewCalDAVProvider constructs a [store.CalendarProvider] that talks to the
// CalDAV server configured in cfg. Credentials are attached to every request
// via HTTP basic auth.
//
// Returns an error if the endpoint URL cannot be parsed by the underlying
// client. No network traffic happens until the first operation.
func NewCalDAVProvider(cfg config.CalDAV, log *logger.Logger) (store.CalendarProvider, error) {
	if cfg.URL == "" {
		cfg.URL = DefaultICloudURL
	}

	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username: cfg.Username,
			password: cfg.Password,
		},
		Timeout: defaultRequestTimeout,
	}

	client, err := caldav.NewClient(httpClient, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to CalDAV: %w", err)
	}

	return &calDAVProvider{
		cfg:        cfg,
		httpClient: httpClient,
		client:     client,
		logger:     log,
	}, nil
}

// basicAuthTransport adds Basic Auth to HTTP requests
type basicAuthTransport struct {
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	return http.DefaultTransport.RoundTrip(req)
}

// findHomeSet resolves and caches the calendar-home-set of the authenticated
// principal. Discovery costs two round-trips, so the result is reused for the
// provider's lifetime.
func (p *calDAVProvider) findHomeSet(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.homeSet != "" {
		return p.homeSet, nil
	}

	principal, err := p.client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("find principal: %w", err)
	}

	homeSet, err := p.client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("find home set: %w", err)
	}

	p.homeSet = homeSet
	return homeSet, nil
}

func (p *calDAVProvider) ListCalendars(ctx context.Context) ([]store.Calendar, error) {
	homeSet, err := p.findHomeSet(ctx)
	if err != nil {
		return nil, err
	}

	calendars, err := p.client.FindCalendars(ctx, homeSet)
	if err != nil {
		return nil, fmt.Errorf("find calendars: %w", err)
	}

	results := make([]store.Calendar, 0, len(calendars))
	for _, calendar := range calendars {
		results = append(results, store.Calendar{
			Path: calendar.Path,
			Name: calendar.Name,
		})
	}

	return results, nil
}

// CreateCalendar provisions a new calendar collection via MKCALENDAR
// (RFC 4791 §5.3.1). The webdav client has no verb for this, so the request
// goes through the authenticated HTTP client directly.
func (p *calDAVProvider) CreateCalendar(ctx context.Context, name string) (store.Calendar, error) {
	homeSet, err := p.findHomeSet(ctx)
	if err != nil {
		return store.Calendar{}, err
	}

	path := homeSet
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	path += uuid.NewString() + "/"

	body := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8" ?>
<C:mkcalendar xmlns:D="DAV:" xmlns:C="urn:ietf:params:xml:ns:caldav">
  <D:set>
    <D:prop>
      <D:displayname>%s</D:displayname>
    </D:prop>
  </D:set>
</C:mkcalendar>`, escapeXML(name))

	endpoint := strings.TrimRight(p.cfg.URL, "/") + path

	req, err := http.NewRequestWithContext(ctx, "MKCALENDAR", endpoint, strings.NewReader(body))
	if err != nil {
		return store.Calendar{}, fmt.Errorf("build MKCALENDAR request: %w", err)
	}
	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return store.Calendar{}, fmt.Errorf("MKCALENDAR request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return store.Calendar{}, fmt.Errorf("MKCALENDAR failed: %s", resp.Status)
	}

	p.logger.Info().
		Str("calendar", name).
		Str("path", path).
		Msg("created calendar collection")

	return store.Calendar{Path: path, Name: name}, nil
}

func (p *calDAVProvider) CreateEvent(ctx context.Context, calendarPath string, event store.RawCalendarEvent) (string, error) {
	if event.UID == "" {
		event.UID = uuid.NewString()
	}

	path := calendarPath
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	path += event.UID + ".ics"
	event.Path = path

	if _, err := p.client.PutCalendarObject(ctx, path, rawToICal(event)); err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}

	return path, nil
}

func (p *calDAVProvider) UpdateEvent(ctx context.Context, event store.RawCalendarEvent) error {
	if event.Path == "" {
		return fmt.Errorf("update event: empty object path")
	}

	// a PUT to an existing path replaces the object
	if event.UID == "" {
		event.UID = uidFromPath(event.Path)
	}

	if _, err := p.client.PutCalendarObject(ctx, event.Path, rawToICal(event)); err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	return nil
}

func (p *calDAVProvider) DeleteEvent(ctx context.Context, path string) error {
	if err := p.client.RemoveAll(ctx, path); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (p *calDAVProvider) ListEvents(ctx context.Context, calendarPath string, from, to time.Time) ([]store.RawCalendarEvent, error) {
	log := logger.FromContext(ctx)

	query := &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{
					Name:  "VEVENT",
					Start: from,
					End:   to,
				},
			},
		},
	}

	objects, err := p.client.QueryCalendar(ctx, calendarPath, query)
	if err != nil {
		return nil, fmt.Errorf("query calendar: %w", err)
	}

	results := make([]store.RawCalendarEvent, 0, len(objects))
	for _, obj := range objects {
		event, parseErr := parseCalendarObject(&obj)
		if parseErr != nil {
			// skip objects the planner cannot interpret
			log.Warn().
				Err(parseErr).
				Str("path", obj.Path).
				Msg("skipping unparsable calendar object")
			continue
		}
		results = append(results, event)
	}

	return results, nil
}

func uidFromPath(path string) string {
	base := path
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.TrimSuffix(base, ".ics")
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
