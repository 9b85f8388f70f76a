// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-plan-it/internal/app"
	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/internal/utils"
	"github.com/MKhiriev/go-plan-it/models"
)

// rangeDateLayout is the compact day form accepted by the from/to query
// parameters next to full RFC 3339 timestamps.
const rangeDateLayout = "2006-01-02"

func (h *Handler) addEvent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Err(err).Str("func", "*Handler.addEvent").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.EventService.AddEvent(r.Context(), userID, event)
	if err != nil {
		log.Err(err).Str("func", "*Handler.addEvent").Msg("error creating event")
		http.Error(w, app.MsgEventCreateFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// listEvents returns the caller's events whose effective start falls in the
// requested range. The from/to query parameters accept "2006-01-02" or RFC
// 3339; omitting both yields today's agenda.
func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	from, to, err := parseEventRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.listEvents").Msg("invalid range parameters")
		http.Error(w, app.MsgInvalidRangeParams, http.StatusBadRequest)
		return
	}

	events, err := h.services.EventService.Events(r.Context(), userID, from, to)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listEvents").Msg("error listing events")
		http.Error(w, app.MsgEventListFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, events, http.StatusOK)
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	eventID, err := eventIDFromRequest(r)
	if err != nil {
		http.Error(w, app.MsgInvalidEventID, http.StatusBadRequest)
		return
	}

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Err(err).Str("func", "*Handler.updateEvent").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	event.ID = eventID

	updated, err := h.services.EventService.UpdateEvent(r.Context(), userID, event)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateEvent").Str("event_id", eventID).Msg("error updating event")
		http.Error(w, app.MsgEventUpdateFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	eventID, err := eventIDFromRequest(r)
	if err != nil {
		http.Error(w, app.MsgInvalidEventID, http.StatusBadRequest)
		return
	}

	if err := h.services.EventService.DeleteEvent(r.Context(), userID, eventID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteEvent").Str("event_id", eventID).Msg("error deleting event")
		http.Error(w, app.MsgEventDeleteFailed, statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toggleEventComplete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	eventID, err := eventIDFromRequest(r)
	if err != nil {
		http.Error(w, app.MsgInvalidEventID, http.StatusBadRequest)
		return
	}

	toggled, err := h.services.EventService.ToggleEventComplete(r.Context(), userID, eventID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.toggleEventComplete").Str("event_id", eventID).Msg("error toggling event completion")
		http.Error(w, app.MsgEventToggleFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, toggled, http.StatusOK)
}

// eventIDFromRequest extracts and unescapes the {id} route parameter. Calendar
// backends use object paths as ids, so clients escape embedded slashes.
func eventIDFromRequest(r *http.Request) (string, error) {
	eventID, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		return "", err
	}
	if eventID == "" {
		return "", ErrEmptyEventID
	}
	return eventID, nil
}

// parseEventRange turns the from/to query values into a concrete interval.
// Empty values default to the current day.
func parseEventRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	from := startOfDay
	to := startOfDay.Add(24*time.Hour - time.Second)

	var err error
	if fromRaw != "" {
		if from, err = parseRangeInstant(fromRaw); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if toRaw != "" {
		if to, err = parseRangeInstant(toRaw); err != nil {
			return time.Time{}, time.Time{}, err
		}
		// a bare day means "through the end of that day"
		if len(toRaw) == len(rangeDateLayout) {
			to = to.Add(24*time.Hour - time.Second)
		}
	}

	return from, to, nil
}

func parseRangeInstant(raw string) (time.Time, error) {
	if t, err := time.Parse(rangeDateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
