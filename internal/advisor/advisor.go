// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package advisor asks a generative-text endpoint for extra reminder offsets
// tailored to an event.
//
// The advisor is strictly best-effort: a network failure, a timeout, or a
// reply the parser cannot interpret all degrade to "no suggestions". Nothing
// in this package ever blocks event creation.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MKhiriev/go-plan-it/internal/config"
	"github.com/MKhiriev/go-plan-it/internal/logger"
	"github.com/MKhiriev/go-plan-it/internal/utils"
	"github.com/MKhiriev/go-plan-it/models"
)

//go:generate mockgen -source=advisor.go -destination=../mock/advisor_mock.go -package=mock

// Advisor suggests additional reminders for an event.
type Advisor interface {
	// SuggestReminders returns reminder descriptors for the event, ordered as
	// suggested. A reply that cannot be interpreted yields an empty slice and
	// a nil error; only transport-level failures produce an error.
	SuggestReminders(ctx context.Context, event models.Event) ([]models.Alarm, error)
}

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-pro"
	defaultTimeout = 15 * time.Second
)

// arrayRegexp matches the first bracketed array in the model's free-text
// reply.
var arrayRegexp = regexp.MustCompile(`\[[^\[\]]*\]`)

type geminiAdvisor struct {
	client *utils.HTTPClient
	model  string
	apiKey string
	logger *logger.Logger
}

// NewGeminiAdvisor constructs an [Advisor] backed by the Gemini
// generateContent API.
func NewGeminiAdvisor(cfg config.Advisor, log *logger.Logger) Advisor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client := utils.NewHTTPClient()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &geminiAdvisor{
		client: client,
		model:  cfg.Model,
		apiKey: cfg.APIKey,
		logger: log,
	}
}

// Nop returns an [Advisor] that never suggests anything. It stands in for
// the real advisor when no API key is configured.
func Nop() Advisor {
	return nopAdvisor{}
}

type nopAdvisor struct{}

func (nopAdvisor) SuggestReminders(ctx context.Context, event models.Event) ([]models.Alarm, error) {
	return nil, nil
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (a *geminiAdvisor) SuggestReminders(ctx context.Context, event models.Event) ([]models.Alarm, error) {
	log := logger.FromContext(ctx)

	prompt := buildPrompt(event, time.Now())

	var reply generateResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("key", a.apiKey).
		SetBody(generateRequest{
			Contents: []generateContent{
				{Parts: []generatePart{{Text: prompt}}},
			},
		}).
		SetResult(&reply).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", a.model))
	if err != nil {
		log.Err(err).
			Str("func", "geminiAdvisor.SuggestReminders").
			Str("event_title", event.Title).
			Msg("reminder suggestion request failed")
		return nil, fmt.Errorf("advisor request failed: %w", err)
	}
	if resp.IsError() {
		log.Error().
			Str("func", "geminiAdvisor.SuggestReminders").
			Int("status", resp.StatusCode()).
			Msg("reminder suggestion request rejected")
		return nil, fmt.Errorf("advisor request rejected: %s", resp.Status())
	}

	offsets := extractOffsets(replyText(reply))
	if len(offsets) == 0 {
		return nil, nil
	}

	alarms := make([]models.Alarm, 0, len(offsets))
	for _, minutes := range offsets {
		// a negative count of minutes-before would fire after the start
		if minutes < 0 {
			continue
		}
		alarms = append(alarms, models.Alarm{
			RelativeOffset: -minutes,
			Method:         models.AlarmMethodAlert,
		})
	}
	if len(alarms) == 0 {
		return nil, nil
	}

	log.Debug().
		Str("event_title", event.Title).
		Ints("minutes_before", offsets).
		Msg("advisor suggested reminders")

	return alarms, nil
}

// buildPrompt renders the suggestion prompt. The model is told the current
// time so it can skip offsets that already lie in the past.
func buildPrompt(event models.Event, now time.Time) string {
	start := event.EffectiveStart()

	var b strings.Builder
	b.WriteString("You are a smart reminder planner for a day-planner app. ")
	b.WriteString("Suggest when to remind the user about the following event.\n")
	fmt.Fprintf(&b, "Event title: %s\n", event.Title)
	if event.Notes != "" {
		fmt.Fprintf(&b, "Event notes: %s\n", event.Notes)
	}
	fmt.Fprintf(&b, "Event starts at %s on %s.\n", start.Format("15:04"), start.Format("2006-01-02"))
	fmt.Fprintf(&b, "Current time: %s.\n", now.Format("2006-01-02 15:04"))
	b.WriteString("Reply ONLY with a JSON array of integers, each the number of minutes " +
		"before the event start to remind the user, e.g. [0, 15, 60]. " +
		"Do not suggest times that are already in the past.")

	return b.String()
}

func replyText(reply generateResponse) string {
	if len(reply.Candidates) == 0 {
		return ""
	}
	parts := reply.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

// extractOffsets pulls the first JSON integer array out of the model's free
// text. Anything unparsable counts as no suggestions.
func extractOffsets(text string) []int {
	match := arrayRegexp.FindString(text)
	if match == "" {
		return nil
	}

	var offsets []int
	if err := json.Unmarshal([]byte(match), &offsets); err != nil {
		return nil
	}
	return offsets
}
