package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-plan-it/internal/config"
	"github.com/MKhiriev/go-plan-it/internal/logger"
)

type fakeAgendaSource struct {
	agendas []Agenda
}

func (f *fakeAgendaSource) Agendas(ctx context.Context, day time.Time) ([]Agenda, error) {
	return f.agendas, nil
}

func TestNewDigest_ValidatesConfig(t *testing.T) {
	sink := &fakeSink{}
	source := &fakeAgendaSource{}
	log := logger.NewLogger("test")

	_, err := NewDigest(config.Notify{DigestTime: "07:45", Timezone: "UTC"}, sink, source, log)
	assert.NoError(t, err)

	_, err = NewDigest(config.Notify{DigestTime: "sunrise"}, sink, source, log)
	assert.Error(t, err)

	_, err = NewDigest(config.Notify{DigestTime: "07:45", Timezone: "Atlantis/Lost"}, sink, source, log)
	assert.Error(t, err)
}

func TestDigest_RunSchedulesOnePerAgenda(t *testing.T) {
	sink := &fakeSink{}
	source := &fakeAgendaSource{agendas: []Agenda{
		{OwnerID: "u1", EventCount: 2, FirstTitle: "Standup"},
		{OwnerID: "u2", EventCount: 0},
	}}

	d, err := NewDigest(config.Notify{DigestTime: "07:45", Timezone: "UTC"}, sink, source, logger.NewLogger("test"))
	require.NoError(t, err)

	d.run()

	require.Len(t, sink.scheduled, 2)
	assert.Equal(t, DigestTitle, sink.scheduled[0].Title)
	assert.Contains(t, sink.scheduled[0].Body, "Standup")
	assert.Contains(t, sink.scheduled[1].Body, "Nothing planned")
}

func TestDigestBody(t *testing.T) {
	assert.Equal(t, "Nothing planned today. Enjoy the quiet!", digestBody(Agenda{EventCount: 0}))
	assert.Equal(t, "1 event today: Standup", digestBody(Agenda{EventCount: 1, FirstTitle: "Standup"}))
	assert.Equal(t, "3 events today, starting with Standup", digestBody(Agenda{EventCount: 3, FirstTitle: "Standup"}))
}
