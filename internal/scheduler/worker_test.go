package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoleta/internal/events"
	"ecoleta/platform/logger"
)

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(_ context.Context, event events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return b.err
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func TestPointConfirmationTaskRoundTrip(t *testing.T) {
	task, err := NewPointConfirmationTask(PointConfirmationPayload{
		PointID: 4, Email: "a@b.com", Name: "Recicla", City: "Campinas", UF: "SP", Items: []string{"Lâmpadas"},
	})
	require.NoError(t, err)
	assert.Equal(t, TaskPointConfirmation, task.Type())

	payload, err := ParsePointConfirmationPayload(task)
	require.NoError(t, err)
	assert.Equal(t, int64(4), payload.PointID)
	assert.Equal(t, []string{"Lâmpadas"}, payload.Items)
}

func TestHandlePointConfirmationPublishesSynchronously(t *testing.T) {
	bus := &recordingBus{}
	w := &Worker{bus: bus, log: logger.New("test")}

	task, err := NewPointConfirmationTask(PointConfirmationPayload{PointID: 4, Email: "a@b.com", Name: "Recicla"})
	require.NoError(t, err)

	require.NoError(t, w.handlePointConfirmation(context.Background(), task))
	require.Len(t, bus.events, 1)
	due, ok := bus.events[0].(events.PointConfirmationDue)
	require.True(t, ok)
	assert.Equal(t, int64(4), due.PointID)
	assert.Equal(t, "a@b.com", due.Email)
}

func TestHandlePointConfirmationReturnsDeliveryError(t *testing.T) {
	bus := &recordingBus{err: errors.New("smtp down")}
	w := &Worker{bus: bus, log: logger.New("test")}

	task, _ := NewPointConfirmationTask(PointConfirmationPayload{PointID: 4, Email: "a@b.com"})
	assert.Error(t, w.handlePointConfirmation(context.Background(), task))
}

func TestHandlePointConfirmationSkipsRetryOnBadPayload(t *testing.T) {
	w := &Worker{bus: &recordingBus{}, log: logger.New("test")}

	err := w.handlePointConfirmation(context.Background(), asynq.NewTask(TaskPointConfirmation, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandlePointConfirmationDropsMissingRecipient(t *testing.T) {
	bus := &recordingBus{}
	w := &Worker{bus: bus, log: logger.New("test")}

	task, _ := NewPointConfirmationTask(PointConfirmationPayload{PointID: 4})
	assert.NoError(t, w.handlePointConfirmation(context.Background(), task))
	assert.Empty(t, bus.events)
}

func TestNilClientIsNoop(t *testing.T) {
	var c *Client
	assert.NoError(t, c.EnqueuePointConfirmation(context.Background(), PointConfirmationPayload{PointID: 1}))
	assert.NoError(t, c.Close())
}

type fakeGeography struct {
	mu     sync.Mutex
	cities []string
	failUF string
}

func (f *fakeGeography) ListUFs(context.Context) ([]string, error) {
	return []string{"RJ", "SP"}, nil
}

func (f *fakeGeography) ListCities(_ context.Context, uf string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cities = append(f.cities, uf)
	if uf == f.failUF {
		return nil, errors.New("upstream down")
	}
	return []string{"x"}, nil
}

func TestGeographyWarmupLoadsEveryState(t *testing.T) {
	geo := &fakeGeography{failUF: "RJ"}
	warmup := NewGeographyWarmup(geo, logger.New("test"), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		warmup.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		geo.mu.Lock()
		defer geo.mu.Unlock()
		return len(geo.cities) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, []string{"RJ", "SP"}, geo.cities)
}

func TestNewGeographyWarmupDefaultsInterval(t *testing.T) {
	warmup := NewGeographyWarmup(&fakeGeography{}, logger.New("test"), 0)
	assert.Equal(t, defaultGeographyWarmupInterval, warmup.interval)
}
