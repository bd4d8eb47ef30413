package ports

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

// recordingSink keeps every snapshot it receives
type recordingSink struct {
	mu        sync.Mutex
	snapshots []domain.Snapshot
	err       error
}

func (s *recordingSink) Publish(ctx context.Context, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshot)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

func newTestReader() *SnapshotReader {
	return NewSnapshotReader(
		mock.NewFakeClimateSensor(21.3, 0, 55.0, 0),
		mock.NewFakeAnalog(512, 0),
		mock.NewFakeAnalog(3000, 0),
	)
}

func TestReporter_Interval(t *testing.T) {
	r := NewReporter(newTestReader())
	// fake sensor samples every 2s, plus the fixed extra delay
	assert.Equal(t, 4*time.Second, r.Interval())
}

func TestReporter_ReportOnce(t *testing.T) {
	var out bytes.Buffer
	sink := &recordingSink{}
	r := NewReporter(newTestReader(), NewConsoleSink(&out), sink)

	r.ReportOnce(context.Background())

	assert.Equal(t, "Temperature: 21.3 °C, Humidity: 55.0 %, Sound Level: 512, Light Level: 3000\n", out.String())
	require.Equal(t, 1, sink.count())
	assert.Equal(t, 512, sink.snapshots[0].SoundLevel)
}

func TestReporter_SinkErrorDoesNotStopFanOut(t *testing.T) {
	failing := &recordingSink{err: errors.New("broker down")}
	after := &recordingSink{}
	r := NewReporter(newTestReader(), failing, after)

	r.ReportOnce(context.Background())
	r.ReportOnce(context.Background())

	assert.Equal(t, 2, failing.count())
	assert.Equal(t, 2, after.count())
}

func TestReporter_InvalidSnapshotStillReported(t *testing.T) {
	climate := mock.NewFakeClimateSensor(0, 0, 0, 0)
	climate.SetFailing(true)
	reader := NewSnapshotReader(climate, mock.NewFakeAnalog(7, 0), mock.NewFakeAnalog(8, 0))

	var out bytes.Buffer
	NewReporter(reader, NewConsoleSink(&out)).ReportOnce(context.Background())

	assert.Equal(t, "Temperature: NaN °C, Humidity: NaN %, Sound Level: 7, Light Level: 8\n", out.String())
}

func TestReporter_StartStopsOnCancel(t *testing.T) {
	sink := &recordingSink{}
	r := NewReporter(newTestReader(), sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reporter did not stop after cancel")
	}
	// first tick is a full interval away
	assert.Equal(t, 0, sink.count())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("serial closed") }

func TestConsoleSink_WriteError(t *testing.T) {
	err := NewConsoleSink(failingWriter{}).Publish(context.Background(), domain.NewSnapshot(1, 2, 3, 4))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "write console line"))
}
