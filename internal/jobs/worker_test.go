package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lumenote/grounding/internal/service"
)

// MockPassRunner is a mock for PassRunner
type MockPassRunner struct {
	mock.Mock
	callCount atomic.Int32
}

func (m *MockPassRunner) RunPass(ctx context.Context) error {
	m.callCount.Add(1)
	args := m.Called(ctx)
	return args.Error(0)
}

func TestPoller_RunsPassOnEachTick(t *testing.T) {
	runner := new(MockPassRunner)
	runner.On("RunPass", mock.Anything).Return(nil)

	poller := NewPoller(runner, 10*time.Millisecond)

	ctx := context.Background()
	go poller.Start(ctx)

	time.Sleep(55 * time.Millisecond)
	poller.Stop()

	assert.GreaterOrEqual(t, runner.callCount.Load(), int32(2))
}

func TestPoller_StopsOnContextCancel(t *testing.T) {
	runner := new(MockPassRunner)
	runner.On("RunPass", mock.Anything).Return(nil)

	poller := NewPoller(runner, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
}

func TestPoller_KeepsPollingAfterPassError(t *testing.T) {
	runner := new(MockPassRunner)
	runner.On("RunPass", mock.Anything).Return(errors.New("transient failure"))

	poller := NewPoller(runner, 10*time.Millisecond)

	go poller.Start(context.Background())

	time.Sleep(55 * time.Millisecond)
	poller.Stop()

	assert.GreaterOrEqual(t, runner.callCount.Load(), int32(2))
}

// MockIngester is a mock for Ingester
type MockIngester struct {
	mock.Mock
}

func (m *MockIngester) Ingest(ctx context.Context) (*service.IngestReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestReport), args.Error(1)
}

func TestIngestWorker_RunPass_Success(t *testing.T) {
	indexer := new(MockIngester)
	indexer.On("Ingest", mock.Anything).Return(&service.IngestReport{}, nil)

	worker := NewIngestWorker(indexer)

	err := worker.RunPass(context.Background())

	assert.NoError(t, err)
	indexer.AssertExpectations(t)
}

func TestIngestWorker_RunPass_IngestError(t *testing.T) {
	indexer := new(MockIngester)
	indexer.On("Ingest", mock.Anything).Return(nil, errors.New("bucket unreachable"))

	worker := NewIngestWorker(indexer)

	err := worker.RunPass(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ingestion pass failed")
}
