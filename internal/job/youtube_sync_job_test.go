package job

import (
	"ContentTracker/internal/api/dto"
	"ContentTracker/internal/pkg/logger"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubSyncService struct {
	calls   atomic.Int32
	traceID atomic.Value
	release chan struct{}
}

func (s *stubSyncService) SyncAccount(context.Context, uint64) (*dto.SyncResultDTO, error) {
	return nil, nil
}

func (s *stubSyncService) BatchSync(context.Context, string) (*dto.BatchSyncDTO, error) {
	return nil, nil
}

func (s *stubSyncService) LastBatchReport(context.Context, string) (*dto.BatchSyncDTO, error) {
	return nil, nil
}

func (s *stubSyncService) SyncAll(ctx context.Context) (*dto.BatchSyncDTO, error) {
	s.calls.Add(1)
	s.traceID.Store(logger.TraceID(ctx))
	if s.release != nil {
		<-s.release
	}
	return &dto.BatchSyncDTO{
		Success:  true,
		SyncedAt: time.Now(),
		Accounts: []*dto.BatchItemDTO{{AccountID: 1, Status: "success"}},
	}, nil
}

func TestYouTubeSyncJobRunsSyncAll(t *testing.T) {
	stub := &stubSyncService{}
	NewYouTubeSyncJob(stub).Run()

	assert.Equal(t, int32(1), stub.calls.Load())
	assert.Contains(t, stub.traceID.Load(), "job-youtube-")
}

func TestYouTubeSyncJobSkipsOverlappingRuns(t *testing.T) {
	stub := &stubSyncService{release: make(chan struct{})}
	job := NewYouTubeSyncJob(stub)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		job.Run()
	}()

	assert.Eventually(t, func() bool { return stub.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	job.Run()
	assert.Equal(t, int32(1), stub.calls.Load())

	close(stub.release)
	wg.Wait()
}
