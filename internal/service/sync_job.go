package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vmartynenko/go-soupsync/internal/logger"
)

type syncJob struct {
	manager *SyncManager
	syncID  int64
	cb      Callback
	log     *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a job that re-runs the given sync on a ticker. The job
// is idle until Start is called.
func NewSyncJob(manager *SyncManager, syncID int64, cb Callback, log *logger.Logger) *syncJob {
	if log == nil {
		log = logger.Nop()
	}
	return &syncJob{manager: manager, syncID: syncID, cb: cb, log: log}
}

// Start stops any previously running job, then launches a background
// goroutine that calls ReSync every interval. If interval is zero or
// negative it defaults to 5 minutes. A tick landing while the previous run
// is still in flight is skipped. The goroutine exits when ctx is cancelled
// or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := j.manager.ReSync(jobCtx, j.syncID, j.cb); err != nil {
					if errors.Is(err, ErrSyncStillRunning) {
						continue
					}
					j.log.Warn().Err(err).Int64("syncId", j.syncID).Msg("scheduled resync failed")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
