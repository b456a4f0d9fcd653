package background

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"faultline/internal/capture"
)

// Job is one unit of detached work. Run executes outside any request's call
// stack; its failure is observable only through the bridge's hook.
type Job struct {
	FaultID string
	Run     func(ctx context.Context) error
}

// Bridge executes jobs on their own goroutines and guarantees that any
// failure, whether error return or panic, is reported exactly once through the
// shared reporter instead of crashing the process.
type Bridge struct {
	log      *logrus.Logger
	reporter capture.Reporter

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewBridge(log *logrus.Logger, reporter capture.Reporter) *Bridge {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bridge{
		log:      log,
		reporter: reporter,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Dispatch schedules the job and returns immediately. The caller's request
// does not wait for, and is unaffected by, the job's outcome.
func (b *Bridge) Dispatch(job Job) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() {
			if v := recover(); v != nil {
				b.report(capture.NormalizePanic(v), job)
			}
		}()

		if err := job.Run(b.ctx); err != nil {
			b.report(capture.NormalizeError(err), job)
		}
	}()
}

// Shutdown waits for in-flight jobs to finish.
func (b *Bridge) Shutdown() {
	b.cancel()
	b.wg.Wait()
	b.log.Info("background bridge stopped")
}

func (b *Bridge) report(d capture.Diagnostic, job Job) {
	d.FaultID = job.FaultID
	d.Origin = capture.OriginBackground
	d.Kind = capture.KindBackgroundFailure
	b.reporter.Report(b.ctx, d)
}
