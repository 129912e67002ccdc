package systems

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/spaghettifunk/anima-spatial/engine/core"
)

// JobTask is a unit of background work. OnComplete or OnFailure runs on
// the worker after Run returns, then OnCompletionCallback.
type JobTask struct {
	Name                 string
	Run                  func(ctx context.Context) error
	OnComplete           func()
	OnFailure            func(err error)
	OnCompletionCallback func()
}

/** @brief The job system configuration. */
type JobSystemConfig struct {
	/** @brief Number of worker goroutines, at least 1. */
	Workers int
	/** @brief Capacity of the pending job queue. */
	QueueSize int
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

var (
	ErrNoWorkers           = fmt.Errorf("attempting to create worker pool with less than 1 worker")
	ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
	ErrJobSystemShutdown   = errors.New("job system is shut down")
)

func NewJobSystem(config JobSystemConfig) (*JobSystem, error) {
	if config.Workers <= 0 {
		return nil, ErrNoWorkers
	}
	if config.QueueSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	js := &JobSystem{
		numWorkers: config.Workers,
		jobQueue:   make(chan JobTask, config.QueueSize),
		ctx:        ctx,
		cancel:     cancel,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) Workers() int {
	return js.numWorkers
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	var err error
	if job.Run != nil {
		err = job.Run(js.ctx)
	}
	if err != nil {
		core.LogError("job %q failed: %s", job.Name, err)
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
	} else if job.OnComplete != nil {
		job.OnComplete()
	}

	// Call the completion callback if set
	if job.OnCompletionCallback != nil {
		job.OnCompletionCallback()
	}
}

/**
 * @brief Shuts the job system down. Queued jobs still run; their context
 * is cancelled once the queue is drained.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return ErrJobSystemShutdown
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	js.cancel()
	return nil
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return ErrJobSystemShutdown
	}
	js.jobQueue <- jt
	return nil
}

// RunBatch calls fn for every i in [0, n) with at most Workers calls in
// flight and returns the first error. It does not use the queue, so it
// may be called from inside a job.
func (js *JobSystem) RunBatch(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(js.numWorkers)
	for i := 0; i < n; i++ {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return fn(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
