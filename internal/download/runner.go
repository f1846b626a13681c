package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-audio-downloader/internal/model"
	"github.com/ytget/yt-audio-downloader/internal/progress"
)

const (
	JobIDPrefix       = "job-"
	UpdatesBufferSize = 16
)

// WorkFunc is a fully bound unit of work executed by the Runner
type WorkFunc func(ctx context.Context, job *Job) error

// Job is the handle of one in-flight download
type Job struct {
	id        string
	ctx       context.Context
	cancel    context.CancelFunc
	startedAt time.Time

	mu     sync.RWMutex
	status model.JobStatus
	err    error

	updates chan progress.Snapshot
	done    chan struct{}
}

func newJob(parent context.Context) *Job {
	ctx, cancel := context.WithCancel(parent)
	return &Job{
		id:        generateJobID(),
		ctx:       ctx,
		cancel:    cancel,
		startedAt: time.Now(),
		status:    model.JobStatusRunning,
		updates:   make(chan progress.Snapshot, UpdatesBufferSize),
		done:      make(chan struct{}),
	}
}

// ID returns the unique job identifier
func (j *Job) ID() string {
	return j.id
}

// StartedAt returns when the job was started
func (j *Job) StartedAt() time.Time {
	return j.startedAt
}

// Status returns the current job status
func (j *Job) Status() model.JobStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.status
}

// Err returns the terminal error, nil while running or on success
func (j *Job) Err() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.err
}

// Done is closed once the job finished and Updates has been closed
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Updates delivers progress snapshots and is closed when the job ends.
// When the consumer lags, the oldest buffered snapshot is dropped.
func (j *Job) Updates() <-chan progress.Snapshot {
	return j.updates
}

// Cancel requests cancellation of the job's context.
// Nothing in the UI calls it yet.
func (j *Job) Cancel() {
	j.cancel()
}

// Publish enqueues a snapshot without blocking the producer
func (j *Job) Publish(s progress.Snapshot) {
	for {
		select {
		case j.updates <- s:
			return
		default:
		}
		select {
		case <-j.updates:
		default:
		}
	}
}

func (j *Job) finish(err error) {
	j.mu.Lock()
	j.err = err
	if err != nil {
		j.status = model.JobStatusFailed
	} else {
		j.status = model.JobStatusSucceeded
	}
	j.mu.Unlock()

	j.cancel()
	close(j.updates)
	close(j.done)
}

// Runner starts one goroutine per job. There is no pool and no queue.
type Runner struct {
	mu     sync.Mutex
	active map[string]*Job
	logger zerolog.Logger
}

// NewRunner creates a new job runner
func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{
		active: make(map[string]*Job),
		logger: logger.With().Str("component", "runner").Logger(),
	}
}

// Start executes work on a new goroutine and returns its handle immediately
func (r *Runner) Start(work WorkFunc) *Job {
	job := newJob(context.Background())

	r.mu.Lock()
	r.active[job.id] = job
	r.mu.Unlock()

	r.logger.Debug().Str("job", job.id).Msg("job started")

	go func() {
		err := r.run(job, work)

		r.mu.Lock()
		delete(r.active, job.id)
		r.mu.Unlock()

		job.finish(err)
		r.logger.Debug().Str("job", job.id).Err(err).Dur("elapsed", time.Since(job.startedAt)).Msg("job finished")
	}()

	return job
}

func (r *Runner) run(job *Job, work WorkFunc) (err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error().Str("job", job.id).Interface("panic", p).Msg("job panicked")
			err = fmt.Errorf("job %s panicked: %v", job.id, p)
		}
	}()
	return work(job.ctx, job)
}

// Active returns the jobs that are still running
func (r *Runner) Active() []*Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	jobs := make([]*Job, 0, len(r.active))
	for _, job := range r.active {
		jobs = append(jobs, job)
	}
	return jobs
}

// generateJobID generates a unique job ID using UUID v7 for time ordering
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
