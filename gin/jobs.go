package gin

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/geolens"
	"github.com/google/uuid"
)

// Ensure JobQueue implements geolens.JobService.
var _ geolens.JobService = (*JobQueue)(nil)

// Job queue defaults.
const (
	DefaultWorkers       = 2
	DefaultRetention     = time.Hour
	DefaultSweepInterval = time.Minute
	DefaultJobTimeout    = 5 * time.Minute
)

// RunFunc executes one analysis for a queued URL.
type RunFunc func(ctx context.Context, url string) (*geolens.Report, error)

// JobQueue is an in-memory geolens.JobService. Accepted jobs run on a
// bounded worker pool; terminal jobs stay queryable until the janitor
// evicts them after the retention window.
type JobQueue struct {
	run       RunFunc
	retention time.Duration
	sweep     time.Duration
	timeout   time.Duration

	mu   sync.Mutex
	jobs map[string]*geolens.Job

	sem  chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

// JobOption configures a JobQueue.
type JobOption func(*JobQueue)

// WithWorkers caps how many jobs run concurrently.
func WithWorkers(n int) JobOption {
	return func(q *JobQueue) {
		if n > 0 {
			q.sem = make(chan struct{}, n)
		}
	}
}

// WithRetention sets how long terminal jobs remain queryable.
func WithRetention(d time.Duration) JobOption {
	return func(q *JobQueue) { q.retention = d }
}

// WithSweepInterval sets how often the janitor looks for evictable jobs.
func WithSweepInterval(d time.Duration) JobOption {
	return func(q *JobQueue) {
		if d > 0 {
			q.sweep = d
		}
	}
}

// WithJobTimeout bounds a single job's analysis run.
func WithJobTimeout(d time.Duration) JobOption {
	return func(q *JobQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// NewJobQueue creates a JobQueue and starts its janitor.
func NewJobQueue(run RunFunc, opts ...JobOption) *JobQueue {
	q := &JobQueue{
		run:       run,
		retention: DefaultRetention,
		sweep:     DefaultSweepInterval,
		timeout:   DefaultJobTimeout,
		jobs:      make(map[string]*geolens.Job),
		sem:       make(chan struct{}, DefaultWorkers),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}

	q.wg.Add(1)
	go q.janitor()

	return q
}

// Close stops the janitor and waits for in-flight jobs to finish.
// Queued jobs that have not started are marked failed.
func (q *JobQueue) Close() error {
	close(q.done)
	q.wg.Wait()
	return nil
}

// EnqueueJob accepts a URL for analysis and returns the pending job.
// The returned job is a snapshot; poll FindJobByID for progress.
func (q *JobQueue) EnqueueJob(ctx context.Context, url string) (*geolens.Job, error) {
	if strings.TrimSpace(url) == "" {
		return nil, geolens.Errorf(geolens.EINVALID, "url required")
	}

	now := time.Now().UTC()
	job := &geolens.Job{
		ID:        uuid.New().String(),
		URL:       url,
		Status:    geolens.JobPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	snapshot := *job

	q.mu.Lock()
	q.jobs[job.ID] = job
	q.mu.Unlock()

	q.wg.Add(1)
	go q.process(job.ID, url)

	return &snapshot, nil
}

// FindJobByID retrieves a snapshot of a job by ID.
func (q *JobQueue) FindJobByID(ctx context.Context, id string) (*geolens.Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.jobs[id]
	if !ok {
		return nil, geolens.Errorf(geolens.ENOTFOUND, "job not found")
	}

	snapshot := *job
	return &snapshot, nil
}

func (q *JobQueue) process(id, url string) {
	defer q.wg.Done()

	select {
	case q.sem <- struct{}{}:
		defer func() { <-q.sem }()
	case <-q.done:
		q.update(id, func(j *geolens.Job) {
			j.Status = geolens.JobFailed
			j.Error = "job queue closed before the job ran"
		})
		return
	}

	q.update(id, func(j *geolens.Job) {
		j.Status = geolens.JobProcessing
	})

	// Jobs outlive the request that enqueued them, so the run gets its
	// own bounded context.
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	report, err := q.run(ctx, url)
	if err != nil {
		q.update(id, func(j *geolens.Job) {
			j.Status = geolens.JobFailed
			j.Error = geolens.ErrorMessage(err)
		})
		return
	}

	q.update(id, func(j *geolens.Job) {
		j.Status = geolens.JobCompleted
		j.Report = report
	})
}

func (q *JobQueue) update(id string, fn func(*geolens.Job)) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if job, ok := q.jobs[id]; ok {
		fn(job)
		job.UpdatedAt = time.Now().UTC()
	}
}

func (q *JobQueue) janitor() {
	defer q.wg.Done()

	ticker := time.NewTicker(q.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-q.done:
			return
		case <-ticker.C:
			q.evictTerminal()
		}
	}
}

func (q *JobQueue) evictTerminal() {
	cutoff := time.Now().UTC().Add(-q.retention)

	q.mu.Lock()
	defer q.mu.Unlock()

	for id, job := range q.jobs {
		if job.Terminal() && job.UpdatedAt.Before(cutoff) {
			delete(q.jobs, id)
		}
	}
}
