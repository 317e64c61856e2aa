package geolens

import (
	"context"
	"time"
)

// JobStatus is the lifecycle state of an asynchronous analysis job.
type JobStatus string

// Job lifecycle states.
const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Job is an asynchronous analysis request accepted by the HTTP API.
// Terminal jobs (completed, failed) are evicted after a retention window.
type Job struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Status    JobStatus `json:"status"`
	Report    *Report   `json:"report,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Terminal reports whether the job has finished, successfully or not.
func (j *Job) Terminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}

// JobService manages asynchronous analysis jobs.
type JobService interface {
	// EnqueueJob accepts a URL for analysis and returns the pending job.
	EnqueueJob(ctx context.Context, url string) (*Job, error)

	// FindJobByID retrieves a job by ID.
	// Returns ENOTFOUND if the job does not exist or was evicted.
	FindJobByID(ctx context.Context, id string) (*Job, error)
}
