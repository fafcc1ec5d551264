package recognition

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Recognizer is what the runner needs from the client; tests swap in a
// stub.
type Recognizer interface {
	Recognize(ctx context.Context, imageURL string) (Result, error)
}

// jobRetention is how long finished jobs stay pollable before Submit
// prunes them.
const jobRetention = time.Hour

// Runner executes recognition jobs on their own goroutines and keeps
// results in memory for polling. Cancellation is advisory: the upstream
// call may still complete, but its result is discarded.
type Runner struct {
	client Recognizer
	now    func() time.Time

	mu      sync.Mutex
	jobs    map[string]*Job
	cancels map[string]context.CancelFunc
}

func NewRunner(client Recognizer) *Runner {
	return &Runner{
		client:  client,
		now:     time.Now,
		jobs:    map[string]*Job{},
		cancels: map[string]context.CancelFunc{},
	}
}

func (r *Runner) Submit(userID, imageURL string) (Job, error) {
	if imageURL == "" {
		return Job{}, errors.New("image_url required")
	}

	job := &Job{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    StatusPending,
		CreatedAt: r.now(),
	}

	ctx, cancel := context.WithCancel(context.Background())

	r.mu.Lock()
	r.pruneLocked()
	r.jobs[job.ID] = job
	r.cancels[job.ID] = cancel
	r.mu.Unlock()

	go r.run(ctx, job.ID, imageURL)
	return *job, nil
}

func (r *Runner) run(ctx context.Context, jobID, imageURL string) {
	r.setStatus(jobID, StatusRunning)

	result, err := r.client.Recognize(ctx, imageURL)

	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok || job.Status == StatusCancelled {
		// cancelled while the call was in flight; drop the result
		return
	}
	// release the context now that the call has returned
	if cancel, ok := r.cancels[jobID]; ok {
		cancel()
		delete(r.cancels, jobID)
	}

	job.finishedAt = r.now()
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		return
	}
	job.Status = StatusDone
	job.Result = &result
}

// pruneLocked drops finished jobs past retention. Caller holds r.mu.
func (r *Runner) pruneLocked() {
	cutoff := r.now().Add(-jobRetention)
	for id, job := range r.jobs {
		if !job.finishedAt.IsZero() && job.finishedAt.Before(cutoff) {
			delete(r.jobs, id)
		}
	}
}

// Get returns a snapshot of the job. Only the submitting user sees it.
func (r *Runner) Get(jobID, userID string) (Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok || job.UserID != userID {
		return Job{}, errors.New("job not found")
	}
	return *job, nil
}

// Cancel marks the job cancelled and signals its context. A job that
// already finished stays finished.
func (r *Runner) Cancel(jobID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok || job.UserID != userID {
		return errors.New("job not found")
	}
	if job.Status == StatusDone || job.Status == StatusFailed {
		return nil
	}

	job.Status = StatusCancelled
	job.finishedAt = r.now()
	if cancel, ok := r.cancels[jobID]; ok {
		cancel()
		delete(r.cancels, jobID)
	}
	return nil
}

func (r *Runner) setStatus(jobID string, status JobStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job, ok := r.jobs[jobID]; ok && job.Status == StatusPending {
		job.Status = status
	}
}
