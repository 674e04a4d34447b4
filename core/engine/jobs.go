package engine

import (
	"sort"
	"sync"
)

// Job is a command running in the background.
type Job struct {
	ID      int
	Command string

	done   chan struct{}
	status int
}

// Done is closed once the job has exited.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Status returns the exit status of the job. It is only meaningful after Done
// is closed.
func (j *Job) Status() int {
	<-j.done
	return j.status
}

// JobTable tracks background jobs. Finished jobs are removed.
type JobTable struct {
	mu     sync.Mutex
	nextID int
	jobs   map[int]*Job
}

// NewJobTable creates an empty table.
func NewJobTable() *JobTable {
	return &JobTable{jobs: make(map[int]*Job)}
}

// Start registers a new running job.
func (t *JobTable) Start(command string) *Job {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	job := &Job{
		ID:      t.nextID,
		Command: command,
		done:    make(chan struct{}),
	}
	t.jobs[job.ID] = job
	return job
}

// finish records the exit status of a job and removes it from the table.
func (t *JobTable) finish(job *Job, status int) {
	t.mu.Lock()
	delete(t.jobs, job.ID)
	t.mu.Unlock()

	job.status = status
	close(job.done)
}

// Running lists the jobs that haven't exited, ordered by ID.
func (t *JobTable) Running() []*Job {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*Job, 0, len(t.jobs))
	for _, job := range t.jobs {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// WaitAll blocks until every job, including ones started while waiting, has
// exited. It returns the number of jobs waited for.
func (t *JobTable) WaitAll() int {
	waited := 0
	for {
		running := t.Running()
		if len(running) == 0 {
			return waited
		}
		for _, job := range running {
			<-job.Done()
			waited++
		}
	}
}
