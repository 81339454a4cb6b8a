package job

import (
	"sort"
	"time"
)

// Job is a spawned process that has not been reaped yet.
type Job struct {
	PID        int
	Args       []string
	Background bool
	Started    time.Time

	// absorb marks a foreground job whose status the blocking wait could not
	// retrieve. The reaper consumes it without reporting.
	absorb bool
}

// Registry tracks spawned, unreaped processes by PID. It is owned by the
// read-eval loop and is not safe for concurrent use.
type Registry struct {
	jobs map[int]*Job
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[int]*Job)}
}

// Add starts tracking the job, replacing any entry with the same PID.
func (r *Registry) Add(job *Job) {
	r.jobs[job.PID] = job
}

// Absorb marks pid to be reaped silently, registering it if needed.
func (r *Registry) Absorb(pid int) {
	job, ok := r.jobs[pid]
	if !ok {
		job = &Job{PID: pid, Started: time.Now()}
		r.jobs[pid] = job
	}
	job.absorb = true
}

// Lookup returns the job for pid.
func (r *Registry) Lookup(pid int) (*Job, bool) {
	job, ok := r.jobs[pid]
	return job, ok
}

// Remove stops tracking pid and returns its job.
func (r *Registry) Remove(pid int) (*Job, bool) {
	job, ok := r.jobs[pid]
	delete(r.jobs, pid)
	return job, ok
}

// PIDs returns the tracked PIDs in ascending order.
func (r *Registry) PIDs() []int {
	out := make([]int, 0, len(r.jobs))
	for pid := range r.jobs {
		out = append(out, pid)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of tracked jobs.
func (r *Registry) Len() int {
	return len(r.jobs)
}
