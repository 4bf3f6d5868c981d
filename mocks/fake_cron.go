//+build !release

package mocks

import "sync"

// IFakeCron adds additional capabilities to a fake cron provider.
type IFakeCron interface {
	Fire()
	Jobs() int
	Stopped() bool
}

type fakeCron struct {
	sync.Mutex
	lastID  int
	jobs    map[int]func()
	stopped bool
}

func (f *fakeCron) AddFunc(spec string, cmd func()) (int, error) {
	f.Lock()
	defer f.Unlock()

	f.lastID++
	f.jobs[f.lastID] = cmd
	return f.lastID, nil
}

func (f *fakeCron) RemoveFunc(id int) {
	f.Lock()
	defer f.Unlock()

	delete(f.jobs, id)
}

func (f *fakeCron) Stop() {
	f.Lock()
	defer f.Unlock()

	f.stopped = true
}

// Stopped reports whether Stop was called.
func (f *fakeCron) Stopped() bool {
	f.Lock()
	defer f.Unlock()

	return f.stopped
}

// Fire invokes every scheduled job once.
func (f *fakeCron) Fire() {
	f.Lock()
	jobs := make([]func(), 0, len(f.jobs))
	for _, v := range f.jobs {
		jobs = append(jobs, v)
	}
	f.Unlock()

	for _, v := range jobs {
		v()
	}
}

// Jobs returns number of scheduled jobs.
func (f *fakeCron) Jobs() int {
	f.Lock()
	defer f.Unlock()

	return len(f.jobs)
}

// FakeNewCron creates a fake cron provider.
func FakeNewCron() *fakeCron {
	return &fakeCron{
		jobs: make(map[int]func()),
	}
}
