// Package workers provides a small aggregate for launching the
// application's background workers (such as scheduled re-sync jobs) in a
// unified way.
package workers

// Worker is implemented by any background worker. Run starts the worker's
// execution; implementations either block for the duration of their work or
// spawn goroutines internally.
type Worker interface {
	Run()
}

// WorkerFunc adapts a plain function to the Worker interface.
type WorkerFunc func()

func (f WorkerFunc) Run() { f() }

// Workers runs a set of workers as a unit.
type Workers struct {
	workers []Worker
}

// New aggregates the given workers. Nil entries are dropped.
func New(ws ...Worker) *Workers {
	aggregate := &Workers{workers: make([]Worker, 0, len(ws))}
	for _, w := range ws {
		if w != nil {
			aggregate.workers = append(aggregate.workers, w)
		}
	}
	return aggregate
}

// Run starts every worker in registration order.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
