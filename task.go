package threadpool

// Job is a unit of work submitted to a Pool.
// It owns everything it captures; results travel back through whatever
// channel or shared structure the caller wires into the closure.
type Job func()

// task is what travels through the queue: a job to run, or the exit sentinel.
type task struct {
	job  Job
	exit bool
}

func runTask(j Job) task { return task{job: j} }

func exitTask() task { return task{exit: true} }
