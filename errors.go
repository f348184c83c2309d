package threadpool

import "errors"

const Namespace = "threadpool"

var (
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrPoolClosed    = errors.New(Namespace + ": cannot execute a job on a closed pool")
	ErrNilJob        = errors.New(Namespace + ": job must not be nil")
)
