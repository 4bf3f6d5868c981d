package utils

// ErrInvalidConfig defines wrong configuration error.
type ErrInvalidConfig struct {
	Name string
}

// Error formats output.
func (e *ErrInvalidConfig) Error() string {
	if "" == e.Name {
		return "config validation error"
	}

	return "config validation error: " + e.Name
}

// ErrCronStopped defines scheduling on a stopped cron.
type ErrCronStopped struct {
	Spec string
}

// Error formats output.
func (e *ErrCronStopped) Error() string {
	return "scheduler is stopped, job is not added: " + e.Spec
}

// ErrCronJobPanic defines panicked scheduled job.
type ErrCronJobPanic struct {
	Spec  string
	Cause string
}

// Error formats output.
func (e *ErrCronJobPanic) Error() string {
	return "job " + e.Spec + " panicked: " + e.Cause
}
