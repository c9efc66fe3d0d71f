package logging

import "time"

// TimedOperation logs a message with the elapsed time when it ends
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{logger: logger, msg: msg, start: time.Now(), fields: fields}
}

// Elapsed returns the time since the timer started
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs at info level with the latency and any extra fields
func (t *TimedOperation) End(extra ...Field) time.Duration {
	elapsed := t.Elapsed()
	t.logger.Info(t.msg, t.collect(elapsed, extra)...)
	return elapsed
}

// EndError logs at error level with the latency and err
func (t *TimedOperation) EndError(err error, extra ...Field) time.Duration {
	elapsed := t.Elapsed()
	t.logger.Error(t.msg, append(t.collect(elapsed, extra), Error(err))...)
	return elapsed
}

func (t *TimedOperation) collect(elapsed time.Duration, extra []Field) []Field {
	fields := make([]Field, 0, len(t.fields)+len(extra)+1)
	fields = append(fields, t.fields...)
	fields = append(fields, extra...)
	return append(fields, Latency(elapsed))
}
