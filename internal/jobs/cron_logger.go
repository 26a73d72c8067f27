package jobs

import (
	"github.com/robfig/cron/v3"

	"warehouse/internal/pkg/logger"
)

var _ cron.Logger = cronLogger{}

// cronLogger routes the scheduler's own messages into zap. Routine scheduling
// chatter goes to debug.
type cronLogger struct {
	log *logger.Logger
}

func newCronLogger(log *logger.Logger) cronLogger {
	return cronLogger{log: log}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
