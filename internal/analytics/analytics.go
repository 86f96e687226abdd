package analytics

import (
	"go.uber.org/zap"
)

// Tracker records product events. Tracking is fire-and-forget: a failing or
// slow sink must never delay or fail the request that produced the event.
type Tracker interface {
	Track(event string, properties map[string]interface{})
}

// Noop discards every event.
type Noop struct{}

func (Noop) Track(string, map[string]interface{}) {}

// Logger writes events to the structured log, which is where a chapter-sized
// deployment reads them from.
type Logger struct {
	log *zap.Logger
}

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Track(event string, properties map[string]interface{}) {
	go func() {
		defer func() {
			// A panicking sink must not take the process down.
			_ = recover()
		}()
		fields := make([]zap.Field, 0, len(properties)+1)
		fields = append(fields, zap.String("event", event))
		for k, v := range properties {
			fields = append(fields, zap.Any(k, v))
		}
		l.log.Info("analytics", fields...)
	}()
}
