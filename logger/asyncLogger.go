package logger

import (
	"context"
	"log"

	logModel "flight-booking/models/log"
	"flight-booking/storage"
	"flight-booking/types"
)

// AsyncLogger persists request logs through the storage layer off the request
// path. Entries are pushed onto a buffered channel and drained by a single
// goroutine, so handlers never wait on log writes.
type AsyncLogger struct {
	store   storage.Store
	channel chan types.LogEntry
}

func NewAsyncLogger(store storage.Store) *AsyncLogger {
	return &AsyncLogger{
		store:   store,
		channel: make(chan types.LogEntry, 100),
	}
}

// ProcessLog drains the channel. Run it in its own goroutine.
func (l *AsyncLogger) ProcessLog() {
	for entry := range l.channel {
		dbLog := logModel.Log{
			Method:          entry.Method,
			URL:             entry.URL,
			RequestBody:     entry.RequestBody,
			ResponseBody:    entry.ResponseBody,
			RequestHeaders:  entry.RequestHeaders,
			ResponseHeaders: entry.ResponseHeaders,
			StatusCode:      entry.StatusCode,
			CreatedAt:       entry.CreatedAt,
		}

		if err := l.store.SaveRequestLog(context.Background(), &dbLog); err != nil {
			log.Printf("Failed to insert request log entry: %v", err)
		}
	}
}

// Log pushes a log entry into the channel
func (l *AsyncLogger) Log(entry types.LogEntry) {
	l.channel <- entry
}
