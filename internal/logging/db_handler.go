package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/partyplanner/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const dbLogBatchSize = 50

// DBHandler is an slog.Handler that batches ERROR+ records into system_logs.
// Handlers derived through WithAttrs share one buffer and flush loop.
type DBHandler struct {
	sink  *dbSink
	attrs []slog.Attr
}

type dbSink struct {
	db       *gorm.DB
	fallback *slog.Logger
	mu       sync.Mutex
	buffer   []models.SystemLog
	ticker   *time.Ticker
	done     chan struct{}
	stopped  sync.WaitGroup
	stopOnce sync.Once
}

// NewDBHandler starts the background flush loop. Failures to write are
// reported through fallback, never back into the database.
func NewDBHandler(db *gorm.DB, fallback slog.Handler, interval time.Duration) *DBHandler {
	s := &dbSink{
		db:       db.Session(&gorm.Session{Logger: logger.Discard}),
		fallback: slog.New(fallback),
		buffer:   make([]models.SystemLog, 0, dbLogBatchSize),
		ticker:   time.NewTicker(interval),
		done:     make(chan struct{}),
	}
	s.stopped.Add(1)
	go s.flushLoop()
	return &DBHandler{sink: s}
}

func (s *dbSink) flushLoop() {
	defer s.stopped.Done()
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *dbSink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, dbLogBatchSize)
	s.mu.Unlock()

	if err := s.db.CreateInBatches(batch, dbLogBatchSize).Error; err != nil {
		s.fallback.Error("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Flush writes buffered records synchronously.
func (h *DBHandler) Flush() {
	h.sink.flush()
}

// Stop flushes what is buffered and waits for the loop to exit.
func (h *DBHandler) Stop() {
	h.sink.stopOnce.Do(func() {
		h.sink.ticker.Stop()
		close(h.sink.done)
	})
	h.sink.stopped.Wait()
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   strings.Clone(record.Message),
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		v := a.Value.Resolve()
		// Records are written after Handle returns, so strings are cloned
		// in case the caller's backing memory is reused.
		switch a.Key {
		case "request_id":
			entry.RequestID = strings.Clone(v.String())
		case "user_id":
			s := strings.Clone(v.String())
			entry.UserID = &s
		case "method":
			entry.Method = strings.Clone(v.String())
		case "path":
			entry.Path = strings.Clone(v.String())
		case "error":
			entry.Error = strings.Clone(v.String())
		default:
			if err, ok := v.Any().(error); ok {
				extra[a.Key] = err.Error()
			} else {
				extra[a.Key] = v.Any()
			}
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.sink.mu.Lock()
	h.sink.buffer = append(h.sink.buffer, entry)
	needFlush := len(h.sink.buffer) >= dbLogBatchSize
	h.sink.mu.Unlock()

	if needFlush {
		go h.sink.flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{sink: h.sink, attrs: merged}
}

// WithGroup is a no-op: system_logs columns are flat.
func (h *DBHandler) WithGroup(string) slog.Handler {
	return h
}
