package store

import (
	"context"
	"log/slog"
	"sync"
)

const writerQueueSize = 64

type saveRequest struct {
	collection string
	snapshot   []byte
	flushed    chan struct{} // set for flush markers only
}

// Writer queues snapshot saves and performs them on a single goroutine, in
// the order they were submitted. Save never reports failure to the caller:
// errors are logged and the in-memory state stays authoritative.
type Writer struct {
	rs     RecordStore
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan saveRequest
	done   chan struct{}
}

// NewWriter starts a Writer saving into rs.
func NewWriter(rs RecordStore, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Writer{
		rs:     rs,
		logger: logger,
		queue:  make(chan saveRequest, writerQueueSize),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

// Save queues a snapshot for collection.
func (w *Writer) Save(collection string, snapshot []byte) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.logger.Warn("dropping save after writer closed", "collection", collection)
		return
	}
	w.queue <- saveRequest{collection: collection, snapshot: snapshot}
}

// Flush waits until every save queued before the call has been attempted.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		return nil
	}
	marker := saveRequest{flushed: make(chan struct{})}
	w.queue <- marker
	w.mu.RUnlock()

	select {
	case <-marker.flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains the queue and stops the writer goroutine.
func (w *Writer) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return nil
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	<-w.done
	return nil
}

func (w *Writer) run() {
	defer close(w.done)
	for req := range w.queue {
		if req.flushed != nil {
			close(req.flushed)
			continue
		}
		if err := w.rs.Save(context.Background(), req.collection, req.snapshot); err != nil {
			w.logger.Error("failed to save collection", "collection", req.collection, "error", err)
			continue
		}
		w.logger.Debug("collection saved", "collection", req.collection, "bytes", len(req.snapshot))
	}
}
