// Package eventlog persists a game's stable event stream to disk as
// newline-delimited JSON (the same wire format internal/protocol and
// internal/transport use), so a game can be reconstructed later with
// game.Replay. It is a flat append-only log file, not the SQLite
// persistence schema spec.md §1 scopes out.
package eventlog

import (
	"bytes"
	"sync"

	"github.com/lox/pokerforbots/internal/broadcast"
	"github.com/lox/pokerforbots/internal/fileutil"
	"github.com/lox/pokerforbots/internal/protocol"
)

// Recorder accumulates a game's stable events and atomically rewrites
// its log file on every Record call, so a reader never observes a
// truncated or half-written log (see fileutil.WriteFileAtomic).
type Recorder struct {
	path string

	mu  sync.Mutex
	buf bytes.Buffer
}

// New returns a Recorder that writes to path.
func New(path string) *Recorder {
	return &Recorder{path: path}
}

// Record appends env to the log if it carries a stable id (ephemeral
// events, id 0, are never persisted -- matching spec.md §4.5's
// never-replayed contract) and rewrites the file.
func (r *Recorder) Record(env broadcast.Envelope) error {
	if env.ID == 0 {
		return nil
	}
	data, err := protocol.MarshalEvent(env)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf.Write(data)
	r.buf.WriteByte('\n')
	return fileutil.WriteFileAtomic(r.path, r.buf.Bytes(), 0o644)
}

// Watch subscribes sub's events to the Recorder until sub's channel
// closes (the table unsubscribed it), handing persistence failures to
// onError (if non-nil) rather than propagating them -- a failed write must
// never stall the game actor that published the event.
func (r *Recorder) Watch(sub *broadcast.Subscriber, onError func(error)) {
	for env := range sub.Chan() {
		if err := r.Record(env); err != nil && onError != nil {
			onError(err)
		}
	}
}
