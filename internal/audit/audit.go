// Package audit records what happened during a session: login attempts and
// the operations dispatched from the menu.
package audit

import "sync"

type Kind string

const (
	EventLoginSucceeded   Kind = "LoginSucceeded"
	EventLoginFailed      Kind = "LoginFailed"
	EventLoginExhausted   Kind = "LoginExhausted"
	EventEmployeeAdded    Kind = "EmployeeAdded"
	EventAttendanceAdded  Kind = "AttendanceRecorded"
	EventPayrollProcessed Kind = "PayrollProcessed"
	EventBackupCompleted  Kind = "BackupCompleted"
	EventBackupFailed     Kind = "BackupFailed"
	EventOperationFailed  Kind = "OperationFailed"
	EventSessionEnded     Kind = "SessionEnded"
)

// Event is a single audited fact. Fields that do not apply are left zero.
type Event struct {
	Kind     Kind
	Username string
	RecordID int
	Target   string
	Detail   string
}

// Sink is the minimal interface the session depends on.
//
// Record must not panic and does not return errors; callers must assume it
// may be a no-op.
type Sink interface {
	Record(event Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(Event) {}

// SafeRecord records an event and swallows panics from a buggy sink.
func SafeRecord(s Sink, event Event) {
	if s == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	s.Record(event)
}

// Recorder is a concurrency-safe in-memory collector.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Record(event Event) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Snapshot returns a point-in-time copy of all recorded events.
func (r *Recorder) Snapshot() []Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of all recorded events in order.
func (r *Recorder) Kinds() []Kind {
	events := r.Snapshot()
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}
