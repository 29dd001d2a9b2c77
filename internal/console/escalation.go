package console

import "time"

// EscalationThreshold is how long a request may stay outstanding before the
// console adds the "still working" line.
const EscalationThreshold = 10 * time.Second

type timerState int

const (
	timerIdle timerState = iota
	timerArmed
)

// Ticket identifies one arming of the escalation timer. A scheduler delivers
// it back to Controller.Fire once Deadline has passed.
type Ticket struct {
	Generation uint64
	Deadline   time.Time
}

// escalation is a one-shot timer machine. Arm moves Idle→Armed and hands out
// a fresh generation; Cancel and a successful Fire both return to Idle, so a
// stale ticket can never fire.
type escalation struct {
	state      timerState
	generation uint64
	deadline   time.Time
}

func (e *escalation) Arm(now time.Time) Ticket {
	e.generation++
	e.state = timerArmed
	e.deadline = now.Add(EscalationThreshold)
	return Ticket{Generation: e.generation, Deadline: e.deadline}
}

func (e *escalation) Cancel() {
	e.state = timerIdle
}

func (e *escalation) Armed() bool {
	return e.state == timerArmed
}

func (e *escalation) Fire(t Ticket, now time.Time) bool {
	if e.state != timerArmed || t.Generation != e.generation {
		return false
	}
	if now.Before(e.deadline) {
		return false
	}
	e.state = timerIdle
	return true
}
