// Package history keeps the in-memory log of submitted queries.
package history

import "time"

// TimestampLayout renders completion times in the local zone, matching the
// month/day/year clock format users see elsewhere in the console.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Entry records one successful submission. Entries are immutable once built.
type Entry struct {
	query     string
	timestamp string
	at        time.Time
}

// NewEntry stamps query with the local-time rendering of at.
func NewEntry(query string, at time.Time) Entry {
	return Entry{
		query:     query,
		timestamp: at.Local().Format(TimestampLayout),
		at:        at,
	}
}

func (e Entry) Query() string     { return e.query }
func (e Entry) Timestamp() string { return e.timestamp }
func (e Entry) At() time.Time     { return e.at }

// Log is newest-first and unbounded. It is not safe for concurrent use; the
// console owns it from a single event loop.
type Log struct {
	entries []Entry
}

// Record prepends entry. Duplicates are kept.
func (l *Log) Record(entry Entry) {
	l.entries = append([]Entry{entry}, l.entries...)
}

// Entries returns a copy in newest-first order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	return len(l.entries)
}
