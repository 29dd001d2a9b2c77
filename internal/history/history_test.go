package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPrependsNewestFirst(t *testing.T) {
	var log Log
	base := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)
	for i, q := range []string{"Q1", "Q2", "Q3"} {
		log.Record(NewEntry(q, base.Add(time.Duration(i)*time.Minute)))
	}

	entries := log.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Q3", entries[0].Query())
	assert.Equal(t, "Q2", entries[1].Query())
	assert.Equal(t, "Q1", entries[2].Query())
	assert.Equal(t, 3, log.Len())
}

func TestRecordKeepsDuplicates(t *testing.T) {
	var log Log
	now := time.Now()
	log.Record(NewEntry("same", now))
	log.Record(NewEntry("same", now))
	assert.Equal(t, 2, log.Len())
}

func TestEntriesReturnsCopy(t *testing.T) {
	var log Log
	log.Record(NewEntry("Q1", time.Now()))
	entries := log.Entries()
	entries[0] = NewEntry("tampered", time.Now())
	assert.Equal(t, "Q1", log.Entries()[0].Query())
}

func TestEntryTimestampUsesLocalClock(t *testing.T) {
	at := time.Date(2026, 10, 17, 15, 4, 5, 0, time.Local)
	entry := NewEntry("q", at)
	assert.Equal(t, "10/17/2026, 3:04:05 PM", entry.Timestamp())
	assert.True(t, entry.At().Equal(at))
}
