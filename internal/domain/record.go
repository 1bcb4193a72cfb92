package domain

import (
	"encoding/json"
)

// Record is a single list item. Its shape is only known to the producer, the
// list machinery just moves entries around.
type Record struct {
	Entries map[string]any
}

func NewRecord(entries map[string]any) Record {
	rec := Record{Entries: entries}
	rec.normalize()
	return rec
}

func (rec *Record) normalize() {
	if len(rec.Entries) == 0 {
		rec.Entries = nil
	}
}

func (rec Record) Get(key string) (value any, ok bool) {
	value, ok = rec.Entries[key]
	return
}

func (rec *Record) UnmarshalJSON(data []byte) error {
	err := json.Unmarshal(data, &rec.Entries)
	if err != nil {
		return err
	}
	rec.normalize()
	return nil
}

func (rec Record) MarshalJSON() ([]byte, error) {
	if rec.Entries == nil {
		return json.Marshal(make(map[string]any))
	}
	return json.Marshal(rec.Entries)
}
