package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{"seq", "id", "kind", "from", "to", "amount", "timestamp"}

// WriteCSV writes events as CSV with a header row.
func WriteCSV(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, ev := range events {
		record := []string{
			strconv.FormatUint(ev.Seq, 10),
			ev.ID,
			string(ev.Kind),
			ev.From,
			ev.To,
			ev.Amount,
			strconv.FormatUint(ev.Timestamp, 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing event %d: %w", ev.Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses events from CSV written by WriteCSV.
func ReadCSV(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	var events []Event
	for i, record := range records[1:] {
		if len(record) != len(csvHeader) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", i+2, len(csvHeader), len(record))
		}
		seq, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: seq: %w", i+2, err)
		}
		ts, err := strconv.ParseUint(record[6], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: timestamp: %w", i+2, err)
		}
		events = append(events, Event{
			Seq:       seq,
			ID:        record[1],
			Kind:      Kind(record[2]),
			From:      record[3],
			To:        record[4],
			Amount:    record[5],
			Timestamp: ts,
		})
	}
	return events, nil
}
