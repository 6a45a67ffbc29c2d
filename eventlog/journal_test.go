package eventlog

import (
	"bytes"
	"strings"
	"testing"
)

func sampleJournal() *Journal {
	j := NewJournal()
	j.Append(KindScheduleInitialized, "", "", "", 1000)
	j.Append(KindMint, "", "alice", "100", 1001)
	j.Append(KindLockupRegistered, "", "alice", "100", 1002)
	j.Append(KindTransfer, "alice", "bob", "12", 2000)
	j.Append(KindTransfer, "bob", "carol", "5", 2001)
	return j
}

func TestJournalAppend(t *testing.T) {
	j := sampleJournal()
	if j.Len() != 5 {
		t.Fatalf("Len = %d, want 5", j.Len())
	}
	events := j.Events()
	for i, ev := range events {
		if ev.Seq != uint64(i+1) {
			t.Errorf("event %d has Seq %d, want %d", i, ev.Seq, i+1)
		}
		if ev.ID == "" {
			t.Errorf("event %d has empty ID", i)
		}
	}
	// IDs are unique.
	seen := make(map[string]bool)
	for _, ev := range events {
		if seen[ev.ID] {
			t.Errorf("duplicate event ID %s", ev.ID)
		}
		seen[ev.ID] = true
	}
}

func TestJournalFilters(t *testing.T) {
	j := sampleJournal()

	transfers := j.ByKind(KindTransfer)
	if len(transfers) != 2 {
		t.Errorf("ByKind(transfer) = %d events, want 2", len(transfers))
	}

	alice := j.ByAccount("alice")
	if len(alice) != 3 {
		t.Errorf("ByAccount(alice) = %d events, want 3", len(alice))
	}
	bob := j.ByAccount("bob")
	if len(bob) != 2 {
		t.Errorf("ByAccount(bob) = %d events, want 2", len(bob))
	}
}

func TestJournalReplay(t *testing.T) {
	src := sampleJournal()
	j := NewJournal()
	j.Replay(src.Events())

	if j.Len() != 5 {
		t.Fatalf("Len after replay = %d, want 5", j.Len())
	}
	// New appends continue the restored sequence.
	ev := j.Append(KindBurn, "carol", "", "1", 3000)
	if ev.Seq != 6 {
		t.Errorf("Seq after replay = %d, want 6", ev.Seq)
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	events := sampleJournal().Events()

	var buf bytes.Buffer
	if err := WriteJSONL(&buf, events); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}
	got, err := ReadJSONL(&buf)
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("read %d events, want %d", len(got), len(events))
	}
	for i := range events {
		if got[i] != events[i] {
			t.Errorf("event %d mismatch: %+v != %+v", i, got[i], events[i])
		}
	}
}

func TestReadJSONLBadLine(t *testing.T) {
	input := `{"id":"a","seq":1,"kind":"mint","timestamp":1}
not json
`
	if _, err := ReadJSONL(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for malformed line")
	} else if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the line: %v", err)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	events := sampleJournal().Events()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, events); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "seq,id,kind,from,to,amount,timestamp") {
		t.Errorf("missing header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("read %d events, want %d", len(got), len(events))
	}
	for i := range events {
		if got[i] != events[i] {
			t.Errorf("event %d mismatch: %+v != %+v", i, got[i], events[i])
		}
	}
}
