package stream

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseCSV_WithHeader(t *testing.T) {
	input := `timestamp,open,high,low,close,volume
2024-01-01 00:00:00,100.5,101.0,99.5,100.75,1000
2024-01-01 00:01:00,100.75,102.0,100.5,101.5,1500`

	bars, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if bars[0].Open != 100.5 {
		t.Errorf("open = %v, want 100.5", bars[0].Open)
	}
	if bars[0].Close != 100.75 {
		t.Errorf("close = %v, want 100.75", bars[0].Close)
	}
	if bars[0].Volume != 1000 {
		t.Errorf("volume = %d, want 1000", bars[0].Volume)
	}
	if bars[1].Timestamp.Minute() != 1 {
		t.Errorf("timestamp minute = %d, want 1", bars[1].Timestamp.Minute())
	}
}

func TestParseCSV_NoHeader(t *testing.T) {
	input := `2024-01-01 00:00:00,100,101,99,100.5,500`

	bars, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("got %d bars, want 1", len(bars))
	}
}

func TestParseCSV_SkipsBadRows(t *testing.T) {
	input := `timestamp,open,high,low,close,volume
2024-01-01 00:00:00,100,101,99,100.5,500
not-a-date,100,101,99,100.5,500
2024-01-01 00:02:00,bad-price,101,99,100.5,500
2024-01-01 00:03:00,101,102,100,101.5,600`

	bars, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2 (bad rows skipped)", len(bars))
	}
}

func TestParseCSV_UnixTimestamp(t *testing.T) {
	input := `1704067200,100,101,99,100.5,500`

	bars, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("got %d bars, want 1", len(bars))
	}
	want := time.Unix(1704067200, 0)
	if !bars[0].Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", bars[0].Timestamp, want)
	}
}

func TestParseCSV_ExactDecimalRead(t *testing.T) {
	// 100.1 has no exact binary representation; parsing must still yield the
	// nearest scalar, not an accumulated string-conversion artifact.
	input := `2024-01-01,100.1,100.1,100.1,100.1,1`

	bars, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if bars[0].Close != 100.1 {
		t.Errorf("close = %v, want 100.1", bars[0].Close)
	}
}

func TestCSVFeed_Subscribe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bars.csv")
	content := `timestamp,open,high,low,close,volume
2024-01-01 00:00:00,100,101,99,100.5,500
2024-01-01 00:01:00,100.5,102,100,101,600`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	feed := NewCSVFeed(path)
	defer feed.Close()

	ch, err := feed.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	var count int
	for range ch {
		count++
	}
	if count != 2 {
		t.Errorf("got %d bars, want 2", count)
	}
	if feed.BarCount() != 2 {
		t.Errorf("bar count = %d, want 2", feed.BarCount())
	}
}

func TestCSVFeed_MissingFile(t *testing.T) {
	feed := NewCSVFeed("/nonexistent/bars.csv")
	if _, err := feed.Subscribe(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
