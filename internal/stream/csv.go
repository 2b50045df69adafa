package stream

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tathienbao/tastream/internal/types"
	"github.com/tathienbao/tastream/pkg/num"
)

// CSVFeed replays bars from a CSV file.
type CSVFeed struct {
	filePath string
	bars     []types.Bar
	loaded   bool
}

// NewCSVFeed creates a feed from a CSV file.
// CSV format: timestamp,open,high,low,close,volume
// Timestamp format: 2006-01-02 15:04:05 or Unix timestamp
func NewCSVFeed(filePath string) *CSVFeed {
	return &CSVFeed{filePath: filePath}
}

// Subscribe starts sending bars in file order. The channel closes when all
// data has been sent or the context is cancelled.
func (f *CSVFeed) Subscribe(ctx context.Context) (<-chan types.Bar, error) {
	if !f.loaded {
		if err := f.load(); err != nil {
			return nil, err
		}
	}

	ch := make(chan types.Bar, 100)

	go func() {
		defer close(ch)
		for _, bar := range f.bars {
			select {
			case <-ctx.Done():
				return
			case ch <- bar:
			}
		}
	}()

	return ch, nil
}

// Close releases resources.
func (f *CSVFeed) Close() error {
	f.bars = nil
	f.loaded = false
	return nil
}

// Name returns the feed identifier.
func (f *CSVFeed) Name() string {
	return "csv"
}

// BarCount returns the number of loaded bars.
func (f *CSVFeed) BarCount() int {
	return len(f.bars)
}

// load reads and parses the CSV file.
func (f *CSVFeed) load() error {
	file, err := os.Open(f.filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	bars, err := ParseCSV(file)
	if err != nil {
		return fmt.Errorf("parse csv: %w", err)
	}

	f.bars = bars
	f.loaded = true
	return nil
}

// ParseCSV parses bars from a CSV reader. A header row is skipped; rows that
// fail to parse are dropped rather than aborting the replay.
func ParseCSV(r io.Reader) ([]types.Bar, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.TrimLeadingSpace = true

	var bars []types.Bar
	lineNum := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		lineNum++

		// Skip header row
		if lineNum == 1 && isHeader(record) {
			continue
		}

		if len(record) < 5 {
			continue // Skip invalid rows
		}

		bar, err := parseRecord(record)
		if err != nil {
			// Skip invalid rows instead of failing
			continue
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

// parseRecord parses a single CSV record into a Bar. Prices are parsed
// through decimal for an exact read of the text and converted to the engine
// scalar once.
func parseRecord(record []string) (types.Bar, error) {
	var bar types.Bar

	ts, err := parseTimestamp(record[0])
	if err != nil {
		return bar, fmt.Errorf("parse timestamp: %w", err)
	}
	bar.Timestamp = ts

	fields := []struct {
		name string
		dst  *num.Scalar
	}{
		{"open", &bar.Open},
		{"high", &bar.High},
		{"low", &bar.Low},
		{"close", &bar.Close},
	}
	for i, field := range fields {
		d, err := decimal.NewFromString(record[i+1])
		if err != nil {
			return bar, fmt.Errorf("parse %s: %w", field.name, err)
		}
		*field.dst = num.Scalar(d.InexactFloat64())
	}

	// Parse volume (optional)
	if len(record) > 5 {
		vol, err := strconv.ParseInt(record[5], 10, 64)
		if err == nil {
			bar.Volume = vol
		}
	}

	return bar, nil
}

// parseTimestamp tries multiple timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	// Try Unix timestamp first
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0), nil
	}

	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: unknown timestamp format %q", types.ErrInvalidData, s)
}

// isHeader checks if a record looks like a header row.
func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	headers := []string{"timestamp", "time", "date", "datetime", "open", "high", "low", "close"}
	first := record[0]
	for _, h := range headers {
		if first == h {
			return true
		}
	}
	return false
}
