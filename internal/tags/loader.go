package tags

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Header names in the dataset.
const (
	colTag         = "tag"
	colTranslation = "trans"
	colJapaneseTag = "jpTag"
	colCount       = "count"
	colGroups      = "tagGroup"
	colRating      = "Rating"
)

var (
	// ErrParse wraps every whole-file parse failure.
	ErrParse = errors.New("failed to parse CSV")
	// ErrMissingColumn is returned when the header lacks a column rows cannot be accepted without.
	ErrMissingColumn = errors.New("missing required column")
)

// ParseStats counts what happened to the data rows of one parse.
type ParseStats struct {
	Accepted int
	Skipped  int
}

// Loader reads the dataset from a file path or an http(s) URL.
type Loader struct {
	client *http.Client
	logger *zap.Logger
}

// NewLoader creates a loader. A nil client uses http.DefaultClient and a nil logger discards output.
func NewLoader(client *http.Client, logger *zap.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{client: client, logger: logger}
}

// Load fetches source and parses it into records.
func (l *Loader) Load(ctx context.Context, source string) ([]Record, error) {
	body, err := l.open(ctx, source)
	if err != nil {
		l.logger.Error("Failed to fetch CSV", zap.String("source", source), zap.Error(err))
		return nil, err
	}
	defer body.Close()

	records, stats, err := Parse(body)
	if err != nil {
		l.logger.Error("CSV parsing error", zap.String("source", source), zap.Error(err))
		return nil, err
	}
	l.logger.Info("Loaded tag data",
		zap.String("source", source),
		zap.Int("accepted", stats.Accepted),
		zap.Int("skipped", stats.Skipped))
	return records, nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !isURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch CSV: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch CSV: %s", statusText(resp))
	}
	return resp.Body, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}

// Parse reads CSV with a header row and returns the accepted records in file order.
// Rows with an empty tag, a non-integer count or a non-integer rating are skipped,
// as are rows the CSV reader cannot make sense of.
func Parse(r io.Reader) ([]Record, ParseStats, error) {
	var stats ParseStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, stats, fmt.Errorf("%w: %w: empty input", ErrParse, ErrMissingColumn)
	}
	if err != nil {
		return nil, stats, fmt.Errorf("%w: header: %w", ErrParse, err)
	}

	cols := indexHeader(header)
	for _, required := range []string{colTag, colCount, colRating} {
		if _, ok := cols[required]; !ok {
			return nil, stats, fmt.Errorf("%w: %w: %s", ErrParse, ErrMissingColumn, required)
		}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("%w: %w", ErrParse, err)
		}

		rec, ok := parseRow(row, cols)
		if !ok {
			stats.Skipped++
			continue
		}
		records = append(records, rec)
		stats.Accepted++
	}
	return records, stats, nil
}

func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func parseRow(row []string, cols map[string]int) (Record, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	tag := field(colTag)
	if strings.TrimSpace(tag) == "" {
		return Record{}, false
	}
	count, err := strconv.Atoi(strings.TrimSpace(field(colCount)))
	if err != nil {
		return Record{}, false
	}
	rating, err := strconv.Atoi(strings.TrimSpace(field(colRating)))
	if err != nil {
		return Record{}, false
	}

	return Record{
		Tag:         tag,
		Translation: field(colTranslation),
		JapaneseTag: field(colJapaneseTag),
		Count:       count,
		Groups:      strings.Fields(field(colGroups)),
		Rating:      rating,
	}, true
}
